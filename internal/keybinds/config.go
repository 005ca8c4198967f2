package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigFileName is the keybinding file inside the config directory
const ConfigFileName = "keybinds.json"

// Config represents the user's keybinding configuration.
// Each section maps a key, or a comma separated list of keys, to an
// action name. An empty action name removes the default binding.
type Config struct {
	Version string            `json:"version"`
	Global  map[string]string `json:"global,omitempty"`
	Listing map[string]string `json:"listing,omitempty"`
	Pager   map[string]string `json:"pager,omitempty"`
}

// LoadConfig loads keybinding configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid %s format: %w", ConfigFileName, err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:  c.Global,
		ContextListing: c.Listing,
		ContextPager:   c.Pager,
	}
}

// ApplyConfig applies user configuration to a registry.
// User bindings override default bindings. The registry is left untouched
// when the configuration does not validate.
func ApplyConfig(registry *Registry, config *Config) error {
	result := NewValidator().ValidateConfig(config)
	if result.HasErrors() {
		return fmt.Errorf("invalid keybindings:\n%s", result.String())
	}

	for context, bindings := range config.sections() {
		for keys, actionStr := range bindings {
			for _, key := range splitKeys(keys) {
				if actionStr == "" {
					registry.Unregister(context, key)
					continue
				}
				registry.Register(context, key, Action(actionStr))
			}
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", ConfigFileName, err)
		}

		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}
	// If config doesn't exist, that's fine - use defaults

	return registry, nil
}

// ExportConfig converts a registry into the file format, grouping the
// keys of each action
func ExportConfig(registry *Registry) *Config {
	config := &Config{Version: "1.0"}
	for _, context := range Contexts() {
		section := make(map[string]string)
		byAction := make(map[Action][]string)
		var order []Action
		for _, b := range registry.ListBindings(context) {
			if _, seen := byAction[b.Action]; !seen {
				order = append(order, b.Action)
			}
			byAction[b.Action] = append(byAction[b.Action], b.Key)
		}
		for _, action := range order {
			section[strings.Join(byAction[action], ",")] = string(action)
		}

		switch context {
		case ContextGlobal:
			config.Global = section
		case ContextListing:
			config.Listing = section
		case ContextPager:
			config.Pager = section
		}
	}
	return config
}

// CreateExampleConfig writes the default bindings to path so users can
// edit them. An existing file is never overwritten.
func CreateExampleConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return SaveConfig(ExportConfig(NewDefaultRegistry()), path)
}

// splitKeys splits "a,b" into its keys. A lone "," is the comma key.
func splitKeys(keys string) []string {
	if keys == "," {
		return []string{","}
	}
	var out []string
	for _, k := range strings.Split(keys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

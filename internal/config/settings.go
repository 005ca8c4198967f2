package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings are the user preferences read from config.yaml.
// Keys missing from the file keep their default value.
type Settings struct {
	// Timeout bounds connecting and waiting for response headers
	Timeout            time.Duration `yaml:"timeout"`
	TabWidth           int           `yaml:"tab_width"`
	ProgressBar        bool          `yaml:"progress_bar"`
	Highlight          bool          `yaml:"highlight"`
	HighlightStyle     string        `yaml:"highlight_style"`
	History            bool          `yaml:"history"`
	LogLevel           string        `yaml:"log_level"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify"`
	CAFile             string        `yaml:"ca_file,omitempty"`
	// DownloadDir is where the save dialog starts, the working directory when empty
	DownloadDir string `yaml:"download_dir,omitempty"`
}

var validLogLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// DefaultSettings returns the built-in settings
func DefaultSettings() Settings {
	return Settings{
		Timeout:        30 * time.Second,
		TabWidth:       4,
		ProgressBar:    true,
		Highlight:      true,
		HighlightStyle: "monokai",
		History:        true,
		LogLevel:       "",
	}
}

// LoadSettings reads path over the defaults. A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("failed to read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
		return DefaultSettings(), fmt.Errorf("invalid %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return DefaultSettings(), fmt.Errorf("invalid %s: %w", path, err)
	}

	if settings.CAFile != "" {
		if settings.CAFile, err = ExpandHome(settings.CAFile); err != nil {
			return DefaultSettings(), err
		}
	}
	if settings.DownloadDir != "" {
		if settings.DownloadDir, err = ExpandHome(settings.DownloadDir); err != nil {
			return DefaultSettings(), err
		}
	}

	return settings, nil
}

// Validate checks value ranges
func (s Settings) Validate() error {
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if s.TabWidth < 1 {
		return fmt.Errorf("tab_width must be at least 1")
	}
	if !validLogLevels[s.LogLevel] {
		return fmt.Errorf("unknown log_level %q", s.LogLevel)
	}
	return nil
}

// SaveSettings writes settings to path as YAML
func SaveSettings(path string, settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return os.WriteFile(path, data, FilePermissions)
}

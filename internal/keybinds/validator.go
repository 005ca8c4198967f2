package keybinds

import (
	"fmt"
	"strings"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "warning"
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys are keys that may only keep their reserved action
	reservedKeys map[string]Action
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]Action{
			"ctrl+c": ActionQuitForce, // Force quit should always work
		},
	}
}

// ValidateConfig validates a configuration before applying it
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	seen := make(map[Context]map[string]string)
	for context, bindings := range config.sections() {
		for keys, actionStr := range bindings {
			for _, key := range splitKeys(keys) {
				v.checkBinding(context, key, actionStr, seen, result)
			}
			if len(splitKeys(keys)) == 0 {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "invalid",
					Context: context,
					Key:     keys,
					Message: "empty key",
				})
			}
		}
	}

	v.checkShadowing(config, result)
	return result
}

func (v *Validator) checkBinding(context Context, key, actionStr string, seen map[Context]map[string]string, result *ValidationResult) {
	if err := ValidateKey(key); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Type:    "invalid",
			Context: context,
			Key:     key,
			Message: err.Error(),
		})
		return
	}

	if reserved, ok := v.reservedKeys[key]; ok && Action(actionStr) != reserved {
		result.Errors = append(result.Errors, ValidationError{
			Type:    "invalid",
			Context: context,
			Key:     key,
			Message: "reserved key cannot be rebound",
		})
		return
	}

	if actionStr != "" {
		if err := ValidateAction(actionStr); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Type:    "invalid",
				Context: context,
				Key:     key,
				Message: err.Error(),
			})
			return
		}
	}

	if seen[context] == nil {
		seen[context] = make(map[string]string)
	}
	if prev, dup := seen[context][key]; dup && prev != actionStr {
		result.Errors = append(result.Errors, ValidationError{
			Type:    "conflict",
			Context: context,
			Key:     key,
			Message: fmt.Sprintf("bound to both %q and %q", prev, actionStr),
		})
		return
	}
	seen[context][key] = actionStr
}

// checkShadowing warns about context bindings hiding a global binding
func (v *Validator) checkShadowing(config *Config, result *ValidationResult) {
	global := make(map[string]string)
	for keys, action := range config.Global {
		for _, key := range splitKeys(keys) {
			global[key] = action
		}
	}
	defaults := NewDefaultRegistry()

	for context, bindings := range config.sections() {
		if context == ContextGlobal {
			continue
		}
		for keys, action := range bindings {
			for _, key := range splitKeys(keys) {
				globalAction, ok := global[key]
				if !ok {
					if a, found := defaults.bindings[ContextGlobal][key]; found {
						globalAction, ok = string(a), true
					}
				}
				if ok && globalAction != action {
					result.Warnings = append(result.Warnings, ValidationError{
						Type:    "warning",
						Context: context,
						Key:     key,
						Message: fmt.Sprintf("shadows global binding (%s -> %s)", globalAction, action),
					})
				}
			}
		}
	}
}

// ValidateKey checks if a key string is valid
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	if strings.HasPrefix(key, "ctrl+") && len(key) == len("ctrl+") {
		return fmt.Errorf("modifier without key: %s", key)
	}

	return nil
}

// ValidateAction checks if an action string is valid
func ValidateAction(actionStr string) error {
	if actionStr == "" {
		return fmt.Errorf("action cannot be empty")
	}
	if !IsKnownAction(Action(actionStr)) {
		return fmt.Errorf("unknown action %q", actionStr)
	}
	return nil
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nordicdata/tap-inventio/pkg/endpoints"
)

type ValidationError struct {
	Field   string
	Message string
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator checks one aspect of a parsed Config
type Validator interface {
	Validate(cfg *Config) []ValidationError
}

// DefaultValueSetter fills in defaults on a parsed Config
type DefaultValueSetter interface {
	SetDefaults(cfg *Config)
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	expanded := os.Expand(string(data), os.Getenv)
	return []byte(expanded)
}

// Loader parses and validates tap configurations
type Loader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
}

// NewLoader creates a Loader with the given components
func NewLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *Loader {
	return &Loader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
	}
}

// NewDefaultLoader wires up the expander, defaults and all validators.
func NewDefaultLoader() *Loader {
	return NewLoader(
		&EnvExpander{},
		&Defaults{},
		&RequiredFieldValidator{},
		&EndpointValidator{},
		&DestinationValidator{},
	)
}

// Load reads a YAML config from a file
func (l *Loader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return l.Parse(data)
}

// Parse parses a yaml config
func (l *Loader) Parse(data []byte) (*Config, error) {
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(&cfg)
	}

	var allErrors []ValidationError
	for _, validator := range l.validators {
		allErrors = append(allErrors, validator.Validate(&cfg)...)
	}

	if len(allErrors) > 0 {
		return nil, fmt.Errorf("validation errors: %v", allErrors)
	}

	return &cfg, nil
}

// Defaults implements DefaultValueSetter
type Defaults struct{}

// SetDefaults sets default values for Config
func (d *Defaults) SetDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Destination.Type == "" {
		cfg.Destination.Type = DestinationSinger
	}
}

// RequiredFieldValidator validates required fields
type RequiredFieldValidator struct{}

// Validate checks that all required fields are present
func (v *RequiredFieldValidator) Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if len(cfg.Endpoints) == 0 {
		errs = append(errs, ValidationError{Field: "endpoints", Message: "at least one endpoint is required"})
	}

	for i, ep := range cfg.Endpoints {
		if ep.Endpoint == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("endpoints[%d].endpoint", i),
				Message: "is required",
			})
		}
		if len(ep.Companies) == 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("endpoints[%d].companies", i),
				Message: "at least one company token is required",
			})
		}
		if ep.Limit < 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("endpoints[%d].limit", i),
				Message: "must not be negative",
			})
		}
	}

	return errs
}

// EndpointValidator rejects write endpoints and duplicated configuration
type EndpointValidator struct{}

// Validate checks that endpoint names are usable and unique
func (v *EndpointValidator) Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	counts := make(map[string]int)
	for i, ep := range cfg.Endpoints {
		if ep.Endpoint == "" {
			continue // RequiredFieldValidator reports this one
		}
		key, ok := endpoints.Normalize(ep.Endpoint)
		if !ok {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("endpoints[%d].endpoint", i),
				Message: fmt.Sprintf("%q is a write endpoint and cannot be extracted", ep.Endpoint),
			})
			continue
		}
		counts[key]++
	}

	for key, count := range counts {
		if count > 1 {
			errs = append(errs, ValidationError{
				Field:   "endpoints",
				Message: fmt.Sprintf("endpoint %q was configured more than once (%d times)", key, count),
			})
		}
	}

	return errs
}

// DestinationValidator validates destination configuration
type DestinationValidator struct{}

// Validate checks the destination block
func (v *DestinationValidator) Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	switch cfg.Destination.Type {
	case DestinationSinger:
		// nothing to check
	case DestinationSQLite:
		if cfg.Destination.Path == "" {
			errs = append(errs, ValidationError{
				Field:   "destination.path",
				Message: "is required for sqlite destinations",
			})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "destination.type",
			Message: fmt.Sprintf("unknown destination type: %s", cfg.Destination.Type),
		})
	}

	return errs
}

// Warnings reports non-fatal configuration issues: endpoints that are
// configured but not served by any available stream. available holds the
// stream endpoint names, in any casing.
func Warnings(cfg *Config, available []string) []string {
	known := make(map[string]struct{}, len(available))
	for _, name := range available {
		if key, ok := endpoints.Normalize(name); ok {
			known[key] = struct{}{}
		}
	}

	var warnings []string
	for _, ep := range cfg.Endpoints {
		key, ok := endpoints.Normalize(ep.Endpoint)
		if !ok {
			continue
		}
		if _, served := known[key]; !served {
			warnings = append(warnings, fmt.Sprintf(
				"endpoint %s was configured but is not available from this tap", key))
		}
	}
	return warnings
}

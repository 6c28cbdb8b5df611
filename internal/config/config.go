// Package config reads and validates the optional hostfacts YAML config file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds settings that may come from the config file or CLI flags.
type Config struct {
	// Format is the output format: text, json, or jsonl.
	Format string `yaml:"format" validate:"omitempty,oneof=text json jsonl"`

	// NoColor disables colored text output.
	NoColor bool `yaml:"no_color"`

	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=panic fatal error warn warning info debug trace"`

	// Timeout bounds every probe command (Go duration, e.g. "5s"). Empty or
	// zero means unbounded.
	Timeout string `yaml:"timeout" validate:"omitempty,hostfacts_duration"`

	// Family forces an OS family instead of detecting it.
	Family string `yaml:"family" validate:"omitempty,oneof=windows macos darwin linux unknown"`

	// MeminfoPath overrides /proc/meminfo on Linux.
	MeminfoPath string `yaml:"meminfo_path" validate:"omitempty,hostfacts_abspath"`

	// Commands overrides the binary path of allowlisted commands.
	Commands map[string]string `yaml:"commands" validate:"omitempty,dive,keys,hostfacts_command,endkeys,required,hostfacts_abspath"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		Format:   "text",
		LogLevel: "warn",
	}
}

// TimeoutDuration returns the parsed Timeout. Invalid values are rejected by
// Load, so an unparsable value here yields zero.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Loader validates config files against the schema and the set of commands
// the runner knows about.
type Loader struct {
	validate      *validator.Validate
	knownCommands map[string]struct{}
}

// New creates a Loader. Command names are used to validate the keys of the
// commands map.
func New(knownCommands []string) *Loader {
	cmds := make(map[string]struct{}, len(knownCommands))
	for _, c := range knownCommands {
		cmds[c] = struct{}{}
	}

	v := validator.New()

	_ = v.RegisterValidation("hostfacts_duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d >= 0
	})
	_ = v.RegisterValidation("hostfacts_abspath", func(fl validator.FieldLevel) bool {
		return filepath.IsAbs(fl.Field().String())
	})
	_ = v.RegisterValidation("hostfacts_command", func(fl validator.FieldLevel) bool {
		_, ok := cmds[fl.Field().String()]
		return ok
	})

	return &Loader{
		validate:      v,
		knownCommands: cmds,
	}
}

// Load reads a YAML config file on top of Defaults and validates it.
// Unknown keys are rejected.
func (l *Loader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	cfg := Defaults()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML in %q: %w", path, err)
	}

	if err := l.Validate(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate runs schema validation on cfg.
func (l *Loader) Validate(cfg *Config) error {
	if err := l.validate.Struct(cfg); err != nil {
		return l.formatValidationErrors(err)
	}
	return nil
}

// formatValidationErrors converts validator errors into user-friendly messages.
func (l *Loader) formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	var messages []string
	for _, fe := range validationErrors {
		messages = append(messages, l.formatFieldError(fe))
	}

	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// formatFieldError converts a single field validation error to a human-readable message.
func (l *Loader) formatFieldError(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %q)", field, fe.Param(), fe.Value())
	case "hostfacts_duration":
		return fmt.Sprintf("%s must be a non-negative duration such as 5s or 1m (got %q)", field, fe.Value())
	case "hostfacts_abspath":
		return fmt.Sprintf("%s must be an absolute path (got %q)", field, fe.Value())
	case "hostfacts_command":
		return fmt.Sprintf("%s: unknown command %q (known commands: %s)", field, fe.Value(), l.knownCommandList())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// knownCommandList returns a comma-separated list of known command names.
func (l *Loader) knownCommandList() string {
	names := make([]string, 0, len(l.knownCommands))
	for name := range l.knownCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

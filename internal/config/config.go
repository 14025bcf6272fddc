package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// LoggerSettings holds the tunables of a named logger. Empty fields mean
// "not set" so that rules only override what they mention.
type LoggerSettings struct {
	Dir     string `yaml:"dir,omitempty"`
	Level   string `yaml:"level,omitempty" validate:"omitempty,loglevel"`
	Console *bool  `yaml:"console,omitempty"`
	Mode    string `yaml:"mode,omitempty" validate:"omitempty,oneof=daily run"`
}

// LoggerRule applies Settings to every logger whose name matches the glob in Match.
type LoggerRule struct {
	Match          string `yaml:"match" validate:"required"`
	LoggerSettings `yaml:",inline"`

	compiled glob.Glob
}

// Config represents the runlog configuration file
type Config struct {
	AppLog struct {
		Level string `yaml:"level"`
	} `yaml:"app_log"`

	Defaults LoggerSettings `yaml:"defaults"`
	Loggers  []LoggerRule   `yaml:"loggers" validate:"dive"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.AppLog.Level = "WARNING"
	return cfg
}

// LoadConfig loads and validates the configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file '%s': %w", path, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// levelNames are the level names accepted in a config file, compared case-insensitively.
var levelNames = map[string]struct{}{
	"DEBUG": {}, "INFO": {}, "WARNING": {}, "WARN": {},
	"ERROR": {}, "CRITICAL": {}, "FATAL": {},
}

func isLevelName(s string) bool {
	_, ok := levelNames[strings.ToUpper(s)]
	return ok
}

// validateLevelName backs the "loglevel" tag.
func validateLevelName(fl validator.FieldLevel) bool {
	return isLevelName(fl.Field().String())
}

// ValidateConfig uses go-playground/validator for struct-level validation
// and then compiles the logger rule globs.
func ValidateConfig(cfg *Config) error {
	validate := validator.New()
	if err := validate.RegisterValidation("loglevel", validateLevelName); err != nil {
		return fmt.Errorf("failed to register level validator: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		messages := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fe.Namespace(), fe.Tag()))
		}
		return errors.New(strings.Join(messages, "; "))
	}

	return validateConfig(cfg)
}

// validateConfig performs semantic validation of the configuration
func validateConfig(cfg *Config) error {
	if cfg.AppLog.Level != "" && !isLevelName(cfg.AppLog.Level) {
		return fmt.Errorf("invalid app_log.level: '%s'", cfg.AppLog.Level)
	}

	for i := range cfg.Loggers {
		rule := &cfg.Loggers[i]
		g, err := glob.Compile(rule.Match)
		if err != nil {
			return fmt.Errorf("loggers[%d]: invalid match glob pattern '%s': %w", i, rule.Match, err)
		}
		rule.compiled = g
	}
	return nil
}

// SettingsFor resolves the settings for a logger name: the defaults overlaid
// with the first rule whose pattern matches the name.
func (c *Config) SettingsFor(name string) LoggerSettings {
	settings := c.Defaults
	for _, rule := range c.Loggers {
		if !rule.matches(name) {
			continue
		}
		settings = settings.merge(rule.LoggerSettings)
		break
	}
	return settings
}

func (r LoggerRule) matches(name string) bool {
	if r.compiled != nil {
		return r.compiled.Match(name)
	}
	// Rules built in code skip ValidateConfig; compile on the fly.
	g, err := glob.Compile(r.Match)
	if err != nil {
		return false
	}
	return g.Match(name)
}

// merge returns s with every field set in override applied on top.
func (s LoggerSettings) merge(override LoggerSettings) LoggerSettings {
	if override.Dir != "" {
		s.Dir = override.Dir
	}
	if override.Level != "" {
		s.Level = override.Level
	}
	if override.Console != nil {
		s.Console = override.Console
	}
	if override.Mode != "" {
		s.Mode = override.Mode
	}
	return s
}

package main

import (
	"bytes"
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/akam1o/lnxconfig/pkg/errors"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Settings control lnxctl itself, not the lnx file being inspected
type Settings struct {
	LogLevel  string `yaml:"log-level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log-format" env:"LOG_FORMAT"`
	Color     string `yaml:"color" env:"COLOR"`
	Strict    bool   `yaml:"strict" env:"STRICT"`
}

// DefaultSettings returns the built-in settings
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel:  "warn",
		LogFormat: "console",
		Color:     ColorAuto,
	}
}

// LoadSettings merges settings by precedence: flags, then LNXCTL_*
// environment variables, then the settings file (if path is set), then
// defaults. A value only counts as set when it is non-zero.
func LoadSettings(path string, flags *Settings) (*Settings, error) {
	sources := make([]*Settings, 0, 4)
	if flags != nil {
		sources = append(sources, flags)
	}

	envSettings := &Settings{}
	if err := env.ParseWithOptions(envSettings, env.Options{Prefix: "LNXCTL_"}); err != nil {
		return nil, errors.Wrap(
			err,
			errors.ErrCodeSettings,
			"Failed to read settings from environment",
			"An LNXCTL_* variable has a value of the wrong type",
			"Check the LNXCTL_* environment variables",
		)
	}
	sources = append(sources, envSettings)

	if path != "" {
		fileSettings, err := loadSettingsFile(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fileSettings)
	}

	sources = append(sources, DefaultSettings())

	settings := &Settings{}
	for _, src := range sources {
		if err := mergo.Merge(settings, src); err != nil {
			return nil, errors.Wrap(
				err,
				errors.ErrCodeSettings,
				"Failed to merge settings",
				"Internal error while combining settings sources",
				"Report this issue to the maintainers",
			)
		}
	}

	if err := settings.validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func loadSettingsFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path, err)
		}
		return nil, errors.ConfigOpenError(path, err)
	}

	// Strict mode rejects unknown fields (typo detection)
	var settings Settings
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&settings); err != nil {
		// An empty file decodes to io.EOF
		if len(bytes.TrimSpace(data)) == 0 {
			return &settings, nil
		}
		return nil, errors.Wrap(
			err,
			errors.ErrCodeSettings,
			fmt.Sprintf("Failed to parse settings file: %s", path),
			"Invalid YAML syntax, structure, or unknown fields (check for typos)",
			"Allowed keys are log-level, log-format, color and strict",
		)
	}

	return &settings, nil
}

func (s *Settings) validate() error {
	switch s.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.New(
			errors.ErrCodeSettings,
			fmt.Sprintf("Invalid color mode: %s", s.Color),
			"The color setting is not recognized",
			"Use auto, always or never",
		)
	}

	switch s.LogFormat {
	case "console", "json":
	default:
		return errors.New(
			errors.ErrCodeSettings,
			fmt.Sprintf("Invalid log format: %s", s.LogFormat),
			"The log format is not recognized",
			"Use console or json",
		)
	}

	return nil
}

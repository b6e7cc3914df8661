// Package config loads the user's glaze settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/glaze/internal/clipboard"
	"github.com/alexisbeaulieu97/glaze/internal/preset"
	"github.com/alexisbeaulieu97/glaze/internal/validation"
	glazeerrors "github.com/alexisbeaulieu97/glaze/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Settings are the user-level defaults applied before command-line flags.
type Settings struct {
	LogLevel      string `yaml:"log_level" validate:"oneof=debug info warn error"`
	HumanReadable bool   `yaml:"human_readable"`
	LogFile       string `yaml:"log_file,omitempty"`
	DefaultPreset string `yaml:"default_preset" validate:"required"`
	Clipboard     string `yaml:"clipboard" validate:"oneof=auto system osc52"`
	Listen        string `yaml:"listen" validate:"hostname_port"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		LogLevel:      "info",
		HumanReadable: true,
		DefaultPreset: "ios",
		Clipboard:     string(clipboard.ModeAuto),
		Listen:        "127.0.0.1:8080",
	}
}

// DefaultPath returns ~/.config/glaze/config.yaml, honouring XDG_CONFIG_HOME.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".config", "glaze", "config.yaml")
	}
	return filepath.Join(dir, "glaze", "config.yaml")
}

// Load reads settings from path. A missing file yields Default(); keys the
// file omits keep their default values.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, glazeerrors.NewParseError(path, 0, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Settings{}, glazeerrors.NewParseError(path, extractLine(err), err)
	}

	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// Validate checks every field, including that the default preset exists.
func (s Settings) Validate() error {
	if err := validation.Struct(s); err != nil {
		return err
	}
	if _, err := preset.Get(s.DefaultPreset); err != nil {
		return glazeerrors.NewValidationError("default_preset", err.Error(), err)
	}
	return nil
}

// ClipboardMode returns the configured clipboard backend.
func (s Settings) ClipboardMode() clipboard.Mode {
	return clipboard.Mode(s.Clipboard)
}

// Save writes settings atomically, creating the directory if needed.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DataFile      string    `yaml:"data_file" mapstructure:"data_file"`
	BackupCorrupt bool      `yaml:"backup_corrupt" mapstructure:"backup_corrupt"`
	Log           LogConfig `yaml:"log" mapstructure:"log"`
	UI            UIConfig  `yaml:"ui" mapstructure:"ui"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	File   string `yaml:"file" mapstructure:"file"`
	Format string `yaml:"format" mapstructure:"format"`
}

type UIConfig struct {
	Mode         string `yaml:"mode" mapstructure:"mode"`
	GlamourStyle string `yaml:"glamour_style" mapstructure:"glamour_style"`
}

const (
	ModeTUI  = "tui"
	ModeLine = "line"
)

func DefaultConfig() *Config {
	return &Config{
		DataFile:      "bd_agenda.json",
		BackupCorrupt: true,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		UI: UIConfig{
			Mode:         ModeTUI,
			GlamourStyle: "auto",
		},
	}
}

// Dir is the per-user configuration directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "agenda")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "agenda")
}

// DefaultPath is where `agenda config init` writes when given no path.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads config.yaml from the working directory or the user config
// directory, then applies AGENDA_* environment overrides.
func Load() (*Config, error) {
	return load(viper.New(), ".", Dir())
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v, cfg)

	v.SetEnvPrefix("AGENDA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
		// No config file; defaults and environment only.
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the config file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("data_file", cfg.DataFile)
	v.SetDefault("backup_corrupt", cfg.BackupCorrupt)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("ui.mode", cfg.UI.Mode)
	v.SetDefault("ui.glamour_style", cfg.UI.GlamourStyle)
}

// Validate checks the configuration for errors. Enumerated values are
// matched case-insensitively and stored lower-cased.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("config: data_file is required")
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.UI.Mode = strings.ToLower(strings.TrimSpace(c.UI.Mode))

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid (must be debug, info, warn or error)", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format %q is invalid (must be text or json)", c.Log.Format)
	}
	switch c.UI.Mode {
	case ModeTUI, ModeLine:
	default:
		return fmt.Errorf("config: ui.mode %q is invalid (must be %s or %s)", c.UI.Mode, ModeTUI, ModeLine)
	}
	if c.UI.GlamourStyle == "" {
		c.UI.GlamourStyle = "auto"
	}
	return nil
}

// Package config loads texcomplete settings through viper.
//
// Lookup order for the config file, first hit wins:
//  1. the path given with --config
//  2. ./.texcomplete.yaml
//  3. ~/.config/texcomplete/config.yaml
//
// Every key can be overridden with a TEXCOMPLETE_ environment variable
// (TEXCOMPLETE_SHOW_LINE_NUMS=false) or a bound command-line flag.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/iw2rmb/texcomplete/internal/log"
	"github.com/iw2rmb/texcomplete/latex"
)

// ErrInvalidConfig marks settings that loaded but cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

const (
	EnvPrefix = "TEXCOMPLETE"
	LocalFile = ".texcomplete.yaml"
)

// Config holds all configuration options.
type Config struct {
	// Table is a YAML command/environment table merged over the built-in
	// one. Empty means built-in only.
	Table        string `mapstructure:"table"`
	ShowLineNums bool   `mapstructure:"show_line_nums"`
	TabWidth     int    `mapstructure:"tab_width"`
	HistoryLimit int    `mapstructure:"history_limit"`
	LogFile      string `mapstructure:"log_file"`
	Debug        bool   `mapstructure:"debug"`
}

func Defaults() Config {
	return Config{
		ShowLineNums: true,
		TabWidth:     4,
		HistoryLimit: 1000,
		LogFile:      "texcomplete.log",
	}
}

// Validate reports unusable settings, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if c.TabWidth <= 0 {
		return fmt.Errorf("%w: tab_width must be positive, got %d", ErrInvalidConfig, c.TabWidth)
	}
	if c.Debug && c.LogFile == "" {
		return fmt.Errorf("%w: debug requires log_file", ErrInvalidConfig)
	}
	return nil
}

// SetDefaults registers Defaults() on v so unset keys fall back to them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("table", d.Table)
	v.SetDefault("show_line_nums", d.ShowLineNums)
	v.SetDefault("tab_width", d.TabWidth)
	v.SetDefault("history_limit", d.HistoryLimit)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("debug", d.Debug)
}

// Load reads the config file (explicit path or the standard lookup), the
// environment and any flags already bound to v. A missing config file is
// not an error unless it was named explicitly.
func Load(v *viper.Viper, explicitPath string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	switch {
	case explicitPath != "":
		v.SetConfigFile(explicitPath)
	case fileExists(LocalFile):
		v.SetConfigFile(LocalFile)
	default:
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "texcomplete"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	} else {
		log.Debug(log.CatConfig, "config loaded", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadTable returns the built-in table, extended with the entries of
// c.Table when set.
func (c Config) LoadTable() (latex.Table, error) {
	t := latex.DefaultTable()
	if c.Table == "" {
		return t, nil
	}
	user, err := latex.LoadTableFile(c.Table)
	if err != nil {
		return latex.Table{}, err
	}
	log.Debug(log.CatConfig, "table merged", "path", c.Table,
		"commands", len(user.Commands), "environments", len(user.Environments))
	return t.Merge(user), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

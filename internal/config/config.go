// Package config loads application settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
	UI       UIConfig
	Data     DataConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// LogConfig holds log file settings.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds presentation and navigation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	// SequencedLoads makes a newer route cancel the pending load of the
	// previous one.
	SequencedLoads bool `mapstructure:"sequenced_loads"`
	RememberRoute  bool `mapstructure:"remember_route"`
	// ViewsFile is an optional YAML file overriding view collections.
	ViewsFile string `mapstructure:"views_file"`
}

// DataConfig holds sample data settings.
type DataConfig struct {
	// SeedSales is the number of sample sales generated into an empty
	// catalog.
	SeedSales int `mapstructure:"seed_sales"`
}

// Path returns the config file location. ALMACEN_CONFIG overrides the
// default under $HOME/.config/almacen.
func Path() string {
	if p := os.Getenv("ALMACEN_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "almacen", "config.toml")
}

func defaults(v *viper.Viper) {
	home := os.Getenv("HOME")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "almacen", "almacen.db"))
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "almacen", "almacen.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.sequenced_loads", true)
	v.SetDefault("ui.remember_route", true)
	v.SetDefault("ui.views_file", "")
	v.SetDefault("data.seed_sales", 120)
}

// Load reads configuration from file and env. Env var overrides use prefix
// ALMACEN_, with dots replaced by underscores. A missing file is not an
// error; a malformed one is.
func Load() (Config, error) {
	v := viper.New()
	defaults(v)

	v.SetConfigType("toml")
	if p := os.Getenv("ALMACEN_CONFIG"); p != "" {
		v.SetConfigFile(p)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "almacen"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ALMACEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes cfg to Path, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.sequenced_loads", cfg.UI.SequencedLoads)
	v.Set("ui.remember_route", cfg.UI.RememberRoute)
	v.Set("ui.views_file", cfg.UI.ViewsFile)
	v.Set("data.seed_sales", cfg.Data.SeedSales)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

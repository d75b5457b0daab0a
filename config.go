package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/SamiJones/Threading/terrain"
)

// Config is everything the run command can be told, from defaults, a YAML
// file, THREADING_* environment variables or flags, in increasing priority.
type Config struct {
	Strategy  string  `mapstructure:"strategy" yaml:"strategy"`
	Threads   int     `mapstructure:"threads" yaml:"threads"`
	BatchRows int     `mapstructure:"batch_rows" yaml:"batch_rows"`
	Height    int     `mapstructure:"height" yaml:"height"`
	Width     int     `mapstructure:"width" yaml:"width"`
	Spacing   float64 `mapstructure:"spacing" yaml:"spacing"`
	Input     string  `mapstructure:"input" yaml:"input"`
	NoVis     bool    `mapstructure:"novis" yaml:"novis"`
	LogLevel  string  `mapstructure:"log_level" yaml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		Strategy:  string(terrain.Parallel),
		Threads:   8,
		BatchRows: 7,
		Height:    50000,
		Width:     1000,
		Spacing:   50,
		Input:     "array.txt",
		NoVis:     false,
		LogLevel:  "info",
	}
}

func (c Config) Params() terrain.Params {
	return terrain.Params{
		Strategy:  terrain.Strategy(strings.ToLower(c.Strategy)),
		Threads:   c.Threads,
		BatchRows: c.BatchRows,
		Height:    c.Height,
		Width:     c.Width,
		Spacing:   c.Spacing,
		Input:     c.Input,
	}
}

func setDefaults(v *viper.Viper) {
	d := defaultConfig()
	v.SetDefault("strategy", d.Strategy)
	v.SetDefault("threads", d.Threads)
	v.SetDefault("batch_rows", d.BatchRows)
	v.SetDefault("height", d.Height)
	v.SetDefault("width", d.Width)
	v.SetDefault("spacing", d.Spacing)
	v.SetDefault("input", d.Input)
	v.SetDefault("novis", d.NoVis)
	v.SetDefault("log_level", d.LogLevel)
}

// newViper returns a viper instance with defaults and environment lookups set up.
func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("THREADING")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads the optional YAML file at path and decodes the merged settings.
func loadConfig(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// writeDefaultConfig saves the default configuration as YAML. An existing
// file is left alone unless force is set.
func writeDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	data, err := yaml.Marshal(defaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

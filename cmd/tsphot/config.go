package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config is the tsphot configuration file (~/.config/tsphot/config.yaml).
type Config struct {
	// TicksPerSecond overrides the default timestamp counter rate for
	// hardware other than the stock timer-counter card.
	TicksPerSecond int64 `yaml:"ticks_per_second"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tsphot", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist or doesn't parse; the CLI works without one.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// applyConfig applies config file defaults to command variables when the
// corresponding CLI flag was not explicitly set.
func applyConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.TicksPerSecond != 0 && !c.IsSet("ticks-per-second") {
		ticksPerSecond = cfg.TicksPerSecond
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
	if addr != nil && cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}

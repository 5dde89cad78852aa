package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"

	"github.com/GriffinCanCode/webshell/internal/infrastructure/logging"
)

// Shell modes.
const (
	ModeNative   = "native"
	ModeBrowser  = "browser"
	ModeHeadless = "headless"
)

// Modes lists every accepted --mode value.
var Modes = []string{ModeNative, ModeBrowser, ModeHeadless}

// ErrHelp is returned by Load when -h/--help was requested.
var ErrHelp = pflag.ErrHelp

// Config holds all application configuration.
type Config struct {
	Mode     string         `envconfig:"SHELL_MODE" default:"native" toml:"mode"`
	Window   WindowConfig   `toml:"window"`
	Assets   AssetsConfig   `toml:"assets"`
	Logging  LogConfig      `toml:"logging"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Headless HeadlessConfig `toml:"headless"`
}

// WindowConfig holds native window configuration.
type WindowConfig struct {
	Title  string `envconfig:"SHELL_WINDOW_TITLE" default:"Go Webview Demo" toml:"title"`
	Width  int    `envconfig:"SHELL_WINDOW_WIDTH" default:"1400" toml:"width"`
	Height int    `envconfig:"SHELL_WINDOW_HEIGHT" default:"820" toml:"height"`
	Debug  bool   `envconfig:"SHELL_DEVTOOLS" default:"true" toml:"devtools"`
}

// AssetsConfig holds the loopback asset server configuration.
type AssetsConfig struct {
	Host  string `envconfig:"SHELL_ASSETS_HOST" default:"127.0.0.1" toml:"host"`
	Port  string `envconfig:"SHELL_ASSETS_PORT" default:"0" toml:"port"`
	Entry string `envconfig:"SHELL_ENTRY" default:"index.htm" toml:"entry"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"SHELL_LOG_LEVEL" default:"off" toml:"level"`
	File        string `envconfig:"SHELL_LOG_FILE" toml:"file"`
	Development bool   `envconfig:"SHELL_LOG_DEV" default:"true" toml:"development"`
}

// MetricsConfig holds metrics exposition configuration.
type MetricsConfig struct {
	Enabled bool `envconfig:"SHELL_METRICS" default:"false" toml:"enabled"`
}

// HeadlessConfig holds headless mode configuration.
type HeadlessConfig struct {
	Script string `envconfig:"SHELL_SCRIPT" toml:"script"`
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Mode: ModeNative,
		Window: WindowConfig{
			Title:  "Go Webview Demo",
			Width:  1400,
			Height: 820,
			Debug:  true,
		},
		Assets: AssetsConfig{
			Host:  "127.0.0.1",
			Port:  "0",
			Entry: "index.htm",
		},
		Logging: LogConfig{
			Level:       logging.LevelOff,
			Development: true,
		},
	}
}

// Logger returns the logging configuration in the form the logging package expects.
func (c *Config) Logger() logging.Config {
	return logging.Config{
		Level:       c.Logging.Level,
		File:        c.Logging.File,
		Development: c.Logging.Development,
	}
}

// Validate checks enumerations and bounds.
func (c *Config) Validate() error {
	if _, _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if !slices.Contains(Modes, c.Mode) {
		return fmt.Errorf("unknown mode %q (want one of %s)", c.Mode, strings.Join(Modes, ", "))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Assets.Entry == "" {
		return errors.New("entry document cannot be empty")
	}
	return nil
}

// Load builds configuration from environment variables, an optional TOML
// file and the command line, in increasing order of precedence.
func Load(args []string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := newFlags()
	if err := flags.set.Parse(args); err != nil {
		return nil, err
	}

	if flags.configFile != "" {
		if err := LoadFile(flags.configFile, &cfg); err != nil {
			return nil, err
		}
	}

	flags.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// LoadFile overlays the keys present in a TOML file onto cfg.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Usage returns the flag help text.
func Usage() string {
	return newFlags().set.FlagUsages()
}

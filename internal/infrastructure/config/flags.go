package config

import (
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/GriffinCanCode/webshell/internal/infrastructure/logging"
)

type flagValues struct {
	set *pflag.FlagSet

	logLevel   string
	logFile    string
	configFile string
	mode       string
	script     string
	metrics    bool
}

func newFlags() *flagValues {
	f := &flagValues{
		set: pflag.NewFlagSet("webshell", pflag.ContinueOnError),
	}
	// callers decide how to report errors and help
	f.set.SetOutput(io.Discard)
	f.set.Usage = func() {}

	f.set.StringVarP(&f.logLevel, "log-level", "v", logging.LevelOff,
		"logging level: "+strings.Join(logging.Levels, ", "))
	f.set.StringVarP(&f.logFile, "log-file", "f", "",
		"logging file path -- if not specified print logs to console")
	f.set.StringVarP(&f.configFile, "config", "c", "", "TOML configuration file")
	f.set.StringVarP(&f.mode, "mode", "m", ModeNative, "shell mode: "+strings.Join(Modes, ", "))
	f.set.StringVar(&f.script, "script", "", "script to run in headless mode (default: built-in smoke script)")
	f.set.BoolVar(&f.metrics, "metrics", false, "expose /metrics on the asset server")

	return f
}

// apply copies explicitly set flags onto cfg.
func (f *flagValues) apply(cfg *Config) {
	if f.set.Changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if f.set.Changed("log-file") {
		cfg.Logging.File = f.logFile
	}
	if f.set.Changed("mode") {
		cfg.Mode = f.mode
	}
	if f.set.Changed("script") {
		cfg.Headless.Script = f.script
	}
	if f.set.Changed("metrics") {
		cfg.Metrics.Enabled = f.metrics
	}
}

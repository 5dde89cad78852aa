package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ModeNative, cfg.Mode)

	// Window config
	assert.Equal(t, "Go Webview Demo", cfg.Window.Title)
	assert.Equal(t, 1400, cfg.Window.Width)
	assert.Equal(t, 820, cfg.Window.Height)
	assert.True(t, cfg.Window.Debug)

	// Assets config
	assert.Equal(t, "127.0.0.1", cfg.Assets.Host)
	assert.Equal(t, "0", cfg.Assets.Port)
	assert.Equal(t, "index.htm", cfg.Assets.Entry)

	// Logging config
	assert.Equal(t, "off", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.File)

	assert.False(t, cfg.Metrics.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"SHELL_MODE":          "browser",
		"SHELL_WINDOW_TITLE":  "Demo",
		"SHELL_WINDOW_WIDTH":  "800",
		"SHELL_WINDOW_HEIGHT": "600",
		"SHELL_DEVTOOLS":      "false",
		"SHELL_ASSETS_PORT":   "9000",
		"SHELL_LOG_LEVEL":     "debug",
		"SHELL_LOG_FILE":      "/tmp/shell.log",
		"SHELL_METRICS":       "true",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ModeBrowser, cfg.Mode)
	assert.Equal(t, "Demo", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.False(t, cfg.Window.Debug)
	assert.Equal(t, "9000", cfg.Assets.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/shell.log", cfg.Logging.File)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantLevel string
		wantFile  string
		wantMode  string
	}{
		{
			name:      "short flags",
			args:      []string{"-v", "trace", "-f", "out.log"},
			wantLevel: "trace",
			wantFile:  "out.log",
			wantMode:  ModeNative,
		},
		{
			name:      "long flags",
			args:      []string{"--log-level=warn", "--log-file", "shell.log", "--mode", "headless"},
			wantLevel: "warn",
			wantFile:  "shell.log",
			wantMode:  ModeHeadless,
		},
		{
			name:      "no flags",
			args:      nil,
			wantLevel: "off",
			wantFile:  "",
			wantMode:  ModeNative,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.args)
			require.NoError(t, err)

			assert.Equal(t, tt.wantLevel, cfg.Logging.Level)
			assert.Equal(t, tt.wantFile, cfg.Logging.File)
			assert.Equal(t, tt.wantMode, cfg.Mode)
		})
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("SHELL_LOG_LEVEL", "error")

	cfg, err := Load([]string{"-v", "info"})
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell.toml")
	content := `
mode = "browser"

[window]
title = "From File"
width = 1024

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("SHELL_LOG_LEVEL", "error")

	cfg, err := Load([]string{"--config", path, "--log-level", "trace"})
	require.NoError(t, err)

	assert.Equal(t, ModeBrowser, cfg.Mode)
	assert.Equal(t, "From File", cfg.Window.Title)
	assert.Equal(t, 1024, cfg.Window.Width)
	// Keys absent from the file keep their previous value
	assert.Equal(t, 820, cfg.Window.Height)
	// Flags win over the file
	assert.Equal(t, "trace", cfg.Logging.Level)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := Load([]string{"--config", filepath.Join(t.TempDir(), "missing.toml")})
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("mode = "), 0o644))
	_, err = Load([]string{"--config", path})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unknown level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: true},
		{name: "unknown mode", mutate: func(c *Config) { c.Mode = "tray" }, wantErr: true},
		{name: "zero width", mutate: func(c *Config) { c.Window.Width = 0 }, wantErr: true},
		{name: "negative height", mutate: func(c *Config) { c.Window.Height = -1 }, wantErr: true},
		{name: "empty entry", mutate: func(c *Config) { c.Assets.Entry = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadRejectsInvalidLevel(t *testing.T) {
	_, err := Load([]string{"-v", "loud"})
	assert.Error(t, err)
}

func TestHelp(t *testing.T) {
	_, err := Load([]string{"--help"})
	assert.ErrorIs(t, err, ErrHelp)
	assert.Contains(t, Usage(), "--log-level")
}

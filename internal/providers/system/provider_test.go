package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/webshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webshell/internal/ipc"
)

func newObserved() (*Provider, *observer.ObservedLogs) {
	core, logs := observer.New(logging.TraceLevel)
	return NewProvider(logging.Wrap(zap.New(core))), logs
}

func TestConsoleLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"log", zapcore.InfoLevel},
		{"info", zapcore.InfoLevel},
		{"error", zapcore.ErrorLevel},
		{"warn", zapcore.WarnLevel},
		{"debug", zapcore.DebugLevel},
		{"trace", logging.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			provider, logs := newObserved()

			result, err := provider.Execute(context.Background(), TagConsole, ipc.NewParams(map[string]interface{}{
				"level":   tt.level,
				"message": "hello from the page",
			}))
			require.NoError(t, err)
			assert.Equal(t, ipc.Void(), result)

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.want, entries[0].Level)
			assert.Equal(t, "hello from the page", entries[0].Message)
			assert.Equal(t, "document", entries[0].LoggerName)
		})
	}
}

func TestConsoleUnknownLevel(t *testing.T) {
	provider, logs := newObserved()

	result, err := provider.Execute(context.Background(), TagConsole, ipc.NewParams(map[string]interface{}{
		"level":   "shout",
		"message": "hey",
	}))
	require.NoError(t, err)
	assert.Equal(t, ipc.Void(), result)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "unknown level shout for message hey", entries[0].Message)
}

func TestConsoleParameterErrors(t *testing.T) {
	provider, logs := newObserved()

	_, err := provider.Execute(context.Background(), TagConsole, ipc.NewParams(map[string]interface{}{"level": "log"}))
	assert.True(t, errors.Is(err, ipc.ErrNoParam))

	_, err = provider.Execute(context.Background(), TagConsole, ipc.NewParams(map[string]interface{}{
		"level":   "log",
		"message": 3,
	}))
	assert.True(t, errors.Is(err, ipc.ErrBadParam))

	assert.Zero(t, logs.Len())
}

func TestGetTime(t *testing.T) {
	provider, _ := newObserved()
	zone := time.FixedZone("UTC+2", 2*60*60)
	provider.WithClock(func() time.Time {
		return time.Date(2024, 3, 9, 1, 4, 5, 999, zone)
	})

	result, err := provider.Execute(context.Background(), TagGetTime, ipc.NewParams(map[string]interface{}{"ignored": true}))
	require.NoError(t, err)
	assert.Equal(t, ipc.Text("2024-03-08 23:04:05 UTC"), result)
}

func TestUnknownTool(t *testing.T) {
	provider, _ := newObserved()

	_, err := provider.Execute(context.Background(), "Greet", ipc.NewParams(nil))
	assert.EqualError(t, err, "unknown tool: Greet")
}

func TestDefinition(t *testing.T) {
	provider, _ := newObserved()

	def := provider.Definition()
	assert.Equal(t, "system", def.ID)
	require.Len(t, def.Tools, 2)
	assert.Equal(t, TagConsole, def.Tools[0].ID)
	assert.Equal(t, TagGetTime, def.Tools[1].ID)
}

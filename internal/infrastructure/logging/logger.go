package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TraceLevel sits one step below zap's debug level.
const TraceLevel = zapcore.DebugLevel - 1

// Level names accepted by Config.Level and the --log-level flag.
const (
	LevelOff   = "off"
	LevelError = "error"
	LevelWarn  = "warn"
	LevelInfo  = "info"
	LevelDebug = "debug"
	LevelTrace = "trace"
)

// Levels lists every accepted level name, quietest first.
var Levels = []string{LevelOff, LevelError, LevelWarn, LevelInfo, LevelDebug, LevelTrace}

// Logger wraps zap.Logger with convenience methods.
type Logger struct {
	*zap.Logger
}

// Config defines logger configuration.
type Config struct {
	Level       string // one of Levels
	File        string // empty means stderr
	Development bool
}

// DefaultConfig returns the shell's default: logging disabled.
func DefaultConfig() Config {
	return Config{
		Level:       LevelOff,
		Development: true,
	}
}

// New creates a new logger with the provided configuration.
func New(cfg Config) (*Logger, error) {
	level, off, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if off {
		return NewNop(), nil
	}

	toFile := cfg.File != ""
	output := "stderr"
	if toFile {
		output = cfg.File
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.Development,
		Encoding:          encodingFormat(toFile),
		EncoderConfig:     encoderConfig(toFile, cfg.Development),
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     false,
		DisableStacktrace: true,
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &Logger{Logger: logger}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Wrap adapts an existing zap logger, typically one built on a test observer.
func Wrap(logger *zap.Logger) *Logger {
	return &Logger{Logger: logger}
}

// Named returns a child logger with the given name segment.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name)}
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}

// Trace logs a message at TraceLevel.
func (l *Logger) Trace(msg string, fields ...zap.Field) {
	if ce := l.Check(TraceLevel, msg); ce != nil {
		ce.Write(fields...)
	}
}

// ParseLevel converts a level name to a zap level. The boolean result reports
// the "off" level, for which no core should be built at all.
func ParseLevel(level string) (zapcore.Level, bool, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	switch name {
	case LevelOff, "":
		return zapcore.InvalidLevel, true, nil
	case LevelTrace:
		return TraceLevel, false, nil
	case LevelError, LevelWarn, LevelInfo, LevelDebug:
		var l zapcore.Level
		if err := l.UnmarshalText([]byte(name)); err != nil {
			return zapcore.InfoLevel, false, err
		}
		return l, false, nil
	default:
		return zapcore.InfoLevel, false, fmt.Errorf("unknown log level %q (want one of %s)", level, strings.Join(Levels, ", "))
	}
}

// encodingFormat returns encoding format based on destination.
func encodingFormat(toFile bool) string {
	if toFile {
		return "json"
	}
	return "console"
}

// encoderConfig returns encoder configuration based on destination.
func encoderConfig(toFile, development bool) zapcore.EncoderConfig {
	if !toFile {
		base := zapcore.CapitalLevelEncoder
		if development {
			base = zapcore.CapitalColorLevelEncoder
		}
		return zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			CallerKey:      "C",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "M",
			StacktraceKey:  "S",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    traceAware(base, "TRACE"),
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}
	}

	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    traceAware(zapcore.LowercaseLevelEncoder, "trace"),
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// traceAware names TraceLevel, which zap's stock encoders print as "Level(-2)".
func traceAware(base zapcore.LevelEncoder, name string) zapcore.LevelEncoder {
	return func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		if level == TraceLevel {
			enc.AppendString(name)
			return
		}
		base(level, enc)
	}
}

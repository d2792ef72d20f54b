package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// ConsoleLogger writes log messages through zap.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	sugar *zap.SugaredLogger
}

// NewConsoleLogger creates a ConsoleLogger writing to stderr.
// If verbose is false, Verbose() calls are no-ops.
// If jsonOutput is true, every line is a JSON object.
func NewConsoleLogger(verbose, jsonOutput bool) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stderr, verbose, jsonOutput)
}

// NewConsoleLoggerTo creates a ConsoleLogger writing to w.
func NewConsoleLoggerTo(w io.Writer, verbose, jsonOutput bool) *ConsoleLogger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	var encoder zapcore.Encoder
	if jsonOutput {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			LevelKey:         "level",
			MessageKey:       "msg",
			NameKey:          "logger",
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			EncodeName:       zapcore.FullNameEncoder,
			ConsoleSeparator: " ",
		})
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)
	return &ConsoleLogger{sugar: zap.New(core).Sugar()}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs recoverable problems.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// With returns a child logger carrying the given fields.
func (l *ConsoleLogger) With(keysAndValues ...interface{}) lawcat.Logger {
	return &ConsoleLogger{sugar: l.sugar.With(keysAndValues...)}
}

// Named returns a child logger scoped to a component name.
func (l *ConsoleLogger) Named(name string) *ConsoleLogger {
	return &ConsoleLogger{sugar: l.sugar.Named(name)}
}

// Sync flushes buffered output.
func (l *ConsoleLogger) Sync() error {
	return l.sugar.Sync()
}

var _ lawcat.Logger = (*ConsoleLogger)(nil)

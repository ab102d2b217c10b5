package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger represents a component for writing messages to log.
//
// Logger embeds *zap.Logger and keeps the atomic level it was built with,
// so the level can be changed after construction.
type Logger struct {
	*zap.Logger
	lvl zap.AtomicLevel
}

// Prm groups Logger's parameters.
// Successful passing non-empty parameters to the NewLogger (if returned
// error is nil) guarantees that Logger uses them.
type Prm struct {
	level    zapcore.Level
	encoding string
}

const (
	// EncodingConsole is a human-readable log format.
	EncodingConsole = "console"
	// EncodingJSON is a machine-readable log format.
	EncodingJSON = "json"
)

// SetLevelString sets the minimum logging level. Default is "info".
//
// Returns an error if s is not a string representation of a
// supporting logging level.
//
// Supported strings: "debug", "info", "warn", "error", "dpanic", "panic", "fatal".
func (p *Prm) SetLevelString(s string) error {
	return p.level.UnmarshalText([]byte(s))
}

// SetEncoding sets the output format. Default is "console".
func (p *Prm) SetEncoding(s string) error {
	switch s {
	case "", EncodingConsole, EncodingJSON:
		p.encoding = s
		return nil
	default:
		return fmt.Errorf("unsupported log encoding %q", s)
	}
}

// NewLogger constructs a new zap logger instance. Constructing with nil
// parameters is safe: default values will be used then.
//
// Logger is built from production logging configuration with:
//   - parameterized level;
//   - console or JSON encoding;
//   - ISO8601 time encoding;
//   - stack traces only for fatal records.
func NewLogger(prm *Prm) (*Logger, error) {
	if prm == nil {
		prm = new(Prm)
	}

	lvl := zap.NewAtomicLevelAt(prm.level)

	c := zap.NewProductionConfig()
	c.Level = lvl
	c.Encoding = EncodingConsole
	if prm.encoding != "" {
		c.Encoding = prm.encoding
	}
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := c.Build(
		zap.AddStacktrace(zap.NewAtomicLevelAt(zap.FatalLevel)),
	)
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	return &Logger{Logger: l, lvl: lvl}, nil
}

// SetLevel changes the minimum level of records written by the Logger and
// every logger derived from it.
func (l *Logger) SetLevel(lvl zapcore.Level) {
	l.lvl.SetLevel(lvl)
}

// Level returns current minimum logging level.
func (l *Logger) Level() zapcore.Level {
	return l.lvl.Level()
}

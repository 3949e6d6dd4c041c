// Package logging provides categorized file-based logging for docgen.
// Logs are written under the configured log directory with one file per
// category. When logging is disabled (the default), every category
// returns a no-op logger, so call sites never guard their log lines.
package logging

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/subsystem.
type Category string

const (
	CategoryStore    Category = "store"    // Database operations
	CategoryToken    Category = "token"    // Placeholder scanning
	CategoryResolve  Category = "resolve"  // Resolution passes and orchestration
	CategoryDynamic  Category = "dynamic"  // Response-bank lookups
	CategoryDocument Category = "document" // .docx read/replace/write
	CategoryCLI      Category = "cli"      // Command entry points
)

// Options controls logger construction.
type Options struct {
	// Enabled turns file logging on. When false all categories no-op.
	Enabled bool
	// Dir is the directory log files are written to.
	Dir string
	// Level is the minimum level: debug, info, warn, error.
	Level string
}

var (
	mu      sync.Mutex
	opts    Options
	loggers = map[Category]*zap.SugaredLogger{}
)

// Configure sets global logging options. Already-created category loggers
// are discarded and rebuilt on next use.
func Configure(o Options) {
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		_ = l.Sync()
	}
	opts = o
	loggers = map[Category]*zap.SugaredLogger{}
}

// Get returns the logger for a category, creating it on first use.
func Get(c Category) *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := loggers[c]; ok {
		return l
	}
	l := build(c)
	loggers[c] = l
	return l
}

func build(c Category) *zap.SugaredLogger {
	if !opts.Enabled || opts.Dir == "" {
		return zap.NewNop().Sugar()
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return zap.NewNop().Sugar()
	}
	f, err := os.OpenFile(
		filepath.Join(opts.Dir, string(c)+".log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644,
	)
	if err != nil {
		return zap.NewNop().Sugar()
	}

	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.Set(opts.Level); err != nil {
			level = zapcore.InfoLevel
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(f),
		level,
	)
	return zap.New(core).Sugar().Named(string(c))
}

// Sync flushes all category loggers. Called on process exit.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		_ = l.Sync()
	}
}

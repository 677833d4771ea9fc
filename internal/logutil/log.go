// Package logutil owns the process wide zap logger used by the collections
// (for contract violations) and by the randomloop command.
package logutil

import (
	"os"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig describes where and how verbosely to log.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// File, when set, receives the log through a rotating writer instead
	// of stderr.
	File string
	// MaxSizeMB is the size at which File is rotated. Zero means 100.
	MaxSizeMB int
	// MaxBackups is the number of rotated files kept. Zero keeps them all.
	MaxBackups int
	// JSON selects the JSON encoder; the console encoder otherwise.
	JSON bool
}

var bgLogger atomic.Pointer[zap.Logger]

func init() {
	bgLogger.Store(zap.NewNop())
}

// BgLogger returns the current background logger. It never returns nil;
// until InitLogger or SetLogger is called it discards everything it is
// given except that Panic still panics.
func BgLogger() *zap.Logger {
	return bgLogger.Load()
}

// SetLogger replaces the background logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	bgLogger.Store(l)
}

// InitLogger builds a logger from cfg and installs it as the background
// logger.
func InitLogger(cfg *LogConfig) (*zap.Logger, error) {
	var level = zap.NewAtomicLevel()
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, errors.Wrapf(err, "invalid log level %q", cfg.Level)
		}
	}

	var encCfg = zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if cfg.JSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	var ws zapcore.WriteSyncer
	if cfg.File != "" {
		var maxSize = cfg.MaxSizeMB
		if maxSize == 0 {
			maxSize = 100
		}
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSize,
			MaxBackups: cfg.MaxBackups,
		})
	} else {
		ws = zapcore.Lock(os.Stderr)
	}

	var l = zap.New(zapcore.NewCore(enc, ws, level), zap.AddCaller())
	SetLogger(l)
	return l, nil
}

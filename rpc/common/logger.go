package common

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/lni/dragonboat/v4/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerNames lists every package logger of the application
var LoggerNames = []string{
	"rpc",
	"transport/http",
	"store",
	"document",
	"preload",
}

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// dPasteLogger implements the ILogger interface on top of a zap sugared logger
type dPasteLogger struct {
	level logger.LogLevel
	sugar *zap.SugaredLogger
}

func (l *dPasteLogger) SetLevel(level logger.LogLevel) {
	l.level = level
}

func (l *dPasteLogger) Debugf(format string, args ...interface{}) {
	if l.level >= logger.DEBUG {
		l.sugar.Debugf(format, args...)
	}
}

func (l *dPasteLogger) Infof(format string, args ...interface{}) {
	if l.level >= logger.INFO {
		l.sugar.Infof(format, args...)
	}
}

func (l *dPasteLogger) Warningf(format string, args ...interface{}) {
	if l.level >= logger.WARNING {
		l.sugar.Warnf(format, args...)
	}
}

func (l *dPasteLogger) Errorf(format string, args ...interface{}) {
	if l.level >= logger.ERROR {
		l.sugar.Errorf(format, args...)
	}
}

func (l *dPasteLogger) Panicf(format string, args ...interface{}) {
	l.sugar.Panicf(format, args...)
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

var (
	sinkOnce sync.Once
	sink     *zap.Logger
)

// newSink builds the zap core all package loggers write to. Level filtering
// happens per package logger, so the core accepts everything.
func newSink(out zapcore.WriteSyncer) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), out, zapcore.DebugLevel)
	return zap.New(core)
}

// CreateLogger implements the dragonboat logger.Factory
func CreateLogger(pkgName string) logger.ILogger {
	sinkOnce.Do(func() {
		sink = newSink(zapcore.Lock(os.Stdout))
	})
	return createLoggerWithSink(sink, pkgName)
}

func createLoggerWithSink(base *zap.Logger, pkgName string) *dPasteLogger {
	return &dPasteLogger{
		level: logger.INFO,
		sugar: base.Named(pkgName).Sugar(),
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// parseLogLevel converts a string level to logger.LogLevel
func parseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DEBUG, nil
	case "info":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return logger.INFO, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// InitLoggers installs the zap backed factory and sets every package logger
// to the configured level. An invalid level falls back to info, Validate
// rejects it before this is reached.
func InitLoggers(config ServerConfig) {
	logger.SetLoggerFactory(CreateLogger)

	level, _ := parseLogLevel(config.LogLevel)
	for _, name := range LoggerNames {
		logger.GetLogger(name).SetLevel(level)
	}
}

// Sync flushes buffered log entries, call it before the process exits
func Sync() {
	if sink != nil {
		_ = sink.Sync()
	}
}

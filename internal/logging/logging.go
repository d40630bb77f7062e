// Package logging provides the application logger. Logging is only written
// when debug mode is enabled; records go to ~/.lessonplan/debug.log, which is
// truncated on each launch. The terminal belongs to the TUI, so nothing is
// ever written to stdout or stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LogFileName is the name of the debug log file.
	LogFileName = "debug.log"
	// LogDirName is the directory under the user's home holding the log file.
	LogDirName = ".lessonplan"
)

var (
	mu      sync.RWMutex
	logger  = zap.NewNop()
	logFile *os.File
	enabled bool

	// getLogPath is a function variable to allow overriding in tests.
	getLogPath = defaultGetLogPath
)

// Init configures the package logger. When enable is false every call is a
// no-op.
func Init(enable bool) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	enabled = enable
	if !enable {
		logger = zap.NewNop()
		return nil
	}

	logPath, err := getLogPath()
	if err != nil {
		return fmt.Errorf("determine log path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(f), zap.DebugLevel)
	logger = zap.New(core)
	logger.Info("debug log started", zap.String("at", time.Now().Format(time.RFC3339)))

	return nil
}

// Close flushes and closes the log file. Safe to call when logging is disabled.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	logger = zap.NewNop()
	enabled = false
}

func closeLocked() {
	if logFile != nil {
		_ = logger.Sync()
		_ = logFile.Close()
		logFile = nil
	}
}

// L returns the current logger. It never returns nil.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Named returns a child logger for a component.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Enabled returns whether debug logging is on.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

func defaultGetLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, LogDirName, LogFileName), nil
}

// GetLogPath returns the path of the debug log file.
func GetLogPath() (string, error) {
	return getLogPath()
}

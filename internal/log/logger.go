package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger provides centralized logging for the plugin and its host
type Logger struct {
	logger *slog.Logger
	level  *slog.LevelVar
	file   *os.File
}

var globalLogger *Logger

// init creates the global logger with console output by default
func init() {
	globalLogger = consoleLogger(os.Stderr)
}

// consoleLogger logs to w at info level with the same format as log files
func consoleLogger(w io.Writer) *Logger {
	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)
	return newLogger(w, level)
}

// SetFileOutput configures the logger to append to the specified file
func SetFileOutput(filename string) error {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	closeFile()
	globalLogger = newLogger(file, globalLogger.level)
	globalLogger.file = file
	return nil
}

// SetOutput sends log records to w. The previous log file, if any, is closed.
func SetOutput(w io.Writer) {
	closeFile()
	globalLogger = newLogger(w, globalLogger.level)
}

// Level returns the current minimum level
func Level() slog.Level {
	return globalLogger.level.Level()
}

// SetLevel changes the minimum level; unknown names leave the level unchanged.
func SetLevel(name string) {
	switch strings.ToLower(name) {
	case "debug":
		globalLogger.level.Set(slog.LevelDebug)
	case "info":
		globalLogger.level.Set(slog.LevelInfo)
	case "warn", "warning":
		globalLogger.level.Set(slog.LevelWarn)
	case "error":
		globalLogger.level.Set(slog.LevelError)
	}
}

func newLogger(w io.Writer, level *slog.LevelVar) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   slog.TimeKey,
					Value: slog.StringValue(a.Value.Time().Format("2006/01/02 15:04:05.000000")),
				}
			}
			return a
		},
	})
	return &Logger{
		logger: slog.New(handler),
		level:  level,
	}
}

// Standard logging methods
func Debug(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Debug(msg, args...)
	}
}

func Info(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Info(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Warn(msg, args...)
	}
}

func Error(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Error(msg, args...)
	}
}

// Close closes the log file
func Close() {
	closeFile()
}

func closeFile() {
	if globalLogger != nil && globalLogger.file != nil && globalLogger.file != os.Stderr {
		globalLogger.file.Close()
		globalLogger.file = nil
	}
}

// Package log wraps slog with a rotating JSON log file. A nil *Logger is valid: debug and
// info are dropped, warnings and errors go to the default slog logger.
package log

import(
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*slog.Logger
	LogFile string
	Start   time.Time
}

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug": return slog.LevelDebug, nil
	case "", "info": return slog.LevelInfo, nil
	case "warn": return slog.LevelWarn, nil
	case "error": return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%s: invalid log level", level)
}

// {{{ New

// New logs JSON into dir/obstacle.slog, rotated at 64MB and kept for two weeks. An empty
// dir logs to stderr instead.
func New(level string, dir string) *Logger {
	lvl,err := parseLevel(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}

	var w io.Writer = os.Stderr
	logFile := ""
	if dir != "" {
		lj := &lumberjack.Logger{
			Filename: filepath.Join(dir, "obstacle.slog"),
			MaxSize:  64, // MB
			MaxAge:   14,
			Compress: true,
		}
		w = lj
		logFile = lj.Filename
	}

	return NewWithWriter(w, lvl, logFile)
}

func NewWithWriter(w io.Writer, lvl slog.Level, logFile string) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	l := &Logger{
		Logger:  slog.New(h),
		LogFile: logFile,
		Start:   time.Now(),
	}
	l.Info("Hello logging", slog.Time("start", l.Start))
	return l
}

// }}}

func (l *Logger) Debug(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(context.TODO(), slog.LevelDebug) {
		l.Logger.Debug(msg, args...)
	}
}

func (l *Logger) Debugf(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(context.TODO(), slog.LevelDebug) {
		l.Logger.Debug(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Info(msg string, args ...any) {
	if l != nil {
		l.Logger.Info(msg, args...)
	}
}

func (l *Logger) Infof(msg string, args ...any) {
	if l != nil {
		l.Logger.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Warn(msg string, args ...any) {
	if l == nil {
		slog.Warn(msg, args...)
	} else {
		l.Logger.Warn(msg, args...)
	}
}

func (l *Logger) Warnf(msg string, args ...any) {
	l.Warn(fmt.Sprintf(msg, args...))
}

func (l *Logger) Error(msg string, args ...any) {
	if l == nil {
		slog.Error(msg, args...)
	} else {
		l.Logger.Error(msg, args...)
	}
}

func (l *Logger) Errorf(msg string, args ...any) {
	l.Error(fmt.Sprintf(msg, args...))
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil { return nil }
	return &Logger{
		Logger:  l.Logger.With(args...),
		LogFile: l.LogFile,
		Start:   l.Start,
	}
}

package logger

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"
)

//go:generate mockgen -source=logger.go -destination=mock_logger.go -package=logger

// Level представляет уровень логирования
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String возвращает строковое представление уровня логирования
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает уровень из конфигурации. Неизвестное значение дает LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

type logger struct {
	mu     sync.Mutex
	out    io.Writer
	level  Level
	prefix string
	exit   func(code int)
}

func NewLogger(out io.Writer, level Level, prefix string) Logger {
	return &logger{
		out:    out,
		level:  level,
		prefix: prefix,
		exit:   os.Exit,
	}
}

// Debugf логирует сообщение с уровнем Debug
func (l *logger) Debugf(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Infof логирует сообщение с уровнем Info
func (l *logger) Infof(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warnf логирует сообщение с уровнем Warn
func (l *logger) Warnf(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Errorf логирует сообщение с уровнем Error
func (l *logger) Errorf(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Fatalf логирует сообщение с уровнем Fatal и завершает программу
func (l *logger) Fatalf(format string, args ...interface{}) {
	l.log(LevelFatal, format, args...)
	l.exit(1)
}

// DefaultLogger возвращает логгер по умолчанию
func DefaultLogger() Logger {
	return NewLogger(os.Stdout, LevelInfo, "LinkingLink")
}

func (l *logger) log(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "???"
		line = 0
	}

	msg := fmt.Sprintf(
		"%s [%s] %s:%d %s: %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		level.String(),
		path.Base(file),
		line,
		l.prefix,
		fmt.Sprintf(format, args...),
	)

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprint(l.out, msg)
}

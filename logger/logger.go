package logger

import (
	"fmt"
	"log"

	"go.uber.org/zap"
)

// Func is alias of logger function.
type Func = func(string, ...interface{})

// Logger is the interface of a leveled logger.
type Logger interface {
	// Debugf prints debug level log.
	Debugf(format string, args ...interface{})
	// Infof prints info level log.
	Infof(format string, args ...interface{})
	// Warnf prints warn level log.
	Warnf(format string, args ...interface{})
	// Errorf prints error level log.
	Errorf(format string, args ...interface{})
}

// Level is level of logger.
type Level int8

func (s Level) String() string {
	switch s {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

const (
	// LevelDebug is DEBUG level.
	LevelDebug Level = iota
	// LevelInfo is INFO level.
	LevelInfo
	// LevelWarn is WARN level.
	LevelWarn
	// LevelError is ERROR level.
	LevelError
)

var (
	lvl        = LevelInfo
	i, d, w, e = log.Printf, log.Printf, log.Printf, log.Printf
	prefix     = true
)

// SetLevel set global log level.
// Available levels are `LevelDebug`, `LevelInfo`, `LevelWarn` and `LevelError`.
func SetLevel(level Level) {
	lvl = level
}

// DisablePrefix disable print level prefix.
func DisablePrefix() {
	prefix = false
}

// EnablePrefix enable print level prefix.
func EnablePrefix() {
	prefix = true
}

// GetLevel returns current logger level.
func GetLevel() Level {
	return lvl
}

// SetFunc set logger func for custom level.
func SetFunc(level Level, fn Func) {
	if fn == nil {
		return
	}
	switch level {
	case LevelDebug:
		d = fn
	case LevelInfo:
		i = fn
	case LevelWarn:
		w = fn
	case LevelError:
		e = fn
	}
}

// SetLogger routes every level to a custom Logger.
// A nil Logger restores the standard library log.Printf.
func SetLogger(logger Logger) {
	if logger == nil {
		i, d, w, e = log.Printf, log.Printf, log.Printf, log.Printf
		return
	}
	d = logger.Debugf
	i = logger.Infof
	w = logger.Warnf
	e = logger.Errorf
}

// UseZap routes every level to a sugared zap logger and disables the level prefix,
// since zap prints levels itself.
func UseZap(l *zap.Logger) {
	if l == nil {
		SetLogger(nil)
		return
	}
	SetLogger(l.WithOptions(zap.AddCallerSkip(2)).Sugar())
	DisablePrefix()
}

// IsDebugEnabled returns true if debug level is open.
func IsDebugEnabled() bool {
	return lvl <= LevelDebug
}

// Debugf prints debug level log.
func Debugf(format string, v ...interface{}) {
	if lvl > LevelDebug {
		return
	}
	if prefix {
		d(fmt.Sprintf("[%s] %s", LevelDebug, format), v...)
	} else {
		d(format, v...)
	}
}

// Infof prints info level log.
func Infof(format string, v ...interface{}) {
	if lvl > LevelInfo {
		return
	}
	if prefix {
		i(fmt.Sprintf("[%s] %s", LevelInfo, format), v...)
	} else {
		i(format, v...)
	}
}

// Warnf prints warn level log.
func Warnf(format string, v ...interface{}) {
	if lvl > LevelWarn {
		return
	}
	if prefix {
		w(fmt.Sprintf("[%s] %s", LevelWarn, format), v...)
	} else {
		w(format, v...)
	}
}

// Errorf prints error level log.
func Errorf(format string, v ...interface{}) {
	if prefix {
		e(fmt.Sprintf("[%s] %s", LevelError, format), v...)
	} else {
		e(format, v...)
	}
}

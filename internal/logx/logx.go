// Package logx is a small leveled logger with named sections.
package logx

import (
	"fmt"
	"strings"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	NOTICE
	WARN
	ERROR
	CRITICAL
	LevelCount
)

var levelNames = [LevelCount]string{
	DEBUG:    "debug",
	INFO:     "info",
	NOTICE:   "notice",
	WARN:     "warn",
	ERROR:    "error",
	CRITICAL: "critical",
}

func (l Level) String() string {
	if l >= 0 && l < LevelCount {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel accepts the names produced by Level.String, plus "warning".
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		return WARN, nil
	}
	for l, n := range levelNames {
		if n == name {
			return Level(l), nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// LoggerX writes messages tagged with a section.
type LoggerX interface {
	Level() Level
	LogPrintX(section string, lvl Level, v ...interface{})
	LogPrintfX(section string, lvl Level, fmt string, v ...interface{})
}

// Logger writes messages for a single section.
type Logger interface {
	Level() Level
	LogPrint(lvl Level, v ...interface{})
	LogPrintf(lvl Level, fmt string, v ...interface{})
}

var _ Logger = LogToX{}

// LogToX binds a LoggerX to one section.
type LogToX struct {
	section string
	logx    LoggerX
}

func NewLogToX(logx LoggerX, section string) LogToX {
	return LogToX{section: section, logx: logx}
}

func (l LogToX) Level() Level {
	return l.logx.Level()
}
func (l LogToX) LogPrint(lvl Level, v ...interface{}) {
	l.logx.LogPrintX(l.section, lvl, v...)
}
func (l LogToX) LogPrintf(lvl Level, fmt string, v ...interface{}) {
	l.logx.LogPrintfX(l.section, lvl, fmt, v...)
}

type nopLogger struct{}

func (nopLogger) Level() Level                                    { return LevelCount }
func (nopLogger) LogPrint(lvl Level, v ...interface{})            {}
func (nopLogger) LogPrintf(lvl Level, f string, v ...interface{}) {}

// Nop returns a logger that drops everything.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns l, or Nop when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop()
	}
	return l
}

package logx

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
)

type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorOn
	ColorOff
)

// ParseColorMode parses "auto", "on"/"always" and "off"/"never".
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "on", "always":
		return ColorOn, nil
	case "off", "never":
		return ColorOff, nil
	}
	return 0, fmt.Errorf("unknown color mode %q", s)
}

var levelStrings = [2][LevelCount]string{
	{
		DEBUG:    "   DEBUG",
		INFO:     "    INFO",
		NOTICE:   "  NOTICE",
		WARN:     " WARNING",
		ERROR:    "   ERROR",
		CRITICAL: "CRITICAL",
	},
	{
		DEBUG:    "\033[37m   DEBUG\033[0m",
		INFO:     "\033[34m    INFO\033[0m",
		NOTICE:   "\033[32m  NOTICE\033[0m",
		WARN:     "\033[33m WARNING\033[0m",
		ERROR:    "\033[31m   ERROR\033[0m",
		CRITICAL: "\033[35mCRITICAL\033[0m",
	},
}

var sectionFormats = [2]string{
	" [%s] ",
	" [\033[36m%s\033[0m] ",
}

var _ LoggerX = (*StreamLogger)(nil)

// StreamLogger writes timestamped lines to a stream.
type StreamLogger struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
	color int
	now   func() time.Time
}

// NewStreamLogger logs to f. With ColorAuto, colors are used when f is a
// terminal, through go-colorable so that Windows consoles render them.
func NewStreamLogger(f *os.File, level Level, mode ColorMode) *StreamLogger {
	l := &StreamLogger{w: f, level: level, now: time.Now}
	fd := f.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if mode == ColorOn || (mode == ColorAuto && tty) {
		l.w = colorable.NewColorable(f)
		l.color = 1
	}
	return l
}

// NewWriterLogger logs uncolored lines to w.
func NewWriterLogger(w io.Writer, level Level) *StreamLogger {
	return &StreamLogger{w: w, level: level, now: time.Now}
}

func (l *StreamLogger) Level() Level {
	return l.level
}

func (l *StreamLogger) LogPrintX(section string, lvl Level, v ...interface{}) {
	if lvl < l.level {
		return
	}
	l.write(section, lvl, fmt.Sprint(v...))
}

func (l *StreamLogger) LogPrintfX(section string, lvl Level, format string, v ...interface{}) {
	if lvl < l.level {
		return
	}
	l.write(section, lvl, fmt.Sprintf(format, v...))
}

func (l *StreamLogger) write(section string, lvl Level, msg string) {
	if lvl < 0 || lvl >= LevelCount {
		lvl = CRITICAL
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.w, "%s %s"+sectionFormats[l.color]+"%s\n",
		l.now().Format("2006-01-02 15:04:05"), levelStrings[l.color][lvl], section, msg)
}

// Package wfllog is the structured log sink gated by the
// logging_enabled/log_level configuration options. It is
// deliberately a small, stdlib-only wrapper over io.Writer rather than
// a third-party logging library: nothing in this codebase's own
// dependency set pulls in a logging library, so this stays on fmt/io
// the same way diagnostic rendering does.
package wfllog

import (
	"fmt"
	"io"
	"time"

	"github.com/logbie/wfl/internal/config"
)

// Level mirrors config.LogLevel's four severities, ordered so a
// numeric comparison decides whether a call is at or above the
// configured threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func levelFromConfig(l config.LogLevel) Level {
	switch l {
	case config.LogDebug:
		return LevelDebug
	case config.LogInfo:
		return LevelInfo
	case config.LogError:
		return LevelError
	default:
		return LevelWarn
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Logger writes level-gated, timestamped lines to Out. A disabled
// Logger (Enabled false) is a complete no-op on every call, the same
// "one flag away from true zero-cost" shape as interp.TraceSink's
// nil-Tracer check.
type Logger struct {
	Out     io.Writer
	Level   Level
	Enabled bool
	now     func() time.Time
}

// New builds a Logger from the resolved configuration options.
func New(out io.Writer, opts config.Options) *Logger {
	return &Logger{
		Out:     out,
		Level:   levelFromConfig(opts.LogLevel),
		Enabled: opts.LoggingEnabled,
		now:     time.Now,
	}
}

func (l *Logger) log(level Level, format string, args ...any) {
	if l == nil || !l.Enabled || level < l.Level {
		return
	}
	ts := time.Time{}
	if l.now != nil {
		ts = l.now()
	}
	fmt.Fprintf(l.Out, "%s [%s] %s\n", ts.Format(time.RFC3339), level, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, format, args...) }

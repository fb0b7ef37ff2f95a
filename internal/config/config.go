// Package config loads the option table lists under
// "Configuration inputs" from an optional YAML file, producing an
// immutable Options value threaded explicitly into pkg/wfl.Engine and
// wfllog.Logger ("no hidden singleton" design note) rather than read
// from a package-level global. CLI flags are not merged into Options.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/logbie/wfl/internal/diag"
)

// LogLevel is one of the four severities `log_level` option
// recognizes.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// Options is the recognized configuration surface from table,
// verbatim: timeout_seconds, logging_enabled, debug_report_enabled,
// log_level, execution_logging, max_line_length, indent_size.
type Options struct {
	TimeoutSeconds     int
	LoggingEnabled     bool
	DebugReportEnabled bool
	LogLevel           LogLevel
	ExecutionLogging   bool
	MaxLineLength      int
	IndentSize         int
}

// Defaults returns the option table's baseline values: no timeout, no
// logging, warn-level threshold, and style thresholds wide enough not
// to fire on ordinary code.
func Defaults() Options {
	return Options{
		TimeoutSeconds:     0,
		LoggingEnabled:     false,
		DebugReportEnabled: false,
		LogLevel:           LogWarn,
		ExecutionLogging:   false,
		MaxLineLength:      120,
		IndentSize:         4,
	}
}

// Load reads a YAML option file, overlaying recognized keys onto
// Defaults(). An unrecognized key produces a Warning diagnostic in bag
// rather than a load error ("Unrecognized options produce a
// warning, not an error"); a key of the wrong type likewise downgrades
// to a warning and keeps the default value rather than aborting the
// whole load. A missing file is not an error either: it simply yields
// Defaults().
func Load(path string, bag *diag.Bag) (Options, error) {
	opts := Defaults()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return opts, nil
	}
	if err != nil {
		return opts, fmt.Errorf("reading config %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return opts, fmt.Errorf("parsing config %s: %w", path, err)
	}

	for key, v := range raw {
		switch key {
		case "timeout_seconds":
			if n, ok := asInt(v); ok && n >= 0 {
				opts.TimeoutSeconds = n
			} else {
				warnBadValue(bag, key, v)
			}
		case "logging_enabled":
			if b, ok := v.(bool); ok {
				opts.LoggingEnabled = b
			} else {
				warnBadValue(bag, key, v)
			}
		case "debug_report_enabled":
			if b, ok := v.(bool); ok {
				opts.DebugReportEnabled = b
			} else {
				warnBadValue(bag, key, v)
			}
		case "log_level":
			if s, ok := v.(string); ok {
				if lvl, ok := parseLogLevel(s); ok {
					opts.LogLevel = lvl
				} else {
					warnBadValue(bag, key, v)
				}
			} else {
				warnBadValue(bag, key, v)
			}
		case "execution_logging":
			if b, ok := v.(bool); ok {
				opts.ExecutionLogging = b
			} else {
				warnBadValue(bag, key, v)
			}
		case "max_line_length":
			if n, ok := asInt(v); ok && n > 0 {
				opts.MaxLineLength = n
			} else {
				warnBadValue(bag, key, v)
			}
		case "indent_size":
			if n, ok := asInt(v); ok && n > 0 {
				opts.IndentSize = n
			} else {
				warnBadValue(bag, key, v)
			}
		default:
			if bag != nil {
				bag.Add(diag.Diagnostic{
					Severity: diag.Warning,
					Kind:     diag.KindSemantic,
					Message:  fmt.Sprintf("unrecognized configuration option %q", key),
				})
			}
		}
	}
	return opts, nil
}

func warnBadValue(bag *diag.Bag, key string, v any) {
	if bag == nil {
		return
	}
	bag.Add(diag.Diagnostic{
		Severity: diag.Warning,
		Kind:     diag.KindSemantic,
		Message:  fmt.Sprintf("configuration option %q has an invalid value %v, keeping the default", key, v),
	})
}

func parseLogLevel(s string) (LogLevel, bool) {
	switch LogLevel(s) {
	case LogDebug, LogInfo, LogWarn, LogError:
		return LogLevel(s), true
	default:
		return "", false
	}
}

// asInt accepts the numeric shapes goccy/go-yaml produces for a YAML
// scalar (int, int64, uint64, float64) and normalizes to int.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// ABOUTME: slog construction for the CLI: level and format parsing, stderr output
// ABOUTME: Shared LevelVar lets --log-level and config change verbosity after construction

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Format selects the handler used by New.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var level = new(slog.LevelVar)

func init() {
	level.Set(LevelInfo)
}

// SetLevel sets the level shared by every logger built with New.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// GetLevel returns the current shared level.
func GetLevel() slog.Level {
	return level.Level()
}

// ParseLevel maps debug, info, warn (or warning) and error to slog levels.
// The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// ParseFormat accepts text or json; the empty string is text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q", s)
	}
}

// Options configures New.
type Options struct {
	Level  slog.Level
	Format Format
	// Writer defaults to os.Stderr so log lines never mix with command output.
	Writer io.Writer
}

// New sets the shared level and returns a logger writing in the chosen format.
func New(opts Options) *slog.Logger {
	SetLevel(opts.Level)

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if opts.Format == FormatJSON {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	return slog.New(h)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Package logger provides the diagnostic logger behind --enable-log: a
// log/slog handler that writes one colored, human-readable line per record.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// New returns a logger writing to stderr. Verbose loggers emit debug
// records, which is where every external command is logged; otherwise only
// warnings and errors are shown.
func New(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(NewPrettyHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(NewPrettyHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// PrettyHandler formats records as "LEVEL message key=value ..."
type PrettyHandler struct {
	out   io.Writer
	mu    *sync.Mutex
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a PrettyHandler writing to out
func NewPrettyHandler(out io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{out: out, mu: &sync.Mutex{}, level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled reports whether the handler emits records at level
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes a single record
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String()
	switch {
	case r.Level >= slog.LevelError:
		level = color.RedString(level)
	case r.Level >= slog.LevelWarn:
		level = color.YellowString(level)
	case r.Level >= slog.LevelInfo:
		level = color.BlueString(level)
	default:
		level = color.MagentaString(level)
	}

	fields := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		fields = append(fields, formatAttr(a.Key, a.Value))
	}
	var recordFields []string
	r.Attrs(func(a slog.Attr) bool {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		recordFields = append(recordFields, formatAttr(key, a.Value))
		return true
	})
	sort.Strings(recordFields)
	fields = append(fields, recordFields...)

	line := fmt.Sprintf("%s %s", level, color.CyanString(r.Message))
	if len(fields) > 0 {
		line += " " + color.WhiteString(strings.Join(fields, " "))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.out, line)
	return err
}

func formatAttr(key string, v slog.Value) string {
	value := v.Resolve().String()
	if strings.ContainsAny(value, " \t\n\"") {
		value = fmt.Sprintf("%q", value)
	}
	return key + "=" + value
}

// WithAttrs returns a handler that adds attrs to every record
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

// WithGroup returns a handler that prefixes subsequent keys with name
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	clone.group = name
	return &clone
}

// Package logging provides the leveled console logger used for the sampled
// record stream and for diagnostics.
package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const timeFormat = "2006-01-02 15:04:05.000"

// Handler is a slog.Handler writing one line per record:
//
//	2024-01-01 10:00:00.000 WARNING  message key=value
//
// Level tags are coloured when the writer is a terminal.
type Handler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	tags   map[slog.Level]string
	attrs  string
	groups []string
	now    func() time.Time
}

// NewHandler returns a Handler writing to w at or above level.
func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.LevelDebug
	}
	return &Handler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
		tags:  levelTags(lipgloss.NewRenderer(w)),
		now:   time.Now,
	}
}

func levelTags(r *lipgloss.Renderer) map[slog.Level]string {
	pad := func(s string) string { return fmt.Sprintf("%-7s", s) }
	return map[slog.Level]string{
		slog.LevelDebug: r.NewStyle().Foreground(lipgloss.Color("240")).Render(pad("DEBUG")),
		slog.LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("42")).Render(pad("INFO")),
		slog.LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("220")).Render(pad("WARNING")),
		slog.LevelError: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).Render(pad("ERROR")),
	}
}

func (h *Handler) tag(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return h.tags[slog.LevelDebug]
	case level < slog.LevelWarn:
		return h.tags[slog.LevelInfo]
	case level < slog.LevelError:
		return h.tags[slog.LevelWarn]
	default:
		return h.tags[slog.LevelError]
	}
}

// Enabled reports whether level is at or above the configured minimum.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes r.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	ts := r.Time
	if ts.IsZero() {
		ts = h.now()
	}
	buf.WriteString(ts.Format(timeFormat))
	buf.WriteByte(' ')
	buf.WriteString(h.tag(r.Level))
	buf.WriteString("  ")
	buf.WriteString(r.Message)
	buf.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&buf, h.groups, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// WithAttrs returns a handler that appends attrs to every line.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	var buf bytes.Buffer
	buf.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&buf, h.groups, a)
	}
	h2.attrs = buf.String()
	return &h2
}

// WithGroup returns a handler that qualifies subsequent attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(append([]string(nil), h.groups...), name)
	return &h2
}

func appendAttr(buf *bytes.Buffer, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		nested := groups
		if a.Key != "" {
			nested = append(append([]string(nil), groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			appendAttr(buf, nested, ga)
		}
		return
	}

	buf.WriteByte(' ')
	if len(groups) > 0 {
		buf.WriteString(strings.Join(groups, "."))
		buf.WriteByte('.')
	}
	buf.WriteString(a.Key)
	buf.WriteByte('=')
	val := a.Value.String()
	if strings.ContainsAny(val, " \t\"=") {
		fmt.Fprintf(buf, "%q", val)
	} else {
		buf.WriteString(val)
	}
}

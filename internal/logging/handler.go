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

	"github.com/fatih/color"
)

// Keys that name a (context, type) pair. When both are logged at the top
// level they are rendered as a "[Context Type]" tag in front of the message.
const (
	PairContextKey = "context"
	PairTypeKey    = "type"
)

// palette holds the colors of a Handler. Nil colors write plain text.
type palette struct {
	time  *color.Color
	trace *color.Color
	debug *color.Color
	info  *color.Color
	warn  *color.Color
	error *color.Color
	key   *color.Color
	pair  *color.Color
}

func newPalette() *palette {
	return &palette{
		time:  color.New(color.FgHiBlack),
		trace: color.New(color.FgHiBlack),
		debug: color.New(color.FgMagenta),
		info:  color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		error: color.New(color.FgRed, color.Bold),
		key:   color.New(color.FgCyan),
		pair:  color.New(color.FgBlue),
	}
}

func (p *palette) level(l slog.Level) *color.Color {
	switch {
	case l >= slog.LevelError:
		return p.error
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

func paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

// Handler is a slog.Handler for human readers on a terminal. Each record is
// one line: time, level, optional pair tag, message and key=value
// attributes. Secret-looking values are masked.
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	colors *palette

	// attrs are pre-qualified with the groups open when they were added.
	attrs  []slog.Attr
	groups []string
}

// NewHandler creates a Handler writing to out. Colors are used only when
// out supports them.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	h := &Handler{
		opts:   *opts,
		out:    out,
		mu:     &sync.Mutex{},
		colors: &palette{},
	}
	if SupportsColor(out) {
		h.colors = newPalette()
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats r into a single line and writes it.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, qualify(h.groups, a)...)
		return true
	})

	c := h.colors
	var buf bytes.Buffer
	if !r.Time.IsZero() {
		buf.WriteString(paint(c.time, r.Time.Format(time.Kitchen)))
		buf.WriteByte(' ')
	}
	fmt.Fprintf(&buf, "%-5s ", paint(c.level(r.Level), levelName(r.Level)))

	attrs, tag := pairTag(attrs)
	if tag != "" {
		buf.WriteString(paint(c.pair, tag))
		buf.WriteByte(' ')
	}
	buf.WriteString(r.Message)

	for _, a := range attrs {
		buf.WriteByte(' ')
		buf.WriteString(paint(c.key, a.Key))
		buf.WriteByte('=')
		buf.WriteString(formatValue(a))
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

// WithAttrs returns a new Handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	newH := *h
	newH.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	newH.attrs = append(newH.attrs, h.attrs...)
	for _, a := range attrs {
		newH.attrs = append(newH.attrs, qualify(h.groups, a)...)
	}
	return &newH
}

// WithGroup returns a new Handler that prefixes later keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.groups = append(append([]string(nil), h.groups...), name)
	return &newH
}

// qualify flattens a (possibly group-valued) attribute into dotted keys.
func qualify(groups []string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		inner := a.Value.Group()
		nested := groups
		if a.Key != "" {
			nested = append(append([]string(nil), groups...), a.Key)
		}
		var out []slog.Attr
		for _, g := range inner {
			out = append(out, qualify(nested, g)...)
		}
		return out
	}
	if a.Equal(slog.Attr{}) {
		return nil
	}
	if len(groups) > 0 {
		a.Key = strings.Join(groups, ".") + "." + a.Key
	}
	return []slog.Attr{a}
}

// pairTag removes top-level context and type attributes and returns them as
// a "[Context Type]" tag. Both must be present.
func pairTag(attrs []slog.Attr) ([]slog.Attr, string) {
	var ctxName, typeName string
	for _, a := range attrs {
		switch a.Key {
		case PairContextKey:
			ctxName = a.Value.String()
		case PairTypeKey:
			typeName = a.Value.String()
		}
	}
	if ctxName == "" || typeName == "" {
		return attrs, ""
	}

	rest := attrs[:0:0]
	for _, a := range attrs {
		if a.Key != PairContextKey && a.Key != PairTypeKey {
			rest = append(rest, a)
		}
	}
	return rest, "[" + ctxName + " " + typeName + "]"
}

func formatValue(a slog.Attr) string {
	var s string
	if a.Value.Kind() == slog.KindString {
		s = a.Value.String()
	} else {
		s = fmt.Sprint(a.Value.Any())
	}

	if ShouldMask(a.Key[strings.LastIndex(a.Key, ".")+1:]) || ContainsTokenPrefix(s) {
		return MaskValue(s)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

func levelName(l slog.Level) string {
	if l < slog.LevelDebug {
		return "TRACE"
	}
	return l.String()
}

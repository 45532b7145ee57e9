package actions

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sethvargo/go-githubactions"
)

// Handler is a slog.Handler that writes records as workflow commands.
// Debug records become ::debug:: lines, which the runner only shows when
// step debug logging is on.
type Handler struct {
	action *githubactions.Action
	attrs  []slog.Attr
	prefix string
}

// NewHandler creates a handler writing to action
func NewHandler(action *githubactions.Action) *Handler {
	return &Handler{action: action}
}

// Enabled implements slog.Handler. Filtering by level is left to the runner.
func (h *Handler) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.prefix, a)
		return true
	})

	msg := b.String()
	switch {
	case r.Level >= slog.LevelError:
		h.action.Errorf("%s", msg)
	case r.Level >= slog.LevelWarn:
		h.action.Warningf("%s", msg)
	case r.Level >= slog.LevelInfo:
		h.action.Infof("%s", msg)
	default:
		h.action.Debugf("%s", msg)
	}
	return nil
}

// WithAttrs implements slog.Handler
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

// WithGroup implements slog.Handler
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			writeAttr(b, groupPrefix, ga)
		}
		return
	}

	fmt.Fprintf(b, " %s%s=%v", prefix, a.Key, a.Value.Any())
}

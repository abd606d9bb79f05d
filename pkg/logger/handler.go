package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const initialBufferCapacity = 256

// WriterHandler writes log records as single plain-text lines:
//
//	2006-01-02T15:04:05-07:00 LEVEL msg key=value
//
// Values containing whitespace or quotes are quoted.
type WriterHandler struct {
	writer io.Writer
	mu     sync.Mutex
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewFileHandler creates a handler appending to the log file at path.
func NewFileHandler(path string, level Level) (*WriterHandler, error) {
	//nolint:gosec // log path is chosen by the harness user, not untrusted input
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermissions)
	if err != nil {
		return nil, err
	}

	return &WriterHandler{
		writer: file,
		level:  level.ToSlogLevel(),
	}, nil
}

// NewWriterHandler creates a handler writing to w.
func NewWriterHandler(w io.Writer, level Level) *WriterHandler {
	return &WriterHandler{
		writer: w,
		level:  level.ToSlogLevel(),
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *WriterHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the log record.
func (h *WriterHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := make([]byte, 0, initialBufferCapacity)

	buf = append(buf, r.Time.Local().Format("2006-01-02T15:04:05-07:00")...)
	buf = append(buf, ' ')
	buf = append(buf, r.Level.String()...)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	for _, a := range h.attrs {
		buf = h.appendAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		buf = h.appendAttr(buf, a)

		return true
	})

	buf = append(buf, '\n')

	_, err := h.writer.Write(buf)

	return err
}

// WithAttrs returns a new handler with the given attributes pre-set.
//
//nolint:ireturn // required by the slog.Handler interface
func (h *WriterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	combined := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	combined = append(combined, h.attrs...)

	for _, a := range attrs {
		combined = append(combined, h.qualify(a))
	}

	return &WriterHandler{
		writer: h.writer,
		level:  h.level,
		attrs:  combined,
		groups: h.groups,
	}
}

// WithGroup returns a new handler that prefixes attribute keys with name.
//
//nolint:ireturn // required by the slog.Handler interface
func (h *WriterHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	groups = append(groups, name)

	return &WriterHandler{
		writer: h.writer,
		level:  h.level,
		attrs:  h.attrs,
		groups: groups,
	}
}

// qualify applies the current group prefix to an attribute key.
func (h *WriterHandler) qualify(a slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return a
	}

	a.Key = strings.Join(h.groups, ".") + "." + a.Key

	return a
}

// appendAttr formats one key=value pair and appends it to buf.
func (h *WriterHandler) appendAttr(buf []byte, a slog.Attr) []byte {
	a = h.qualify(a)

	value := fmt.Sprintf("%v", a.Value.Any())

	buf = append(buf, ' ')
	buf = append(buf, a.Key...)
	buf = append(buf, '=')

	if strings.ContainsAny(value, " \t\n\"") {
		buf = append(buf, quote(value)...)
	} else {
		buf = append(buf, value...)
	}

	return buf
}

// quote escapes and quotes a string value.
func quote(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")

	return "\"" + s + "\""
}

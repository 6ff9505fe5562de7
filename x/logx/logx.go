// Package logx is the logging seam shared by firmware and host builds.
// *slog.Logger satisfies Logger on the host; Printer is the MCU variant that
// avoids fmt and reflection.
package logx

import (
	"io"
	"strconv"
	"sync"
	"time"
)

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Level int8

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

func (l Level) String() string {
	switch {
	case l <= LevelDebug:
		return "debug"
	case l <= LevelInfo:
		return "info"
	case l <= LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

// Nop discards everything.
type Nop struct{}

func (Nop) Debug(string, ...any) {}
func (Nop) Info(string, ...any)  {}
func (Nop) Warn(string, ...any)  {}
func (Nop) Error(string, ...any) {}

// OrNop returns l, or Nop if l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop{}
	}
	return l
}

// Printer writes one "level: msg k=v ..." line per record. Printers derived
// with With share the parent's writer lock.
type Printer struct {
	mu    *sync.Mutex
	w     io.Writer
	min   Level
	attrs []any
	buf   []byte
}

func NewPrinter(w io.Writer, min Level) *Printer {
	return &Printer{mu: new(sync.Mutex), w: w, min: min}
}

// With returns a Printer that prefixes every record with args.
func (p *Printer) With(args ...any) *Printer {
	return &Printer{
		mu:    p.mu,
		w:     p.w,
		min:   p.min,
		attrs: append(append([]any(nil), p.attrs...), args...),
	}
}

func (p *Printer) Debug(msg string, args ...any) { p.log(LevelDebug, msg, args) }
func (p *Printer) Info(msg string, args ...any)  { p.log(LevelInfo, msg, args) }
func (p *Printer) Warn(msg string, args ...any)  { p.log(LevelWarn, msg, args) }
func (p *Printer) Error(msg string, args ...any) { p.log(LevelError, msg, args) }

func (p *Printer) log(l Level, msg string, args []any) {
	if l < p.min {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	b := p.buf[:0]
	b = append(b, l.String()...)
	b = append(b, ": "...)
	b = append(b, msg...)
	b = appendPairs(b, p.attrs)
	b = appendPairs(b, args)
	b = append(b, '\n')
	p.buf = b
	_, _ = p.w.Write(b)
}

func appendPairs(b []byte, args []any) []byte {
	for i := 0; i < len(args); i += 2 {
		b = append(b, ' ')
		if i+1 >= len(args) {
			b = append(b, "!BADKEY="...)
			return appendValue(b, args[i])
		}
		b = appendValue(b, args[i])
		b = append(b, '=')
		b = appendValue(b, args[i+1])
	}
	return b
}

func appendValue(b []byte, v any) []byte {
	switch x := v.(type) {
	case string:
		return append(b, x...)
	case int:
		return strconv.AppendInt(b, int64(x), 10)
	case int64:
		return strconv.AppendInt(b, x, 10)
	case uint32:
		return strconv.AppendUint(b, uint64(x), 10)
	case uint64:
		return strconv.AppendUint(b, x, 10)
	case bool:
		return strconv.AppendBool(b, x)
	case time.Duration:
		return append(b, x.String()...)
	case error:
		return append(b, x.Error()...)
	case interface{ String() string }:
		return append(b, x.String()...)
	case nil:
		return append(b, "<nil>"...)
	default:
		return append(b, '?')
	}
}

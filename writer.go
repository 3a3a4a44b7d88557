package jdoc

import (
	"io"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// Writer emits JSON tokens to an underlying io.Writer. It keeps no state of
// its own: callers are responsible for delimiters between elements. Errors
// from the sink are returned unchanged.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) raw(s string) error {
	_, err := io.WriteString(w.w, s)
	return err
}

func (w *Writer) WriteStartObject() error { return w.raw("{") }

func (w *Writer) WriteEndObject() error { return w.raw("}") }

func (w *Writer) WriteStartArray() error { return w.raw("[") }

func (w *Writer) WriteEndArray() error { return w.raw("]") }

func (w *Writer) WriteValueDelimiter() error { return w.raw(",") }

// WritePropertyName writes an escaped name followed by a colon.
func (w *Writer) WritePropertyName(name string) error {
	if err := w.writeEscaped(name, '"'); err != nil {
		return err
	}
	return w.raw(":")
}

func (w *Writer) WriteNull() error { return w.raw("null") }

func (w *Writer) WriteInt(i int64) error {
	return w.raw(strconv.FormatInt(i, 10))
}

// WriteFloat writes f so that it never reads back as an integer: integral
// values get a ".0" suffix unless they are printed in exponent form.
func (w *Writer) WriteFloat(f float64) error {
	return w.raw(formatFloat(f))
}

func (w *Writer) WriteBool(b bool) error {
	if b {
		return w.raw("true")
	}
	return w.raw("false")
}

func (w *Writer) WriteString(s string) error {
	return w.writeEscaped(s, '"')
}

// WriteTime writes t as a quoted ISO-8601 string. The date is always present;
// the time of day, fraction and zone offset only when they are non-zero.
func (w *Writer) WriteTime(t time.Time) error {
	return w.raw(`"` + formatTime(t) + `"`)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	e := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(e, "e")
	n, _ := strconv.Atoi(exp)
	if n >= 15 || n < -4 {
		sign := "+"
		if n < 0 {
			sign = "-"
			n = -n
		}
		digits := strconv.Itoa(n)
		if len(digits) < 2 {
			digits = "0" + digits
		}
		return mant + "E" + sign + digits
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func needsEscape(r rune, delim rune) bool {
	return r < 0x20 || r >= 0x80 || r == '\\' || r == delim
}

// writeEscaped writes s between delim quotes. Unescaped runs are copied in
// one write each.
func (w *Writer) writeEscaped(s string, delim rune) error {
	q := string(delim)
	if err := w.raw(q); err != nil {
		return err
	}
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !needsEscape(r, delim) {
			i += size
			continue
		}
		if start < i {
			if err := w.raw(s[start:i]); err != nil {
				return err
			}
		}
		if err := w.raw(escapeRune(r)); err != nil {
			return err
		}
		i += size
		start = i
	}
	if start < len(s) {
		if err := w.raw(s[start:]); err != nil {
			return err
		}
	}
	return w.raw(q)
}

func escapeRune(r rune) string {
	switch r {
	case '\\':
		return `\\`
	case '"':
		return `\"`
	case '\'':
		return `\'`
	case '\b':
		return `\b`
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\f':
		return `\f`
	case '\r':
		return `\r`
	}
	if r > 0xffff {
		hi, lo := utf16.EncodeRune(r)
		return unicodeEscape(hi) + unicodeEscape(lo)
	}
	return unicodeEscape(r)
}

func unicodeEscape(r rune) string {
	return string([]byte{'\\', 'u',
		hexDigits[r>>12&0xf],
		hexDigits[r>>8&0xf],
		hexDigits[r>>4&0xf],
		hexDigits[r&0xf],
	})
}

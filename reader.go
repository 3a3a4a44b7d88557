package jdoc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// Token is the kind of the token a Reader is positioned on.
type Token int

const (
	TokenNone Token = iota
	TokenStartObject
	TokenEndObject
	TokenStartArray
	TokenEndArray
	TokenPairName
	TokenValue
)

func (t Token) String() string {
	switch t {
	case TokenStartObject:
		return "start of object"
	case TokenEndObject:
		return "end of object"
	case TokenStartArray:
		return "start of array"
	case TokenEndArray:
		return "end of array"
	case TokenPairName:
		return "pair name"
	case TokenValue:
		return "value"
	default:
		return "none"
	}
}

type scope uint8

const (
	scopeRoot scope = iota
	scopeObject
	scopeArray
)

// Reader is a pull tokenizer over a character stream. The scope stack decides
// what ',', ':', '}' and ']' mean at each point. A Reader is used for one
// parse and is not safe for concurrent use.
type Reader struct {
	src  io.RuneReader
	opts readerOptions

	stack []scope
	tok   Token
	val   Value

	pending    rune
	hasPending bool
	offset     int64

	buf []byte
}

// NewReader returns a Reader consuming src. Sources that are not already an
// io.RuneReader are wrapped in a bufio.Reader.
func NewReader(src io.Reader, opts ...ReaderOption) *Reader {
	rr, ok := src.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(src)
	}
	return &Reader{
		src:   rr,
		opts:  newReaderOptions(opts),
		stack: []scope{scopeRoot},
	}
}

// Token returns the token produced by the last call to Advance.
func (r *Reader) Token() Token { return r.tok }

// Value returns the payload of the current pair name or value token.
func (r *Reader) Value() Value { return r.val }

// Depth returns how many objects and arrays are currently open.
func (r *Reader) Depth() int { return len(r.stack) - 1 }

// Offset returns the number of characters consumed so far.
func (r *Reader) Offset() int64 { return r.offset }

// Advance moves to the next token. It returns false only when the input is
// exhausted outside of any object or array.
func (r *Reader) Advance() (bool, error) {
	c, ok, err := r.next()
	if err != nil {
		return false, err
	}
	if !ok {
		if len(r.stack) > 1 {
			return false, r.fail(ErrUnexpectedEnd)
		}
		r.set(TokenNone, Value{})
		return false, nil
	}

	switch r.scope() {
	case scopeObject:
		if r.tok != TokenPairName {
			if err := r.advanceObject(c); err != nil {
				return false, err
			}
			return true, nil
		}
	case scopeArray:
		switch c {
		case ']':
			if err := r.end(TokenEndArray, scopeArray); err != nil {
				return false, err
			}
			return true, nil
		case '}':
			return false, r.end(TokenEndObject, scopeObject)
		case ',':
			if r.tok == TokenStartArray {
				return false, r.fail(ErrInvalidArrayChar)
			}
			if c, err = r.mustNext(); err != nil {
				return false, err
			}
		default:
			if r.tok != TokenStartArray {
				return false, r.fail(ErrInvalidArrayChar)
			}
		}
	}

	if err := r.readTerm(c); err != nil {
		return false, err
	}
	return true, nil
}

// Member materializes the current token. Values and pair names are returned
// directly; at the start of an object or array the whole nested member is
// read.
func (r *Reader) Member() (Member, error) {
	switch r.tok {
	case TokenValue, TokenPairName:
		return r.val, nil
	case TokenStartObject:
		o, err := ReadObject(r)
		if err != nil {
			return nil, err
		}
		return o, nil
	case TokenStartArray:
		a, err := ReadArray(r)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
	return nil, fmt.Errorf("reader is positioned on %s, not on a member", r.tok)
}

func (r *Reader) advanceObject(c rune) error {
	switch c {
	case '}':
		return r.end(TokenEndObject, scopeObject)
	case ']':
		return r.end(TokenEndArray, scopeArray)
	case ',':
		if r.tok == TokenStartObject {
			return r.fail(ErrInvalidObjectChar)
		}
		c, err := r.mustNext()
		if err != nil {
			return err
		}
		if !isQuote(c) {
			return r.fail(ErrInvalidObjectChar)
		}
		return r.readPairName(c)
	case '"', '\'':
		if r.tok != TokenStartObject {
			return r.fail(ErrInvalidObjectChar)
		}
		return r.readPairName(c)
	}
	return r.fail(ErrInvalidObjectChar)
}

func (r *Reader) readPairName(delim rune) error {
	name, err := r.scanString(delim)
	if err != nil {
		return err
	}
	c, err := r.mustNext()
	if err != nil {
		return err
	}
	if c != ':' {
		return r.fail(ErrInvalidPairName)
	}
	r.set(TokenPairName, String(name))
	return nil
}

// readTerm reads one JSON term starting at c.
func (r *Reader) readTerm(c rune) error {
	switch {
	case c == '{':
		return r.begin(TokenStartObject, scopeObject)
	case c == '[':
		return r.begin(TokenStartArray, scopeArray)
	case c == '}' && r.scope() != scopeObject:
		return r.end(TokenEndObject, scopeObject)
	case c == ']' && r.scope() != scopeArray:
		return r.end(TokenEndArray, scopeArray)
	case isQuote(c):
		s, err := r.scanString(c)
		if err != nil {
			return err
		}
		r.set(TokenValue, ParseString(s))
		return nil
	case c == 't' || c == 'T':
		return r.readLiteral(c, "true", Bool(true), ErrInvalidBoolean)
	case c == 'f' || c == 'F':
		return r.readLiteral(c, "false", Bool(false), ErrInvalidBoolean)
	case c == 'n' || c == 'N':
		return r.readLiteral(c, "null", Null(), ErrInvalidNull)
	case c == '-' || isDigit(c):
		v, err := r.scanNumber(c)
		if err != nil {
			return err
		}
		r.set(TokenValue, v)
		return nil
	}

	switch r.scope() {
	case scopeArray:
		return r.fail(ErrInvalidArrayChar)
	case scopeObject:
		return r.fail(ErrInvalidObjectChar)
	}
	return r.fail(ErrInvalidChar)
}

// readLiteral matches word case-insensitively; first has already been read.
func (r *Reader) readLiteral(first rune, word string, v Value, invalid *FormatError) error {
	match := lowerASCII(first) == rune(word[0])
	for i := 1; i < len(word); i++ {
		c, err := r.mustRead()
		if err != nil {
			return err
		}
		if lowerASCII(c) != rune(word[i]) {
			match = false
		}
	}
	if !match {
		return r.fail(invalid)
	}
	r.set(TokenValue, v)
	return nil
}

// scanString reads up to the closing delim and returns the unescaped text.
// Surrogate pairs written as two \u escapes are combined; unpaired
// surrogates become U+FFFD.
func (r *Reader) scanString(delim rune) (string, error) {
	r.buf = r.buf[:0]
	hi := rune(-1)
	flush := func() {
		if hi >= 0 {
			r.buf = utf8.AppendRune(r.buf, utf8.RuneError)
			hi = -1
		}
	}

	for {
		c, err := r.mustRead()
		if err != nil {
			return "", err
		}
		if c == delim {
			flush()
			return string(r.buf), nil
		}
		if c != '\\' {
			flush()
			r.buf = utf8.AppendRune(r.buf, c)
			continue
		}

		u, err := r.unescape()
		if err != nil {
			return "", err
		}
		if !utf16.IsSurrogate(u) {
			flush()
			r.buf = utf8.AppendRune(r.buf, u)
			continue
		}
		if hi >= 0 {
			if d := utf16.DecodeRune(hi, u); d != utf8.RuneError {
				r.buf = utf8.AppendRune(r.buf, d)
				hi = -1
				continue
			}
		}
		flush()
		if u < 0xdc00 {
			hi = u
			continue
		}
		r.buf = utf8.AppendRune(r.buf, utf8.RuneError)
	}
}

// unescape decodes the character following a backslash.
func (r *Reader) unescape() (rune, error) {
	c, err := r.mustRead()
	if err != nil {
		return 0, err
	}
	switch c {
	case '\\', '"', '\'', '/':
		return c, nil
	case 'b':
		return '\b', nil
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'f':
		return '\f', nil
	case 'r':
		return '\r', nil
	case 'u':
		var u rune
		for range 4 {
			h, err := r.mustRead()
			if err != nil {
				return 0, err
			}
			d, ok := hexValue(h)
			if !ok {
				return 0, r.fail(ErrInvalidEscape)
			}
			u = u<<4 | d
		}
		return u, nil
	}
	return 0, r.fail(ErrInvalidEscape)
}

// scanNumber lexes a number starting at first. It reads one character past
// the number and pushes it back. Integers without fraction or exponent are
// accumulated exactly into an int64; other numbers are converted from the
// collected lexeme.
func (r *Reader) scanNumber(first rune) (Value, error) {
	r.buf = append(r.buf[:0], byte(first))

	neg := first == '-'
	var (
		mant     uint64
		overflow bool
		frac     bool
		exp      bool
		expSign  bool
		expNeg   bool
		digits   = !neg // the current part has at least one digit

		fracVal float64
		places  int
		expVal  int
	)
	if !neg {
		mant = uint64(first - '0')
	}
	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}

scan:
	for {
		c, ok, err := r.read()
		if err != nil {
			return Value{}, err
		}
		if !ok {
			if len(r.stack) > 1 {
				return Value{}, r.fail(ErrUnexpectedEnd)
			}
			break
		}

		switch {
		case isDigit(c):
			digits = true
			d := uint64(c - '0')
			switch {
			case exp:
				if expVal < 100000 {
					expVal = expVal*10 + int(d)
				}
			case frac:
				fracVal = fracVal*10 + float64(d)
				places++
			case mant > (limit-d)/10:
				overflow = true
			default:
				mant = mant*10 + d
			}
		case c == '.':
			if frac || exp || !digits {
				return Value{}, r.fail(ErrInvalidNumber)
			}
			frac, digits = true, false
		case c == 'e' || c == 'E':
			if exp || !digits {
				return Value{}, r.fail(ErrInvalidNumber)
			}
			exp, digits = true, false
		case c == '+' || c == '-':
			if !exp || expSign || digits {
				return Value{}, r.fail(ErrInvalidNumber)
			}
			expSign, expNeg = true, c == '-'
		default:
			r.unread(c)
			break scan
		}
		r.buf = append(r.buf, byte(c))
	}

	if !digits {
		return Value{}, r.fail(ErrInvalidNumber)
	}

	if !frac && !exp && !overflow {
		if neg {
			return Int(int64(-mant)), nil
		}
		return Int(int64(mant)), nil
	}

	if r.opts.legacyNumbers && !overflow {
		v := float64(mant)
		if places > 0 {
			v += fracVal / (float64(places) * 10)
		}
		if expNeg {
			expVal = -expVal
		}
		if v != 0 {
			v *= math.Pow10(expVal)
		}
		if neg {
			v = -v
		}
		if math.IsInf(v, 0) {
			return Value{}, r.fail(ErrInvalidNumber)
		}
		return Float(v), nil
	}

	f, err := strconv.ParseFloat(string(r.buf), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{}, r.fail(ErrInvalidNumber)
	}
	if math.IsInf(f, 0) {
		return Value{}, r.fail(ErrInvalidNumber)
	}
	return Float(f), nil
}

func (r *Reader) begin(tok Token, s scope) error {
	if r.opts.maxDepth > 0 && r.Depth() >= r.opts.maxDepth {
		return r.fail(ErrMaxDepth)
	}
	r.stack = append(r.stack, s)
	r.set(tok, Value{})
	return nil
}

// end closes the innermost scope. A closer that does not match the open
// scope, or one at the top level, fails with ErrInvalidFormat.
func (r *Reader) end(tok Token, want scope) error {
	if len(r.stack) == 1 {
		return r.fail(ErrInvalidFormat)
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	if top != want {
		return r.fail(ErrInvalidFormat)
	}
	r.set(tok, Value{})
	return nil
}

func (r *Reader) set(tok Token, v Value) {
	r.tok = tok
	r.val = v
}

func (r *Reader) scope() scope {
	return r.stack[len(r.stack)-1]
}

// expectEnd fails unless only whitespace remains.
func (r *Reader) expectEnd() error {
	_, ok, err := r.next()
	if err != nil {
		return err
	}
	if ok {
		return r.fail(ErrTrailingData)
	}
	return nil
}

func (r *Reader) fail(e *FormatError) error {
	return &FormatError{Msg: e.Msg, Offset: r.offset}
}

// read returns the next character; ok is false at end of input.
func (r *Reader) read() (c rune, ok bool, err error) {
	if r.hasPending {
		r.hasPending = false
		r.offset++
		return r.pending, true, nil
	}
	c, _, err = r.src.ReadRune()
	if errors.Is(err, io.EOF) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read input at offset %d: %w", r.offset, err)
	}
	r.offset++
	return c, true, nil
}

func (r *Reader) unread(c rune) {
	r.pending, r.hasPending = c, true
	r.offset--
}

func (r *Reader) mustRead() (rune, error) {
	c, ok, err := r.read()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, r.fail(ErrUnexpectedEnd)
	}
	return c, nil
}

// next returns the next character that is not insignificant whitespace.
func (r *Reader) next() (rune, bool, error) {
	for {
		c, ok, err := r.read()
		if err != nil || !ok {
			return 0, ok, err
		}
		if !isSpace(c) {
			return c, true, nil
		}
	}
}

func (r *Reader) mustNext() (rune, error) {
	c, ok, err := r.next()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, r.fail(ErrUnexpectedEnd)
	}
	return c, nil
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isQuote(c rune) bool { return c == '"' || c == '\'' }

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func lowerASCII(c rune) rune {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func hexValue(c rune) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

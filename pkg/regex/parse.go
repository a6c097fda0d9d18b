package regex

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDelimiter = errors.New("invalid delimiter")
	ErrUnsupportedFlag  = errors.New("unsupported flag")
	ErrUnknownEngine    = errors.New("unknown engine")
)

// flags understood by PCRE after the closing delimiter
const knownFlags = "imsxuADSUXJn"

var bracketPairs = map[byte]byte{
	'(': ')',
	'[': ']',
	'{': '}',
	'<': '>',
}

// Parse splits a delimiter-wrapped expression such as `/^[0-9]+$/i` into body and flags.
func Parse(raw string) (Source, error) {
	if len(raw) < 2 {
		return Source{}, fmt.Errorf("%w: %q is too short", ErrInvalidDelimiter, raw)
	}

	open := raw[0]
	if !isDelimiter(open) {
		return Source{}, fmt.Errorf("%w: %q cannot start with %q", ErrInvalidDelimiter, raw, open)
	}

	closing := open
	if c, ok := bracketPairs[open]; ok {
		closing = c
	}

	end := -1
	for i := len(raw) - 1; i > 0; i-- {
		if raw[i] == closing && !isEscaped(raw, i) {
			end = i
			break
		}
	}
	if end < 1 {
		return Source{}, fmt.Errorf("%w: %q has no closing %q", ErrInvalidDelimiter, raw, closing)
	}

	flags := raw[end+1:]
	for i := 0; i < len(flags); i++ {
		if strings.IndexByte(knownFlags, flags[i]) < 0 {
			return Source{}, fmt.Errorf("%w: %q in %q", ErrUnsupportedFlag, flags[i], raw)
		}
	}

	return Source{
		Raw:   raw,
		Open:  open,
		Close: closing,
		Body:  raw[1:end],
		Flags: flags,
	}, nil
}

// Unescaped returns the body with escaped delimiters replaced by the bare delimiter.
// Delimiters that are regex metacharacters keep their escape, as do all other escape sequences.
func (s Source) Unescaped() string {
	var b strings.Builder
	b.Grow(len(s.Body))

	for i := 0; i < len(s.Body); i++ {
		c := s.Body[i]
		if c == '\\' && i+1 < len(s.Body) {
			next := s.Body[i+1]
			if (next == s.Open || next == s.Close) && !isMetachar(next) {
				b.WriteByte(next)
			} else {
				b.WriteByte(c)
				b.WriteByte(next)
			}
			i++
			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}

func (s Source) HasFlag(flag byte) bool {
	return strings.IndexByte(s.Flags, flag) >= 0
}

func (s Source) String() string {
	return s.Raw
}

// IsEscaped reports whether the byte at i is preceded by an odd number of backslashes.
func IsEscaped(text string, i int) bool {
	return isEscaped(text, i)
}

func isEscaped(text string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && text[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// metacharacters whose escape changes the meaning of an expression
const metachars = `^$.|?*+()[]{}`

func isMetachar(c byte) bool {
	return strings.IndexByte(metachars, c) >= 0
}

func isDelimiter(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return false
	case c == '\\', c == ' ', c == '\t', c == '\n', c == '\r', c == '\v', c == '\f':
		return false
	case c >= 0x80:
		return false
	}
	return true
}

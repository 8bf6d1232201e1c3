package byteparse

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Encoding identifies the text codec used when a cursor selection is
// decoded to a string.
type Encoding int

const (
	UTF8 Encoding = iota
	ASCII
)

func (e Encoding) String() string {
	switch e {
	case ASCII:
		return "ascii"
	default:
		return "utf-8"
	}
}

func (e Encoding) encode(s string) ([]byte, error) {
	if e == ASCII {
		for i := 0; i < len(s); i++ {
			if s[i] >= 0x80 {
				return nil, fmt.Errorf("cannot encode %q as ascii", s)
			}
		}
	}
	return []byte(s), nil
}

func (e Encoding) decode(b []byte) (string, error) {
	switch e {
	case ASCII:
		for _, c := range b {
			if c >= 0x80 {
				return "", fmt.Errorf("invalid ascii byte 0x%02x", c)
			}
		}
	default:
		if !utf8.Valid(b) {
			return "", fmt.Errorf("invalid utf-8 sequence in %q", b)
		}
	}
	return string(b), nil
}

// Cursor is an immutable view over a shared byte buffer. begin marks the
// start of the current selection, end the read head; the selection is
// data[begin:end]. Every operation returns a new Cursor sharing the same
// buffer. The parser core never writes to the buffer, but the buffer may
// be a shared mapping that other code mutates between parses.
//
// While parsing, usually only end moves. Lexing parsers first find where
// a token begins and ends, then use a transfer function on the selection
// to build a value; see Flush.
type Cursor struct {
	data  []byte
	begin int
	end   int
	enc   Encoding
}

// FromBytes constructs a Cursor over data with begin and end at 0.
func FromBytes(data []byte) Cursor {
	return Cursor{data: data}
}

// WithEncoding returns a cursor whose selections decode with e.
func (c Cursor) WithEncoding(e Encoding) Cursor {
	c.enc = e
	return c
}

// HasMore reports whether the read head sits before the end of the
// buffer.
func (c Cursor) HasMore() bool { return c.end < len(c.data) }

// Len is the length of the current selection.
func (c Cursor) Len() int { return c.end - c.begin }

// Begin returns the selection start offset.
func (c Cursor) Begin() int { return c.begin }

// End returns the read head offset.
func (c Cursor) End() int { return c.end }

// Content is the byte content of the current selection.
func (c Cursor) Content() []byte { return c.data[c.begin:c.end] }

// At is the next byte, at the read head. The caller must check HasMore
// first.
func (c Cursor) At() byte { return c.data[c.end] }

// Text decodes the current selection using the cursor's encoding.
func (c Cursor) Text() (string, error) {
	return c.enc.decode(c.Content())
}

// LookAhead returns the next n bytes. The result is shorter than n when
// fewer bytes remain.
func (c Cursor) LookAhead(n int) []byte {
	if c.end+n > len(c.data) {
		n = len(c.data) - c.end
	}
	return c.data[c.end : c.end+n]
}

// Advance returns a cursor with the read head moved n bytes forward.
func (c Cursor) Advance(n int) Cursor {
	c.end += n
	return c
}

// Flush returns a cursor with begin moved up to end, discarding the
// current selection.
func (c Cursor) Flush() Cursor {
	c.begin = c.end
	return c
}

// Find returns a cursor whose read head sits at the first occurrence of
// token at or after the current read head. The search starts at the read
// head, never earlier in the buffer. ok is false when the token does not
// occur, in which case the cursor is returned unchanged; callers must
// treat that as a parse failure rather than rely on a sentinel offset.
func (c Cursor) Find(token []byte) (_ Cursor, ok bool) {
	i := bytes.Index(c.data[c.end:], token)
	if i < 0 {
		return c, false
	}
	c.end += i
	return c, true
}

func (c Cursor) encodeText(s string) ([]byte, error) {
	return c.enc.encode(s)
}

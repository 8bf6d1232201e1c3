package byteparse

import (
	"bytes"
	"fmt"
	"strings"
)

// Item accepts any byte and advances the read head; it fails at end of
// input.
var Item Parser = func(c Cursor, aux Stack) (Step, error) {
	if !c.HasMore() {
		return Step{}, &EndOfInput{Offset: c.End()}
	}
	return Done(c.At(), c.Advance(1), aux)
}

// Char parses the single byte want.
func Char(want byte) Parser {
	return Item.Then(func(x any) Parser {
		got := x.(byte)
		if got == want {
			return Value(got)
		}
		return func(c Cursor, aux Stack) (Step, error) {
			return Step{}, &Expected{Expectation: want, Actual: got, Offset: c.End() - 1}
		}
	})
}

// CharPred parses a single byte passing the given predicate.
func CharPred(pred func(byte) bool) Parser {
	return Item.Then(func(x any) Parser {
		got := x.(byte)
		if pred(got) {
			return Value(got)
		}
		return func(c Cursor, aux Stack) (Step, error) {
			return Step{}, failf(c, "byte %q fails predicate", got)
		}
	})
}

// Literal parses the exact byte sequence x. A short look-ahead counts as
// a mismatch.
func Literal(x []byte) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		if la := c.LookAhead(len(x)); !bytes.Equal(la, x) {
			return Step{}, &Expected{Expectation: x, Actual: la, Offset: c.End()}
		}
		return Done(x, c.Advance(len(x)), aux)
	}
}

// TextLiteral parses the text s encoded with the cursor's encoding.
func TextLiteral(s string) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		enc, err := c.encodeText(s)
		if err != nil {
			return Step{}, failf(c, "%v", err)
		}
		return Tail(Literal(enc), c, aux)
	}
}

// TextOneOf parses any single character of s.
func TextOneOf(s string) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		options := make([]Parser, 0, len(s))
		for _, r := range s {
			options = append(options, TextLiteral(string(r)))
		}
		return Tail(Choice(options...), c, aux)
	}
}

// Satisfies guards p's result with a predicate.
func Satisfies(p Parser, pred func(any) bool) Parser {
	return p.Then(func(v any) Parser {
		if pred(v) {
			return Value(v)
		}
		return func(c Cursor, aux Stack) (Step, error) {
			return Step{}, failf(c, "unexpected %v", v)
		}
	})
}

// ByteOneOf parses any byte contained in x.
func ByteOneOf(x []byte) Parser {
	return Satisfies(Item, func(v any) bool {
		return bytes.IndexByte(x, v.(byte)) >= 0
	})
}

// ByteNoneOf parses any byte not contained in x.
func ByteNoneOf(x []byte) Parser {
	return Satisfies(Item, func(v any) bool {
		return bytes.IndexByte(x, v.(byte)) < 0
	})
}

// Choice parses using the first alternative that succeeds. Every
// alternative starts from the cursor and stack as they were before the
// choice, so partial consumption by a failed alternative never leaks into
// the next. When all alternatives fail, the collected failures are
// reported in order.
func Choice(ps ...Parser) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		failures := make([]error, 0, len(ps))
		for _, p := range ps {
			r, err := p.Defer(c, aux).Invoke()
			if err == nil {
				return Done(r.Value, r.Cursor, r.Aux)
			}
			if !isParseError(err) {
				return Step{}, err
			}
			failures = append(failures, err)
		}
		return Step{}, &MultipleFailures{Offset: c.End(), Errors: failures}
	}
}

// Sequence parses every parser in order, threading cursor and stack left
// to right. The result is that of the last parser; a failure anywhere
// aborts the whole sequence.
func Sequence(ps ...Parser) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		for i, p := range ps {
			if i == len(ps)-1 {
				return Tail(p, c, aux)
			}
			r, err := p.Defer(c, aux).Invoke()
			if err != nil {
				return Step{}, err
			}
			c, aux = r.Cursor, r.Aux
		}
		return Done(nil, c, aux)
	}
}

// Field names one parser of a NamedSequence.
type Field struct {
	Name string
	P    Parser
}

// F is shorthand for building a Field.
func F(name string, p Parser) Field { return Field{Name: name, P: p} }

// NamedSequence parses all fields in declaration order and collects their
// results into a map. Fields whose name starts with "_" are parsed for
// side effect only and left out of the map.
func NamedSequence(fields ...Field) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		out := make(map[string]any, len(fields))
		for _, f := range fields {
			r, err := f.P.Defer(c, aux).Invoke()
			if err != nil {
				return Step{}, err
			}
			c, aux = r.Cursor, r.Aux
			if !strings.HasPrefix(f.Name, "_") {
				out[f.Name] = r.Value
			}
		}
		return Done(out, c, aux)
	}
}

// Many parses p any number of times, collecting the results. It never
// fails: on p's first failure it yields the results gathered so far with
// the cursor and stack as of the last success. Extra init values seed the
// collection.
func Many(p Parser, init ...any) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		result := append([]any{}, init...)
		for {
			r, err := p.Defer(c, aux).Invoke()
			if err != nil {
				if isParseError(err) {
					return Done(result, c, aux)
				}
				return Step{}, err
			}
			result = append(result, r.Value)
			c, aux = r.Cursor, r.Aux
		}
	}
}

// Some parses p one or more times; it fails with p's failure if the
// first attempt fails.
func Some(p Parser) Parser {
	return p.Then(func(x any) Parser { return Many(p, x) })
}

// ManyChar0 parses p zero or more times without collecting values; it
// only moves the cursor, for later flushing.
func ManyChar0(p Parser) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		for {
			r, err := p.Defer(c, aux).Invoke()
			if err != nil {
				if isParseError(err) {
					return Done(nil, c, aux)
				}
				return Step{}, err
			}
			c, aux = r.Cursor, r.Aux
		}
	}
}

// ManyChar parses p zero or more times and returns the consumed bytes in
// one go, optionally mapped by transfer. Use ManyChar0 instead when the
// surrounding parser owns the cursor selection.
func ManyChar(p Parser, transfer func([]byte) (any, error)) Parser {
	return Sequence(Flush(nil), ManyChar0(p), Flush(transfer))
}

// SomeChar0 parses p one or more times, moving the cursor only.
func SomeChar0(p Parser) Parser {
	return Sequence(p, ManyChar0(p))
}

// SomeChar parses p one or more times and returns the consumed bytes,
// optionally mapped by transfer.
func SomeChar(p Parser, transfer func([]byte) (any, error)) Parser {
	return Sequence(Flush(nil), SomeChar0(p), Flush(transfer))
}

// SepBy parses one or more p separated by sep, returning the list of p's
// results.
func SepBy(p Parser, sep Parser) Parser {
	return p.Then(func(first any) Parser {
		return Many(Sequence(sep, p)).Then(func(rest any) Parser {
			return Value(append([]any{first}, rest.([]any)...))
		})
	})
}

// RepeatN parses p exactly n times.
func RepeatN(p Parser, n int) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		result := make([]any, 0, n)
		for i := 0; i < n; i++ {
			r, err := p.Defer(c, aux).Invoke()
			if err != nil {
				return Step{}, err
			}
			result = append(result, r.Value)
			c, aux = r.Cursor, r.Aux
		}
		return Done(result, c, aux)
	}
}

// Optional parses p, or yields def without consuming input if p fails.
func Optional(p Parser, def any) Parser {
	return Choice(p, Value(def))
}

// Push pushes x onto the auxiliary stack. Its signature matches the Then
// continuation, so a parser result can be saved with p.Then(Push).
func Push(x any) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		return Done(nil, c, aux.Push(x))
	}
}

// Pop removes the top of the auxiliary stack and yields it, mapped by
// transfer when given. Popping an empty stack is a failure.
func Pop(transfer func(any) (any, error)) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		top, ok := aux.Top()
		if !ok {
			return Step{}, failf(c, "pop on empty auxiliary stack")
		}
		if transfer == nil {
			return Done(top, c, aux.Drop())
		}
		v, err := transfer(top)
		if err != nil {
			return Step{}, failf(c, "pop: %v", err)
		}
		return Done(v, c, aux.Drop())
	}
}

// GetAux yields the entire auxiliary stack. Not commonly used.
func GetAux() Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		return Done(aux, c, aux)
	}
}

// SetAux replaces the entire auxiliary stack. Not commonly used.
func SetAux(s Stack) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		return Done(nil, c, s)
	}
}

// Ignore runs p but restores the auxiliary stack afterwards.
func Ignore(p Parser) Parser {
	return GetAux().Then(func(a any) Parser {
		return Sequence(p, SetAux(a.(Stack)))
	})
}

// Flush yields the current selection, mapped by transfer when given, and
// moves the selection start up to the read head. A transfer error is a
// parse failure.
func Flush(transfer func([]byte) (any, error)) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		if transfer == nil {
			return Done(c.Content(), c.Flush(), aux)
		}
		v, err := transfer(c.Content())
		if err != nil {
			return Step{}, failf(c, "%v", err)
		}
		return Done(v, c.Flush(), aux)
	}
}

// FlushText is Flush with the selection decoded to a string using the
// cursor's encoding.
func FlushText() Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		s, err := c.Text()
		if err != nil {
			return Step{}, failf(c, "%v", err)
		}
		return Done(s, c.Flush(), aux)
	}
}

// TextEndBy scans forward to the next occurrence of s and yields the text
// between the read head and the delimiter; the delimiter itself is
// consumed and the selection flushed past it. A missing delimiter is a
// failure, not a scan to end of buffer.
func TextEndBy(s string) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		token, err := c.encodeText(s)
		if err != nil {
			return Step{}, failf(c, "%v", err)
		}
		next, ok := c.Find(token)
		if !ok {
			return Step{}, &Expected{Expectation: token, Offset: c.End()}
		}
		text, err := next.Text()
		if err != nil {
			return Step{}, failf(c, "%v", err)
		}
		return Done(text, next.Advance(len(token)).Flush(), aux)
	}
}

// QuotedString parses a string delimited by quote. No quote escaping.
func QuotedString(quote byte) Parser {
	q := string([]byte{quote})
	return Sequence(Char(quote), Flush(nil), TextEndBy(q))
}

// Tokenize parses p, then consumes and discards trailing whitespace.
// Grammar layers define their own variant when comments should be
// discarded too.
func Tokenize(p Parser) Parser {
	return Sequence(
		p.Then(Push),
		Optional(Whitespace, nil),
		Pop(nil))
}

// FMap lifts a plain function into a Then continuation, mapping the
// parsed value:
//
//	TextLiteral("hello").Then(FMap(func(v any) any { ... }))
func FMap(f func(any) any) func(any) Parser {
	return func(x any) Parser { return Value(f(x)) }
}

// CheckSize builds a Then continuation failing unless the parsed list has
// exactly n elements.
func CheckSize(n int) func(any) Parser {
	return func(v any) Parser {
		lst, ok := v.([]any)
		if !ok {
			return Fail(fmt.Sprintf("expected a list of size %d, got %T", n, v))
		}
		if len(lst) != n {
			return Fail(fmt.Sprintf("expected a list of size %d, got size %d", n, len(lst)))
		}
		return Value(lst)
	}
}

// Common character classes and separators.
var (
	Whitespace = SomeChar(TextOneOf(" \t\n"), nil)
	EOL        = Choice(TextLiteral("\n"), TextLiteral("\n\r"))

	AsciiAlpha = CharPred(func(b byte) bool {
		return b > 64 && b < 91 || b > 96 && b < 123
	})
	AsciiNum = CharPred(func(b byte) bool {
		return b >= 48 && b < 58
	})
	AsciiAlphaNum   = Choice(AsciiAlpha, AsciiNum)
	AsciiUnderscore = Char('_')
)

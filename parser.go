package byteparse

// Parser is a function from a cursor and an auxiliary stack to a parse
// step. Parsers are pure values: composing them performs no work, and the
// same inputs always produce the same outcome. A Parser reports failure
// by returning an error from the taxonomy in failure.go.
type Parser func(c Cursor, aux Stack) (Step, error)

// Defer wraps a call to p as a Thunk without invoking it.
func (p Parser) Defer(c Cursor, aux Stack) Thunk {
	return Thunk{p: p, c: c, aux: aux}
}

// Then is the monadic bind operator in method form; see Bind.
func (p Parser) Then(f func(any) Parser) Parser {
	return Bind(p, f)
}

// Bind runs p, feeds its result to f, and continues with the parser f
// builds. The continuation runs in tail position through the trampoline,
// so chains of binds do not grow the native stack. A failure of p
// propagates unchanged.
//
// Together with Value this is the primary way of composing parsers, the
// other being Choice.
func Bind(p Parser, f func(any) Parser) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		r, err := p.Defer(c, aux).Invoke()
		if err != nil {
			return Step{}, err
		}
		return Tail(f(r.Value), r.Cursor, r.Aux)
	}
}

// Value parses to x without consuming input.
func Value(x any) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		return Done(x, c, aux)
	}
}

// Fail is a parser that always fails with the given message.
func Fail(msg string) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		return Step{}, failf(c, "%s", msg)
	}
}

// Lazy resolves p when the parser runs, not when it is composed. Use it
// to build recursive grammars:
//
//	var value Parser
//	list := Sequence(Char('('), Many(Lazy(&value)), Char(')'))
//	func init() { value = Choice(Integer, list) }
func Lazy(p *Parser) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		return Tail(*p, c, aux)
	}
}

// Stack is the auxiliary value stack threaded through a parse. It is
// treated as a persistent value: Push copies on append, so no combinator
// observes a stack mutated by a sibling it did not call.
type Stack []any

// Push returns a stack with x appended.
func (s Stack) Push(x any) Stack {
	return append(s[:len(s):len(s)], x)
}

// Top returns the topmost element, if any.
func (s Stack) Top() (any, bool) {
	if len(s) == 0 {
		return nil, false
	}
	return s[len(s)-1], true
}

// Drop returns the stack without its topmost element.
func (s Stack) Drop() Stack {
	return s[:len(s)-1]
}

// ParseBytes runs p against data and returns the parsed value.
func ParseBytes(p Parser, data []byte) (any, error) {
	r, err := Run(p, data)
	if err != nil {
		return nil, err
	}
	return r.Value, nil
}

// Run is like ParseBytes but returns the full Result, exposing the final
// cursor and auxiliary stack.
func Run(p Parser, data []byte) (Result, error) {
	return p.Defer(FromBytes(data), nil).Invoke()
}

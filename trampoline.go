package byteparse

// Result is the outcome of a completed parse: the produced value, the
// cursor after the last consumed byte, and the auxiliary stack.
type Result struct {
	Value  any
	Cursor Cursor
	Aux    Stack
}

// Step is what a single parser invocation yields: either a final Result
// or a deferred tail call. Representing the tail call as data instead of
// making it keeps the native stack flat no matter how long a chain of
// combinators runs; see Thunk.Invoke.
type Step struct {
	result Result
	tail   *Thunk
}

// Thunk stores a delayed call to a parser.
type Thunk struct {
	p   Parser
	c   Cursor
	aux Stack
}

// Invoke drives the trampoline: it performs deferred calls until one of
// them yields a final result, consuming constant native stack per hop.
func (t Thunk) Invoke() (Result, error) {
	for {
		step, err := t.p(t.c, t.aux)
		if err != nil {
			return Result{}, err
		}
		if step.tail == nil {
			return step.result, nil
		}
		t = *step.tail
	}
}

// Done finishes a parser invocation with a value.
func Done(v any, c Cursor, aux Stack) (Step, error) {
	return Step{result: Result{Value: v, Cursor: c, Aux: aux}}, nil
}

// Tail defers to p in tail position. The call is performed by the driving
// trampoline loop, not here.
func Tail(p Parser, c Cursor, aux Stack) (Step, error) {
	return Step{tail: &Thunk{p: p, c: c, aux: aux}}, nil
}

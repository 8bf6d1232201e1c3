package byteparse

import (
	"errors"
	"fmt"
	"strings"
)

// ParseError is implemented by every failure in the taxonomy. Choice,
// Optional, Many and Some recover from these and nothing else; any other
// error aborts the parse outright.
type ParseError interface {
	error
	parseError()
}

// Failure is the generic parse failure, used for array bounds, size
// checks and custom predicates. All failures carry the byte offset of the
// read head at the point of failure.
type Failure struct {
	Message string
	Offset  int
}

func (f *Failure) Error() string {
	return fmt.Sprintf("offset %d: %s", f.Offset, f.Message)
}

func (*Failure) parseError() {}

func failf(c Cursor, format string, args ...any) *Failure {
	return &Failure{Message: fmt.Sprintf(format, args...), Offset: c.end}
}

// EndOfInput reports an exhausted cursor.
type EndOfInput struct {
	Offset int
}

func (e *EndOfInput) Error() string {
	return fmt.Sprintf("offset %d: end of input", e.Offset)
}

func (*EndOfInput) parseError() {}

// Expected reports a mismatch between an expected token and the actual
// input. Actual may be nil when nothing could be inspected, e.g. a
// delimiter that never occurs in the remaining input.
type Expected struct {
	Expectation any
	Actual      any
	Offset      int
}

func (e *Expected) Error() string {
	if e.Actual == nil {
		return fmt.Sprintf("offset %d: expected %s", e.Offset, formatToken(e.Expectation))
	}
	return fmt.Sprintf("offset %d: expected %s, got %s",
		e.Offset, formatToken(e.Expectation), formatToken(e.Actual))
}

func (*Expected) parseError() {}

// MultipleFailures aggregates the per-alternative failures of a Choice
// whose alternatives were all exhausted, in attempt order.
type MultipleFailures struct {
	Offset int
	Errors []error
}

func (m *MultipleFailures) Error() string {
	parts := make([]string, len(m.Errors))
	for i, err := range m.Errors {
		parts[i] = err.Error()
	}
	return fmt.Sprintf("offset %d: no alternative matched: [%s]",
		m.Offset, strings.Join(parts, "; "))
}

func (m *MultipleFailures) Unwrap() []error { return m.Errors }

func (*MultipleFailures) parseError() {}

func formatToken(v any) string {
	switch t := v.(type) {
	case byte:
		return fmt.Sprintf("%q", t)
	case []byte:
		return fmt.Sprintf("%q", t)
	case string:
		return fmt.Sprintf("%q", t)
	default:
		return fmt.Sprint(t)
	}
}

func isParseError(err error) bool {
	var pe ParseError
	return errors.As(err, &pe)
}

package byteparse

import "strconv"

// Integer parses an optionally negative run of ASCII digits as an int.
// The selection is flushed before and after, so the surrounding parser
// keeps ownership of its own selection.
var Integer = Sequence(
	Flush(nil),
	Optional(TextLiteral("-"), nil),
	SomeChar0(TextOneOf("0123456789")),
	Flush(toInt),
)

// ScientificNumber parses a number in integer, decimal or scientific
// notation. Integer conversion is attempted first, then floating point;
// malformed input such as a doubled exponent marker fails rather than
// truncating.
var ScientificNumber = Sequence(
	Flush(nil),
	Optional(TextLiteral("-"), nil),
	AsciiNum,
	ManyChar0(Choice(AsciiNum, TextOneOf(".e-"))),
	Flush(toNumber),
)

func toInt(b []byte) (any, error) {
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return nil, err
	}
	return n, nil
}

func toNumber(b []byte) (any, error) {
	s := string(b)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

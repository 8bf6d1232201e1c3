// Package email parses simple ASCII email addresses. It exists mostly as
// a compact example of composing the combinator core into a grammar.
package email

import (
	"strings"

	bp "github.com/escad/byteparse"
)

// Address is a parsed email address.
type Address struct {
	Username string
	Domain   []string
}

func (a Address) String() string {
	return a.Username + "@" + strings.Join(a.Domain, ".")
}

// component parses one dot-separated run of ASCII letters.
var component = bp.Sequence(bp.SomeChar0(bp.AsciiAlpha), bp.FlushText())

func literal(s string) bp.Parser {
	return bp.Sequence(bp.TextLiteral(s), bp.Flush(nil))
}

// guard builds a Then continuation failing unless the parsed value passes
// the predicate.
func guard(pred func(any) bool, msg string) func(any) bp.Parser {
	return func(v any) bp.Parser {
		if pred(v) {
			return bp.Value(v)
		}
		return bp.Fail(msg)
	}
}

func joinDots(v any) any {
	parts := v.([]any)
	ss := make([]string, len(parts))
	for i, p := range parts {
		ss[i] = p.(string)
	}
	return strings.Join(ss, ".")
}

var address = bp.NamedSequence(
	bp.F("username", bp.SepBy(component, literal(".")).Then(bp.FMap(joinDots))),
	bp.F("_at", literal("@")),
	bp.F("domain", bp.SepBy(component, literal(".")).Then(
		guard(func(v any) bool { return len(v.([]any)) >= 2 },
			"a domain needs at least two components"))),
)

// Parse parses an address of the form user.name@host.tld.
func Parse(data []byte) (Address, error) {
	v, err := bp.ParseBytes(address, data)
	if err != nil {
		return Address{}, err
	}
	m := v.(map[string]any)
	domainParts := m["domain"].([]any)
	domain := make([]string, len(domainParts))
	for i, d := range domainParts {
		domain[i] = d.(string)
	}
	return Address{Username: m["username"].(string), Domain: domain}, nil
}

// Package openfoam parses OpenFOAM-style case files: human-readable
// key/value dictionaries that may embed binary numeric blocks. It is a
// plain client of the combinator core; the case format recorded in the
// FoamFile header decides at parse time whether list bodies are read as
// ascii numbers or as a binary float64 block.
package openfoam

import (
	bp "github.com/escad/byteparse"
)

func latinChar(b byte) bool  { return b > 64 && b < 91 || b > 96 && b < 123 }
func numberChar(b byte) bool { return b >= 48 && b < 58 }

var (
	asciiAlpha      = bp.CharPred(latinChar)
	asciiNum        = bp.CharPred(numberChar)
	asciiUnderscore = bp.Char('_')
)

// BlockComment yields the text between /* and */.
var BlockComment = bp.Sequence(
	bp.TextLiteral("/*"), bp.Flush(nil),
	bp.TextEndBy("*/"))

// LineComment yields the text of a // comment, excluding the newline.
var LineComment = bp.Sequence(
	bp.TextLiteral("//"), bp.Flush(nil),
	bp.TextEndBy("\n"))

// Tokenize parses p, clearing trailing whitespace and comments.
func Tokenize(p bp.Parser) bp.Parser {
	return bp.Sequence(
		p.Then(bp.Push),
		bp.Many(bp.Choice(bp.Whitespace, BlockComment, LineComment)),
		bp.Pop(nil))
}

// Identifier parses a C-style identifier and yields it as a string.
var Identifier = bp.Sequence(
	bp.Flush(nil),
	bp.Choice(asciiUnderscore, asciiAlpha),
	bp.Many(bp.Choice(asciiUnderscore, asciiAlpha, asciiNum)),
	bp.FlushText())

func vector(p bp.Parser) bp.Parser {
	return bp.Sequence(
		Tokenize(bp.TextLiteral("(")),
		bp.Many(Tokenize(p)).Then(bp.Push),
		Tokenize(bp.TextLiteral(")")),
		bp.Pop(nil))
}

var foamNumeric = Tokenize(bp.Choice(
	bp.ScientificNumber,
	vector(bp.ScientificNumber)))

var listType = bp.Sequence(
	bp.TextLiteral("List<"),
	bp.Choice(bp.TextLiteral("scalar"), bp.TextLiteral("vector")).Then(bp.Push),
	bp.TextLiteral(">"),
	bp.Pop(func(v any) (any, error) {
		return string(v.([]byte)), nil
	}))

func asciiEntries(p bp.Parser) bp.Parser {
	return bp.Sequence(
		Tokenize(bp.Char('(')),
		bp.Many(p).Then(bp.Push),
		Tokenize(bp.Char(')')),
		bp.Pop(nil))
}

// binaryEntries reads a sized block of native float64s between the
// parentheses. No whitespace is skipped before the data: the bytes start
// directly after the opening parenthesis.
func binaryEntries(size int) bp.Parser {
	return bp.Sequence(
		bp.TextLiteral("("),
		bp.Array(bp.Float64, size).Then(bp.Push),
		Tokenize(bp.TextLiteral(")")),
		bp.Pop(nil))
}

// caseFormat yields the format recorded by the FoamFile header, or
// "ascii" when no config is installed. The lookup happens when the list
// body is reached, after the header has run.
func caseFormat() bp.Parser {
	return bp.Optional(bp.UsingConfig(func(cfg bp.Config) bp.Parser {
		if f, ok := cfg["format"].(string); ok {
			return bp.Value(f)
		}
		return bp.Value("ascii")
	}), "ascii")
}

func sizedEntries(p bp.Parser, size int) bp.Parser {
	return caseFormat().Then(func(f any) bp.Parser {
		if f == "binary" {
			return binaryEntries(size)
		}
		return asciiEntries(p)
	})
}

// withSizedData continues a named list whose size field is already
// parsed, so the body can be read in one typed block when binary.
func withSizedData(p bp.Parser) func(any) bp.Parser {
	return func(v any) bp.Parser {
		m := v.(map[string]any)
		return sizedEntries(p, m["size"].(int)).Then(func(data any) bp.Parser {
			m["data"] = data
			return bp.Value(m)
		})
	}
}

func foamList(p bp.Parser) bp.Parser {
	simple := bp.NamedSequence(
		bp.F("name", Tokenize(Identifier)),
		bp.F("data", asciiEntries(p)))
	numbered := bp.NamedSequence(
		bp.F("name", Tokenize(Identifier)),
		bp.F("size", Tokenize(bp.Integer)),
	).Then(withSizedData(p))
	full := bp.NamedSequence(
		bp.F("name", Tokenize(Identifier)),
		bp.F("dtype", Tokenize(listType)),
		bp.F("size", Tokenize(bp.Integer)),
	).Then(withSizedData(p))
	return bp.Choice(simple, numbered, full)
}

// Dimensions parses a dimension vector such as [0 2 -1 0 0 0 0].
var Dimensions = bp.Sequence(
	Tokenize(bp.Char('[')),
	bp.Some(Tokenize(bp.Integer)).Then(bp.Push),
	Tokenize(bp.Char(']')),
	bp.Pop(nil))

// Value and Dictionary are mutually recursive with KeyValuePair; they
// are wired up in init.
var (
	Value      bp.Parser
	Dictionary bp.Parser
)

var foamCompoundValue = bp.NamedSequence(
	bp.F("first", Tokenize(Identifier)),
	bp.F("rest", bp.Many(bp.Lazy(&Value))),
).Then(handleCompound)

func handleCompound(v any) bp.Parser {
	m := v.(map[string]any)
	rest := m["rest"].([]any)
	if len(rest) == 0 {
		return bp.Value(m["first"])
	}
	return bp.Value(append([]any{m["first"]}, rest...))
}

// KeyValuePair parses one `key value;` entry or a nested dictionary.
var KeyValuePair = bp.NamedSequence(
	bp.F("key", Tokenize(Identifier)),
	bp.F("value", bp.Choice(
		bp.Lazy(&Dictionary),
		bp.Sequence(
			bp.Lazy(&Value).Then(bp.Push),
			Tokenize(bp.Char(';')),
			bp.Pop(nil)))),
)

func init() {
	Value = Tokenize(bp.Choice(
		foamNumeric,
		bp.QuotedString('"'),
		foamList(foamNumeric),
		Dimensions,
		foamCompoundValue,
	))
	Dictionary = bp.Sequence(
		Tokenize(bp.TextLiteral("{")),
		bp.Many(KeyValuePair).Then(bp.Push),
		Tokenize(bp.TextLiteral("}")),
		bp.Pop(pairsToDict))
}

func pairsToDict(v any) (any, error) {
	out := map[string]any{}
	for _, item := range v.([]any) {
		kv := item.(map[string]any)
		key, _ := kv["key"].(string)
		out[key] = kv["value"]
	}
	return out, nil
}

// Preamble parses leading comments and the FoamFile header dictionary,
// recording the case format for later list bodies.
var Preamble = bp.Sequence(
	bp.Optional(bp.Whitespace, nil),
	bp.Many(Tokenize(bp.Choice(BlockComment, LineComment))),
	bp.NamedSequence(
		bp.F("name", Tokenize(Identifier)),
		bp.F("content", Tokenize(bp.Lazy(&Dictionary)))),
).Then(recordFormat)

func recordFormat(v any) bp.Parser {
	store := bp.UsingConfig(func(cfg bp.Config) bp.Parser {
		m := v.(map[string]any)
		if content, ok := m["content"].(map[string]any); ok {
			if f, ok := content["format"].(string); ok {
				cfg["format"] = f
			}
		}
		return bp.Value(nil)
	})
	return bp.Sequence(bp.Optional(store, nil), bp.Value(v))
}

// File parses a complete case file: the FoamFile preamble followed by
// top-level key/value pairs.
var File = bp.WithConfig(bp.NamedSequence(
	bp.F("preamble", Preamble),
	bp.F("data", bp.Some(KeyValuePair).Then(func(v any) bp.Parser {
		m, err := pairsToDict(v)
		if err != nil {
			return bp.Fail(err.Error())
		}
		return bp.Value(m)
	})),
))

// Parse parses an OpenFOAM case file held in memory. The buffer may be a
// shared file mapping; binary list values are views into it.
func Parse(data []byte) (map[string]any, error) {
	v, err := bp.ParseBytes(File, data)
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

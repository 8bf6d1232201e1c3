package byteparse

// Config is the shared mutable mapping installed at the base of the
// auxiliary stack by WithConfig. Earlier parsers may set keys that later
// parsers read, e.g. a preamble recording whether list bodies are ascii
// or binary.
type Config map[string]any

// WithConfig installs an empty Config at the base of a fresh auxiliary
// stack, then runs p. The resulting parser should be the outermost parser
// being used. The config is created when the parse runs, so independent
// invocations of the same composed parser never share state.
func WithConfig(p Parser) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		return Tail(p, c, Stack{Config{}})
	}
}

// UsingConfig builds a parser from the Config installed by WithConfig.
// The lookup happens when the parser runs, not when it is composed, so f
// sees every mutation made by parsers that ran earlier. It fails when no
// config is installed.
func UsingConfig(f func(Config) Parser) Parser {
	return GetAux().Then(func(a any) Parser {
		aux, _ := a.(Stack)
		if len(aux) == 0 {
			return Fail("no config on auxiliary stack")
		}
		cfg, ok := aux[0].(Config)
		if !ok {
			return Fail("no config on auxiliary stack")
		}
		return f(cfg)
	})
}

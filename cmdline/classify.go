package cmdline

import "strings"

// TokenClass is the classification of a single flattened token. It is a pure
// function of the token and the static registry: downstream handling of
// LoneDash and UnknownDashed additionally depends on the stop-at-non-option
// policy, but the class itself never does.
type TokenClass int

const (
	TokenPositional TokenClass = iota
	TokenTerminator             // "--"
	TokenLoneDash               // "-"
	TokenKnownOption            // dashed, known to the registry
	TokenUnknownDashed          // dashed, unknown to the registry
)

// String returns the string representation of the token class
func (c TokenClass) String() string {
	switch c {
	case TokenPositional:
		return "positional"
	case TokenTerminator:
		return "terminator"
	case TokenLoneDash:
		return "lone-dash"
	case TokenKnownOption:
		return "known-option"
	case TokenUnknownDashed:
		return "unknown-dashed"
	default:
		return "unknown"
	}
}

// Classify maps a raw token to its class against the given registry. The
// classification is re-derived per token, never cached.
func Classify(token string, opts *Options) TokenClass {
	switch {
	case token == "--":
		return TokenTerminator
	case token == "-":
		return TokenLoneDash
	case strings.HasPrefix(token, "-"):
		if opts.Has(token) {
			return TokenKnownOption
		}
		return TokenUnknownDashed
	default:
		return TokenPositional
	}
}

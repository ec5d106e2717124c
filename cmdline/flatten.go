package cmdline

import "strings"

// Flattener expands raw command-line arguments into the discrete token
// sequence the parse engine consumes: combined short options become separate
// tokens and equals-joined values become separate tokens. The engine depends
// only on this interface and never parses '=' itself.
type Flattener interface {
	Flatten(opts *Options, args []string, stopAtNonOption bool) ([]string, error)
}

// GnuFlattener splits --opt=value forms and the two-character special form
// (-Dkey=value) into discrete tokens. Combined short options are passed
// through untouched.
type GnuFlattener struct{}

// Flatten implements Flattener.
func (f *GnuFlattener) Flatten(opts *Options, args []string, stopAtNonOption bool) ([]string, error) {
	tokens := make([]string, 0, len(args))
	eatTheRest := false

	for _, arg := range args {
		if eatTheRest {
			tokens = append(tokens, arg)
			continue
		}

		switch {
		case arg == "--":
			eatTheRest = true
			tokens = append(tokens, arg)

		case arg == "-" || !strings.HasPrefix(arg, "-"):
			tokens = append(tokens, arg)

		case opts.Has(arg):
			tokens = append(tokens, arg)

		default:
			if eq := strings.IndexByte(arg, '='); eq != -1 && opts.Has(arg[:eq]) {
				// --opt=value
				tokens = append(tokens, arg[:eq], arg[eq+1:])
			} else if len(arg) > 2 && opts.Has(arg[:2]) {
				// -Dkey=value style: the value starts right after the name
				tokens = append(tokens, arg[:2], arg[2:])
			} else {
				eatTheRest = stopAtNonOption
				tokens = append(tokens, arg)
			}
		}
	}

	return tokens, nil
}

// PosixFlattener additionally bursts combined short options (-abc becomes
// -a -b -c) and attaches the remainder of a burst token as the value of the
// first value-taking member (-ovalue becomes -o value).
type PosixFlattener struct{}

// Flatten implements Flattener.
func (f *PosixFlattener) Flatten(opts *Options, args []string, stopAtNonOption bool) ([]string, error) {
	tokens := make([]string, 0, len(args))
	eatTheRest := false

	for _, arg := range args {
		if eatTheRest {
			tokens = append(tokens, arg)
			continue
		}

		switch {
		case arg == "--" || arg == "-":
			tokens = append(tokens, arg)

		case strings.HasPrefix(arg, "--"):
			if eq := strings.IndexByte(arg, '='); eq != -1 {
				tokens = append(tokens, arg[:eq], arg[eq+1:])
			} else {
				tokens = append(tokens, arg)
			}

		case strings.HasPrefix(arg, "-"):
			if len(arg) == 2 {
				if !opts.Has(arg) && stopAtNonOption {
					eatTheRest = true
				}
				tokens = append(tokens, arg)
			} else {
				tokens, eatTheRest = f.burst(opts, tokens, arg, stopAtNonOption)
			}

		default:
			if stopAtNonOption {
				eatTheRest = true
			}
			tokens = append(tokens, arg)
		}
	}

	return tokens, nil
}

// burst expands a combined short-option token character by character. An
// unknown character stops the burst: with stopAtNonOption the remainder
// drains as-is, otherwise the whole original token is kept so the engine
// reports it unrecognized.
func (f *PosixFlattener) burst(opts *Options, tokens []string, arg string, stopAtNonOption bool) ([]string, bool) {
	for i := 1; i < len(arg); i++ {
		name := "-" + string(arg[i])
		opt := opts.Lookup(name)
		if opt == nil {
			if stopAtNonOption {
				tokens = append(tokens, arg[i:])
				return tokens, true
			}
			if i == 1 {
				tokens = append(tokens, arg)
			} else {
				tokens = append(tokens, arg[i:])
			}
			return tokens, false
		}

		tokens = append(tokens, name)
		if opt.HasArg() && i+1 < len(arg) {
			tokens = append(tokens, arg[i+1:])
			return tokens, false
		}
	}
	return tokens, false
}

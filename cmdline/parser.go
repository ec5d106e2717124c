package cmdline

import (
	"errors"

	"github.com/dzonerzy/go-cmdline/internal/fuzzy"
)

// ParseState represents the current state of the parse engine state machine
type ParseState int

const (
	StateScanning  ParseState = iota // looking for the next option or positional
	StateConsuming                   // collecting argument values for an option
	StateDraining                    // appending the remainder as positionals
)

// String returns the string representation of the parse state
func (s ParseState) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateConsuming:
		return "consuming"
	case StateDraining:
		return "draining"
	default:
		return "unknown"
	}
}

const suggestionMaxDistance = 2

// Parser validates a token sequence against an option registry and builds a
// CommandLine. A Parser holds only configuration; every Parse call owns its
// transient state exclusively, so one Parser may serve sequential parses
// against the same registry without resets.
type Parser struct {
	flattener       Flattener
	stopAtNonOption bool
	suggest         bool
}

// NewParser creates a parser with the default GNU-style flattener.
func NewParser() *Parser {
	return &Parser{flattener: &GnuFlattener{}}
}

// WithFlattener sets the flattening collaborator that expands raw arguments
// into the token sequence the engine consumes.
func (p *Parser) WithFlattener(f Flattener) *Parser {
	p.flattener = f
	return p
}

// StopAtNonOption toggles early draining: when enabled, the first token that
// is neither a known option nor an option argument stops interpretation and
// the remainder is kept as positional arguments.
func (p *Parser) StopAtNonOption(stop bool) *Parser {
	p.stopAtNonOption = stop
	return p
}

// Suggestions enables "did you mean" hints on unrecognized-option errors.
func (p *Parser) Suggestions(enabled bool) *Parser {
	p.suggest = enabled
	return p
}

// Parse flattens and consumes args against the registry.
func (p *Parser) Parse(opts *Options, args []string) (*CommandLine, error) {
	return p.ParseWithDefaults(opts, args, nil)
}

// ParseWithDefaults is Parse followed by a merge of default values: every
// default key not already resolved is filled in from defaults, then the
// required-options check runs.
func (p *Parser) ParseWithDefaults(opts *Options, args []string, defaults *Properties) (*CommandLine, error) {
	if args == nil {
		args = []string{}
	}
	tokens, err := p.flattener.Flatten(opts, args, p.stopAtNonOption)
	if err != nil {
		return nil, err
	}
	Debug.Printf("flattened %d raw args into %d tokens", len(args), len(tokens))

	run := &parseRun{
		parser:   p,
		opts:     opts,
		cmd:      newCommandLine(opts),
		state:    StateScanning,
		required: opts.requiredEntries(),
		selected: make(map[*OptionGroup]*Option),
	}

	// Single left-to-right pass. The first terminal error short-circuits
	// the loop; effects already applied stay applied.
	for _, token := range tokens {
		if err := run.step(token); err != nil {
			return nil, err
		}
	}

	// The stream may end while an option is still consuming.
	if run.state == StateConsuming {
		if err := run.stopConsuming(); err != nil {
			return nil, err
		}
	}

	if defaults != nil {
		if err := run.mergeDefaults(defaults); err != nil {
			return nil, err
		}
	}

	if len(run.required) > 0 {
		missing := make([]string, len(run.required))
		for i, ref := range run.required {
			missing[i] = ref.id()
		}
		return nil, newMissingRequiredError(missing)
	}

	return run.cmd, nil
}

// Parse is a convenience wrapper around NewParser().Parse.
func Parse(opts *Options, args []string) (*CommandLine, error) {
	return NewParser().Parse(opts, args)
}

// parseRun is the transient state of one parse invocation. It is never
// shared: the engine semantics depend on strict left-to-right ordering.
type parseRun struct {
	parser   *Parser
	opts     *Options
	cmd      *CommandLine
	state    ParseState
	current  *Option                  // option consuming values in StateConsuming
	required []requiredRef            // still-unsatisfied required entries
	selected map[*OptionGroup]*Option // per-parse group selections
}

// step processes one token and returns a terminal error, if any.
func (r *parseRun) step(token string) error {
	if r.state == StateConsuming {
		consumed, err := r.consume(token)
		if err != nil {
			return err
		}
		if consumed {
			return nil
		}
		// Consumption stopped without error: re-process the same token.
	}

	if r.state == StateDraining {
		// Only one terminator is ever consumed; duplicates fold away.
		if token != "--" {
			r.cmd.addArg(token)
		}
		return nil
	}

	class := Classify(token, r.opts)
	Debug.Printf("token %q classified as %s in state %s", token, class, r.state)

	switch class {
	case TokenTerminator:
		r.state = StateDraining

	case TokenLoneDash:
		if r.parser.stopAtNonOption {
			// The dash triggers draining but is not kept itself.
			r.state = StateDraining
		} else {
			r.cmd.addArg(token)
		}

	case TokenUnknownDashed:
		if r.parser.stopAtNonOption {
			// Unlike the terminator, the triggering token is kept.
			r.state = StateDraining
			r.cmd.addArg(token)
			return nil
		}
		return newUnrecognizedOptionError(token, r.suggestion(token))

	case TokenKnownOption:
		return r.resolveOption(token)

	case TokenPositional:
		r.cmd.addArg(token)
		if r.parser.stopAtNonOption {
			r.state = StateDraining
		}
	}

	return nil
}

// consume attempts to use token as a value for the currently consuming
// option. It returns consumed=false when consumption stopped and the token
// must be re-processed as a fresh token.
func (r *parseRun) consume(token string) (bool, error) {
	// A recognized option token always ends consumption; it is never
	// swallowed as a value, even by an option still expecting one.
	if Classify(token, r.opts) == TokenKnownOption {
		return false, r.stopConsuming()
	}

	switch err := r.cmd.appendValue(r.current, stripQuotes(token)); {
	case err == nil:
		return true, nil
	case errors.Is(err, errArgLimit):
		// Capacity exhausted: the append fails silently and the token is
		// still treated as consumed.
		Debug.Printf("option %s dropped excess value %q", r.current.Key(), token)
		return true, nil
	default:
		// Incompatibility: the token is not a value.
		return false, r.stopConsuming()
	}
}

// stopConsuming leaves StateConsuming and verifies the option received a
// value unless its argument is optional.
func (r *parseRun) stopConsuming() error {
	opt := r.current
	r.current = nil
	r.state = StateScanning
	if len(r.cmd.values[opt]) == 0 && !opt.OptionalArg() {
		return newMissingArgumentError(opt)
	}
	return nil
}

// resolveOption registers a recognized option token: required bookkeeping,
// group selection, result registration, and the transition into value
// consumption when the option takes an argument.
func (r *parseRun) resolveOption(token string) error {
	opt := r.opts.Lookup(token)

	if opt.Required {
		r.removeRequiredOption(opt)
	}

	if group := opt.Group(); group != nil {
		if group.Required {
			r.removeRequiredGroup(group)
		}
		if prev := r.selected[group]; prev != nil && prev != opt {
			return newAlreadySelectedError(group, prev, opt)
		}
		r.selected[group] = opt
	}

	r.cmd.addOption(opt)

	if opt.HasArg() {
		r.state = StateConsuming
		r.current = opt
	}
	return nil
}

// mergeDefaults fills in options the token pass did not resolve. See
// Properties for the ordering and early-exit contract.
func (r *parseRun) mergeDefaults(defaults *Properties) error {
	for _, key := range defaults.Keys() {
		if r.cmd.Has(key) {
			continue
		}
		opt := r.opts.Lookup(key)
		if opt == nil {
			return newUnknownDefaultKeyError(key)
		}
		value, _ := defaults.Get(key)

		if opt.HasArg() {
			if len(r.cmd.values[opt]) == 0 {
				// Rejections at the append level are not worth failing over.
				_ = r.cmd.appendValue(opt, value)
			}
		} else if !isTruthy(value) {
			// A flag default that fails the truthy check aborts the whole
			// remaining defaults loop, not just this entry.
			Debug.Printf("defaults merge stopped at falsy flag %q=%q", key, value)
			break
		}

		// Options resolved here satisfy required tracking the same way the
		// token pass does.
		if opt.Required {
			r.removeRequiredOption(opt)
		}
		if group := opt.Group(); group != nil {
			if group.Required {
				r.removeRequiredGroup(group)
			}
			if r.selected[group] == nil {
				r.selected[group] = opt
			}
		}

		r.cmd.addOption(opt)
	}
	return nil
}

func (r *parseRun) removeRequiredOption(opt *Option) {
	for i, ref := range r.required {
		if ref.opt == opt {
			r.required = append(r.required[:i], r.required[i+1:]...)
			return
		}
	}
}

func (r *parseRun) removeRequiredGroup(group *OptionGroup) {
	for i, ref := range r.required {
		if ref.group == group {
			r.required = append(r.required[:i], r.required[i+1:]...)
			return
		}
	}
}

func (r *parseRun) suggestion(token string) string {
	if !r.parser.suggest {
		return ""
	}
	best := fuzzy.FindBestOption(stripDashes(token), r.opts.names(), suggestionMaxDistance)
	if best == "" {
		return ""
	}
	if len(best) == 1 {
		return "-" + best
	}
	return "--" + best
}

// stripQuotes removes one matching pair of surrounding double quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

package cmdline

import "errors"

// Value-append rejections. errNoArgAllowed signals an incompatibility (the
// option takes no values at all) and makes the engine re-process the token;
// errArgLimit signals exhausted capacity and is swallowed silently.
var (
	errNoArgAllowed = errors.New("option accepts no argument")
	errArgLimit     = errors.New("option argument limit reached")
)

// CommandLine is the result of a successful parse: the resolved options in
// arrival order, their consumed values, and the leftover positional
// arguments. Values live on the result, keyed by option identity, so the
// result is self-contained and the registry stays untouched.
type CommandLine struct {
	opts     *Options
	args     []string
	resolved []*Option
	present  map[*Option]bool
	values   map[*Option][]string
}

func newCommandLine(opts *Options) *CommandLine {
	return &CommandLine{
		opts:    opts,
		present: make(map[*Option]bool),
		values:  make(map[*Option][]string),
	}
}

func (c *CommandLine) addArg(arg string) {
	c.args = append(c.args, arg)
}

// addOption registers the option as present. Repeated registration is a
// no-op; arrival order records the first appearance.
func (c *CommandLine) addOption(opt *Option) {
	if c.present[opt] {
		return
	}
	c.present[opt] = true
	c.resolved = append(c.resolved, opt)
}

// appendValue records one consumed value for opt, honoring its arity.
func (c *CommandLine) appendValue(opt *Option, value string) error {
	switch opt.Arity {
	case ArityNone:
		return errNoArgAllowed
	case ArityOne, ArityOptional:
		if len(c.values[opt]) >= 1 {
			return errArgLimit
		}
	case ArityUnbounded:
	}
	c.values[opt] = append(c.values[opt], value)
	return nil
}

// Has reports whether the named option was resolved. Leading dashes are
// ignored, and either the short or the long name matches.
func (c *CommandLine) Has(name string) bool {
	opt := c.opts.Lookup(name)
	return opt != nil && c.present[opt]
}

// Value returns the first value consumed by the named option. The second
// return is false when the option is absent or carries no values.
func (c *CommandLine) Value(name string) (string, bool) {
	values := c.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Values returns all values consumed by the named option, in consumption
// order. A present option without values yields nil: presence and values
// are distinct states, see Has.
func (c *CommandLine) Values(name string) []string {
	opt := c.opts.Lookup(name)
	if opt == nil {
		return nil
	}
	return c.values[opt]
}

// Args returns the leftover positional arguments in arrival order.
func (c *CommandLine) Args() []string {
	return c.args
}

// Options returns the resolved options in arrival order.
func (c *CommandLine) Options() []*Option {
	return c.resolved
}

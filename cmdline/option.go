package cmdline

import "strings"

// Arity describes how many argument values an option consumes.
type Arity int

const (
	ArityNone      Arity = iota // flag, no value
	ArityOne                    // exactly one value
	ArityUnbounded              // one or more values
	ArityOptional               // at most one value, may be omitted
)

// String returns the string representation of the arity
func (a Arity) String() string {
	switch a {
	case ArityNone:
		return "none"
	case ArityOne:
		return "one"
	case ArityUnbounded:
		return "unbounded"
	case ArityOptional:
		return "optional"
	default:
		return "unknown"
	}
}

// Option is a registry-declared command-line option. Options are identified
// by a short name, a long name, or both; names are stored without leading
// dashes. Option definitions are read-only during a parse: argument values
// are accumulated in the CommandLine result, never on the Option itself, so
// a registry can serve any number of parses without being reset.
type Option struct {
	Short       string // primary name, e.g. "f" for -f
	Long        string // alternate name, e.g. "file" for --file
	Description string
	Arity       Arity
	Required    bool

	group *OptionGroup
}

// Key returns the identity of the option: the short name when present,
// the long name otherwise.
func (o *Option) Key() string {
	if o.Short != "" {
		return o.Short
	}
	return o.Long
}

// Names returns all registered names of the option, without dashes.
func (o *Option) Names() []string {
	names := make([]string, 0, 2)
	if o.Short != "" {
		names = append(names, o.Short)
	}
	if o.Long != "" {
		names = append(names, o.Long)
	}
	return names
}

// HasArg returns true if the option consumes at least a potential value.
func (o *Option) HasArg() bool {
	return o.Arity != ArityNone
}

// OptionalArg returns true if the option may appear without a value.
func (o *Option) OptionalArg() bool {
	return o.Arity == ArityOptional
}

// Group returns the mutual-exclusion group the option belongs to, or nil.
func (o *Option) Group() *OptionGroup {
	return o.group
}

// OptionGroup is a set of mutually exclusive options. At most one member
// may be selected per parse; selection state is tracked by the parse
// invocation, not on the group, so groups carry no cross-parse residue.
type OptionGroup struct {
	Name     string
	Required bool

	options []*Option
}

// Options returns the member options in declaration order.
func (g *OptionGroup) Options() []*Option {
	return g.options
}

// String returns the group identifier used in diagnostics: the group name
// when set, otherwise a bracketed list of member options.
func (g *OptionGroup) String() string {
	if g.Name != "" {
		return g.Name
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, o := range g.options {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteByte('-')
		b.WriteString(o.Key())
	}
	b.WriteByte(']')
	return b.String()
}

// requiredRef is one entry of the required-tracking sequence: either an
// option or a group, in declaration order.
type requiredRef struct {
	opt   *Option
	group *OptionGroup
}

func (r requiredRef) id() string {
	if r.opt != nil {
		return r.opt.Key()
	}
	return r.group.String()
}

// Options is the option registry: the set of known options and groups a
// parse validates against. The registry answers name lookups with leading
// dashes stripped, so "-f", "--file", "f" and "file" all resolve the same
// option.
type Options struct {
	order  []*Option
	byName map[string]*Option
	groups []*OptionGroup
	reqSeq []requiredRef
}

// NewOptions creates an empty option registry.
func NewOptions() *Options {
	return &Options{
		byName: make(map[string]*Option),
	}
}

// Add registers a pre-built option. Most callers use the fluent Option
// builder instead.
func (o *Options) Add(opt *Option) *Options {
	o.addOption(opt)
	return o
}

func (o *Options) addOption(opt *Option) {
	o.order = append(o.order, opt)
	for _, name := range opt.Names() {
		o.byName[name] = opt
	}
	o.reqSeq = append(o.reqSeq, requiredRef{opt: opt})
}

func (o *Options) addGroup(g *OptionGroup) {
	o.groups = append(o.groups, g)
	o.reqSeq = append(o.reqSeq, requiredRef{group: g})
}

// Has reports whether name denotes a known option. Leading dashes are
// ignored.
func (o *Options) Has(name string) bool {
	return o.Lookup(name) != nil
}

// Lookup resolves name to its option definition, or nil when unknown.
// Leading dashes are ignored.
func (o *Options) Lookup(name string) *Option {
	return o.byName[stripDashes(name)]
}

// List returns all registered options in declaration order.
func (o *Options) List() []*Option {
	return o.order
}

// Groups returns all registered option groups in declaration order.
func (o *Options) Groups() []*OptionGroup {
	return o.groups
}

// names returns every registered option name, used for suggestions.
func (o *Options) names() []string {
	names := make([]string, 0, len(o.byName))
	for _, opt := range o.order {
		names = append(names, opt.Names()...)
	}
	return names
}

// requiredEntries returns the still-declared required options and groups in
// declaration order. Options that belong to a group are never individually
// required: the group entry stands for them.
func (o *Options) requiredEntries() []requiredRef {
	entries := make([]requiredRef, 0, len(o.reqSeq))
	for _, ref := range o.reqSeq {
		switch {
		case ref.opt != nil && ref.opt.Required && ref.opt.group == nil:
			entries = append(entries, ref)
		case ref.group != nil && ref.group.Required:
			entries = append(entries, ref)
		}
	}
	return entries
}

func stripDashes(name string) string {
	return strings.TrimLeft(name, "-")
}

// Fluent builder API

// OptionParent allows both Options and GroupBuilder to receive new options.
type OptionParent interface {
	addOption(opt *Option)
}

// OptionBuilder provides fluent configuration of a single option.
// P is the parent type, either *Options or *GroupBuilder.
type OptionBuilder[P OptionParent] struct {
	opt    *Option
	parent P
}

// Option starts a new option with the given short name, long name and
// description. Either name may be empty. The option defaults to ArityNone.
func (o *Options) Option(short, long, description string) *OptionBuilder[*Options] {
	opt := &Option{Short: short, Long: long, Description: description}
	o.addOption(opt)
	return &OptionBuilder[*Options]{opt: opt, parent: o}
}

// Required marks the option as required.
func (b *OptionBuilder[P]) Required() *OptionBuilder[P] {
	b.opt.Required = true
	return b
}

// Arg declares that the option consumes exactly one value.
func (b *OptionBuilder[P]) Arg() *OptionBuilder[P] {
	b.opt.Arity = ArityOne
	return b
}

// Args declares that the option consumes one or more values.
func (b *OptionBuilder[P]) Args() *OptionBuilder[P] {
	b.opt.Arity = ArityUnbounded
	return b
}

// OptionalArg declares that the option consumes at most one value and may
// appear without one.
func (b *OptionBuilder[P]) OptionalArg() *OptionBuilder[P] {
	b.opt.Arity = ArityOptional
	return b
}

// Back returns to the parent builder context for continued chaining.
func (b *OptionBuilder[P]) Back() P {
	return b.parent
}

// GroupBuilder provides fluent configuration of a mutual-exclusion group.
type GroupBuilder struct {
	group  *OptionGroup
	parent *Options
}

// Group starts a new mutual-exclusion group.
func (o *Options) Group(name string) *GroupBuilder {
	return &GroupBuilder{
		group:  &OptionGroup{Name: name},
		parent: o,
	}
}

// Required marks the group as required: one of its members must appear.
func (g *GroupBuilder) Required() *GroupBuilder {
	g.group.Required = true
	return g
}

// Option starts a new option inside the group.
func (g *GroupBuilder) Option(short, long, description string) *OptionBuilder[*GroupBuilder] {
	opt := &Option{Short: short, Long: long, Description: description}
	g.addOption(opt)
	return &OptionBuilder[*GroupBuilder]{opt: opt, parent: g}
}

// addOption implements OptionParent: group members are registered with the
// registry and linked back to the group.
func (g *GroupBuilder) addOption(opt *Option) {
	opt.group = g.group
	g.group.options = append(g.group.options, opt)
	g.parent.addOption(opt)
}

// EndGroup terminates the group and returns to the registry.
func (g *GroupBuilder) EndGroup() *Options {
	g.parent.addGroup(g.group)
	return g.parent
}

package domain

import (
	"encoding/json"
	"fmt"
	"sync"

	m "gooze.dev/pkg/optset/internal/model"
)

// Scope tells which resolved record an option belongs to.
type Scope int

// Option scopes.
const (
	ScopeShared Scope = iota
	ScopeGlobal
	ScopeProject
)

func (s Scope) String() string {
	switch s {
	case ScopeShared:
		return "shared"
	case ScopeGlobal:
		return "global"
	case ScopeProject:
		return "project"
	}

	return fmt.Sprintf("scope(%d)", int(s))
}

// Kind tells how an option's raw value relates to its domain value.
type Kind int

// Option kinds.
const (
	// KindDirect values pass through with type coercion only.
	KindDirect Kind = iota
	// KindRaw values need derivation (JSON decoding, enum or numeric coercion).
	KindRaw
	// KindDerived options have no dedicated raw shape.
	KindDerived
)

func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindRaw:
		return "raw"
	case KindDerived:
		return "derived"
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// Source identifies where a value came from.
type Source int

// Value sources, highest precedence first.
const (
	SourceCLI Source = iota
	SourceConfig
	SourceDefault
)

func (s Source) String() string {
	switch s {
	case SourceCLI:
		return "cli"
	case SourceConfig:
		return "config"
	case SourceDefault:
		return "default"
	}

	return fmt.Sprintf("source(%d)", int(s))
}

// FlagType tells the CLI layer how to declare an option's flag.
type FlagType int

// Flag types.
const (
	FlagNone FlagType = iota
	FlagBool
	FlagString
	FlagInt
	FlagStrings
	// FlagBoolOrString accepts a bare flag (true) or a value.
	FlagBoolOrString
)

// Descriptor declares one recognized option.
type Descriptor struct {
	Name     string
	Scope    Scope
	Kind     Kind
	Flag     string
	Short    string
	Aliases  []string
	Usage    string
	FlagType FlagType

	parse      func(value any, src Source) (any, error)
	def        any
	setShared  func(*m.SharedOptions, any)
	setGlobal  func(*m.GlobalOptions, any)
	setProject func(*m.ProjectOptions, any)
}

// Parse converts a raw or config value to the option's domain type.
func (d Descriptor) Parse(value any, src Source) (any, error) {
	return d.parse(value, src)
}

// Default returns a fresh copy of the option's default value.
func (d Descriptor) Default() any {
	return cloneValue(d.def)
}

type descriptorOption func(*Descriptor)

func flag(ft FlagType, usage string) descriptorOption {
	return func(d *Descriptor) {
		d.Flag = d.Name
		d.FlagType = ft
		d.Usage = usage
	}
}

func short(s string) descriptorOption {
	return func(d *Descriptor) { d.Short = s }
}

func alias(names ...string) descriptorOption {
	return func(d *Descriptor) { d.Aliases = append(d.Aliases, names...) }
}

func newDescriptor[T any](name string, scope Scope, kind Kind, def T, parse func(any, Source) (T, error), opts []descriptorOption) Descriptor {
	d := Descriptor{
		Name:  name,
		Scope: scope,
		Kind:  kind,
		def:   def,
	}

	if parse != nil {
		d.parse = func(value any, src Source) (any, error) {
			return parse(value, src)
		}
	}

	for _, opt := range opts {
		opt(&d)
	}

	return d
}

func sharedOption[T any](name string, kind Kind, def T, parse func(any, Source) (T, error), set func(*m.SharedOptions, T), opts ...descriptorOption) Descriptor {
	d := newDescriptor(name, ScopeShared, kind, def, parse, opts)
	d.setShared = func(o *m.SharedOptions, v any) { set(o, v.(T)) }

	return d
}

func globalOption[T any](name string, kind Kind, def T, parse func(any, Source) (T, error), set func(*m.GlobalOptions, T), opts ...descriptorOption) Descriptor {
	d := newDescriptor(name, ScopeGlobal, kind, def, parse, opts)
	d.setGlobal = func(o *m.GlobalOptions, v any) { set(o, v.(T)) }

	return d
}

func projectOption[T any](name string, kind Kind, def T, parse func(any, Source) (T, error), set func(*m.ProjectOptions, T), opts ...descriptorOption) Descriptor {
	d := newDescriptor(name, ScopeProject, kind, def, parse, opts)
	d.setProject = func(o *m.ProjectOptions, v any) { set(o, v.(T)) }

	return d
}

// DirectiveLayer tells at which precedence a directive's value applies.
type DirectiveLayer int

// Directive layers.
const (
	// LayerCLI values override everything, including the target's own flag.
	LayerCLI DirectiveLayer = iota
	// LayerDefault values replace the target's default only.
	LayerDefault
)

// Directive is a boolean CLI flag with no option of its own that sets a
// value on another option when present.
type Directive struct {
	Flag   string
	Short  string
	Usage  string
	Target string
	Value  any
	Layer  DirectiveLayer
}

// Registry is the immutable table of recognized options.
type Registry struct {
	descriptors []Descriptor
	index       map[string]int
	directives  []Directive
	directive   map[string]int
}

// NewRegistry validates descriptors and directives and builds a Registry.
// It fails on duplicate option names, duplicate CLI flags, setters that do
// not match the declared scope, and directives that target unknown options.
func NewRegistry(descriptors []Descriptor, directives ...Directive) (*Registry, error) {
	reg := &Registry{
		descriptors: make([]Descriptor, 0, len(descriptors)),
		index:       make(map[string]int, len(descriptors)),
		directive:   make(map[string]int, len(directives)),
	}

	longs := map[string]string{}
	shorts := map[string]string{}

	claim := func(owner, long, shorthand string) error {
		if long != "" {
			if prev, ok := longs[long]; ok {
				return &SchemaError{Option: owner, Message: fmt.Sprintf("flag --%s already claimed by %q", long, prev)}
			}

			longs[long] = owner
		}

		if shorthand != "" {
			if prev, ok := shorts[shorthand]; ok {
				return &SchemaError{Option: owner, Message: fmt.Sprintf("flag -%s already claimed by %q", shorthand, prev)}
			}

			shorts[shorthand] = owner
		}

		return nil
	}

	for _, d := range descriptors {
		if d.Name == "" {
			return nil, &SchemaError{Option: d.Name, Message: "option name is empty"}
		}

		if _, ok := reg.index[d.Name]; ok {
			return nil, &SchemaError{Option: d.Name, Message: "option declared twice"}
		}

		if d.parse == nil {
			return nil, &SchemaError{Option: d.Name, Message: "option has no parse function"}
		}

		if err := checkScope(d); err != nil {
			return nil, err
		}

		if d.Flag == "" && (d.Short != "" || len(d.Aliases) > 0) {
			return nil, &SchemaError{Option: d.Name, Message: "shorthand or alias on an option without a flag"}
		}

		if err := claim(d.Name, d.Flag, d.Short); err != nil {
			return nil, err
		}

		for _, a := range d.Aliases {
			if err := claim(d.Name, a, ""); err != nil {
				return nil, err
			}
		}

		reg.index[d.Name] = len(reg.descriptors)
		reg.descriptors = append(reg.descriptors, d)
	}

	for _, dir := range directives {
		if dir.Flag == "" {
			return nil, &SchemaError{Option: dir.Target, Message: "directive has no flag"}
		}

		if _, ok := reg.index[dir.Flag]; ok {
			return nil, &SchemaError{Option: dir.Flag, Message: "directive shadows an option"}
		}

		target, ok := reg.Lookup(dir.Target)
		if !ok {
			return nil, &SchemaError{Option: dir.Target, Message: fmt.Sprintf("directive --%s targets an unknown option", dir.Flag)}
		}

		if _, err := target.Parse(dir.Value, SourceCLI); err != nil {
			return nil, &SchemaError{Option: dir.Target, Message: fmt.Sprintf("directive --%s sets an invalid value: %v", dir.Flag, err)}
		}

		if err := claim(dir.Flag, dir.Flag, dir.Short); err != nil {
			return nil, err
		}

		reg.directive[dir.Flag] = len(reg.directives)
		reg.directives = append(reg.directives, dir)
	}

	return reg, nil
}

// checkScope reports a descriptor whose setter writes to another scope's record.
func checkScope(d Descriptor) error {
	setters := 0
	matches := false

	if d.setShared != nil {
		setters++
		matches = d.Scope == ScopeShared
	}

	if d.setGlobal != nil {
		setters++
		matches = d.Scope == ScopeGlobal
	}

	if d.setProject != nil {
		setters++
		matches = d.Scope == ScopeProject
	}

	switch {
	case setters == 0:
		return &SchemaError{Option: d.Name, Message: "option has no setter"}
	case setters > 1:
		return &SchemaError{Option: d.Name, Message: "option writes to more than one scope"}
	case !matches:
		return &SchemaError{Option: d.Name, Message: fmt.Sprintf("option declared %s but writes outside that scope", d.Scope)}
	}

	return nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(descriptors []Descriptor, directives ...Directive) *Registry {
	reg, err := NewRegistry(descriptors, directives...)
	if err != nil {
		panic(err)
	}

	return reg
}

// DefaultRegistry returns the registry of every option optset recognizes.
var DefaultRegistry = sync.OnceValue(func() *Registry {
	return MustRegistry(optionTable(), directiveTable()...)
})

// Lookup returns the descriptor named name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	i, ok := r.index[name]
	if !ok {
		return Descriptor{}, false
	}

	return r.descriptors[i], true
}

// Scope returns the scope of the option named name.
func (r *Registry) Scope(name string) (Scope, bool) {
	d, ok := r.Lookup(name)
	return d.Scope, ok
}

// Descriptors returns every descriptor in declaration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)

	return out
}

// Directives returns every directive in declaration order.
func (r *Registry) Directives() []Directive {
	out := make([]Directive, len(r.directives))
	copy(out, r.directives)

	return out
}

// Directive returns the directive bound to flag.
func (r *Registry) Directive(flag string) (Directive, bool) {
	i, ok := r.directive[flag]
	if !ok {
		return Directive{}, false
	}

	return r.directives[i], true
}

// Info describes every option for listings.
func (r *Registry) Info() []m.OptionInfo {
	infos := make([]m.OptionInfo, 0, len(r.descriptors))

	for _, d := range r.descriptors {
		flagText := ""
		if d.Flag != "" {
			flagText = "--" + d.Flag
			if d.Short != "" {
				flagText = "-" + d.Short + ", " + flagText
			}

			for _, a := range d.Aliases {
				flagText += ", --" + a
			}
		}

		def := "null"
		if encoded, err := json.Marshal(d.def); err == nil {
			def = string(encoded)
		}

		infos = append(infos, m.OptionInfo{
			Name:    d.Name,
			Scope:   d.Scope.String(),
			Kind:    d.Kind.String(),
			Flag:    flagText,
			Default: def,
		})
	}

	return infos
}

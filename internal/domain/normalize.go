package domain

import (
	"fmt"
	"log/slog"
	"slices"

	"gooze.dev/pkg/optset/pkg"
)

// Normalizer turns raw CLI input and config payloads into derived values.
type Normalizer struct {
	registry *Registry
}

// NewNormalizer returns a Normalizer over reg.
func NewNormalizer(reg *Registry) *Normalizer {
	return &Normalizer{registry: reg}
}

// Normalize parses every present raw entry and applies CLI-layer
// directives. All parse failures are collected and returned together.
func (n *Normalizer) Normalize(raw RawInput) (Derived, error) {
	derived := Derived{}

	var errs Errors

	for _, name := range raw.Names() {
		value, _ := raw.Lookup(name)

		if _, ok := n.registry.Directive(name); ok {
			continue
		}

		d, ok := n.registry.Lookup(name)
		if !ok {
			errs = append(errs, &ValidationError{Option: name, Message: "unknown option"})
			continue
		}

		parsed, err := d.Parse(value, SourceCLI)
		if err != nil {
			errs = append(errs, &ParseError{Option: name, Source: SourceCLI, Raw: rawText(value), Err: err})
			continue
		}

		derived[name] = DerivedValue{Scope: d.Scope, Value: parsed, Source: SourceCLI}
	}

	for name, v := range n.directives(raw, LayerCLI) {
		derived[name] = v
	}

	slog.Debug("normalized cli input", "present", raw.Len(), "derived", len(derived), "errors", len(errs))

	return derived, errs.ErrOrNil()
}

// DefaultOverrides returns the values of default-layer directives present
// in raw. They rank below config files and above the built-in defaults.
func (n *Normalizer) DefaultOverrides(raw RawInput) Derived {
	return n.directives(raw, LayerDefault)
}

func (n *Normalizer) directives(raw RawInput, layer DirectiveLayer) Derived {
	out := Derived{}

	for _, dir := range n.registry.directives {
		if dir.Layer != layer {
			continue
		}

		value, ok := raw.Lookup(dir.Flag)
		if !ok {
			continue
		}

		if on, err := asBool(value, SourceCLI); err != nil || !on {
			continue
		}

		target, _ := n.registry.Lookup(dir.Target)

		// NewRegistry already checked that the value parses.
		parsed, _ := target.Parse(dir.Value, SourceCLI)
		out[dir.Target] = DerivedValue{Scope: target.Scope, Value: parsed, Source: SourceCLI}
	}

	return out
}

// NormalizeConfig parses a root config payload. Every scope is allowed.
func (n *Normalizer) NormalizeConfig(obj pkg.Object) (Derived, error) {
	return n.normalizeConfig(obj, "", ScopeShared, ScopeGlobal, ScopeProject)
}

// NormalizeProject parses an inline project payload. A project may only set
// project-scoped options.
func (n *Normalizer) NormalizeProject(obj pkg.Object, project string) (Derived, error) {
	return n.normalizeConfig(obj, project, ScopeProject)
}

func (n *Normalizer) normalizeConfig(obj pkg.Object, project string, allowed ...Scope) (Derived, error) {
	derived := Derived{}

	var errs Errors

	for _, member := range obj {
		if member.Value == nil {
			continue
		}

		d, ok := n.registry.Lookup(member.Key)
		if !ok {
			errs = append(errs, &ValidationError{Option: member.Key, Project: project, Message: "unknown option"})
			continue
		}

		if !slices.Contains(allowed, d.Scope) {
			errs = append(errs, &ValidationError{
				Option:  member.Key,
				Project: project,
				Message: fmt.Sprintf("%s option cannot be set per project", d.Scope),
			})

			continue
		}

		parsed, err := d.Parse(member.Value, SourceConfig)
		if err != nil {
			errs = append(errs, &ParseError{
				Option:  member.Key,
				Project: project,
				Source:  SourceConfig,
				Raw:     rawText(member.Value),
				Err:     err,
			})

			continue
		}

		derived[member.Key] = DerivedValue{Scope: d.Scope, Value: parsed, Source: SourceConfig}
	}

	return derived, errs.ErrOrNil()
}

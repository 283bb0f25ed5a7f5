package domain

import (
	"maps"
	"slices"

	m "gooze.dev/pkg/optset/internal/model"
	"gooze.dev/pkg/optset/pkg"
)

// DerivedValue is a parsed option value tagged with its scope and source.
type DerivedValue struct {
	Scope  Scope
	Value  any
	Source Source
}

// Derived maps option names to parsed values.
type Derived map[string]DerivedValue

// Merged maps every option of one scope to its winning value.
type Merged map[string]DerivedValue

// Sources reports where each merged value came from.
func (mg Merged) Sources() map[string]Source {
	out := make(map[string]Source, len(mg))
	for name, v := range mg {
		out[name] = v.Source
	}

	return out
}

// Merger folds derived layers over the registry defaults.
type Merger struct {
	registry *Registry
}

// NewMerger returns a Merger over reg.
func NewMerger(reg *Registry) *Merger {
	return &Merger{registry: reg}
}

// Merge picks a value for every option of scope. Layers are ordered by
// precedence: the first layer holding a non-nil value wins, otherwise the
// option's default applies. Lists replace, they never concatenate.
func (mg *Merger) Merge(scope Scope, layers ...Derived) Merged {
	out := Merged{}

	for _, d := range mg.registry.descriptors {
		if d.Scope != scope {
			continue
		}

		out[d.Name] = mg.pick(d, layers)
	}

	return out
}

func (mg *Merger) pick(d Descriptor, layers []Derived) DerivedValue {
	for _, layer := range layers {
		if v, ok := layer[d.Name]; ok && v.Value != nil {
			return DerivedValue{Scope: d.Scope, Value: cloneValue(v.Value), Source: v.Source}
		}
	}

	return DerivedValue{Scope: d.Scope, Value: d.Default(), Source: SourceDefault}
}

// cloneValue deep-copies the value shapes parse functions produce.
func cloneValue(v any) any {
	switch x := v.(type) {
	case []string:
		return slices.Clone(x)
	case []m.Path:
		return slices.Clone(x)
	case []m.Glob:
		return slices.Clone(x)
	case []m.Pair:
		return slices.Clone(x)
	case []m.CoverageReporter:
		return slices.Clone(x)
	case []m.ReporterConfig:
		out := slices.Clone(x)
		for i := range out {
			out[i].Options = cloneMap(out[i].Options)
		}

		return out
	case []m.WatchPlugin:
		out := slices.Clone(x)
		for i := range out {
			out[i].Config = cloneMap(out[i].Config)
		}

		return out
	case map[string]any:
		return cloneMap(x)
	case map[m.Path]bool:
		return maps.Clone(x)
	case map[string]map[string]bool:
		if x == nil {
			return x
		}

		out := make(map[string]map[string]bool, len(x))
		for k, inner := range x {
			out[k] = maps.Clone(inner)
		}

		return out
	case m.CoverageThreshold:
		return x.Clone()
	case m.HasteConfig:
		x.DefaultPlatform = clonePtr(x.DefaultPlatform)
		x.Platforms = slices.Clone(x.Platforms)
		x.ProvidesModuleNodeModules = slices.Clone(x.ProvidesModuleNodeModules)

		return x
	case *m.Path:
		return clonePtr(x)
	case *string:
		return clonePtr(x)
	case *bool:
		return clonePtr(x)
	case *m.DisplayName:
		return clonePtr(x)
	case pkg.Object:
		out := make(pkg.Object, len(x))
		for i, member := range x {
			out[i] = pkg.Member{Key: member.Key, Value: cloneValue(member.Value)}
		}

		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = cloneValue(item)
		}

		return out
	}

	return v
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}

	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}

	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}

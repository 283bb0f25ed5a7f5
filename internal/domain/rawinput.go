package domain

import (
	"maps"
	"slices"
)

// RawInput is the immutable set of raw command-line values for one
// invocation, keyed by option (or directive) name. Values are strings,
// bools, numbers or string lists; nil means absent.
type RawInput struct {
	values map[string]any
}

// NewRawInput copies values into a RawInput.
func NewRawInput(values map[string]any) RawInput {
	copied := make(map[string]any, len(values))

	for name, value := range values {
		if list, ok := value.([]string); ok {
			value = slices.Clone(list)
		}

		copied[name] = value
	}

	return RawInput{values: copied}
}

// Lookup returns the raw value for name. Nil values count as absent.
func (r RawInput) Lookup(name string) (any, bool) {
	value, ok := r.values[name]
	if !ok || value == nil {
		return nil, false
	}

	if list, isList := value.([]string); isList {
		return slices.Clone(list), true
	}

	return value, true
}

// Names returns the present names in sorted order.
func (r RawInput) Names() []string {
	names := make([]string, 0, len(r.values))
	for _, name := range slices.Sorted(maps.Keys(r.values)) {
		if r.values[name] != nil {
			names = append(names, name)
		}
	}

	return names
}

// Len returns the number of present values.
func (r RawInput) Len() int {
	return len(r.Names())
}

// Package pkg provides small utilities shared by optset packages.
package pkg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Member is a single key/value entry of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a decoded JSON or YAML mapping that keeps its keys in the order
// they were written. Nested mappings are Objects, sequences are []any.
type Object []Member

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for _, member := range o {
		if member.Key == key {
			return member.Value, true
		}
	}

	return nil, false
}

// Keys returns the keys in order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, member := range o {
		keys = append(keys, member.Key)
	}

	return keys
}

// With returns a copy of o with key set to value. An existing key keeps its
// position.
func (o Object) With(key string, value any) Object {
	out := make(Object, 0, len(o)+1)
	replaced := false

	for _, member := range o {
		if member.Key == key {
			member.Value = value
			replaced = true
		}

		out = append(out, member)
	}

	if !replaced {
		out = append(out, Member{Key: key, Value: value})
	}

	return out
}

// Without returns a copy of o without the given keys.
func (o Object) Without(keys ...string) Object {
	out := make(Object, 0, len(o))

outer:
	for _, member := range o {
		for _, key := range keys {
			if member.Key == key {
				continue outer
			}
		}

		out = append(out, member)
	}

	return out
}

// Map converts o, recursively, into plain Go maps and slices.
func (o Object) Map() map[string]any {
	out := make(map[string]any, len(o))
	for _, member := range o {
		out[member.Key] = Plain(member.Value)
	}

	return out
}

// Plain converts Objects nested anywhere in v into map[string]any.
func Plain(v any) any {
	switch x := v.(type) {
	case Object:
		return x.Map()
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = Plain(item)
		}

		return out
	default:
		return v
	}
}

// MarshalJSON emits o as a JSON object in key order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, member := range o {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(member.Key)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(member.Value)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", member.Key, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML emits o as a mapping in key order.
func (o Object) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, member := range o {
		value := &yaml.Node{}
		if err := value.Encode(member.Value); err != nil {
			return nil, fmt.Errorf("encode %q: %w", member.Key, err)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: member.Key},
			value,
		)
	}

	return node, nil
}

// FromNode converts a decoded YAML node into Objects, []any and scalars.
// JSON documents decode the same way since YAML is a superset of JSON.
func FromNode(node *yaml.Node) (any, error) {
	if node == nil || node.Kind == 0 {
		return nil, nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}

		return FromNode(node.Content[0])
	case yaml.MappingNode:
		obj := make(Object, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]

			decoded, err := FromNode(value)
			if err != nil {
				return nil, err
			}

			obj = append(obj, Member{Key: key.Value, Value: decoded})
		}

		return obj, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))

		for _, child := range node.Content {
			decoded, err := FromNode(child)
			if err != nil {
				return nil, err
			}

			items = append(items, decoded)
		}

		return items, nil
	case yaml.AliasNode:
		return FromNode(node.Alias)
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return value, nil
	}

	return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
}

// DecodeJSON parses a single JSON value. Objects keep their key order;
// integral numbers become int, other numbers float64.
func DecodeJSON(text string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	value, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
	}

	return value, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}

		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		}

		return nil, fmt.Errorf("unexpected delimiter %q at offset %d", t, dec.InputOffset())
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), nil
		}

		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", t, err)
		}

		return f, nil
	default:
		// string, bool or nil
		return t, nil
	}
}

func decodeJSONObject(dec *json.Decoder) (Object, error) {
	obj := Object{}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string at offset %d", dec.InputOffset())
		}

		value, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}

		obj = append(obj, Member{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return obj, nil
}

func decodeJSONArray(dec *json.Decoder) ([]any, error) {
	items := []any{}

	for dec.More() {
		value, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}

		items = append(items, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return items, nil
}

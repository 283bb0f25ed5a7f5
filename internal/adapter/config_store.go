// Package adapter contains infrastructure adapters for the optset CLI.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
	"gopkg.in/yaml.v3"

	m "gooze.dev/pkg/optset/internal/model"
	"gooze.dev/pkg/optset/pkg"
)

// ConfigFileNames lists the file names Find looks for, in priority order.
var ConfigFileNames = []string{"optset.yaml", "optset.yml", "optset.json", "optset.hcl"}

// ErrConfigExists is returned when WriteDefaults would overwrite a file.
var ErrConfigExists = errors.New("config file already exists")

// ConfigStore reads and writes option config files. The domain only ever
// sees decoded payloads, never the file system.
type ConfigStore interface {
	// Find returns the first config file in dir, if any.
	Find(ctx context.Context, dir m.Path) (m.Path, bool, error)

	// Load decodes the config file at path. The format follows the extension:
	// .hcl files are HCL, everything else is YAML (which covers JSON).
	Load(ctx context.Context, path m.Path) (pkg.Object, error)

	// WriteDefaults creates path holding payload. It never overwrites.
	WriteDefaults(ctx context.Context, path m.Path, payload pkg.Object) error
}

// LocalConfigStore is the file system backed ConfigStore.
type LocalConfigStore struct{}

// NewLocalConfigStore constructs a LocalConfigStore.
func NewLocalConfigStore() *LocalConfigStore {
	return &LocalConfigStore{}
}

// Find implements ConfigStore.
func (s *LocalConfigStore) Find(ctx context.Context, dir m.Path) (m.Path, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	for _, name := range ConfigFileNames {
		candidate := filepath.Join(string(dir), name)

		info, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return "", false, err
		}

		if info.IsDir() {
			continue
		}

		slog.Debug("found config file", "path", candidate)

		return m.Path(candidate), true, nil
	}

	return "", false, nil
}

// Load implements ConfigStore.
func (s *LocalConfigStore) Load(ctx context.Context, path m.Path) (pkg.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := os.ReadFile(string(path))
	if err != nil {
		return nil, err
	}

	if isHCL(path) {
		return decodeHCL(src, string(path))
	}

	return decodeYAML(src)
}

func isHCL(path m.Path) bool {
	return strings.EqualFold(filepath.Ext(string(path)), ".hcl")
}

func decodeYAML(src []byte) (pkg.Object, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(src, &node); err != nil {
		return nil, err
	}

	value, err := pkg.FromNode(&node)
	if err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case nil:
		return pkg.Object{}, nil
	case pkg.Object:
		return v, nil
	}

	return nil, errors.New("top level must be a mapping of option names to values")
}

// decodeHCL reads top-level attributes in source order.
func decodeHCL(src []byte, filename string) (pkg.Object, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}

	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	obj := make(pkg.Object, 0, len(ordered))

	for _, attr := range ordered {
		native, err := exprToNative(attr.Expr)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %q: %w", attr.Name, err)
		}

		obj = append(obj, pkg.Member{Key: attr.Name, Value: native})
	}

	return obj, nil
}

// exprToNative evaluates expr without variables or functions. Object
// constructors are walked item by item so their keys keep source order.
func exprToNative(expr hcl.Expression) (any, error) {
	switch e := expr.(type) {
	case *hclsyntax.ObjectConsExpr:
		obj := make(pkg.Object, 0, len(e.Items))

		for _, item := range e.Items {
			key, diags := item.KeyExpr.Value(nil)
			if diags.HasErrors() {
				return nil, diags
			}

			key, err := convert.Convert(key, cty.String)
			if err != nil || key.IsNull() || !key.IsKnown() {
				return nil, fmt.Errorf("object key at %s must be a string", item.KeyExpr.Range())
			}

			native, err := exprToNative(item.ValueExpr)
			if err != nil {
				return nil, fmt.Errorf("in key %q: %w", key.AsString(), err)
			}

			obj = append(obj, pkg.Member{Key: key.AsString(), Value: native})
		}

		return obj, nil
	case *hclsyntax.TupleConsExpr:
		items := make([]any, 0, len(e.Exprs))

		for _, elem := range e.Exprs {
			native, err := exprToNative(elem)
			if err != nil {
				return nil, err
			}

			items = append(items, native)
		}

		return items, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}

	return ctyToNative(val)
}

// ctyToNative converts a cty value into the shapes pkg.DecodeJSON produces.
// A cty object has no key order, so its attributes come out sorted by name.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		var i int
		if err := gocty.FromCtyValue(v, &i); err == nil {
			return i, nil
		}

		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number: %w", err)
		}

		return f, nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		items := make([]any, 0, v.LengthInt())

		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()

			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}

			items = append(items, native)
		}

		return items, nil
	case ty.IsObjectType() || ty.IsMapType():
		obj := pkg.Object{}

		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()

			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", key.AsString(), err)
			}

			obj = append(obj, pkg.Member{Key: key.AsString(), Value: native})
		}

		return obj, nil
	}

	return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
}

// nativeToCty is the inverse of ctyToNative.
func nativeToCty(v any) (cty.Value, error) {
	switch x := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(x), nil
	case bool:
		return cty.BoolVal(x), nil
	case int:
		return cty.NumberIntVal(int64(x)), nil
	case float64:
		return cty.NumberFloatVal(x), nil
	case []any:
		if len(x) == 0 {
			return cty.EmptyTupleVal, nil
		}

		items := make([]cty.Value, len(x))
		for i, item := range x {
			val, err := nativeToCty(item)
			if err != nil {
				return cty.NilVal, err
			}

			items[i] = val
		}

		return cty.TupleVal(items), nil
	case pkg.Object:
		if len(x) == 0 {
			return cty.EmptyObjectVal, nil
		}

		attrs := make(map[string]cty.Value, len(x))
		for _, member := range x {
			val, err := nativeToCty(member.Value)
			if err != nil {
				return cty.NilVal, fmt.Errorf("%q: %w", member.Key, err)
			}

			attrs[member.Key] = val
		}

		return cty.ObjectVal(attrs), nil
	}

	return cty.NilVal, fmt.Errorf("unsupported value %T", v)
}

// WriteDefaults implements ConfigStore.
func (s *LocalConfigStore) WriteDefaults(ctx context.Context, path m.Path, payload pkg.Object) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := encodePayload(path, payload)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(string(path), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s: %w", path, ErrConfigExists)
	}

	if err != nil {
		return err
	}

	defer func() {
		_ = f.Close()
	}()

	if _, err := f.Write(content); err != nil {
		return err
	}

	return f.Close()
}

func encodePayload(path m.Path, payload pkg.Object) ([]byte, error) {
	switch {
	case isHCL(path):
		file := hclwrite.NewEmptyFile()
		body := file.Body()

		for _, member := range payload {
			val, err := nativeToCty(member.Value)
			if err != nil {
				return nil, fmt.Errorf("encode %q: %w", member.Key, err)
			}

			body.SetAttributeValue(member.Key, val)
		}

		return file.Bytes(), nil
	case strings.EqualFold(filepath.Ext(string(path)), ".json"):
		out, err := payload.MarshalJSON()
		if err != nil {
			return nil, err
		}

		var indented bytes.Buffer
		if err := json.Indent(&indented, out, "", "  "); err != nil {
			return nil, err
		}

		indented.WriteByte('\n')

		return indented.Bytes(), nil
	}

	return yaml.Marshal(payload)
}

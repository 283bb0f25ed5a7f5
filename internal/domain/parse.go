package domain

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	m "gooze.dev/pkg/optset/internal/model"
	"gooze.dev/pkg/optset/pkg"
)

// Parse functions are pure: they see only the value handed to them.

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case int, int64, float64:
		return "a number"
	case string:
		return "a string"
	case []string, []any:
		return "a list"
	case pkg.Object, map[string]any:
		return "an object"
	}

	return fmt.Sprintf("%T", v)
}

func typeError(want string, v any) error {
	return fmt.Errorf("expected %s, got %s", want, describe(v))
}

// rawText renders a value for error messages.
func rawText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []string:
		return "[" + strings.Join(x, ", ") + "]"
	}

	return fmt.Sprint(pkg.Plain(v))
}

func asBool(v any, _ Source) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}

	return false, typeError("a boolean", v)
}

func asOptionalBool(v any, src Source) (*bool, error) {
	b, err := asBool(v, src)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func asInt(v any, _ Source) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("expected an integer, got %v", x)
		}

		// -math.MinInt is MaxInt+1, exact as a float64.
		if x < math.MinInt || x >= -math.MinInt {
			return 0, fmt.Errorf("%v is out of range", x)
		}

		return int(x), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, errors.New("expected an integer")
		}

		return n, nil
	}

	return 0, typeError("an integer", v)
}

func asText[T ~string](v any, _ Source) (T, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeError("a string", v)
	}

	return T(s), nil
}

// asOptional treats an empty string as unset.
func asOptional[T ~string](v any, src Source) (*T, error) {
	s, err := asText[T](v, src)
	if err != nil {
		return nil, err
	}

	if s == "" {
		return nil, nil
	}

	return &s, nil
}

func asList[T ~string](v any, _ Source) ([]T, error) {
	switch x := v.(type) {
	case []string:
		out := make([]T, len(x))
		for i, s := range x {
			out[i] = T(s)
		}

		return out, nil
	case []any:
		out := make([]T, len(x))
		for i, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d: %w", i, typeError("a string", item))
			}

			out[i] = T(s)
		}

		return out, nil
	}

	return nil, typeError("a list of strings", v)
}

// asOneOrList wraps a lone string into a one-element list.
func asOneOrList[T ~string](v any, src Source) ([]T, error) {
	if s, ok := v.(string); ok {
		return []T{T(s)}, nil
	}

	return asList[T](v, src)
}

// structured decodes JSON text; other values are already structured.
func structured(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}

	decoded, err := pkg.DecodeJSON(s)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return decoded, nil
}

func asObject(v any) (pkg.Object, error) {
	decoded, err := structured(v)
	if err != nil {
		return nil, err
	}

	switch x := decoded.(type) {
	case pkg.Object:
		return x, nil
	case map[string]any:
		obj := make(pkg.Object, 0, len(x))
		for key, value := range x {
			obj = append(obj, pkg.Member{Key: key, Value: value})
		}

		return obj, nil
	}

	return nil, typeError("an object", decoded)
}

// parseBail maps true to 1, false to 0 and numeric text to its value.
func parseBail(v any, src Source) (int, error) {
	switch x := v.(type) {
	case bool:
		if x {
			return 1, nil
		}

		return 0, nil
	case string:
		if b, err := asBool(x, src); err == nil {
			return parseBail(b, src)
		}

		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, errors.New("expected a boolean or a number of failures")
		}

		return n, nil
	}

	n, err := asInt(v, src)
	if err != nil {
		return 0, errors.New("expected a boolean or a number of failures")
	}

	return n, nil
}

func parseExitCode(v any, src Source) (int, error) {
	n, err := asInt(v, src)
	if err != nil {
		return 0, errors.New("expected an integer exit code")
	}

	return n, nil
}

func parseGlobals(v any, _ Source) (map[string]any, error) {
	obj, err := asObject(v)
	if err != nil {
		return nil, err
	}

	return obj.Map(), nil
}

// parsePairs keeps the written key order: the first matching pattern wins
// downstream. A list of [pattern, target] pairs is accepted as well.
func parsePairs(v any, _ Source) ([]m.Pair, error) {
	decoded, err := structured(v)
	if err != nil {
		return nil, err
	}

	if list, ok := decoded.([]any); ok {
		pairs := make([]m.Pair, 0, len(list))

		for i, item := range list {
			tuple, ok := item.([]any)
			if !ok || len(tuple) != 2 {
				return nil, fmt.Errorf("item %d: expected a [pattern, target] pair", i)
			}

			pattern, okPattern := tuple[0].(string)
			target, okTarget := tuple[1].(string)

			if !okPattern || !okTarget {
				return nil, fmt.Errorf("item %d: pattern and target must be strings", i)
			}

			pairs = append(pairs, m.Pair{Pattern: pattern, Target: target})
		}

		return pairs, nil
	}

	obj, err := asObject(decoded)
	if err != nil {
		return nil, err
	}

	pairs := make([]m.Pair, 0, len(obj))

	for _, member := range obj {
		target, ok := member.Value.(string)
		if !ok {
			return nil, fmt.Errorf("%q: %w", member.Key, typeError("a string target", member.Value))
		}

		pairs = append(pairs, m.Pair{Pattern: member.Key, Target: target})
	}

	return pairs, nil
}

func parseHaste(v any, src Source) (m.HasteConfig, error) {
	var cfg m.HasteConfig

	obj, err := asObject(v)
	if err != nil {
		return cfg, err
	}

	for _, member := range obj {
		var err error

		switch member.Key {
		case "computeSha1":
			cfg.ComputeSha1, err = asBool(member.Value, src)
		case "defaultPlatform":
			if member.Value != nil {
				cfg.DefaultPlatform, err = asOptional[string](member.Value, src)
			}
		case "hasteImplModulePath":
			cfg.HasteImplModulePath, err = asText[string](member.Value, src)
		case "platforms":
			cfg.Platforms, err = asList[string](member.Value, src)
		case "providesModuleNodeModules":
			cfg.ProvidesModuleNodeModules, err = asList[string](member.Value, src)
		case "throwOnModuleCollision":
			cfg.ThrowOnModuleCollision, err = asBool(member.Value, src)
		default:
			err = errors.New("unknown key")
		}

		if err != nil {
			return m.HasteConfig{}, fmt.Errorf("%q: %w", member.Key, err)
		}
	}

	return cfg, nil
}

func parseThreshold(v any, _ Source) (m.CoverageThreshold, error) {
	obj, err := asObject(v)
	if err != nil {
		return nil, err
	}

	threshold := make(m.CoverageThreshold, len(obj))

	for _, member := range obj {
		metrics, err := asObject(member.Value)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", member.Key, err)
		}

		values := make(map[string]float64, len(metrics))

		for _, metric := range metrics {
			switch n := metric.Value.(type) {
			case int:
				values[metric.Key] = float64(n)
			case float64:
				values[metric.Key] = n
			default:
				return nil, fmt.Errorf("%q.%q: %w", member.Key, metric.Key, typeError("a number", metric.Value))
			}
		}

		threshold[member.Key] = values
	}

	return threshold, nil
}

// parseUpdateSnapshot maps true to "all" and false to "none". The literal
// states, "new" among them, come only from config files.
func parseUpdateSnapshot(v any, src Source) (m.SnapshotUpdateState, error) {
	if s, ok := v.(string); ok && src != SourceCLI {
		return m.SnapshotUpdateState(s), nil
	}

	b, err := asBool(v, src)
	if err != nil {
		return "", err
	}

	if b {
		return m.SnapshotAll, nil
	}

	return m.SnapshotNone, nil
}

func parseOnlyFrom(v any, src Source) (map[m.Path]bool, error) {
	if obj, ok := v.(pkg.Object); ok {
		out := make(map[m.Path]bool, len(obj))

		for _, member := range obj {
			b, err := asBool(member.Value, src)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", member.Key, err)
			}

			out[m.Path(member.Key)] = b
		}

		return out, nil
	}

	paths, err := asList[m.Path](v, src)
	if err != nil {
		return nil, err
	}

	out := make(map[m.Path]bool, len(paths))
	for _, p := range paths {
		out[p] = true
	}

	return out, nil
}

// parseCollectCoverageFrom accepts a glob, a JSON array of globs, or a list.
func parseCollectCoverageFrom(v any, src Source) ([]m.Glob, error) {
	if s, ok := v.(string); ok && strings.HasPrefix(strings.TrimSpace(s), "[") {
		decoded, err := structured(s)
		if err != nil {
			return nil, err
		}

		return asList[m.Glob](decoded, src)
	}

	return asOneOrList[m.Glob](v, src)
}

// parseTestPathPattern joins a list of patterns into one alternation.
func parseTestPathPattern(v any, src Source) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}

	patterns, err := asList[string](v, src)
	if err != nil {
		return "", err
	}

	return strings.Join(patterns, "|"), nil
}

func parseOutputFile(v any, src Source) (*m.Path, error) {
	p, err := asOptional[m.Path](v, src)
	if err != nil || p == nil {
		return p, err
	}

	cleaned := m.Path(filepath.Clean(string(*p)))

	return &cleaned, nil
}

func parseDisplayName(v any, src Source) (*m.DisplayName, error) {
	if s, ok := v.(string); ok {
		return &m.DisplayName{Name: s}, nil
	}

	obj, err := asObject(v)
	if err != nil {
		return nil, typeError("a string or an object with name and color", v)
	}

	name := &m.DisplayName{}

	for _, member := range obj {
		var err error

		switch member.Key {
		case "name":
			name.Name, err = asText[string](member.Value, src)
		case "color":
			name.Color, err = asText[m.DisplayNameColor](member.Value, src)
		default:
			err = errors.New("unknown key")
		}

		if err != nil {
			return nil, fmt.Errorf("%q: %w", member.Key, err)
		}
	}

	return name, nil
}

// modulesWithOptions parses entries that are either a module path or a
// [path, options] pair.
func modulesWithOptions(v any, src Source) ([]string, []map[string]any, error) {
	if list, ok := v.([]string); ok {
		return list, make([]map[string]any, len(list)), nil
	}

	if s, ok := v.(string); ok {
		return []string{s}, []map[string]any{nil}, nil
	}

	items, ok := v.([]any)
	if !ok {
		return nil, nil, typeError("a list", v)
	}

	paths := make([]string, 0, len(items))
	options := make([]map[string]any, 0, len(items))

	for i, item := range items {
		switch x := item.(type) {
		case string:
			paths = append(paths, x)
			options = append(options, nil)
		case []any:
			if len(x) != 2 {
				return nil, nil, fmt.Errorf("item %d: expected [path, options]", i)
			}

			path, err := asText[string](x[0], src)
			if err != nil {
				return nil, nil, fmt.Errorf("item %d: %w", i, err)
			}

			obj, err := asObject(x[1])
			if err != nil {
				return nil, nil, fmt.Errorf("item %d: %w", i, err)
			}

			paths = append(paths, path)
			options = append(options, obj.Map())
		default:
			return nil, nil, fmt.Errorf("item %d: %w", i, typeError("a path or [path, options]", item))
		}
	}

	return paths, options, nil
}

func parseReporters(v any, src Source) ([]m.ReporterConfig, error) {
	paths, options, err := modulesWithOptions(v, src)
	if err != nil {
		return nil, err
	}

	out := make([]m.ReporterConfig, len(paths))
	for i := range paths {
		out[i] = m.ReporterConfig{Path: paths[i], Options: options[i]}
	}

	return out, nil
}

func parseWatchPlugins(v any, src Source) ([]m.WatchPlugin, error) {
	paths, options, err := modulesWithOptions(v, src)
	if err != nil {
		return nil, err
	}

	out := make([]m.WatchPlugin, len(paths))
	for i := range paths {
		out[i] = m.WatchPlugin{Path: paths[i], Config: options[i]}
	}

	return out, nil
}

func parseEnabledTestsMap(v any, src Source) (map[string]map[string]bool, error) {
	obj, err := asObject(v)
	if err != nil {
		return nil, err
	}

	out := make(map[string]map[string]bool, len(obj))

	for _, file := range obj {
		tests, err := asObject(file.Value)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", file.Key, err)
		}

		enabled := make(map[string]bool, len(tests))

		for _, test := range tests {
			b, err := asBool(test.Value, src)
			if err != nil {
				return nil, fmt.Errorf("%q.%q: %w", file.Key, test.Key, err)
			}

			enabled[test.Key] = b
		}

		out[file.Key] = enabled
	}

	return out, nil
}

// parseIdentifiers canonicalizes extraGlobals to trimmed names.
func parseIdentifiers(v any, src Source) ([]string, error) {
	names, err := asList[string](v, src)
	if err != nil {
		return nil, err
	}

	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}

	return names, nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
	"gooze.dev/pkg/optset/internal/domain"
)

const (
	nonFlagArgsOption     = "nonFlagArgs"
	testPathPatternOption = "testPathPattern"
)

// bindOptionFlags declares one flag per option flag, alias and directive.
func bindOptionFlags(fs *pflag.FlagSet, reg *domain.Registry) {
	for _, d := range reg.Descriptors() {
		if d.Flag == "" {
			continue
		}

		declareOptionFlag(fs, d, d.Flag, d.Short, d.Usage)

		for _, alias := range d.Aliases {
			declareOptionFlag(fs, d, alias, "", fmt.Sprintf("alias for --%s", d.Flag))
		}
	}

	for _, dir := range reg.Directives() {
		fs.BoolP(dir.Flag, dir.Short, false, dir.Usage)
	}
}

func declareOptionFlag(fs *pflag.FlagSet, d domain.Descriptor, name, short, usage string) {
	switch d.FlagType {
	case domain.FlagBool:
		fs.BoolP(name, short, false, usage)
	case domain.FlagInt:
		fs.IntP(name, short, 0, usage)
	case domain.FlagStrings:
		fs.StringArrayP(name, short, nil, usage)
	case domain.FlagBoolOrString:
		fs.StringP(name, short, "", usage)
		fs.Lookup(name).NoOptDefVal = "true"
	default:
		fs.StringP(name, short, "", usage)
	}
}

// rawInputFromFlags collects the flags the user actually set. Positional
// args become nonFlagArgs and, unless given explicitly, the test path pattern.
func rawInputFromFlags(fs *pflag.FlagSet, reg *domain.Registry, args []string) domain.RawInput {
	values := map[string]any{}

	for _, d := range reg.Descriptors() {
		if d.Flag == "" {
			continue
		}

		for _, name := range append([]string{d.Flag}, d.Aliases...) {
			if value, ok := changedFlagValue(fs, name, d.FlagType); ok {
				values[d.Name] = value
			}
		}
	}

	for _, dir := range reg.Directives() {
		if value, ok := changedFlagValue(fs, dir.Flag, domain.FlagBool); ok {
			values[dir.Flag] = value
		}
	}

	if len(args) > 0 {
		values[nonFlagArgsOption] = args

		if _, ok := values[testPathPatternOption]; !ok {
			values[testPathPatternOption] = args
		}
	}

	return domain.NewRawInput(values)
}

func changedFlagValue(fs *pflag.FlagSet, name string, ft domain.FlagType) (any, bool) {
	flag := fs.Lookup(name)
	if flag == nil || !flag.Changed {
		return nil, false
	}

	switch ft {
	case domain.FlagBool:
		v, err := fs.GetBool(name)
		return v, err == nil
	case domain.FlagInt:
		v, err := fs.GetInt(name)
		return v, err == nil
	case domain.FlagStrings:
		v, err := fs.GetStringArray(name)
		return v, err == nil
	}

	return flag.Value.String(), true
}

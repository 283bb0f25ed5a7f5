// Package controller provides output adapters for resolved options and
// configuration errors.
package controller

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	m "gooze.dev/pkg/optset/internal/model"
)

// Format selects how resolved options are printed.
type Format string

// Available output formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatYAML, "yml", "":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}

	return "", fmt.Errorf("unknown output format %q (want yaml or json)", value)
}

// UI defines the interface for displaying resolution results.
// Implementations decide on styling; the content is the same.
type UI interface {
	DisplayResolved(ctx context.Context, res *m.Resolved, format Format) error
	DisplayErrors(ctx context.Context, errs []error)
	DisplayOptions(ctx context.Context, options []m.OptionInfo) error
	DisplayValid(ctx context.Context, projects int)
}

// NewUI returns a UI writing through cmd. Styled output is meant for terminals.
func NewUI(cmd *cobra.Command, styled bool) UI {
	return NewSimpleUI(cmd, styled)
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	fd := f.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

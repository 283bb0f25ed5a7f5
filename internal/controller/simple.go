package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "gooze.dev/pkg/optset/internal/model"
	"gooze.dev/pkg/optset/pkg"
)

var (
	errorHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	errorBulletStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	validStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// SimpleUI implements UI using the cobra command's output streams.
type SimpleUI struct {
	cmd    *cobra.Command
	styled bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, styled bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, styled: styled}
}

// DisplayResolved prints the resolved records as YAML or JSON.
func (s *SimpleUI) DisplayResolved(ctx context.Context, res *m.Resolved, format Format) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := renderResolved(res, format)
	if err != nil {
		return err
	}

	_, err = s.cmd.OutOrStdout().Write(out)

	return err
}

func renderResolved(res *m.Resolved, format Format) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")

		if err := enc.Encode(res); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
	default:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)

		if err := enc.Encode(res); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}

		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// DisplayErrors prints every error on stderr under a counted header.
func (s *SimpleUI) DisplayErrors(ctx context.Context, errs []error) {
	if err := ctx.Err(); err != nil {
		return
	}

	writeErrors(s.cmd.ErrOrStderr(), errs, s.styled)
}

func writeErrors(w io.Writer, errs []error, styled bool) {
	header := fmt.Sprintf("Configuration has %s:", pkg.Pluralize("error", len(errs)))
	bullet := "  x "

	if styled {
		header = errorHeaderStyle.Render(header)
		bullet = "  " + errorBulletStyle.Render("✖") + " "
	}

	_, _ = fmt.Fprintln(w, header)

	for _, err := range errs {
		_, _ = fmt.Fprintln(w, bullet+err.Error())
	}
}

// DisplayOptions prints the option table.
func (s *SimpleUI) DisplayOptions(ctx context.Context, options []m.OptionInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderOptionsTable(options))

	return nil
}

func renderOptionsTable(options []m.OptionInfo) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Option", "Scope", "Kind", "Flag", "Default"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)

	for _, opt := range options {
		table.Append([]string{opt.Name, opt.Scope, opt.Kind, opt.Flag, opt.Default})
	}

	table.SetFooter([]string{pkg.Pluralize("option", len(options)), "", "", "", ""})

	table.Render()

	return tableBuffer.String()
}

// DisplayValid confirms a successful validation.
func (s *SimpleUI) DisplayValid(ctx context.Context, projects int) {
	if err := ctx.Err(); err != nil {
		return
	}

	msg := fmt.Sprintf("Configuration is valid (%s).", pkg.Pluralize("project", projects))
	if s.styled {
		msg = validStyle.Render(msg)
	}

	s.printf("%s\n", msg)
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gooze.dev/pkg/optset/internal/domain"
	m "gooze.dev/pkg/optset/internal/model"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a config file holding the default options",
		Long: `Create an option config file (default: ` + defaultInitPath + `) populated with the
built-in defaults so it can be edited manually. The extension picks the
format: .yaml, .yml, .json or .hcl. Existing files are never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targetPath := defaultInitPath
			if len(args) == 1 {
				targetPath = args[0]
			}

			err := workflow.Init(cmd.Context(), domain.InitArgs{Path: m.Path(targetPath)})
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("wrote %s\n", targetPath)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}

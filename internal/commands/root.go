package commands

import (
	"github.com/spf13/cobra"

	"github.com/settle-dev/settle/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "settle",
		Short:   "Batch settlement of client transaction streams",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newProcessCommand())
	rootCmd.AddCommand(newVerifyCommand())

	return rootCmd
}

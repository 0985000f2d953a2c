package commands

import (
	"github.com/spf13/cobra"

	"github.com/bilanco-dev/bilanco/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bilanco",
		Short:   "Balance sheets on the Uniform Chart of Accounts",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("dir", "C", ".", "workspace directory")

	rootCmd.AddCommand(
		newInitCommand(),
		newImportCommand(),
		newSheetsCommand(),
		newTreeCommand(),
		newReconcileCommand(),
		newEditCommand(),
		newCompareCommand(),
		newCatalogCommand(),
	)

	return rootCmd
}

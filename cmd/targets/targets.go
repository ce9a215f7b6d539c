// Package targets provides the targets command implementation for
// inspecting and validating the input lists.
package targets

import (
	"github.com/spf13/cobra"
)

// Command creates the targets command with its subcommands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Inspect the curated and research target lists",
		Long:  `Inspect and validate the curated race list and the research target list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		NewListCommand(),
		NewValidateCommand(),
	)

	return cmd
}

// inputPaths resolves the list paths, preferring flag overrides.
func inputPaths(curatedFlag, targetsFlag, curatedCfg, targetsCfg string) (string, string) {
	curated, targets := curatedCfg, targetsCfg
	if curatedFlag != "" {
		curated = curatedFlag
	}
	if targetsFlag != "" {
		targets = targetsFlag
	}
	return curated, targets
}

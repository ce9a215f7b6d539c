// This file contains the implementation of the validate command that
// checks both input lists for problems without running the pipeline.
package targets

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/keyraces/cmd/common"
	"github.com/jonesrussell/keyraces/internal/domain"
	"github.com/jonesrussell/keyraces/internal/sources"
)

// ErrValidationFailed is returned when any input entry was rejected.
var ErrValidationFailed = errors.New("input validation failed")

// NewValidateCommand creates a new validate command.
func NewValidateCommand() *cobra.Command {
	var curatedFlag, targetsFlag string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the curated and research target lists",
		Long: `Load both input lists, report every malformed or rejected entry,
and fail when any entry was rejected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}

			curatedPath, targetsPath := inputPaths(
				curatedFlag, targetsFlag,
				deps.Config.Inputs.Curated, deps.Config.Inputs.Targets,
			)

			tables := domain.DefaultKeyTables().Extend(
				deps.Config.Aliases.States, deps.Config.Aliases.Offices,
			)
			var warnings []domain.Warning

			records, curatedWarnings, err := sources.NewCuratedStore(curatedPath, tables).Load()
			if err != nil {
				return fmt.Errorf("curated list unreadable: %w", err)
			}
			warnings = append(warnings, curatedWarnings...)

			targets, targetWarnings, err := sources.NewTargetList(targetsPath, tables).Load()
			if err != nil {
				return fmt.Errorf("target list unreadable: %w", err)
			}
			warnings = append(warnings, targetWarnings...)

			deps.Logger.Info("input lists loaded",
				"curated", len(records),
				"targets", len(targets),
				"warnings", len(warnings),
			)

			if len(warnings) == 0 {
				return nil
			}

			for _, w := range warnings {
				deps.Logger.Warn("rejected entry", "kind", w.Kind, "entry", w.Entry, "reason", w.Reason)
			}
			return fmt.Errorf("%w: %d entries rejected", ErrValidationFailed, len(warnings))
		},
	}

	cmd.Flags().StringVar(&curatedFlag, "curated", "", "curated race list (overrides config)")
	cmd.Flags().StringVar(&targetsFlag, "targets", "", "research target list (overrides config)")

	return cmd
}

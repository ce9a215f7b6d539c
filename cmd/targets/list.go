// This file contains the implementation of the list command that
// displays both input lists in a formatted table.
package targets

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/keyraces/cmd/common"
	"github.com/jonesrussell/keyraces/internal/domain"
	"github.com/jonesrussell/keyraces/internal/logger"
	"github.com/jonesrussell/keyraces/internal/sources"
)

// TableRenderer handles the display of input list data in table format.
type TableRenderer struct {
	logger logger.Interface
}

// NewTableRenderer creates a new TableRenderer instance.
func NewTableRenderer(log logger.Interface) *TableRenderer {
	return &TableRenderer{
		logger: log,
	}
}

// RenderCurated formats and displays the curated races in a table.
func (r *TableRenderer) RenderCurated(records []domain.RaceRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Curated races")

	t.AppendHeader(table.Row{"Key", "Title", "Candidates", "Impact Note"})
	for i := range records {
		rec := &records[i]
		t.AppendRow(table.Row{
			rec.Key.String(),
			rec.Title,
			candidateSummary(rec),
			rec.ImpactNote,
		})
	}

	t.Render()
}

// RenderTargets formats and displays the research targets in a table.
func (r *TableRenderer) RenderTargets(targets []sources.Target) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Research targets")

	t.AppendHeader(table.Row{"Key", "Locator"})
	for _, target := range targets {
		t.AppendRow(table.Row{target.Key.String(), target.Locator.String()})
	}

	t.Render()
}

func candidateSummary(rec *domain.RaceRecord) string {
	switch {
	case rec.CandidatesNone:
		return "none"
	case rec.CandidatesUnknown():
		return "unknown"
	}
	names := make([]string, 0, len(rec.Candidates))
	for _, c := range rec.Candidates {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

// NewListCommand creates a new list command.
func NewListCommand() *cobra.Command {
	var curatedFlag, targetsFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List curated races and research targets",
		Long:  `List every entry of the curated race list and the research target list.`,
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
			renderer := NewTableRenderer(deps.Logger)

			records, warnings, err := sources.NewCuratedStore(curatedPath, tables).Load()
			if err != nil {
				return fmt.Errorf("failed to load curated list: %w", err)
			}
			if len(records) == 0 {
				deps.Logger.Info("No curated races configured")
			} else {
				renderer.RenderCurated(records)
			}

			targets, targetWarnings, err := sources.NewTargetList(targetsPath, tables).Load()
			if err != nil {
				return fmt.Errorf("failed to load target list: %w", err)
			}
			warnings = append(warnings, targetWarnings...)
			if len(targets) == 0 {
				deps.Logger.Info("No research targets configured")
			} else {
				renderer.RenderTargets(targets)
			}

			for _, w := range warnings {
				deps.Logger.Warn("input warning", "kind", w.Kind, "entry", w.Entry, "reason", w.Reason)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&curatedFlag, "curated", "", "curated race list (overrides config)")
	cmd.Flags().StringVar(&targetsFlag, "targets", "", "research target list (overrides config)")

	return cmd
}

// Package report implements the report command, which runs the full
// aggregation pipeline once and publishes the result.
package report

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/keyraces/cmd/common"
	"github.com/jonesrussell/keyraces/internal/emailer"
	"github.com/jonesrussell/keyraces/internal/provider"
	"github.com/jonesrussell/keyraces/internal/report"
)

// Options controls a single report run.
type Options struct {
	// Curated overrides the configured curated list path when set.
	Curated string
	// Targets overrides the configured target list path when set.
	Targets string
	// OutDir is where report files are written.
	OutDir string
	// DryRun prints the text report to stdout and writes nothing.
	DryRun bool
	// NoEmail skips delivery even when email is configured.
	NoEmail bool
	// NoHTML disables the HTML rendering.
	NoHTML bool
	// NoText disables the text rendering.
	NoText bool
	// WriteJSON enables the JSON rendering.
	WriteJSON bool
	// SkipEmpty suppresses output entirely when no race was found.
	SkipEmpty bool
}

// Command returns the report command.
func Command() *cobra.Command {
	opts := Options{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Assemble and publish the key races report",
		Long: `Assemble the key races report from the curated list and the
research targets, write it to the output directory, and email it to the
configured recipients.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return err
			}
			return RunOnce(cmd.Context(), deps, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Curated, "curated", "", "curated race list (overrides config)")
	cmd.Flags().StringVar(&opts.Targets, "targets", "", "research target list (overrides config)")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", "reports", "directory for report output")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the text report instead of writing files")
	cmd.Flags().BoolVar(&opts.NoEmail, "no-email", false, "skip email delivery")
	cmd.Flags().BoolVar(&opts.NoHTML, "no-html", false, "skip the HTML rendering")
	cmd.Flags().BoolVar(&opts.NoText, "no-text", false, "skip the text rendering")
	cmd.Flags().BoolVar(&opts.WriteJSON, "write-json", false, "also write the report as JSON")
	cmd.Flags().BoolVar(&opts.SkipEmpty, "skip-empty", false, "write and send nothing when no races were found")

	return cmd
}

// RunOnce executes one full pipeline run. The scheduler reuses it for
// periodic runs.
func RunOnce(ctx context.Context, deps common.CommandDeps, opts Options) error {
	cfg := deps.Config
	log := deps.Logger

	if opts.Curated != "" {
		cfg.Inputs.Curated = opts.Curated
	}
	if opts.Targets != "" {
		cfg.Inputs.Targets = opts.Targets
	}

	adapter, err := provider.ForName(cfg.Provider, cfg.Behavior, log)
	if err != nil {
		return err
	}

	runCtx := ctx
	if cfg.Behavior.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cfg.Behavior.RunTimeout)
		defer cancel()
	}

	assembler := report.NewAssembler(cfg, adapter, log)
	result, err := assembler.Assemble(runCtx)
	if err != nil {
		if errors.Is(err, report.ErrNoInput) {
			return fmt.Errorf("nothing to report: %w", err)
		}
		return err
	}

	if opts.SkipEmpty && len(result.Races) == 0 {
		log.Info("no races found, skipping output", "run_id", result.RunID)
		return nil
	}

	if opts.DryRun {
		fmt.Fprint(os.Stdout, report.RenderText(result))
		return nil
	}

	writer := report.NewSiteWriter(opts.OutDir, !opts.NoText, !opts.NoHTML, opts.WriteJSON, log)
	if _, err := writer.Write(result); err != nil {
		return err
	}

	if opts.NoEmail || len(cfg.Email.Recipients) == 0 {
		return nil
	}
	return sendEmail(deps, result, opts)
}

// sendEmail renders the report for delivery and sends it.
func sendEmail(deps common.CommandDeps, result *report.Report, opts Options) error {
	if err := deps.Config.ValidateSMTP(); err != nil {
		return err
	}

	textBody := report.RenderText(result)
	htmlBody := ""
	if !opts.NoHTML {
		rendered, err := report.RenderHTML(result)
		if err != nil {
			return err
		}
		htmlBody = rendered
	}

	sender := emailer.New(deps.Config.Email, deps.Logger)
	return sender.Send(deps.Config.Email.Subject, textBody, htmlBody)
}

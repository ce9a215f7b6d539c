// Package report assembles the key races report and renders it to
// text, HTML, and JSON.
package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/keyraces/internal/collect"
	"github.com/jonesrussell/keyraces/internal/config"
	"github.com/jonesrussell/keyraces/internal/domain"
	"github.com/jonesrussell/keyraces/internal/logger"
	"github.com/jonesrussell/keyraces/internal/merge"
	"github.com/jonesrussell/keyraces/internal/provider"
	"github.com/jonesrussell/keyraces/internal/rank"
	"github.com/jonesrussell/keyraces/internal/research"
	"github.com/jonesrussell/keyraces/internal/sources"
)

// ErrNoInput indicates neither the curated list nor the target list
// produced anything to report on.
var ErrNoInput = errors.New("no curated races and no research targets")

// Report is the assembled output of one run.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`
	// GeneratedAt is the UTC assembly time.
	GeneratedAt time.Time `json:"generated_at"`
	// Provider names the source adapter used for collection.
	Provider string `json:"provider"`
	// Races in presentation order.
	Races []domain.RaceRecord `json:"races"`
	// Warnings collected across loading, collection, and merging.
	Warnings []domain.Warning `json:"warnings,omitempty"`
}

// Assembler runs the full pipeline: load inputs, collect from the
// source adapter, merge, annotate, and rank.
type Assembler struct {
	curated   *sources.CuratedStore
	targets   *sources.TargetList
	collector *collect.Collector
	merger    *merge.Merger
	ranker    *rank.Ranker
	provider  string
	log       logger.Interface
}

// NewAssembler wires the pipeline around the given adapter.
func NewAssembler(cfg *config.Config, adapter provider.Adapter, log logger.Interface) *Assembler {
	tables := domain.DefaultKeyTables().Extend(cfg.Aliases.States, cfg.Aliases.Offices)

	return &Assembler{
		curated:   sources.NewCuratedStore(cfg.Inputs.Curated, tables),
		targets:   sources.NewTargetList(cfg.Inputs.Targets, tables),
		collector: collect.NewCollector(adapter, cfg.Behavior, log),
		merger:    merge.NewMerger(log),
		ranker:    rank.NewRanker(cfg.Ranking.OfficePriority),
		provider:  adapter.Name(),
		log:       log.WithComponent("report"),
	}
}

// Assemble produces the report for one run. An unreadable input list
// degrades to a warning; only the absence of any input at all is an
// error.
func (a *Assembler) Assemble(ctx context.Context) (*Report, error) {
	runID := uuid.New().String()
	a.log.Info("assembling report", "run_id", runID, "provider", a.provider)

	var warnings []domain.Warning

	curated, curatedWarnings, err := a.curated.Load()
	warnings = append(warnings, curatedWarnings...)
	if err != nil {
		a.log.Warn("curated list unavailable", "error", err)
		warnings = append(warnings, domain.Warning{
			Kind:   domain.WarnParse,
			Entry:  "curated list",
			Reason: err.Error(),
		})
	}

	targets, targetWarnings, err := a.targets.Load()
	warnings = append(warnings, targetWarnings...)
	if err != nil {
		a.log.Warn("target list unavailable", "error", err)
		warnings = append(warnings, domain.Warning{
			Kind:   domain.WarnParse,
			Entry:  "target list",
			Reason: err.Error(),
		})
	}

	if len(curated) == 0 && len(targets) == 0 {
		return nil, ErrNoInput
	}

	scraped, collectWarnings := a.collector.Run(ctx, targets)
	warnings = append(warnings, collectWarnings...)

	records := a.merger.Merge(curated, scraped)
	records = research.Annotate(records)
	records = a.ranker.Rank(records)

	a.log.Info("report assembled",
		"run_id", runID,
		"races", len(records),
		"warnings", len(warnings),
	)

	return &Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Provider:    a.provider,
		Races:       records,
		Warnings:    warnings,
	}, nil
}

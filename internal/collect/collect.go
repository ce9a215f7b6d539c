// Package collect fans research targets out to a source adapter with a
// bounded worker pool and gathers the partial results back in a
// deterministic order.
package collect

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonesrussell/keyraces/internal/config"
	"github.com/jonesrussell/keyraces/internal/domain"
	"github.com/jonesrussell/keyraces/internal/logger"
	"github.com/jonesrussell/keyraces/internal/provider"
	"github.com/jonesrussell/keyraces/internal/sources"
)

// Collector runs extraction for a list of targets with bounded
// concurrency and a per-target timeout. A target that fails produces a
// warning and an empty partial, never an error for the whole run.
type Collector struct {
	adapter  provider.Adapter
	workers  int
	timeout  time.Duration
	maxPages int
	log      logger.Interface
}

// outcome holds the extraction result for a single target, kept in
// input order so warnings and results are reproducible across runs.
type outcome struct {
	target  sources.Target
	partial *provider.PartialRaceData
	warning *domain.Warning
}

// NewCollector creates a collector around the given adapter.
func NewCollector(adapter provider.Adapter, cfg config.BehaviorConfig, log logger.Interface) *Collector {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Collector{
		adapter:  adapter,
		workers:  workers,
		timeout:  cfg.TargetTimeout,
		maxPages: cfg.MaxPages,
		log:      log.WithComponent("collect"),
	}
}

// Run extracts partial race data for every target. The returned map is
// keyed by race key and always has an entry for every attempted
// target, so downstream merging can tell "tried and got nothing" from
// "never targeted". Warnings come back in target order.
func (c *Collector) Run(ctx context.Context, targets []sources.Target) (map[domain.RaceKey]*provider.PartialRaceData, []domain.Warning) {
	warnings := make([]domain.Warning, 0)

	if c.maxPages > 0 && len(targets) > c.maxPages {
		warnings = append(warnings, domain.Warning{
			Kind:   domain.WarnSourceFailure,
			Entry:  fmt.Sprintf("targets[%d:]", c.maxPages),
			Reason: fmt.Sprintf("target list truncated to %d of %d entries", c.maxPages, len(targets)),
		})
		targets = targets[:c.maxPages]
	}

	if len(targets) == 0 {
		return map[domain.RaceKey]*provider.PartialRaceData{}, warnings
	}

	c.log.Info("starting collection",
		"provider", c.adapter.Name(),
		"targets", len(targets),
		"workers", c.workers,
	)

	outcomes := make([]outcome, len(targets))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range c.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = c.extractOne(ctx, targets[i])
			}
		}()
	}

	for i := range targets {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	results := make(map[domain.RaceKey]*provider.PartialRaceData, len(targets))
	for _, out := range outcomes {
		results[out.target.Key] = out.partial
		if out.warning != nil {
			warnings = append(warnings, *out.warning)
		}
	}

	return results, warnings
}

// extractOne runs a single extraction under the per-target timeout.
func (c *Collector) extractOne(ctx context.Context, target sources.Target) outcome {
	targetCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		targetCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	partial, err := c.adapter.Extract(targetCtx, target.Locator)
	if err != nil {
		reason := err.Error()
		var failure *provider.SourceFailure
		if errors.As(err, &failure) {
			reason = failure.Reason
		}
		if errors.Is(err, context.DeadlineExceeded) {
			reason = fmt.Sprintf("timed out after %s", c.timeout)
		}

		c.log.Warn("extraction failed",
			"key", target.Key.String(),
			"locator", target.Locator.String(),
			"reason", reason,
		)

		return outcome{
			target:  target,
			partial: &provider.PartialRaceData{},
			warning: &domain.Warning{
				Kind:   domain.WarnSourceFailure,
				Entry:  target.Key.String(),
				Reason: reason,
			},
		}
	}

	if partial == nil {
		partial = &provider.PartialRaceData{}
	}

	c.log.Debug("extraction finished",
		"key", target.Key.String(),
		"title", partial.Title,
		"candidates", len(partial.Candidates),
	)

	return outcome{target: target, partial: partial}
}

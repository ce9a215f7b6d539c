// Package provider implements best-effort extraction of race data from
// public reference pages. Each public source gets one Adapter
// implementation; the merger downstream is agnostic to which adapter
// produced the data.
package provider

import (
	"context"
	"fmt"

	"github.com/jonesrussell/keyraces/internal/domain"
	"github.com/jonesrussell/keyraces/internal/sources"
)

// PartialRaceData is whatever subset of race fields one extraction could
// determine. Partial success is expected, not an error: a page with
// candidates but no dates yields candidates only.
type PartialRaceData struct {
	// Title is the reference page title, when found.
	Title string
	// Candidates parsed from the page, in page order.
	Candidates []domain.Candidate
	// KeyDates parsed from the page, keyed by canonical label.
	KeyDates map[string]domain.DateValue
	// ContactLinks are external links found for candidates or the race.
	ContactLinks []domain.Link
	// SourceURL is the canonical URL that was fetched.
	SourceURL string
	// Notes record non-fatal parse observations for the run log.
	Notes []string
}

// Empty reports whether the extraction determined nothing at all.
func (p *PartialRaceData) Empty() bool {
	if p == nil {
		return true
	}
	return p.Title == "" &&
		len(p.Candidates) == 0 &&
		len(p.KeyDates) == 0 &&
		len(p.ContactLinks) == 0
}

// SourceFailure is the typed failure for one target's extraction:
// network error, timeout, or an unusable page. It never aborts the run;
// the target proceeds with all fields unknown.
type SourceFailure struct {
	Locator string
	Reason  string
	Err     error
}

// Error implements the error interface.
func (f *SourceFailure) Error() string {
	return fmt.Sprintf("source failure for %q: %s", f.Locator, f.Reason)
}

// Unwrap returns the underlying error, if any.
func (f *SourceFailure) Unwrap() error {
	return f.Err
}

// Adapter is the capability each public source implements. Extract
// fetches at most one page for the locator and returns whatever fields
// it could parse. All fetch and parse errors are converted to a
// *SourceFailure; Extract never panics on bad input.
type Adapter interface {
	// Name identifies the adapter in logs and source links.
	Name() string
	// Extract fetches and parses the page behind the locator.
	Extract(ctx context.Context, locator sources.Locator) (*PartialRaceData, error)
}

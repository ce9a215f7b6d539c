// Package domain provides domain models used across the application.
package domain

import (
	"fmt"
	"sort"
)

// Confidence marks the provenance of a merged race record.
type Confidence string

const (
	// ConfidenceCurated means the record came from the curated list only.
	ConfidenceCurated Confidence = "curated"
	// ConfidenceScraped means the record was built from scraped data only.
	ConfidenceScraped Confidence = "scraped"
	// ConfidenceMerged means both curated and scraped data contributed.
	ConfidenceMerged Confidence = "merged"
)

// RaceKey is the normalized identity of a race. Two records with an equal
// key refer to the same race and are merged, never duplicated.
type RaceKey struct {
	// State is the two-letter state code (e.g. "OH").
	State string `json:"state"`
	// Office is the canonical office token (e.g. "governor").
	Office string `json:"office"`
	// Year is the four-digit election year.
	Year int `json:"year"`
}

// String returns the key in "STATE/office/year" form.
func (k RaceKey) String() string {
	return fmt.Sprintf("%s/%s/%d", k.State, k.Office, k.Year)
}

// Less orders keys by state, then office, then year. Used wherever keyed
// output must be deterministic.
func (k RaceKey) Less(other RaceKey) bool {
	if k.State != other.State {
		return k.State < other.State
	}
	if k.Office != other.Office {
		return k.Office < other.Office
	}
	return k.Year < other.Year
}

// Candidate represents one candidate in a race. Every field except Name
// is best-effort and may be empty.
type Candidate struct {
	Name      string `json:"name"`
	Party     string `json:"party,omitempty"`
	Incumbent bool   `json:"incumbent,omitempty"`
	Website   string `json:"website,omitempty"`
}

// DateStatus distinguishes a date we know, a date we know does not exist
// (e.g. no primary scheduled), and a date we could not determine.
type DateStatus string

const (
	// DateKnown means the date value is set.
	DateKnown DateStatus = "known"
	// DateNone means the race is known to have no such date.
	DateNone DateStatus = "none"
	// DateUnknown means the date could not be determined from any source.
	DateUnknown DateStatus = "unknown"
)

// DateValue is a tri-state date for a labeled key date.
type DateValue struct {
	Status DateStatus `json:"status"`
	// Value holds the date text when Status is DateKnown.
	Value string `json:"value,omitempty"`
}

// KnownDate returns a DateValue carrying the given date text.
func KnownDate(value string) DateValue {
	return DateValue{Status: DateKnown, Value: value}
}

// Canonical key date labels tracked for every race.
const (
	DatePrimary        = "primary"
	DateGeneral        = "general"
	DateFilingDeadline = "filing_deadline"
)

// KeyDateLabels lists the canonical date labels in report order.
var KeyDateLabels = []string{DatePrimary, DateGeneral, DateFilingDeadline}

// Link is a labeled URL.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// RaceRecord represents one election race assembled from all sources.
type RaceRecord struct {
	// Key is the normalized identity, immutable once assigned.
	Key RaceKey `json:"key"`
	// Title is the human-readable race name.
	Title string `json:"title,omitempty"`
	// State is the two-letter state code.
	State string `json:"state"`
	// Office is the canonical office token.
	Office string `json:"office"`
	// Year is the election year.
	Year int `json:"year"`
	// ImpactNote explains why the race matters. Curated-only, never scraped.
	ImpactNote string `json:"impact_note,omitempty"`
	// Candidates in source order. Empty means unknown unless CandidatesNone is set.
	Candidates []Candidate `json:"candidates"`
	// CandidatesNone is set when a source confirmed there are no candidates
	// (e.g. no election scheduled), as opposed to "could not determine".
	CandidatesNone bool `json:"candidates_none,omitempty"`
	// KeyDates maps canonical date labels to tri-state values.
	KeyDates map[string]DateValue `json:"key_dates"`
	// ContactLinks are labeled links to sources and candidate sites.
	ContactLinks []Link `json:"contact_links,omitempty"`
	// Confidence is the provenance marker set by the merger.
	Confidence Confidence `json:"source_confidence"`
	// FallbackLinks are research links generated for unknown fields.
	// Non-empty iff candidates or any key date remain unknown after merge.
	FallbackLinks []Link `json:"fallback_links,omitempty"`
}

// CandidatesUnknown reports whether the candidate list could not be
// determined. A confirmed-empty list is not unknown.
func (r *RaceRecord) CandidatesUnknown() bool {
	return len(r.Candidates) == 0 && !r.CandidatesNone
}

// UnknownDateLabels returns every date label whose value is unknown:
// canonical labels in report order (missing ones count as unknown),
// then any extra labels alphabetically.
func (r *RaceRecord) UnknownDateLabels() []string {
	canonical := make(map[string]bool, len(KeyDateLabels))
	var labels []string
	for _, label := range KeyDateLabels {
		canonical[label] = true
		if v, ok := r.KeyDates[label]; !ok || v.Status == DateUnknown {
			labels = append(labels, label)
		}
	}
	var extras []string
	for label, v := range r.KeyDates {
		if !canonical[label] && v.Status == DateUnknown {
			extras = append(extras, label)
		}
	}
	sort.Strings(extras)
	return append(labels, extras...)
}

// SortedDateLabels returns all date labels present on the record in a
// stable order: canonical labels first, then any extras alphabetically.
func (r *RaceRecord) SortedDateLabels() []string {
	labels := make([]string, 0, len(r.KeyDates))
	seen := make(map[string]bool, len(r.KeyDates))
	for _, label := range KeyDateLabels {
		if _, ok := r.KeyDates[label]; ok {
			labels = append(labels, label)
			seen[label] = true
		}
	}
	var extras []string
	for label := range r.KeyDates {
		if !seen[label] {
			extras = append(extras, label)
		}
	}
	sort.Strings(extras)
	return append(labels, extras...)
}

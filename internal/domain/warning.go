package domain

import "fmt"

// WarningKind classifies a non-fatal problem recorded during a run.
type WarningKind string

const (
	// WarnParse marks a malformed curated or target entry that was skipped.
	WarnParse WarningKind = "input_parse_error"
	// WarnInvalidKey marks an entry whose state/office/year could not be normalized.
	WarnInvalidKey WarningKind = "invalid_key_input"
	// WarnDuplicateCurated marks a curated entry that shares a key with an earlier one.
	WarnDuplicateCurated WarningKind = "duplicate_curated_entry"
	// WarnSourceFailure marks a failed extraction for one target.
	WarnSourceFailure WarningKind = "source_failure"
)

// Warning is a non-fatal problem tied to one entry or target. Warnings
// are collected during a run and delivered alongside the report so users
// know what needs manual attention.
type Warning struct {
	Kind WarningKind `json:"kind"`
	// Entry identifies the offending entry: a race key, a locator, or a
	// list position when no key could be derived.
	Entry  string `json:"entry"`
	Reason string `json:"reason"`
}

// String renders the warning for logs and report footers.
func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Kind, w.Entry, w.Reason)
}

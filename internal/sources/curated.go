package sources

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/keyraces/internal/domain"
)

// curatedEntry is the raw shape of one curated list entry.
type curatedEntry struct {
	State      string             `mapstructure:"state"`
	Office     string             `mapstructure:"office"`
	Year       int                `mapstructure:"year"`
	Title      string             `mapstructure:"title"`
	ImpactNote string             `mapstructure:"impact_note"`
	Candidates []curatedCandidate `mapstructure:"candidates"`
	// CandidatesNone marks a race confirmed to have no candidates, as
	// opposed to a list nobody filled in yet.
	CandidatesNone bool              `mapstructure:"candidates_none"`
	KeyDates       map[string]string `mapstructure:"key_dates"`
	Links          []curatedLink     `mapstructure:"links"`
}

type curatedCandidate struct {
	Name      string `mapstructure:"name"`
	Party     string `mapstructure:"party"`
	Incumbent bool   `mapstructure:"incumbent"`
	Website   string `mapstructure:"website"`
}

type curatedLink struct {
	Label string `mapstructure:"label"`
	URL   string `mapstructure:"url"`
}

// Values in a curated key_dates entry that mean "known to have no such
// date" rather than an actual date.
var noneDateValues = map[string]bool{"none": true, "n/a": true, "na": true}

// CuratedStore loads the hand-authored list of high-priority races.
// Curated entries are authoritative: their fields are never overwritten
// by scraped data downstream.
type CuratedStore struct {
	path   string
	tables domain.KeyTables
}

// NewCuratedStore creates a curated store reading from the given path.
func NewCuratedStore(path string, tables domain.KeyTables) *CuratedStore {
	return &CuratedStore{path: path, tables: tables}
}

// Load reads and validates all curated entries. A malformed entry is
// skipped with a warning. A second entry for an already-seen race key is
// a DuplicateCuratedEntry warning and is skipped, since curation is meant
// to be unambiguous. Only an unreadable or unparsable file returns an error.
func (s *CuratedStore) Load() ([]domain.RaceRecord, []domain.Warning, error) {
	raw, err := readListFile(s.path, "races")
	if err != nil {
		return nil, nil, err
	}

	records := make([]domain.RaceRecord, 0, len(raw))
	warnings := []domain.Warning{}
	seen := make(map[domain.RaceKey]bool, len(raw))

	for i, rawEntry := range raw {
		var entry curatedEntry
		if decodeErr := decodeEntry(rawEntry, &entry); decodeErr != nil {
			warnings = append(warnings, domain.Warning{
				Kind:   domain.WarnParse,
				Entry:  entryRef(s.path, i),
				Reason: decodeErr.Error(),
			})
			continue
		}

		key, keyErr := s.tables.DeriveKey(entry.State, entry.Office, entry.Year)
		if keyErr != nil {
			warnings = append(warnings, domain.Warning{
				Kind:   domain.WarnInvalidKey,
				Entry:  entryRef(s.path, i),
				Reason: keyErr.Error(),
			})
			continue
		}

		if seen[key] {
			warnings = append(warnings, domain.Warning{
				Kind:   domain.WarnDuplicateCurated,
				Entry:  key.String(),
				Reason: fmt.Sprintf("duplicate curated entry at %s", entryRef(s.path, i)),
			})
			continue
		}
		seen[key] = true

		records = append(records, buildCuratedRecord(key, entry))
	}

	return records, warnings, nil
}

// buildCuratedRecord converts a decoded entry into a race record with
// curated provenance.
func buildCuratedRecord(key domain.RaceKey, entry curatedEntry) domain.RaceRecord {
	rec := domain.RaceRecord{
		Key:            key,
		Title:          entry.Title,
		State:          key.State,
		Office:         key.Office,
		Year:           key.Year,
		ImpactNote:     entry.ImpactNote,
		CandidatesNone: entry.CandidatesNone && len(entry.Candidates) == 0,
		KeyDates:       make(map[string]domain.DateValue, len(entry.KeyDates)),
		Confidence:     domain.ConfidenceCurated,
	}

	for _, c := range entry.Candidates {
		if c.Name == "" {
			continue
		}
		rec.Candidates = append(rec.Candidates, domain.Candidate{
			Name:      c.Name,
			Party:     c.Party,
			Incumbent: c.Incumbent,
			Website:   c.Website,
		})
	}

	for label, value := range entry.KeyDates {
		rec.KeyDates[label] = parseDateValue(value)
	}

	for _, l := range entry.Links {
		if l.URL == "" {
			continue
		}
		rec.ContactLinks = append(rec.ContactLinks, domain.Link{Label: l.Label, URL: l.URL})
	}

	return rec
}

// parseDateValue maps a curated date string to its tri-state value.
// "none"/"n/a" mean the race is known to have no such date.
func parseDateValue(value string) domain.DateValue {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return domain.DateValue{Status: domain.DateUnknown}
	}
	if noneDateValues[strings.ToLower(trimmed)] {
		return domain.DateValue{Status: domain.DateNone}
	}
	return domain.KnownDate(trimmed)
}

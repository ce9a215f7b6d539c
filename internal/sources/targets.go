package sources

import (
	"github.com/jonesrussell/keyraces/internal/domain"
)

// targetEntry is the raw shape of one target list entry.
type targetEntry struct {
	State  string  `mapstructure:"state"`
	Office string  `mapstructure:"office"`
	Year   int     `mapstructure:"year"`
	Source Locator `mapstructure:"source"`
}

// TargetList loads the seed list of races to track.
type TargetList struct {
	path   string
	tables domain.KeyTables
}

// NewTargetList creates a target list reading from the given path.
func NewTargetList(path string, tables domain.KeyTables) *TargetList {
	return &TargetList{path: path, tables: tables}
}

// Load reads and validates all target entries. Malformed entries are
// skipped with a warning. Duplicate race keys are silently collapsed:
// the later entry's locator wins, the earlier entry's position is kept.
// Only an unreadable or unparsable file returns an error.
func (t *TargetList) Load() ([]Target, []domain.Warning, error) {
	raw, err := readListFile(t.path, "targets")
	if err != nil {
		return nil, nil, err
	}

	targets := make([]Target, 0, len(raw))
	warnings := []domain.Warning{}
	position := make(map[domain.RaceKey]int, len(raw))

	for i, rawEntry := range raw {
		var entry targetEntry
		if decodeErr := decodeEntry(rawEntry, &entry); decodeErr != nil {
			warnings = append(warnings, domain.Warning{
				Kind:   domain.WarnParse,
				Entry:  entryRef(t.path, i),
				Reason: decodeErr.Error(),
			})
			continue
		}

		key, keyErr := t.tables.DeriveKey(entry.State, entry.Office, entry.Year)
		if keyErr != nil {
			warnings = append(warnings, domain.Warning{
				Kind:   domain.WarnInvalidKey,
				Entry:  entryRef(t.path, i),
				Reason: keyErr.Error(),
			})
			continue
		}

		if entry.Source.Title == "" && entry.Source.URL == "" {
			warnings = append(warnings, domain.Warning{
				Kind:   domain.WarnParse,
				Entry:  key.String(),
				Reason: ErrMissingLocator.Error(),
			})
			continue
		}

		if pos, ok := position[key]; ok {
			targets[pos].Locator = entry.Source
			continue
		}

		position[key] = len(targets)
		targets = append(targets, Target{Key: key, Locator: entry.Source})
	}

	return targets, warnings, nil
}

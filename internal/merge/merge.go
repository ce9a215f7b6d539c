// Package merge combines curated race records with scraped partial
// data. Curated values always win; scraping only fills gaps.
package merge

import (
	"sort"

	"github.com/jonesrussell/keyraces/internal/domain"
	"github.com/jonesrussell/keyraces/internal/logger"
	"github.com/jonesrussell/keyraces/internal/provider"
)

// Merger builds the unified record set for a run.
type Merger struct {
	log logger.Interface
}

// NewMerger creates a merger.
func NewMerger(log logger.Interface) *Merger {
	return &Merger{log: log.WithComponent("merge")}
}

// Merge unifies curated records and scraped partials into one record
// per race key, ordered by key. Races present only in the curated list
// keep their curated confidence; races present only in the scraped map
// come out as scraped; races present in both come out as merged when
// scraping actually contributed data.
func (m *Merger) Merge(curated []domain.RaceRecord, scraped map[domain.RaceKey]*provider.PartialRaceData) []domain.RaceRecord {
	curatedByKey := make(map[domain.RaceKey]domain.RaceRecord, len(curated))
	for _, record := range curated {
		curatedByKey[record.Key] = record
	}

	keys := make([]domain.RaceKey, 0, len(curatedByKey)+len(scraped))
	for key := range curatedByKey {
		keys = append(keys, key)
	}
	for key := range scraped {
		if _, ok := curatedByKey[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	records := make([]domain.RaceRecord, 0, len(keys))
	for _, key := range keys {
		curatedRecord, hasCurated := curatedByKey[key]
		partial, hasScraped := scraped[key]

		switch {
		case hasCurated && hasScraped:
			records = append(records, m.mergeOne(curatedRecord, partial))
		case hasCurated:
			records = append(records, curatedRecord)
		default:
			records = append(records, scrapedRecord(key, partial))
		}
	}

	m.log.Info("merged race records",
		"curated", len(curated),
		"scraped", len(scraped),
		"total", len(records),
	)

	return records
}

// mergeOne fills the gaps of a curated record from scraped data. No
// curated field is ever replaced by a scraped value.
func (m *Merger) mergeOne(curated domain.RaceRecord, partial *provider.PartialRaceData) domain.RaceRecord {
	record := curated

	if partial == nil || partial.Empty() {
		return record
	}

	if record.Title == "" {
		record.Title = partial.Title
	}
	if record.CandidatesUnknown() && len(partial.Candidates) > 0 {
		record.Candidates = append([]domain.Candidate(nil), partial.Candidates...)
	}

	record.KeyDates = mergeDates(record.KeyDates, partial.KeyDates)

	record.ContactLinks = appendNewLinks(record.ContactLinks, scrapedLinks(partial))

	record.Confidence = domain.ConfidenceMerged
	return record
}

// scrapedLinks gathers the links a partial contributes, including the
// page the data came from.
func scrapedLinks(partial *provider.PartialRaceData) []domain.Link {
	links := append([]domain.Link(nil), partial.ContactLinks...)
	if partial.SourceURL != "" {
		links = append(links, domain.Link{Label: "Source page", URL: partial.SourceURL})
	}
	return links
}

// scrapedRecord builds a record for a race the curated list does not
// know about. An empty partial still yields a record so a failed
// target shows up in the report with everything unknown.
func scrapedRecord(key domain.RaceKey, partial *provider.PartialRaceData) domain.RaceRecord {
	record := domain.RaceRecord{
		Key:        key,
		State:      key.State,
		Office:     key.Office,
		Year:       key.Year,
		Confidence: domain.ConfidenceScraped,
		KeyDates:   map[string]domain.DateValue{},
	}
	if partial == nil {
		return record
	}

	record.Title = partial.Title
	record.Candidates = append([]domain.Candidate(nil), partial.Candidates...)
	record.KeyDates = mergeDates(nil, partial.KeyDates)
	record.ContactLinks = scrapedLinks(partial)
	return record
}

// mergeDates overlays scraped dates onto curated ones. A curated value
// wins even when it records a known absence; only unset or unknown
// labels take the scraped value.
func mergeDates(curated, scraped map[string]domain.DateValue) map[string]domain.DateValue {
	merged := make(map[string]domain.DateValue, len(curated)+len(scraped))
	for label, value := range curated {
		merged[label] = value
	}
	for label, value := range scraped {
		existing, ok := merged[label]
		if !ok || existing.Status == domain.DateUnknown {
			merged[label] = value
		}
	}
	return merged
}

// appendNewLinks adds links whose URL is not already present,
// preserving the order of both lists.
func appendNewLinks(existing, extra []domain.Link) []domain.Link {
	seen := make(map[string]struct{}, len(existing))
	out := append([]domain.Link(nil), existing...)
	for _, link := range existing {
		seen[link.URL] = struct{}{}
	}
	for _, link := range extra {
		if _, ok := seen[link.URL]; ok {
			continue
		}
		seen[link.URL] = struct{}{}
		out = append(out, link)
	}
	return out
}

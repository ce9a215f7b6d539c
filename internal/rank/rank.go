// Package rank orders race records for presentation. Races the curated
// list vouches for lead the report; everything else follows in a
// stable geographic and office order.
package rank

import (
	"sort"

	"github.com/jonesrussell/keyraces/internal/domain"
)

// DefaultOfficePriority orders offices from most to least prominent.
// Lower numbers sort first. Offices missing from the map sort last.
var DefaultOfficePriority = map[string]int{
	domain.OfficeGovernor:         0,
	domain.OfficeUSSenate:         1,
	domain.OfficeUSHouse:          2,
	domain.OfficeLtGovernor:       3,
	domain.OfficeAttorneyGeneral:  4,
	domain.OfficeSecretaryOfState: 5,
	domain.OfficeStateSenate:      6,
	domain.OfficeStateHouse:       7,
	domain.OfficeSupremeCourt:     8,
	domain.OfficeMayor:            9,
}

const unrankedOffice = 100

// Ranker sorts records with a configurable office priority.
type Ranker struct {
	priority map[string]int
}

// NewRanker creates a ranker. Entries in overrides replace or extend
// the default office priorities.
func NewRanker(overrides map[string]int) *Ranker {
	priority := make(map[string]int, len(DefaultOfficePriority)+len(overrides))
	for office, p := range DefaultOfficePriority {
		priority[office] = p
	}
	for office, p := range overrides {
		priority[office] = p
	}
	return &Ranker{priority: priority}
}

// Rank returns the records in report order without mutating the input.
// Curated and curated-backed merged races come first; within each
// group, records sort by state name, office priority, then title. The
// sort is stable, so equal records keep their input order.
func (r *Ranker) Rank(records []domain.RaceRecord) []domain.RaceRecord {
	out := append([]domain.RaceRecord(nil), records...)

	sort.SliceStable(out, func(i, j int) bool {
		gi, gj := group(&out[i]), group(&out[j])
		if gi != gj {
			return gi < gj
		}

		si, sj := domain.StateName(out[i].Key.State), domain.StateName(out[j].Key.State)
		if si != sj {
			return si < sj
		}

		pi, pj := r.officePriority(out[i].Key.Office), r.officePriority(out[j].Key.Office)
		if pi != pj {
			return pi < pj
		}

		return out[i].Title < out[j].Title
	})

	return out
}

func (r *Ranker) officePriority(office string) int {
	if p, ok := r.priority[office]; ok {
		return p
	}
	return unrankedOffice
}

// group partitions records into the headline group and the rest. A
// merged record stays in the headline group only when its curated
// entry carried an impact note.
func group(record *domain.RaceRecord) int {
	switch record.Confidence {
	case domain.ConfidenceCurated:
		return 0
	case domain.ConfidenceMerged:
		if record.ImpactNote != "" {
			return 0
		}
	}
	return 1
}

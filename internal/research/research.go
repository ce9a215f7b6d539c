// Package research generates fallback research links for race records
// whose fields remain unknown after merging.
package research

import (
	"fmt"
	"net/url"

	"github.com/jonesrussell/keyraces/internal/domain"
)

const (
	ballotpediaSearchURL = "https://ballotpedia.org/wiki/index.php?search="
	webSearchURL         = "https://duckduckgo.com/?q="
)

// Annotate sets FallbackLinks on every record whose candidates or key
// dates are still unknown. Links are recomputed from scratch each time,
// so annotating twice yields the same records. Records with nothing
// unknown get their fallback links cleared.
func Annotate(records []domain.RaceRecord) []domain.RaceRecord {
	out := make([]domain.RaceRecord, len(records))
	for i := range records {
		out[i] = records[i]
		out[i].FallbackLinks = linksFor(&records[i])
	}
	return out
}

// linksFor builds the fallback link list for one record. The result
// depends only on the race key and which fields are unknown, keeping
// the output stable across runs.
func linksFor(record *domain.RaceRecord) []domain.Link {
	race := raceDescription(record.Key)

	var links []domain.Link

	if record.CandidatesUnknown() {
		links = append(links,
			domain.Link{
				Label: fmt.Sprintf("Ballotpedia search: %s", race),
				URL:   ballotpediaSearchURL + url.QueryEscape(race),
			},
			domain.Link{
				Label: fmt.Sprintf("Candidate list search: %s", race),
				URL:   webSearchURL + url.QueryEscape(race+" candidates"),
			},
		)
	}

	if len(record.UnknownDateLabels()) > 0 {
		state := domain.StateName(record.Key.State)
		query := fmt.Sprintf("%s secretary of state election calendar %d", state, record.Key.Year)
		links = append(links, domain.Link{
			Label: fmt.Sprintf("Election calendar search: %s %d", state, record.Key.Year),
			URL:   webSearchURL + url.QueryEscape(query),
		})
	}

	return links
}

// raceDescription renders a race key as a human search phrase, e.g.
// "2026 Ohio Governor election".
func raceDescription(key domain.RaceKey) string {
	return fmt.Sprintf("%d %s %s election",
		key.Year,
		domain.StateName(key.State),
		domain.OfficeName(key.Office),
	)
}

package research_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/keyraces/internal/domain"
	"github.com/jonesrussell/keyraces/internal/research"
)

func record(t *testing.T, state, office string, year int) domain.RaceRecord {
	t.Helper()

	key, err := domain.DefaultKeyTables().DeriveKey(state, office, year)
	require.NoError(t, err)
	return domain.RaceRecord{
		Key:    key,
		State:  key.State,
		Office: key.Office,
		Year:   key.Year,
	}
}

func fullyKnown(t *testing.T) domain.RaceRecord {
	t.Helper()

	r := record(t, "OH", "governor", 2026)
	r.Candidates = []domain.Candidate{{Name: "A. Smith"}}
	r.KeyDates = map[string]domain.DateValue{
		domain.DatePrimary:        domain.KnownDate("May 5, 2026"),
		domain.DateGeneral:        domain.KnownDate("November 3, 2026"),
		domain.DateFilingDeadline: {Status: domain.DateNone},
	}
	return r
}

func TestAnnotate_UnknownCandidatesAndDates(t *testing.T) {
	t.Parallel()

	records := research.Annotate([]domain.RaceRecord{record(t, "OH", "governor", 2026)})

	require.Len(t, records, 1)
	links := records[0].FallbackLinks
	require.Len(t, links, 3)

	assert.Contains(t, links[0].Label, "Ballotpedia search")
	assert.Contains(t, links[0].URL, "2026+Ohio+Governor+election")
	assert.Contains(t, links[1].Label, "Candidate list search")
	assert.Contains(t, links[2].Label, "Election calendar search: Ohio 2026")
	assert.Contains(t, links[2].URL, "Ohio+secretary+of+state")
}

func TestAnnotate_NothingUnknownYieldsNoLinks(t *testing.T) {
	t.Parallel()

	records := research.Annotate([]domain.RaceRecord{fullyKnown(t)})

	require.Len(t, records, 1)
	assert.Empty(t, records[0].FallbackLinks)
}

func TestAnnotate_ConfirmedAbsenceIsNotUnknown(t *testing.T) {
	t.Parallel()

	r := fullyKnown(t)
	r.Candidates = nil
	r.CandidatesNone = true

	records := research.Annotate([]domain.RaceRecord{r})

	require.Len(t, records, 1)
	assert.Empty(t, records[0].FallbackLinks)
}

func TestAnnotate_OnlyDatesUnknown(t *testing.T) {
	t.Parallel()

	r := record(t, "TX", "us_senate", 2026)
	r.Candidates = []domain.Candidate{{Name: "B. Jones"}}

	records := research.Annotate([]domain.RaceRecord{r})

	require.Len(t, records, 1)
	links := records[0].FallbackLinks
	require.Len(t, links, 1)
	assert.Contains(t, links[0].Label, "Election calendar search: Texas 2026")
}

func TestAnnotate_Idempotent(t *testing.T) {
	t.Parallel()

	input := []domain.RaceRecord{
		record(t, "OH", "governor", 2026),
		fullyKnown(t),
	}

	once := research.Annotate(input)
	twice := research.Annotate(once)

	assert.Equal(t, once, twice)
}

func TestAnnotate_ClearsStaleLinks(t *testing.T) {
	t.Parallel()

	r := fullyKnown(t)
	r.FallbackLinks = []domain.Link{{Label: "stale", URL: "https://example.com"}}

	records := research.Annotate([]domain.RaceRecord{r})

	require.Len(t, records, 1)
	assert.Empty(t, records[0].FallbackLinks)
}

func TestAnnotate_ExtraDateLabelUnknown(t *testing.T) {
	t.Parallel()

	r := fullyKnown(t)
	r.KeyDates["runoff"] = domain.DateValue{Status: domain.DateUnknown}

	records := research.Annotate([]domain.RaceRecord{r})

	require.Len(t, records, 1)
	links := records[0].FallbackLinks
	require.NotEmpty(t, links)
	require.Len(t, links, 1)
	assert.Contains(t, links[0].Label, "Election calendar search: Ohio 2026")
}

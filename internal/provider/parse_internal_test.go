package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/keyraces/internal/domain"
)

// electionPageHTML is a complete election page with an infobox, a
// candidates section, and an external campaign link.
const electionPageHTML = `<!DOCTYPE html>
<html>
<head><title>2026 Ohio gubernatorial election</title></head>
<body>
  <table class="infobox">
    <tbody>
      <tr><td>Primary date</td><td>May 5, 2026</td></tr>
      <tr><td>Election date</td><td>November 3, 2026</td></tr>
    </tbody>
  </table>
  <h2>Candidates</h2>
  <ul>
    <li><b>A. Smith</b> (Democratic) <a href="https://asmith.example.org">campaign site</a></li>
    <li><b>B. Jones</b> (Republican), incumbent</li>
  </ul>
</body>
</html>`

// noCandidatesHTML has an infobox but no parsable candidate list.
const noCandidatesHTML = `<!DOCTYPE html>
<html>
<head><title>2026 Georgia attorney general election</title></head>
<body>
  <table class="infobox">
    <tbody>
      <tr><td>Election date</td><td>November 3, 2026</td></tr>
    </tbody>
  </table>
  <p>The filing deadline has not been announced.</p>
</body>
</html>`

// duplicateCandidatesHTML repeats a candidate under two headings.
const duplicateCandidatesHTML = `<!DOCTYPE html>
<html>
<head><title>Race</title></head>
<body>
  <h3>Candidates (Democratic primary)</h3>
  <ul><li><b>A. Smith</b></li></ul>
  <h3>Candidates (general)</h3>
  <ul><li><b>a. smith</b></li><li><b>B. Jones</b></li></ul>
</body>
</html>`

func TestParseWikipediaPage_FullPage(t *testing.T) {
	t.Parallel()

	data, err := parseWikipediaPage([]byte(electionPageHTML))
	require.NoError(t, err)

	assert.Equal(t, "2026 Ohio gubernatorial election", data.Title)

	assert.Equal(t, domain.KnownDate("May 5, 2026"), data.KeyDates[domain.DatePrimary])
	assert.Equal(t, domain.KnownDate("November 3, 2026"), data.KeyDates[domain.DateGeneral])

	require.Len(t, data.Candidates, 2)
	assert.Equal(t, "A. Smith", data.Candidates[0].Name)
	assert.Equal(t, "Democratic", data.Candidates[0].Party)
	assert.Equal(t, "https://asmith.example.org", data.Candidates[0].Website)
	assert.False(t, data.Candidates[0].Incumbent)

	assert.Equal(t, "B. Jones", data.Candidates[1].Name)
	assert.Equal(t, "Republican", data.Candidates[1].Party)
	assert.True(t, data.Candidates[1].Incumbent)

	require.Len(t, data.ContactLinks, 1)
	assert.Equal(t, "A. Smith", data.ContactLinks[0].Label)

	assert.False(t, data.Empty())
}

func TestParseWikipediaPage_NoCandidates(t *testing.T) {
	t.Parallel()

	data, err := parseWikipediaPage([]byte(noCandidatesHTML))
	require.NoError(t, err)

	assert.Empty(t, data.Candidates)
	require.Len(t, data.Notes, 1)
	assert.Contains(t, data.Notes[0], "no candidates parsed")

	assert.Equal(t, domain.KnownDate("November 3, 2026"), data.KeyDates[domain.DateGeneral])
}

func TestParseWikipediaPage_DeduplicatesCandidates(t *testing.T) {
	t.Parallel()

	data, err := parseWikipediaPage([]byte(duplicateCandidatesHTML))
	require.NoError(t, err)

	require.Len(t, data.Candidates, 2)
	assert.Equal(t, "A. Smith", data.Candidates[0].Name)
	assert.Equal(t, "B. Jones", data.Candidates[1].Name)
}

func TestExtractDateText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "full date", text: "held on November 3, 2026 statewide", want: "November 3, 2026"},
		{name: "month and year", text: "expected in May 2026", want: "May 2026"},
		{name: "no date", text: "to be determined", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, extractDateText(tt.text))
		})
	}
}

func TestPartialRaceData_Empty(t *testing.T) {
	t.Parallel()

	assert.True(t, (*PartialRaceData)(nil).Empty())
	assert.True(t, (&PartialRaceData{Notes: []string{"note"}}).Empty())
	assert.False(t, (&PartialRaceData{Title: "t"}).Empty())
}

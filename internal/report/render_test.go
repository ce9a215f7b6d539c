package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/keyraces/internal/domain"
	"github.com/jonesrussell/keyraces/internal/logger"
	"github.com/jonesrussell/keyraces/internal/report"
)

func sampleReport(t *testing.T) *report.Report {
	t.Helper()

	tables := domain.DefaultKeyTables()
	ohKey, err := tables.DeriveKey("OH", "governor", 2026)
	require.NoError(t, err)
	txKey, err := tables.DeriveKey("TX", "us senate", 2026)
	require.NoError(t, err)

	return &report.Report{
		RunID:       "11111111-2222-3333-4444-555555555555",
		GeneratedAt: time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC),
		Provider:    "wikipedia",
		Races: []domain.RaceRecord{
			{
				Key:        ohKey,
				State:      "OH",
				Office:     ohKey.Office,
				Year:       2026,
				Title:      "Ohio Governor 2026",
				ImpactNote: "Open seat, rated a toss-up.",
				Candidates: []domain.Candidate{
					{Name: "A. Smith", Party: "Democratic", Incumbent: true},
				},
				KeyDates: map[string]domain.DateValue{
					domain.DateGeneral:        domain.KnownDate("November 3, 2026"),
					domain.DateFilingDeadline: {Status: domain.DateNone},
				},
				Confidence: domain.ConfidenceMerged,
			},
			{
				Key:        txKey,
				State:      "TX",
				Office:     txKey.Office,
				Year:       2026,
				Confidence: domain.ConfidenceScraped,
				FallbackLinks: []domain.Link{
					{Label: "Ballotpedia search: 2026 Texas U.S. Senate election", URL: "https://ballotpedia.org/wiki/index.php?search=x"},
				},
			},
		},
		Warnings: []domain.Warning{
			{Kind: domain.WarnSourceFailure, Entry: "TX/us_senate/2026", Reason: "status 404"},
		},
	}
}

func TestRenderText(t *testing.T) {
	t.Parallel()

	out := report.RenderText(sampleReport(t))

	assert.Contains(t, out, "KEY RACES REPORT")
	assert.Contains(t, out, "OH/governor/2026 | Ohio Governor 2026 [merged]")
	assert.Contains(t, out, "Why it matters: Open seat, rated a toss-up.")
	assert.Contains(t, out, "A. Smith (Democratic) [incumbent]")
	assert.Contains(t, out, "general: November 3, 2026")
	assert.Contains(t, out, "filing_deadline: none")
	assert.Contains(t, out, "Candidates: unknown")
	assert.Contains(t, out, "Research needed:")
	assert.Contains(t, out, "WARNINGS (1)")
}

func TestRenderText_Deterministic(t *testing.T) {
	t.Parallel()

	r := sampleReport(t)
	assert.Equal(t, report.RenderText(r), report.RenderText(r))
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	out, err := report.RenderHTML(sampleReport(t))
	require.NoError(t, err)

	assert.Contains(t, out, "<title>Key Races Report</title>")
	assert.Contains(t, out, "Ohio Governor 2026")
	assert.Contains(t, out, "OH/governor/2026")
	assert.Contains(t, out, "Candidates unknown.")
	assert.Contains(t, out, "Research needed:")
	assert.Contains(t, out, "Warnings (1)")
}

func TestRenderHTML_EscapesContent(t *testing.T) {
	t.Parallel()

	r := sampleReport(t)
	r.Races[0].ImpactNote = `<script>alert("x")</script>`

	out, err := report.RenderHTML(r)
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>alert")
}

func TestRenderJSON_RoundTrips(t *testing.T) {
	t.Parallel()

	data, err := report.RenderJSON(sampleReport(t))
	require.NoError(t, err)

	var decoded report.Report
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "wikipedia", decoded.Provider)
	require.Len(t, decoded.Races, 2)
	assert.Equal(t, "OH/governor/2026", decoded.Races[0].Key.String())
}

func TestSiteWriter_WritesAllFormatsAndIndex(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writer := report.NewSiteWriter(dir, true, true, true, logger.NewNoOp())

	written, err := writer.Write(sampleReport(t))
	require.NoError(t, err)
	require.Len(t, written, 3)

	for _, path := range written {
		info, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.Positive(t, info.Size())
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "report-20260828-060000.html")

	_, err = os.Stat(filepath.Join(dir, "style.css"))
	require.NoError(t, err)
}

func TestSiteWriter_TextOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writer := report.NewSiteWriter(dir, true, false, false, logger.NewNoOp())

	written, err := writer.Write(sampleReport(t))
	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Equal(t, filepath.Join(dir, "report-20260828-060000.txt"), written[0])

	_, err = os.Stat(filepath.Join(dir, "index.html"))
	assert.True(t, os.IsNotExist(err))
}

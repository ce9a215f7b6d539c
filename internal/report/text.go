package report

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/keyraces/internal/domain"
)

const textTimeLayout = "2006-01-02 15:04 MST"

// RenderText renders the report as plain text suitable for an email
// body or a terminal.
func RenderText(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "KEY RACES REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format(textTimeLayout))
	fmt.Fprintf(&b, "Run: %s\n", r.RunID)
	fmt.Fprintf(&b, "Provider: %s\n", r.Provider)
	fmt.Fprintf(&b, "Races: %d\n", len(r.Races))

	for _, race := range r.Races {
		b.WriteString("\n")
		writeRaceText(&b, &race)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "\nWARNINGS (%d)\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w.String())
		}
	}

	return b.String()
}

func writeRaceText(b *strings.Builder, race *domain.RaceRecord) {
	title := race.Title
	if title == "" {
		title = fmt.Sprintf("%s %s %d", domain.StateName(race.Key.State), domain.OfficeName(race.Key.Office), race.Key.Year)
	}
	fmt.Fprintf(b, "=== %s | %s [%s]\n", race.Key.String(), title, race.Confidence)

	if race.ImpactNote != "" {
		fmt.Fprintf(b, "Why it matters: %s\n", race.ImpactNote)
	}

	switch {
	case race.CandidatesNone:
		b.WriteString("Candidates: none\n")
	case race.CandidatesUnknown():
		b.WriteString("Candidates: unknown\n")
	default:
		b.WriteString("Candidates:\n")
		for _, c := range race.Candidates {
			fmt.Fprintf(b, "  - %s\n", candidateLine(c))
		}
	}

	labels := race.SortedDateLabels()
	if len(labels) > 0 {
		b.WriteString("Key dates:\n")
		for _, label := range labels {
			fmt.Fprintf(b, "  %s: %s\n", label, dateText(race.KeyDates[label]))
		}
	}

	writeLinkList(b, "Links", race.ContactLinks)
	writeLinkList(b, "Research needed", race.FallbackLinks)
}

func candidateLine(c domain.Candidate) string {
	parts := []string{c.Name}
	if c.Party != "" {
		parts = append(parts, fmt.Sprintf("(%s)", c.Party))
	}
	if c.Incumbent {
		parts = append(parts, "[incumbent]")
	}
	if c.Website != "" {
		parts = append(parts, c.Website)
	}
	return strings.Join(parts, " ")
}

func dateText(v domain.DateValue) string {
	switch v.Status {
	case domain.DateKnown:
		return v.Value
	case domain.DateNone:
		return "none"
	default:
		return "unknown"
	}
}

func writeLinkList(b *strings.Builder, heading string, links []domain.Link) {
	if len(links) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", heading)
	for _, link := range links {
		fmt.Fprintf(b, "  - %s: %s\n", link.Label, link.URL)
	}
}

package provider

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/keyraces/internal/domain"
)

// Date heuristics: "Month Day, Year" preferred, "Month Year" fallback.
var (
	dateFullRe  = regexp.MustCompile(`[A-Z][a-z]+ \d{1,2}, \d{4}`)
	dateMonthRe = regexp.MustCompile(`[A-Z][a-z]+ \d{4}`)
	partyRe     = regexp.MustCompile(`\(([^)]+)\)`)
)

// maxFallbackLists bounds how many page lists are scanned when no
// explicit candidates section exists.
const maxFallbackLists = 5

// maxPlausibleCandidates rejects fallback lists too long to be a
// candidate roster.
const maxPlausibleCandidates = 6

// extractPageTitle extracts the page title, preferring <title> then
// og:title fallback.
func extractPageTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}

	if ogTitle, exists := doc.Find("meta[property='og:title']").Attr("content"); exists {
		return strings.TrimSpace(ogTitle)
	}

	return ""
}

// extractDateText pulls the first date-looking substring out of text.
func extractDateText(text string) string {
	if m := dateFullRe.FindString(text); m != "" {
		return m
	}
	return dateMonthRe.FindString(text)
}

// classifyDateRow maps an infobox row's text to a canonical date label.
func classifyDateRow(text string) (string, bool) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "filing deadline"):
		return domain.DateFilingDeadline, true
	case strings.Contains(lower, "primary"):
		return domain.DatePrimary, true
	case strings.Contains(lower, "election date"), strings.Contains(lower, "general"):
		return domain.DateGeneral, true
	default:
		return "", false
	}
}

// extractInfoboxDates scans infobox rows for labeled dates and records
// them into dates. The first date found per label wins.
func extractInfoboxDates(doc *goquery.Document, dates map[string]domain.DateValue) {
	doc.Find("table.infobox tr, div.infobox tr, .infobox p, .infobox div").Each(func(_ int, row *goquery.Selection) {
		text := strings.TrimSpace(row.Text())
		if text == "" {
			return
		}

		label, ok := classifyDateRow(text)
		if !ok {
			return
		}
		if _, exists := dates[label]; exists {
			return
		}

		if date := extractDateText(text); date != "" {
			dates[label] = domain.KnownDate(date)
		}
	})
}

// extractCandidates finds candidate lists on the page. It prefers lists
// under a "Candidates" heading and falls back to scanning the first few
// short lists on the page.
func extractCandidates(doc *goquery.Document) []domain.Candidate {
	var candidates []domain.Candidate

	doc.Find("h2, h3, h4").Each(func(_ int, header *goquery.Selection) {
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(header.Text())), "candidates") {
			return
		}
		list := header.NextAllFiltered("ul, ol").First()
		if list.Length() == 0 {
			// Wikipedia section markup wraps siblings; look inside the parent too.
			list = header.Parent().Find("ul, ol").First()
		}
		list.ChildrenFiltered("li").Each(func(_ int, item *goquery.Selection) {
			if cand, ok := parseCandidateItem(item); ok {
				candidates = append(candidates, cand)
			}
		})
	})

	if len(candidates) == 0 {
		candidates = extractCandidatesFromLists(doc)
	}

	return dedupeCandidates(candidates)
}

// extractCandidatesFromLists scans prominent short lists when no
// candidates heading exists. Heuristic carried over from manual review of
// election page layouts.
func extractCandidatesFromLists(doc *goquery.Document) []domain.Candidate {
	var candidates []domain.Candidate

	doc.Find("ul").EachWithBreak(func(i int, list *goquery.Selection) bool {
		if i >= maxFallbackLists {
			return false
		}
		items := list.ChildrenFiltered("li")
		if items.Length() == 0 || items.Length() > maxPlausibleCandidates {
			return true
		}
		items.Each(func(_ int, item *goquery.Selection) {
			if cand, ok := parseCandidateItem(item); ok {
				candidates = append(candidates, cand)
			}
		})
		return true
	})

	return candidates
}

// parseCandidateItem parses one list item into a candidate. The name is
// usually the first bold link or text; party appears in parentheses;
// an external link becomes the candidate website.
func parseCandidateItem(item *goquery.Selection) (domain.Candidate, bool) {
	text := strings.TrimSpace(item.Text())
	if text == "" {
		return domain.Candidate{}, false
	}

	name := strings.TrimSpace(item.Find("b, strong").First().Text())
	if name == "" {
		name = strings.TrimSpace(item.Find("a").First().Text())
	}
	if name == "" {
		name = splitCandidateName(text)
	}
	if name == "" {
		return domain.Candidate{}, false
	}

	cand := domain.Candidate{Name: name}

	lower := strings.ToLower(text)
	cand.Incumbent = strings.Contains(lower, "incumbent")

	if m := partyRe.FindStringSubmatch(text); m != nil {
		party := strings.TrimSpace(m[1])
		if !strings.EqualFold(party, "incumbent") {
			cand.Party = party
		}
	}

	item.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, exists := link.Attr("href")
		if exists && strings.HasPrefix(href, "http") && !strings.Contains(href, "wikipedia.org") {
			cand.Website = href
			return false
		}
		return true
	})

	return cand, true
}

// splitCandidateName takes the leading words of a list item up to the
// first dash separator.
func splitCandidateName(text string) string {
	for _, sep := range []string{" – ", " - ", ", "} {
		if idx := strings.Index(text, sep); idx > 0 {
			return strings.TrimSpace(text[:idx])
		}
	}
	return strings.TrimSpace(text)
}

// dedupeCandidates removes duplicate names case-insensitively, keeping
// first occurrence order.
func dedupeCandidates(candidates []domain.Candidate) []domain.Candidate {
	if len(candidates) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(candidates))
	unique := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		lower := strings.ToLower(c.Name)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		unique = append(unique, c)
	}
	return unique
}

package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/keyraces/internal/config"
	"github.com/jonesrussell/keyraces/internal/domain"
	"github.com/jonesrussell/keyraces/internal/logger"
	"github.com/jonesrussell/keyraces/internal/sources"
)

// ballotpediaBase is the page URL prefix for title locators.
const ballotpediaBase = "https://ballotpedia.org/"

// maxResponseBodyBytes limits the size of fetched page responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// BallotpediaAdapter extracts race data from Ballotpedia election pages.
// Politeness is enforced with a minimum delay between requests across
// all concurrent extractions.
type BallotpediaAdapter struct {
	httpClient *http.Client
	userAgent  string
	delay      time.Duration
	log        logger.Interface

	mu          sync.Mutex
	lastRequest time.Time
}

// Ensure BallotpediaAdapter implements Adapter.
var _ Adapter = (*BallotpediaAdapter)(nil)

// NewBallotpediaAdapter creates a Ballotpedia adapter with the given
// politeness settings.
func NewBallotpediaAdapter(cfg config.BehaviorConfig, log logger.Interface) *BallotpediaAdapter {
	return &BallotpediaAdapter{
		httpClient: &http.Client{Timeout: cfg.TargetTimeout},
		userAgent:  cfg.UserAgent,
		delay:      cfg.RequestDelay,
		log:        log.WithComponent("ballotpedia"),
	}
}

// Name identifies the adapter.
func (a *BallotpediaAdapter) Name() string {
	return "ballotpedia"
}

// Extract fetches the page behind the locator and parses whatever race
// fields it can find. Makes exactly one request; every failure comes
// back as a *SourceFailure.
func (a *BallotpediaAdapter) Extract(ctx context.Context, locator sources.Locator) (*PartialRaceData, error) {
	fetchURL := locator.URL
	if fetchURL == "" {
		fetchURL = ballotpediaBase + url.PathEscape(strings.ReplaceAll(locator.Title, " ", "_"))
	}

	if err := a.politeWait(ctx); err != nil {
		return nil, &SourceFailure{Locator: locator.String(), Reason: "extraction cancelled", Err: err}
	}

	body, fetchErr := a.fetchPage(ctx, fetchURL)
	if fetchErr != nil {
		a.log.Warn("fetch failed", "locator", locator.String(), "error", fetchErr.Error())
		return nil, &SourceFailure{Locator: locator.String(), Reason: fetchErr.Error(), Err: fetchErr}
	}

	data, parseErr := parseBallotpediaPage(body)
	if parseErr != nil {
		return nil, &SourceFailure{Locator: locator.String(), Reason: parseErr.Error(), Err: parseErr}
	}

	data.SourceURL = fetchURL
	a.log.Debug("extraction finished",
		"locator", locator.String(),
		"candidates", len(data.Candidates),
		"dates", len(data.KeyDates),
	)

	return data, nil
}

// politeWait blocks until the minimum delay since the previous request
// has elapsed, or the context is cancelled.
func (a *BallotpediaAdapter) politeWait(ctx context.Context) error {
	a.mu.Lock()
	wait := a.delay - time.Since(a.lastRequest)
	a.lastRequest = time.Now().Add(wait)
	a.mu.Unlock()

	if wait <= 0 {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

// fetchPage performs the HTTP GET request for the page.
func (a *BallotpediaAdapter) fetchPage(ctx context.Context, fetchURL string) ([]byte, error) {
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, http.NoBody)
	if reqErr != nil {
		return nil, fmt.Errorf("create request: %w", reqErr)
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, doErr := a.httpClient.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("http fetch: %w", doErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http status %d", resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, maxResponseBodyBytes)

	body, readErr := io.ReadAll(limited)
	if readErr != nil {
		return nil, fmt.Errorf("read response body: %w", readErr)
	}

	return body, nil
}

// parseBallotpediaPage parses page HTML into partial race data.
// Ballotpedia uses the same infobox-and-candidate-list layout our shared
// heuristics cover, plus date mentions in the page intro.
func parseBallotpediaPage(body []byte) (*PartialRaceData, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	data := &PartialRaceData{
		KeyDates: make(map[string]domain.DateValue),
	}

	data.Title = extractPageTitle(doc)
	extractInfoboxDates(doc, data.KeyDates)
	extractIntroDates(doc, data.KeyDates)
	data.Candidates = extractCandidates(doc)

	for _, cand := range data.Candidates {
		if cand.Website != "" {
			data.ContactLinks = append(data.ContactLinks, domain.Link{
				Label: cand.Name,
				URL:   cand.Website,
			})
		}
	}

	if len(data.Candidates) == 0 {
		data.Notes = append(data.Notes, "no candidates parsed; page structure may differ")
	}

	return data, nil
}

// maxIntroParagraphs bounds how many leading paragraphs are scanned for
// date mentions.
const maxIntroParagraphs = 3

// extractIntroDates scans the page intro for general and primary
// election date mentions missed by the infobox scan.
func extractIntroDates(doc *goquery.Document, dates map[string]domain.DateValue) {
	doc.Find("p").EachWithBreak(func(i int, para *goquery.Selection) bool {
		if i >= maxIntroParagraphs {
			return false
		}

		text := strings.TrimSpace(para.Text())
		if text == "" {
			return true
		}

		label, ok := classifyDateRow(text)
		if !ok {
			return true
		}
		if _, exists := dates[label]; exists {
			return true
		}

		if date := extractDateText(text); date != "" {
			dates[label] = domain.KnownDate(date)
		}
		return true
	})
}

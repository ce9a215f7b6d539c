package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/jonesrussell/keyraces/internal/config"
	"github.com/jonesrussell/keyraces/internal/domain"
	"github.com/jonesrussell/keyraces/internal/logger"
	"github.com/jonesrussell/keyraces/internal/sources"
)

// wikiRestBase is the Wikipedia REST endpoint serving rendered page HTML.
const wikiRestBase = "https://en.wikipedia.org/api/rest_v1/page/html/"

// WikipediaAdapter extracts race data from Wikipedia election pages.
// Politeness is enforced through a collector limit rule shared by all
// extractions: one request at a time with the configured delay.
type WikipediaAdapter struct {
	base     *colly.Collector
	restBase string
	log      logger.Interface
}

// Ensure WikipediaAdapter implements Adapter.
var _ Adapter = (*WikipediaAdapter)(nil)

// NewWikipediaAdapter creates a Wikipedia adapter with the given
// politeness settings.
func NewWikipediaAdapter(cfg config.BehaviorConfig, log logger.Interface) (*WikipediaAdapter, error) {
	c := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(cfg.TargetTimeout)

	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Delay:       cfg.RequestDelay,
		Parallelism: 1,
	}); err != nil {
		return nil, fmt.Errorf("set limit rule: %w", err)
	}

	return &WikipediaAdapter{
		base:     c,
		restBase: wikiRestBase,
		log:      log.WithComponent("wikipedia"),
	}, nil
}

// Name identifies the adapter.
func (a *WikipediaAdapter) Name() string {
	return "wikipedia"
}

// Extract fetches the page behind the locator and parses whatever race
// fields it can find. Makes exactly one request; every failure comes
// back as a *SourceFailure.
func (a *WikipediaAdapter) Extract(ctx context.Context, locator sources.Locator) (*PartialRaceData, error) {
	if err := ctx.Err(); err != nil {
		return nil, &SourceFailure{Locator: locator.String(), Reason: "extraction cancelled", Err: err}
	}

	fetchURL := locator.URL
	if fetchURL == "" {
		fetchURL = a.restBase + url.PathEscape(locator.Title)
	}

	body, fetchErr := a.fetch(fetchURL)
	if fetchErr != nil {
		a.log.Warn("fetch failed", "locator", locator.String(), "error", fetchErr.Error())
		return nil, &SourceFailure{Locator: locator.String(), Reason: fetchErr.Error(), Err: fetchErr}
	}

	data, parseErr := parseWikipediaPage(body)
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

// fetch performs one rate-limited request through a collector clone.
// Clones share the base collector's backend, so the limit rule applies
// across concurrent extractions.
func (a *WikipediaAdapter) fetch(fetchURL string) ([]byte, error) {
	c := a.base.Clone()

	var body []byte
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if visitErr := c.Visit(fetchURL); visitErr != nil && fetchErr == nil {
		fetchErr = visitErr
	}
	if fetchErr != nil {
		return nil, fetchErr
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response from %s", fetchURL)
	}

	return body, nil
}

// parseWikipediaPage parses rendered page HTML into partial race data.
func parseWikipediaPage(body []byte) (*PartialRaceData, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	data := &PartialRaceData{
		KeyDates: make(map[string]domain.DateValue),
	}

	data.Title = extractPageTitle(doc)
	extractInfoboxDates(doc, data.KeyDates)
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

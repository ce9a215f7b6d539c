package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/keyraces/internal/config"
	"github.com/jonesrussell/keyraces/internal/domain"
	"github.com/jonesrussell/keyraces/internal/logger"
	"github.com/jonesrussell/keyraces/internal/provider"
	"github.com/jonesrussell/keyraces/internal/sources"
)

const testPageHTML = `<!DOCTYPE html>
<html>
<head><title>2026 Ohio gubernatorial election</title></head>
<body>
  <table class="infobox">
    <tbody>
      <tr><td>Primary date</td><td>May 5, 2026</td></tr>
    </tbody>
  </table>
  <h2>Candidates</h2>
  <ul>
    <li><b>A. Smith</b> (Democratic)</li>
    <li><b>B. Jones</b> (Republican)</li>
  </ul>
</body>
</html>`

func testBehavior() config.BehaviorConfig {
	return config.BehaviorConfig{
		RequestDelay:  time.Millisecond,
		MaxPages:      10,
		Workers:       2,
		TargetTimeout: 5 * time.Second,
		UserAgent:     "keyraces-test",
	}
}

func newPageServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestBallotpediaAdapter_Extract(t *testing.T) {
	t.Parallel()

	server := newPageServer(t, http.StatusOK, testPageHTML)
	adapter := provider.NewBallotpediaAdapter(testBehavior(), logger.NewNoOp())

	data, err := adapter.Extract(context.Background(), sources.Locator{URL: server.URL + "/race"})
	require.NoError(t, err)

	assert.Equal(t, "2026 Ohio gubernatorial election", data.Title)
	assert.Equal(t, server.URL+"/race", data.SourceURL)
	assert.Equal(t, domain.KnownDate("May 5, 2026"), data.KeyDates[domain.DatePrimary])
	require.Len(t, data.Candidates, 2)
}

func TestBallotpediaAdapter_Extract_HTTPError(t *testing.T) {
	t.Parallel()

	server := newPageServer(t, http.StatusNotFound, "not found")
	adapter := provider.NewBallotpediaAdapter(testBehavior(), logger.NewNoOp())

	_, err := adapter.Extract(context.Background(), sources.Locator{URL: server.URL + "/race"})
	require.Error(t, err)

	var failure *provider.SourceFailure
	require.ErrorAs(t, err, &failure)
	assert.Contains(t, failure.Reason, "404")
}

func TestBallotpediaAdapter_Extract_Cancelled(t *testing.T) {
	t.Parallel()

	server := newPageServer(t, http.StatusOK, testPageHTML)
	adapter := provider.NewBallotpediaAdapter(testBehavior(), logger.NewNoOp())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.Extract(ctx, sources.Locator{URL: server.URL + "/race"})
	require.Error(t, err)

	var failure *provider.SourceFailure
	require.ErrorAs(t, err, &failure)
	require.ErrorIs(t, failure.Err, context.Canceled)
}

func TestWikipediaAdapter_Extract(t *testing.T) {
	t.Parallel()

	server := newPageServer(t, http.StatusOK, testPageHTML)

	adapter, err := provider.NewWikipediaAdapter(testBehavior(), logger.NewNoOp())
	require.NoError(t, err)

	data, err := adapter.Extract(context.Background(), sources.Locator{URL: server.URL + "/race"})
	require.NoError(t, err)

	assert.Equal(t, "2026 Ohio gubernatorial election", data.Title)
	require.Len(t, data.Candidates, 2)
	assert.Equal(t, "A. Smith", data.Candidates[0].Name)
}

func TestWikipediaAdapter_Extract_ServerError(t *testing.T) {
	t.Parallel()

	server := newPageServer(t, http.StatusInternalServerError, "boom")

	adapter, err := provider.NewWikipediaAdapter(testBehavior(), logger.NewNoOp())
	require.NoError(t, err)

	_, err = adapter.Extract(context.Background(), sources.Locator{URL: server.URL + "/race"})
	require.Error(t, err)

	var failure *provider.SourceFailure
	assert.True(t, errors.As(err, &failure))
}

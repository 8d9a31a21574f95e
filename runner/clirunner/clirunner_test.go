package clirunner_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosom/google-maps-menu-scraper/gmaps"
	"github.com/gosom/google-maps-menu-scraper/runner"
	"github.com/gosom/google-maps-menu-scraper/runner/clirunner"
)

type fakeScraper struct {
	res  gmaps.MenuResult
	err  error
	urls []string
}

func (f *fakeScraper) Scrape(_ context.Context, placeURL string) (gmaps.MenuResult, error) {
	f.urls = append(f.urls, placeURL)

	return f.res, f.err
}

func TestRun_PrintsEnumeratedURLs(t *testing.T) {
	const placeURL = "https://www.google.com/maps/place/Cafe"

	scraper := &fakeScraper{
		res: gmaps.NewMenuResult(gmaps.StatusOK, placeURL, []string{
			"https://lh3.googleusercontent.com/a",
			"https://lh3.googleusercontent.com/b",
		}, 2),
	}

	var out bytes.Buffer

	r := clirunner.NewWithScraper(&runner.Config{RunMode: runner.RunModeCLI, URL: placeURL}, scraper, &out)
	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, []string{placeURL}, scraper.urls)
	assert.Contains(t, out.String(), "Google Maps Menu Scraper")
	assert.Contains(t, out.String(), "Results: Found 2 menu image URLs")
	assert.Contains(t, out.String(), "1. https://lh3.googleusercontent.com/a\n2. https://lh3.googleusercontent.com/b\n")
	assert.NotContains(t, out.String(), "Possible reasons")
	assert.NotContains(t, out.String(), "Usage:")
}

func TestRun_DefaultURLPrintsUsage(t *testing.T) {
	scraper := &fakeScraper{res: gmaps.NewMenuResult(gmaps.StatusOK, runner.DefaultPlaceURL, []string{"https://lh3.googleusercontent.com/a"}, 1)}

	var out bytes.Buffer

	cfg := &runner.Config{RunMode: runner.RunModeCLI, URL: runner.DefaultPlaceURL, URLDefaulted: true}

	require.NoError(t, clirunner.NewWithScraper(cfg, scraper, &out).Run(context.Background()))

	assert.Contains(t, out.String(), "Usage: menu-scraper [flags] <google_maps_url>")
	assert.Equal(t, []string{runner.DefaultPlaceURL}, scraper.urls)
}

func TestRun_ZeroResultsHint(t *testing.T) {
	tests := []struct {
		name     string
		res      gmaps.MenuResult
		contains []string
		excludes []string
	}{
		{
			name:     "no menu tab",
			res:      gmaps.NewMenuResult(gmaps.StatusNoMenuFound, "u", nil, 0),
			contains: []string{"Found 0 menu image URLs", "doesn't have a Menu tab", "no images"},
			excludes: []string{"photo host"},
		},
		{
			name:     "empty menu",
			res:      gmaps.NewMenuResult(gmaps.StatusOK, "u", nil, 1),
			contains: []string{"no images", "page structure"},
			excludes: []string{"doesn't have a Menu tab", "photo host"},
		},
		{
			name:     "host change",
			res:      gmaps.NewMenuResult(gmaps.StatusOK, "u", nil, 12),
			contains: []string{"photo host may have changed: 12 images"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			r := clirunner.NewWithScraper(&runner.Config{URL: "u"}, &fakeScraper{res: tt.res}, &out)
			require.NoError(t, r.Run(context.Background()))

			assert.Contains(t, out.String(), "No menu images found. Possible reasons:")

			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}

			for _, s := range tt.excludes {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestRun_ScrapeError(t *testing.T) {
	boom := errors.New("browser crashed")

	var out bytes.Buffer

	r := clirunner.NewWithScraper(&runner.Config{URL: "u"}, &fakeScraper{err: boom}, &out)

	assert.ErrorIs(t, r.Run(context.Background()), boom)
	assert.NotContains(t, out.String(), "Results:")
}

func TestNew_WrongRunMode(t *testing.T) {
	_, err := clirunner.New(context.Background(), &runner.Config{RunMode: runner.RunModeWeb}, nil)

	assert.ErrorIs(t, err, runner.ErrInvalidRunMode)
}

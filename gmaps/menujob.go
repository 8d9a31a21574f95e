package gmaps

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gosom/scrapemate"
	"github.com/playwright-community/playwright-go"

	"github.com/gosom/google-maps-menu-scraper/exiter"
	"github.com/gosom/google-maps-menu-scraper/models"
)

// MenuJob runs the menu pipeline inside a scrapemate app, which owns the browser.
type MenuJob struct {
	scrapemate.Job

	scraper     *Scraper
	exitMonitor exiter.Exiter
}

type MenuJobOptions func(*MenuJob)

func WithMenuJobExitMonitor(exitMonitor exiter.Exiter) MenuJobOptions {
	return func(j *MenuJob) {
		j.exitMonitor = exitMonitor
	}
}

func NewMenuJob(placeURL string, scraper *Scraper, opts ...MenuJobOptions) *MenuJob {
	const (
		defaultPrio       = scrapemate.PriorityMedium
		// Process records failures, so a retry would count the place twice.
		defaultMaxRetries = 0
	)

	job := MenuJob{
		Job: scrapemate.Job{
			ID:         uuid.New().String(),
			Method:     http.MethodGet,
			URL:        placeURL,
			MaxRetries: defaultMaxRetries,
			Priority:   defaultPrio,
		},
		scraper: scraper,
	}

	for _, opt := range opts {
		opt(&job)
	}

	return &job
}

func (j *MenuJob) BrowserActions(ctx context.Context, page playwright.Page) scrapemate.Response {
	var resp scrapemate.Response

	res, err := j.scraper.ScrapePage(ctx, NewPlaywrightPage(page), j.GetURL())
	if err != nil {
		resp.Error = err

		return resp
	}

	resp.URL = j.GetURL()
	resp.StatusCode = http.StatusOK
	resp.Meta = map[string]any{
		"menu": res,
	}

	return resp
}

// Process runs for failed fetches too: every place is counted as completed
// and leaves a record in the results.
func (j *MenuJob) Process(_ context.Context, resp *scrapemate.Response) (any, []scrapemate.IJob, error) {
	defer func() {
		resp.Meta = nil

		if j.exitMonitor != nil {
			j.exitMonitor.IncrPlacesCompleted(1)
		}
	}()

	if resp.Error != nil {
		return models.NewScrapeFailure(j.GetURL(), resp.Error), nil, nil
	}

	res, ok := resp.Meta["menu"].(MenuResult)
	if !ok {
		return nil, nil, fmt.Errorf("could not convert to menu result")
	}

	return models.NewScrapeResponse(string(res.ReportedStatus()), res.PlaceURL(), res.ImageURLs()), nil, nil
}

func (j *MenuJob) ProcessOnFetchError() bool {
	return true
}

func (j *MenuJob) UseInResults() bool {
	return true
}

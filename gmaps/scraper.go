package gmaps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gosom/google-maps-menu-scraper/gmaps/images"
	"github.com/gosom/google-maps-menu-scraper/tlmt"
	"github.com/gosom/google-maps-menu-scraper/tlmt/gonoop"
)

type Status string

const (
	StatusOK          Status = "ok"
	StatusNoMenuFound Status = "no_menu_found"
)

// hostChangeThreshold is the number of raw images above which an empty
// filtered result is suspicious.
const hostChangeThreshold = 5

// MenuResult is the outcome of one scrape. It cannot be modified once built.
type MenuResult struct {
	status    Status
	placeURL  string
	imageURLs []string
	rawCount  int
}

// NewMenuResult copies urls so the result does not alias the caller's slice.
func NewMenuResult(status Status, placeURL string, urls []string, rawCount int) MenuResult {
	cp := make([]string, len(urls))
	copy(cp, urls)

	return MenuResult{
		status:    status,
		placeURL:  placeURL,
		imageURLs: cp,
		rawCount:  rawCount,
	}
}

func (r MenuResult) Status() Status { return r.status }

func (r MenuResult) PlaceURL() string { return r.placeURL }

// ImageURLs returns a copy of the menu photo URLs in first-seen order.
func (r MenuResult) ImageURLs() []string {
	ans := make([]string, len(r.imageURLs))
	copy(ans, r.imageURLs)

	return ans
}

// RawImageCount is the number of image sources seen before filtering.
func (r MenuResult) RawImageCount() int { return r.rawCount }

// ReportedStatus is the status shown to callers: a result without any photo
// is reported as no_menu_found even when the tab itself was found.
func (r MenuResult) ReportedStatus() Status {
	if len(r.imageURLs) == 0 {
		return StatusNoMenuFound
	}

	return r.status
}

// SuspectHostChange reports a page full of images none of which passed the
// host filter, which usually means the photo CDN moved.
func (r MenuResult) SuspectHostChange() bool {
	return r.status == StatusOK && len(r.imageURLs) == 0 && r.rawCount >= hostChangeThreshold
}

// MenuScraper is implemented by *Scraper and faked in the adapters' tests.
type MenuScraper interface {
	Scrape(ctx context.Context, placeURL string) (MenuResult, error)
}

var _ MenuScraper = (*Scraper)(nil)

type ScraperOption func(*Scraper)

// Scraper collects menu photo URLs from Google Maps place pages.
type Scraper struct {
	launcher   Launcher
	timings    Timings
	strategies []LocatorStrategy
	hosts      []string
	diag       Diagnostics
	log        *zap.Logger
	telemetry  tlmt.Telemetry
}

func NewScraper(launcher Launcher, opts ...ScraperOption) *Scraper {
	ans := Scraper{
		launcher:   launcher,
		timings:    DefaultTimings(),
		strategies: DefaultMenuTabStrategies(),
		hosts:      images.DefaultHosts,
		diag:       Diagnostics{ScreenshotPath: DefaultScreenshotPath},
		log:        zap.NewNop(),
		telemetry:  gonoop.New(),
	}

	for _, opt := range opts {
		opt(&ans)
	}

	return &ans
}

func WithTimings(t Timings) ScraperOption {
	return func(s *Scraper) {
		s.timings = t
	}
}

func WithStrategies(strategies ...LocatorStrategy) ScraperOption {
	return func(s *Scraper) {
		s.strategies = strategies
	}
}

func WithImageHosts(hosts []string) ScraperOption {
	return func(s *Scraper) {
		if len(hosts) > 0 {
			s.hosts = hosts
		}
	}
}

func WithDiagnostics(d Diagnostics) ScraperOption {
	return func(s *Scraper) {
		s.diag = d
	}
}

func WithLogger(log *zap.Logger) ScraperOption {
	return func(s *Scraper) {
		if log != nil {
			s.log = log
		}
	}
}

func WithTelemetry(t tlmt.Telemetry) ScraperOption {
	return func(s *Scraper) {
		if t != nil {
			s.telemetry = t
		}
	}
}

// Scrape opens a fresh browser session, collects the menu photos of placeURL
// and tears the session down before returning, whatever the outcome.
func (s *Scraper) Scrape(ctx context.Context, placeURL string) (res MenuResult, err error) {
	t0 := time.Now()
	requestID := uuid.New().String()
	log := s.requestLogger(requestID, placeURL)

	defer func() {
		s.report(ctx, res, err, time.Since(t0))
	}()

	sess, err := s.launcher.Launch(ctx)
	if err != nil {
		log.Error("could not start browser", zap.Error(err))

		return MenuResult{}, err
	}

	defer func() {
		if cerr := sess.Close(); cerr != nil {
			log.Warn("browser teardown", zap.Error(cerr))
		}
	}()

	res, err = s.scrapePage(ctx, sess.Page(), placeURL, requestID, log)
	if err != nil {
		log.Error("scrape failed", zap.Error(err))
	}

	return res, err
}

// ScrapePage runs the pipeline on a page whose lifecycle the caller owns.
func (s *Scraper) ScrapePage(ctx context.Context, page Page, placeURL string) (res MenuResult, err error) {
	t0 := time.Now()
	requestID := uuid.New().String()

	defer func() {
		s.report(ctx, res, err, time.Since(t0))
	}()

	return s.scrapePage(ctx, page, placeURL, requestID, s.requestLogger(requestID, placeURL))
}

func (s *Scraper) scrapePage(ctx context.Context, page Page, placeURL, requestID string, log *zap.Logger) (MenuResult, error) {
	log.Info("navigating")

	if err := Navigate(page, placeURL, s.timings, log); err != nil {
		return MenuResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return MenuResult{}, err
	}

	log.Info("looking for menu tab")

	tab, strategy, err := LocateMenuTab(page, s.strategies, s.timings.TabVisibleTimeout)
	if errors.Is(err, ErrMenuTabNotFound) {
		s.diag.capture(ctx, page, requestID, log)

		return NewMenuResult(StatusNoMenuFound, placeURL, nil, 0), nil
	}

	if err != nil {
		return MenuResult{}, err
	}

	log.Info("found menu tab", zap.String("strategy", strategy.Name()))

	if err := tab.Click(); err != nil {
		return MenuResult{}, fmt.Errorf("click menu tab: %w", err)
	}

	page.WaitForTimeout(s.timings.MenuSettle)

	log.Info("scrolling to load all menu images")

	report, err := ScrollToBottom(ctx, page, s.timings.MaxScrolls, s.timings.ScrollDelay)
	if err != nil {
		return MenuResult{}, err
	}

	log.Debug("scroll finished",
		zap.Int("iterations", report.Iterations),
		zap.Int("height", report.LastHeight),
		zap.Bool("stable", report.Stable),
	)

	raw, err := ExtractImageSources(page)
	if err != nil {
		return MenuResult{}, err
	}

	res := NewMenuResult(StatusOK, placeURL, images.Filter(raw, s.hosts), len(raw))

	if res.SuspectHostChange() {
		log.Warn("no image matched the photo host allow-list",
			zap.Int("raw_images", len(raw)),
			zap.Strings("hosts", s.hosts),
		)
	}

	log.Info("found unique menu image urls", zap.Int("count", len(res.imageURLs)))

	return res, nil
}

func (s *Scraper) requestLogger(requestID, placeURL string) *zap.Logger {
	ref := ParsePlaceURL(placeURL)

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("url", placeURL),
	}

	if ref.Name != "" {
		fields = append(fields, zap.String("place", ref.Name))
	}

	if ref.DataID != "" {
		fields = append(fields, zap.String("data_id", ref.DataID))
	}

	if ref.HasGeo {
		fields = append(fields, zap.String("plus_code", ref.PlusCode))
	}

	return s.log.With(fields...)
}

func (s *Scraper) report(ctx context.Context, res MenuResult, err error, elapsed time.Duration) {
	params := map[string]any{
		"duration": elapsed.String(),
	}

	if err != nil {
		params["error"] = err.Error()
	} else {
		params["status"] = string(res.Status())
		params["image_count"] = len(res.imageURLs)
	}

	if err := s.telemetry.Send(ctx, tlmt.NewEvent("menu_scrape", params)); err != nil {
		s.log.Debug("telemetry", zap.Error(err))
	}
}

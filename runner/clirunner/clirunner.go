// Package clirunner scrapes a single place and prints the menu photo URLs.
package clirunner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/gosom/google-maps-menu-scraper/gmaps"
	"github.com/gosom/google-maps-menu-scraper/runner"
)

const ruleWidth = 80

type cliRunner struct {
	cfg     *runner.Config
	scraper gmaps.MenuScraper
	out     io.Writer
}

func New(ctx context.Context, cfg *runner.Config, log *zap.Logger) (runner.Runner, error) {
	if cfg.RunMode != runner.RunModeCLI {
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}

	scraper, err := runner.NewScraper(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return NewWithScraper(cfg, scraper, os.Stdout), nil
}

func NewWithScraper(cfg *runner.Config, scraper gmaps.MenuScraper, out io.Writer) runner.Runner {
	return &cliRunner{
		cfg:     cfg,
		scraper: scraper,
		out:     out,
	}
}

func (r *cliRunner) Run(ctx context.Context) error {
	if r.cfg.URLDefaulted {
		fmt.Fprintln(r.out, "Usage: menu-scraper [flags] <google_maps_url>")
		fmt.Fprintln(r.out, "Using default test URL...")
		fmt.Fprintln(r.out)
	}

	runner.Banner(r.out, ruleWidth, "Google Maps Menu Scraper")

	res, err := r.scraper.Scrape(ctx, r.cfg.URL)
	if err != nil {
		return err
	}

	r.printResult(res)

	return nil
}

func (r *cliRunner) Close(context.Context) error {
	return nil
}

func (r *cliRunner) printResult(res gmaps.MenuResult) {
	urls := res.ImageURLs()
	rule := strings.Repeat("=", ruleWidth)

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "Results: Found %d menu image URLs\n", len(urls))
	fmt.Fprintln(r.out, rule)

	for i, u := range urls {
		fmt.Fprintf(r.out, "%d. %s\n", i+1, u)
	}

	if len(urls) > 0 {
		return
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "⚠️  No menu images found. Possible reasons:")

	if res.Status() == gmaps.StatusNoMenuFound {
		fmt.Fprintln(r.out, "   - The place doesn't have a Menu tab")
	}

	fmt.Fprintln(r.out, "   - The menu section has no images")
	fmt.Fprintln(r.out, "   - The page structure may have changed")

	if res.SuspectHostChange() {
		fmt.Fprintf(r.out, "   - The photo host may have changed: %d images on the page, none from the allowed hosts\n", res.RawImageCount())
	}
}

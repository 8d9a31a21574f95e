package filerunner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gosom/scrapemate"
	"github.com/gosom/scrapemate/adapters/writers/jsonwriter"
	"github.com/gosom/scrapemate/scrapemateapp"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gosom/google-maps-menu-scraper/deduper"
	"github.com/gosom/google-maps-menu-scraper/exiter"
	"github.com/gosom/google-maps-menu-scraper/gmaps"
	"github.com/gosom/google-maps-menu-scraper/runner"
	"github.com/gosom/google-maps-menu-scraper/tlmt"
)

var ErrNoPlaces = errors.New("input has no place urls")

type fileRunner struct {
	cfg     *runner.Config
	log     *zap.Logger
	scraper *gmaps.Scraper
	input   io.Reader
	writers []scrapemate.ResultWriter
	app     *scrapemateapp.ScrapemateApp
	outfile *os.File
}

func New(ctx context.Context, cfg *runner.Config, log *zap.Logger) (runner.Runner, error) {
	if cfg.RunMode != runner.RunModeFile {
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}

	scraper, err := runner.NewScraper(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	ans := &fileRunner{
		cfg:     cfg,
		log:     log,
		scraper: scraper,
	}

	if err := ans.setInput(); err != nil {
		return nil, err
	}

	if err := ans.setWriters(); err != nil {
		return nil, err
	}

	if err := ans.setApp(); err != nil {
		return nil, err
	}

	return ans, nil
}

func (r *fileRunner) Run(ctx context.Context) (err error) {
	var seedJobs []scrapemate.IJob

	t0 := time.Now().UTC()

	defer func() {
		elapsed := time.Now().UTC().Sub(t0)
		params := map[string]any{
			"job_count": len(seedJobs),
			"duration":  elapsed.String(),
		}

		if err != nil {
			params["error"] = err.Error()
		}

		evt := tlmt.NewEvent("file_runner", params)

		_ = runner.Telemetry().Send(ctx, evt)
	}()

	exitMonitor := exiter.New()

	seedJobs, err = CreateSeedJobs(r.input, r.scraper, exitMonitor)
	if err != nil {
		return err
	}

	r.log.Info("starting batch", zap.Int("places", len(seedJobs)))

	exitMonitor.SetSeedCount(len(seedJobs))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	exitMonitor.SetCancelFunc(cancel)

	go exitMonitor.Run(ctx)

	err = r.app.Start(ctx, seedJobs...)
	if errors.Is(err, context.Canceled) {
		completed, total := exitMonitor.Progress()

		r.log.Info("batch finished", zap.Int("completed", completed), zap.Int("total", total))

		return nil
	}

	return err
}

func (r *fileRunner) Close(context.Context) error {
	var err error

	if r.app != nil {
		err = multierr.Append(err, r.app.Close())
	}

	if closer, ok := r.input.(io.Closer); ok && r.input != os.Stdin {
		err = multierr.Append(err, closer.Close())
	}

	if r.outfile != nil {
		err = multierr.Append(err, r.outfile.Close())
	}

	return err
}

// CreateSeedJobs reads one place URL per line. Blank lines, lines starting
// with # and repeated URLs are skipped.
func CreateSeedJobs(r io.Reader, scraper *gmaps.Scraper, exitMonitor exiter.Exiter) ([]scrapemate.IJob, error) {
	dedup := deduper.New()

	var jobs []scrapemate.IJob

	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !dedup.AddIfNotExists(context.Background(), line) {
			continue
		}

		var opts []gmaps.MenuJobOptions
		if exitMonitor != nil {
			opts = append(opts, gmaps.WithMenuJobExitMonitor(exitMonitor))
		}

		jobs = append(jobs, gmaps.NewMenuJob(line, scraper, opts...))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(jobs) == 0 {
		return nil, ErrNoPlaces
	}

	return jobs, nil
}

func (r *fileRunner) setInput() error {
	switch r.cfg.InputFile {
	case "stdin":
		r.input = os.Stdin
	default:
		f, err := os.Open(r.cfg.InputFile)
		if err != nil {
			return err
		}

		r.input = f
	}

	return nil
}

func (r *fileRunner) setWriters() error {
	var resultsWriter io.Writer

	switch r.cfg.ResultsFile {
	case "stdout":
		resultsWriter = os.Stdout
	default:
		f, err := os.Create(r.cfg.ResultsFile)
		if err != nil {
			return err
		}

		r.outfile = f

		resultsWriter = r.outfile
	}

	r.writers = append(r.writers, jsonwriter.NewJSONWriter(resultsWriter))

	return nil
}

func (r *fileRunner) setApp() error {
	opts := []func(*scrapemateapp.Config) error{
		scrapemateapp.WithConcurrency(r.cfg.Concurrency),
		scrapemateapp.WithExitOnInactivity(r.cfg.ExitOnInactivityDuration),
	}

	if len(r.cfg.Proxies) > 0 {
		opts = append(opts,
			scrapemateapp.WithProxies(r.cfg.Proxies),
		)
	}

	// menu photos are read from img attributes, so images are not blocked
	if r.cfg.Debug {
		opts = append(opts, scrapemateapp.WithJS(scrapemateapp.Headfull()))
	} else {
		opts = append(opts, scrapemateapp.WithJS())
	}

	matecfg, err := scrapemateapp.NewConfig(
		r.writers,
		opts...,
	)
	if err != nil {
		return err
	}

	r.app, err = scrapemateapp.NewScrapeMateApp(matecfg)
	if err != nil {
		return err
	}

	return nil
}

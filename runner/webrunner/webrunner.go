// Package webrunner serves the menu scraper over HTTP.
package webrunner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gosom/google-maps-menu-scraper/runner"
	"github.com/gosom/google-maps-menu-scraper/tlmt"
	"github.com/gosom/google-maps-menu-scraper/web"
)

type webrunner struct {
	webcfg web.Config
	log    *zap.Logger
}

func New(ctx context.Context, cfg *runner.Config, log *zap.Logger) (runner.Runner, error) {
	if cfg.RunMode != runner.RunModeWeb {
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}

	scraper, err := runner.NewScraper(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	ans := webrunner{
		webcfg: web.Config{
			Addr:    cfg.Addr(),
			Debug:   cfg.Debug,
			Scraper: scraper,
			Logger:  log,
		},
		log: log,
	}

	return &ans, nil
}

func (w *webrunner) Run(ctx context.Context) error {
	t0 := time.Now().UTC()

	egroup, ctx := errgroup.WithContext(ctx)

	egroup.Go(func() error {
		return web.Start(ctx, w.webcfg)
	})

	egroup.Go(func() error {
		<-ctx.Done()

		w.log.Info("shutting down http server")

		return nil
	})

	err := egroup.Wait()

	params := map[string]any{
		"duration": time.Now().UTC().Sub(t0).String(),
	}

	if err != nil {
		params["error"] = err.Error()
	}

	_ = runner.Telemetry().Send(context.WithoutCancel(ctx), tlmt.NewEvent("web_runner", params))

	return err
}

func (w *webrunner) Close(context.Context) error {
	return nil
}

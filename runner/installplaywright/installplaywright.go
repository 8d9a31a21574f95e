package installplaywright

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/gosom/google-maps-menu-scraper/runner"
)

type installer struct {
	log *zap.Logger
}

func New(cfg *runner.Config, log *zap.Logger) (runner.Runner, error) {
	if cfg.RunMode != runner.RunModeInstallPlaywright {
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}

	return &installer{log: log}, nil
}

func (i *installer) Run(context.Context) error {
	opts := []*playwright.RunOptions{
		{
			Browsers: []string{"chromium"},
		},
	}

	i.log.Info("installing playwright driver and chromium")

	if err := playwright.Install(opts...); err != nil {
		return fmt.Errorf("install playwright: %w", err)
	}

	i.log.Info("playwright installed")

	return nil
}

func (i *installer) Close(context.Context) error {
	return nil
}

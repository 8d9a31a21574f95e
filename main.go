package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gosom/google-maps-menu-scraper/runner"
	"github.com/gosom/google-maps-menu-scraper/runner/clirunner"
	"github.com/gosom/google-maps-menu-scraper/runner/filerunner"
	"github.com/gosom/google-maps-menu-scraper/runner/installplaywright"
	"github.com/gosom/google-maps-menu-scraper/runner/lambdaaws"
	"github.com/gosom/google-maps-menu-scraper/runner/webrunner"
)

func main() {
	_ = godotenv.Load()

	cfg, err := runner.ParseConfig()
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := runner.NewLogger(cfg.Debug, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	os.Exit(run(cfg, log))
}

func run(cfg *runner.Config, log *zap.Logger) int {
	defer func() {
		_ = log.Sync()
		_ = runner.Telemetry().Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan

		log.Info("received signal, shutting down")

		cancel()
	}()

	if cfg.RunMode == runner.RunModeWeb || cfg.RunMode == runner.RunModeFile {
		runner.Banner(os.Stderr, 0, "🍽  Google Maps Menu Scraper")
	}

	runnerInstance, err := runnerFactory(ctx, cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return 1
	}

	defer func() {
		if err := runnerInstance.Close(ctx); err != nil {
			log.Warn("close runner", zap.Error(err))
		}
	}()

	if err := runnerInstance.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		return 1
	}

	return 0
}

func runnerFactory(ctx context.Context, cfg *runner.Config, log *zap.Logger) (runner.Runner, error) {
	switch cfg.RunMode {
	case runner.RunModeCLI:
		return clirunner.New(ctx, cfg, log)
	case runner.RunModeFile:
		return filerunner.New(ctx, cfg, log)
	case runner.RunModeInstallPlaywright:
		return installplaywright.New(cfg, log)
	case runner.RunModeWeb:
		return webrunner.New(ctx, cfg, log)
	case runner.RunModeAwsLambda:
		return lambdaaws.New(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}
}

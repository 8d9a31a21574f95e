package lambdaaws

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-playground/validator/v10"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/gosom/google-maps-menu-scraper/gmaps"
	"github.com/gosom/google-maps-menu-scraper/models"
	"github.com/gosom/google-maps-menu-scraper/runner"
)

const (
	tmpDir         = "/tmp"
	layerBrowsers  = "/opt/browsers"
	layerDriver    = "/opt/ms-playwright-go"
	browsersEnvVar = "PLAYWRIGHT_BROWSERS_PATH"
)

var _ runner.Runner = (*lambdaAwsRunner)(nil)

type lambdaAwsRunner struct {
	scraper  gmaps.MenuScraper
	log      *zap.Logger
	validate *validator.Validate

	setupOnce sync.Once
	setupErr  error
	setup     func() error
}

func New(ctx context.Context, cfg *runner.Config, log *zap.Logger) (runner.Runner, error) {
	if cfg.RunMode != runner.RunModeAwsLambda {
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}

	browsersDst := filepath.Join(tmpDir, "browsers")
	driverDst := filepath.Join(tmpDir, "ms-playwright-go")

	scraper, err := runner.NewScraper(ctx, cfg, log, gmaps.WithRunOptions(&playwright.RunOptions{
		DriverDirectory:     driverDst,
		SkipInstallBrowsers: true,
		Browsers:            []string{"chromium"},
	}))
	if err != nil {
		return nil, err
	}

	setup := func() error {
		return setupBrowsersAndDriver(browsersDst, driverDst)
	}

	return newRunner(scraper, log, setup), nil
}

func newRunner(scraper gmaps.MenuScraper, log *zap.Logger, setup func() error) *lambdaAwsRunner {
	return &lambdaAwsRunner{
		scraper:  scraper,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		setup:    setup,
	}
}

func (l *lambdaAwsRunner) Run(context.Context) error {
	lambda.Start(l.handler)

	return nil
}

func (l *lambdaAwsRunner) Close(context.Context) error {
	return nil
}

// handler answers an event shaped like the POST /scrape-menu body with the
// same three-field response.
func (l *lambdaAwsRunner) handler(ctx context.Context, input models.ScrapeRequest) (models.ScrapeResponse, error) {
	l.setupOnce.Do(func() {
		l.setupErr = l.setup()
	})

	if l.setupErr != nil {
		return models.ScrapeResponse{}, l.setupErr
	}

	if err := l.validate.Struct(input); err != nil {
		return models.ScrapeResponse{}, fmt.Errorf("invalid event: %w", err)
	}

	res, err := l.scraper.Scrape(ctx, input.URL)
	if err != nil {
		return models.ScrapeResponse{}, fmt.Errorf("Scrape failed: %w", err) //nolint:stylecheck // matches the http detail
	}

	l.log.Info("lambda scrape done",
		zap.String("url", input.URL),
		zap.String("status", string(res.Status())),
		zap.String("reported_status", string(res.ReportedStatus())),
		zap.Int("count", len(res.ImageURLs())),
	)

	return models.NewScrapeResponse(string(res.ReportedStatus()), res.PlaceURL(), res.ImageURLs()), nil
}

func setupBrowsersAndDriver(browsersDst, driverDst string) error {
	if err := copyDir(layerBrowsers, browsersDst); err != nil {
		return fmt.Errorf("failed to copy browsers: %w", err)
	}

	if err := copyDir(layerDriver, driverDst); err != nil {
		return fmt.Errorf("failed to copy driver: %w", err)
	}

	return os.Setenv(browsersEnvVar, browsersDst)
}

func copyDir(src, dst string) error {
	cmd := exec.Command("cp", "-rf", src, dst)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("copy failed: %v, output: %s", err, string(output))
	}

	return nil
}

package gmaps

import (
	"context"
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/multierr"

	"github.com/gosom/google-maps-menu-scraper/utils"
)

// DefaultUserAgent is sent by every browser context we open.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var ErrLaunch = errors.New("could not start browser session")

// Launcher opens one isolated browser session per scrape.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}

// Session owns a browser process, its context and a single page. Close must be
// called on every exit path.
type Session interface {
	Page() Page
	Close() error
}

type LauncherOptions func(*PlaywrightLauncher)

// PlaywrightLauncher starts chromium through playwright for each session.
type PlaywrightLauncher struct {
	headless   bool
	userAgent  string
	proxies    []string
	runOptions *playwright.RunOptions
}

func NewPlaywrightLauncher(opts ...LauncherOptions) *PlaywrightLauncher {
	ans := PlaywrightLauncher{
		headless:  true,
		userAgent: DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(&ans)
	}

	return &ans
}

func WithHeadless(headless bool) LauncherOptions {
	return func(l *PlaywrightLauncher) {
		l.headless = headless
	}
}

func WithUserAgent(ua string) LauncherOptions {
	return func(l *PlaywrightLauncher) {
		if ua != "" {
			l.userAgent = ua
		}
	}
}

// WithProxies rotates sessions across the given proxy URLs.
func WithProxies(proxies []string) LauncherOptions {
	return func(l *PlaywrightLauncher) {
		l.proxies = proxies
	}
}

// WithRunOptions is used when the playwright driver ships with the binary
// (e.g. inside a lambda layer).
func WithRunOptions(opts *playwright.RunOptions) LauncherOptions {
	return func(l *PlaywrightLauncher) {
		l.runOptions = opts
	}
}

func (l *PlaywrightLauncher) Launch(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var runOpts []*playwright.RunOptions
	if l.runOptions != nil {
		runOpts = append(runOpts, l.runOptions)
	}

	pw, err := playwright.Run(runOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	sess := playwrightSession{pw: pw}

	sess.browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.headless),
		Args: []string{
			`--no-default-browser-check`,
			`--disable-blink-features=AutomationControlled`,
		},
	})
	if err != nil {
		_ = sess.Close()

		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	const defaultWidth, defaultHeight = 1920, 1080

	sess.bctx, err = sess.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(l.userAgent),
		Viewport: &playwright.Size{
			Width:  defaultWidth,
			Height: defaultHeight,
		},
		Proxy: utils.ToPWProxy(utils.GetRoundRobinInProxyUrl(l.proxies)),
	})
	if err != nil {
		_ = sess.Close()

		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	page, err := sess.bctx.NewPage()
	if err != nil {
		_ = sess.Close()

		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	sess.page = NewPlaywrightPage(page)

	return &sess, nil
}

type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	bctx    playwright.BrowserContext
	page    *PlaywrightPage
}

func (s *playwrightSession) Page() Page {
	return s.page
}

func (s *playwrightSession) Close() error {
	var err error

	if s.page != nil {
		err = multierr.Append(err, s.page.page.Close())
	}

	if s.bctx != nil {
		err = multierr.Append(err, s.bctx.Close())
	}

	if s.browser != nil {
		err = multierr.Append(err, s.browser.Close())
	}

	if s.pw != nil {
		err = multierr.Append(err, s.pw.Stop())
	}

	return err
}

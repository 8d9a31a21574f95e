package gmaps

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Page is the slice of browser page behaviour the menu pipeline relies on.
// PlaywrightPage adapts a playwright.Page; tests provide scripted fakes.
type Page interface {
	Goto(url string, timeout time.Duration) error
	WaitForTimeout(d time.Duration)
	GetByRole(role, name string) Element
	GetByText(text string) Element
	Locator(selector string) Element
	Evaluate(expression string, args ...any) (any, error)
	Screenshot(path string) ([]byte, error)
	Content() (string, error)
}

// Element is a lazily resolved handle to the first match of a query.
type Element interface {
	// IsVisible waits up to timeout for the element to become visible.
	// A timeout is reported as false, not as an error.
	IsVisible(timeout time.Duration) (bool, error)
	Click() error
}

var _ Page = (*PlaywrightPage)(nil)

type PlaywrightPage struct {
	page playwright.Page
}

func NewPlaywrightPage(page playwright.Page) *PlaywrightPage {
	return &PlaywrightPage{page: page}
}

func (p *PlaywrightPage) Goto(url string, timeout time.Duration) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(millis(timeout)),
	})

	return err
}

func (p *PlaywrightPage) WaitForTimeout(d time.Duration) {
	p.page.WaitForTimeout(millis(d))
}

func (p *PlaywrightPage) GetByRole(role, name string) Element {
	loc := p.page.GetByRole(playwright.AriaRole(role), playwright.PageGetByRoleOptions{
		Name: name,
	})

	return &playwrightElement{loc: loc.First()}
}

func (p *PlaywrightPage) GetByText(text string) Element {
	return &playwrightElement{loc: p.page.GetByText(text).First()}
}

func (p *PlaywrightPage) Locator(selector string) Element {
	return &playwrightElement{loc: p.page.Locator(selector).First()}
}

func (p *PlaywrightPage) Evaluate(expression string, args ...any) (any, error) {
	return p.page.Evaluate(expression, args...)
}

func (p *PlaywrightPage) Screenshot(path string) ([]byte, error) {
	opts := playwright.PageScreenshotOptions{}
	if path != "" {
		opts.Path = playwright.String(path)
	}

	return p.page.Screenshot(opts)
}

func (p *PlaywrightPage) Content() (string, error) {
	return p.page.Content()
}

type playwrightElement struct {
	loc playwright.Locator
}

func (e *playwrightElement) IsVisible(timeout time.Duration) (bool, error) {
	err := e.loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(millis(timeout)),
	})
	if err != nil {
		// playwright reports both "never appeared" and "detached" as errors here;
		// neither means the page is broken.
		return false, nil //nolint:nilerr // absence is an expected outcome
	}

	return true, nil
}

func (e *playwrightElement) Click() error {
	return e.loc.Click()
}

func millis(d time.Duration) float64 {
	return float64(d.Milliseconds())
}

package gmaps

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

var errFake = errors.New("fake failure")

type fakeElement struct {
	visible  bool
	clickErr error
	clicks   int
	onClick  func()
}

func (e *fakeElement) IsVisible(time.Duration) (bool, error) {
	return e.visible, nil
}

func (e *fakeElement) Click() error {
	if e.clickErr != nil {
		return e.clickErr
	}

	e.clicks++

	if e.onClick != nil {
		e.onClick()
	}

	return nil
}

// scrollLoad is revealed by one scroll to the bottom.
type scrollLoad struct {
	grow   int
	images []string
}

// fakePage is a deterministic stand-in for a place page. Elements that are not
// registered resolve to an invisible element, like a locator that never matches.
type fakePage struct {
	gotoErr  error
	gotoURLs []string
	waits    []time.Duration

	roles map[string]*fakeElement
	texts map[string]*fakeElement
	css   map[string]*fakeElement

	height int
	// growEveryScroll makes the page taller on every scroll, forever.
	growEveryScroll bool
	loads           []scrollLoad
	images          []any
	scrolls         int
	stripScrolls    int
	evalErr         error
	evalErrAfter    int
	evals           int

	html        string
	screenshots []string
}

func newFakePage() *fakePage {
	return &fakePage{
		roles:  make(map[string]*fakeElement),
		texts:  make(map[string]*fakeElement),
		css:    make(map[string]*fakeElement),
		height: 1000,
	}
}

func (p *fakePage) Goto(url string, _ time.Duration) error {
	p.gotoURLs = append(p.gotoURLs, url)

	return p.gotoErr
}

func (p *fakePage) WaitForTimeout(d time.Duration) {
	p.waits = append(p.waits, d)
}

func (p *fakePage) GetByRole(role, name string) Element {
	return lookup(p.roles, role+"|"+name)
}

func (p *fakePage) GetByText(text string) Element {
	return lookup(p.texts, text)
}

func (p *fakePage) Locator(selector string) Element {
	return lookup(p.css, selector)
}

func lookup(m map[string]*fakeElement, key string) Element {
	if el, ok := m[key]; ok {
		return el
	}

	return &fakeElement{}
}

func (p *fakePage) Evaluate(expression string, _ ...any) (any, error) {
	p.evals++

	if p.evalErr != nil && p.evals > p.evalErrAfter {
		return nil, p.evalErr
	}

	switch expression {
	case jsScrollHeight:
		return p.height, nil
	case jsScrollBottom:
		p.scrolls++

		if p.growEveryScroll {
			p.height += 100
		}

		if len(p.loads) > 0 {
			next := p.loads[0]
			p.loads = p.loads[1:]
			p.height += next.grow

			for _, img := range next.images {
				p.images = append(p.images, img)
			}
		}

		return nil, nil
	case jsScrollMenuStrip:
		p.stripScrolls++

		return true, nil
	case jsImageSources:
		return p.images, nil
	}

	return nil, nil
}

func (p *fakePage) Screenshot(path string) ([]byte, error) {
	p.screenshots = append(p.screenshots, path)

	return []byte("png"), nil
}

func (p *fakePage) Content() (string, error) {
	return p.html, nil
}

type fakeSession struct {
	page   *fakePage
	closed int
}

func (s *fakeSession) Page() Page { return s.page }

func (s *fakeSession) Close() error {
	s.closed++

	return nil
}

type fakeLauncher struct {
	sess *fakeSession
	err  error
}

func (l *fakeLauncher) Launch(context.Context) (Session, error) {
	if l.err != nil {
		return nil, l.err
	}

	return l.sess, nil
}

func testTimings() Timings {
	t := DefaultTimings()
	t.MaxScrolls = 20

	return t
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}

package gmaps

import (
	"errors"
	"time"
)

var ErrMenuTabNotFound = errors.New("menu tab not found")

// LocatorStrategy is one way of finding the Menu tab on a place page.
type LocatorStrategy interface {
	Name() string
	Locate(page Page) Element
}

type RoleStrategy struct {
	Role  string
	Label string
}

func (s RoleStrategy) Name() string { return "role" }

func (s RoleStrategy) Locate(page Page) Element {
	return page.GetByRole(s.Role, s.Label)
}

type TextStrategy struct {
	Text string
}

func (s TextStrategy) Name() string { return "text" }

func (s TextStrategy) Locate(page Page) Element {
	return page.GetByText(s.Text)
}

type CSSStrategy struct {
	Selector string
}

func (s CSSStrategy) Name() string { return "css" }

func (s CSSStrategy) Locate(page Page) Element {
	return page.Locator(s.Selector)
}

// DefaultMenuTabStrategies is tried in order; the first visible hit wins.
func DefaultMenuTabStrategies() []LocatorStrategy {
	return []LocatorStrategy{
		RoleStrategy{Role: "tab", Label: "Menu"},
		TextStrategy{Text: "Menu"},
		CSSStrategy{Selector: `button[data-value="Menu"]`},
		CSSStrategy{Selector: `[role="tab"]:has-text("Menu")`},
	}
}

// LocateMenuTab returns the first element produced by strategies that becomes
// visible within timeout, together with the strategy that found it.
func LocateMenuTab(page Page, strategies []LocatorStrategy, timeout time.Duration) (Element, LocatorStrategy, error) {
	for _, s := range strategies {
		el := s.Locate(page)
		if el == nil {
			continue
		}

		visible, err := el.IsVisible(timeout)
		if err != nil || !visible {
			continue
		}

		return el, s, nil
	}

	return nil, nil, ErrMenuTabNotFound
}

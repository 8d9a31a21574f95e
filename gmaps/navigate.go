package gmaps

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var ErrNavigation = errors.New("navigation failed")

// consentSelector matches the cookie/consent buttons Google shows in some regions.
const consentSelector = `button:has-text("Accept"), button:has-text("I agree"), [aria-label*="Accept"], [aria-label*="Dismiss"]`

// Navigate loads placeURL, waits for it to settle and clears a consent dialog
// when one shows up. Only the page load itself can fail.
func Navigate(page Page, placeURL string, t Timings, log *zap.Logger) error {
	// "load" rather than network idle: maps keeps polling in the background.
	if err := page.Goto(placeURL, t.NavigationTimeout); err != nil {
		return fmt.Errorf("%w: %w", ErrNavigation, err)
	}

	page.WaitForTimeout(t.SettleDelay)

	if DismissConsent(page, t) {
		log.Debug("consent dialog dismissed")
	}

	return nil
}

// DismissConsent clicks a visible consent control and reports whether it did.
func DismissConsent(page Page, t Timings) bool {
	btn := page.Locator(consentSelector)

	visible, err := btn.IsVisible(t.ConsentTimeout)
	if err != nil || !visible {
		return false
	}

	if err := btn.Click(); err != nil {
		return false
	}

	page.WaitForTimeout(t.ConsentSettle)

	return true
}

package gmaps

import "time"

// The delays below were picked by watching Google Maps render; they encode no
// guarantee and may need tuning when the page changes.
const (
	DefaultNavigationTimeout = 60 * time.Second
	DefaultSettleDelay       = 5 * time.Second
	DefaultConsentTimeout    = 2 * time.Second
	DefaultConsentSettle     = 1 * time.Second
	DefaultTabVisibleTimeout = 3 * time.Second
	DefaultMenuSettle        = 4 * time.Second
	DefaultScrollDelay       = 1500 * time.Millisecond
	DefaultMaxScrolls        = 20

	// stableReadings is how many consecutive unchanged heights end the scroll loop.
	stableReadings = 2
)

// Timings groups the tunable waits used while driving a place page.
type Timings struct {
	NavigationTimeout time.Duration
	SettleDelay       time.Duration
	ConsentTimeout    time.Duration
	ConsentSettle     time.Duration
	TabVisibleTimeout time.Duration
	MenuSettle        time.Duration
	ScrollDelay       time.Duration
	MaxScrolls        int
}

func DefaultTimings() Timings {
	return Timings{
		NavigationTimeout: DefaultNavigationTimeout,
		SettleDelay:       DefaultSettleDelay,
		ConsentTimeout:    DefaultConsentTimeout,
		ConsentSettle:     DefaultConsentSettle,
		TabVisibleTimeout: DefaultTabVisibleTimeout,
		MenuSettle:        DefaultMenuSettle,
		ScrollDelay:       DefaultScrollDelay,
		MaxScrolls:        DefaultMaxScrolls,
	}
}

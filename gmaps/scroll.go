package gmaps

import (
	"context"
	"fmt"
	"time"
)

const (
	jsScrollHeight = `() => document.scrollingElement.scrollHeight`
	jsScrollBottom = `() => window.scrollTo(0, document.scrollingElement.scrollHeight)`
	// jsScrollMenuStrip pushes the horizontal strip holding the Menu tab to its
	// right edge. It returns false when there is no such strip.
	jsScrollMenuStrip = `() => {
		const tab = document.querySelector('[data-value="Menu"]');
		if (!tab || !tab.parentElement) {
			return false;
		}
		const strip = tab.parentElement;
		strip.scrollLeft = strip.scrollWidth;
		return true;
	}`
)

// ScrollReport describes how a scroll run ended.
type ScrollReport struct {
	Iterations int
	LastHeight int
	// Stable is false when the iteration cap stopped the loop.
	Stable bool
}

// ScrollToBottom scrolls the page until its height stops growing for two
// consecutive readings or maxIterations is reached.
func ScrollToBottom(ctx context.Context, page Page, maxIterations int, delay time.Duration) (ScrollReport, error) {
	var (
		report    ScrollReport
		unchanged int
	)

	for report.Iterations < maxIterations {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Iterations++

		before, err := scrollHeight(page)
		if err != nil {
			return report, err
		}

		if _, err := page.Evaluate(jsScrollBottom); err != nil {
			return report, fmt.Errorf("scroll: %w", err)
		}

		page.WaitForTimeout(delay)

		after, err := scrollHeight(page)
		if err != nil {
			return report, err
		}

		if after == before {
			unchanged++
		} else {
			unchanged = 0
		}

		report.LastHeight = after

		if unchanged >= stableReadings {
			report.Stable = true

			break
		}

		if _, err := page.Evaluate(jsScrollMenuStrip); err != nil {
			return report, fmt.Errorf("scroll menu strip: %w", err)
		}
	}

	return report, nil
}

func scrollHeight(page Page) (int, error) {
	raw, err := page.Evaluate(jsScrollHeight)
	if err != nil {
		return 0, fmt.Errorf("read scroll height: %w", err)
	}

	height, ok := toInt(raw)
	if !ok {
		return 0, fmt.Errorf("scroll height is not a number: %T", raw)
	}

	return height, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

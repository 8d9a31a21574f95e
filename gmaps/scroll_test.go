package gmaps

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollToBottom_StopsAfterTwoUnchangedReadings(t *testing.T) {
	page := newFakePage()

	report, err := ScrollToBottom(context.Background(), page, 20, time.Second)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Iterations)
	assert.True(t, report.Stable)
	assert.Equal(t, 1000, report.LastHeight)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, page.waits)
}

func TestScrollToBottom_JitterResetsCounter(t *testing.T) {
	page := newFakePage()
	page.loads = []scrollLoad{
		{grow: 0},
		{grow: 300},
		{grow: 0},
		{grow: 0},
	}

	report, err := ScrollToBottom(context.Background(), page, 20, time.Millisecond)
	require.NoError(t, err)

	// unchanged, grown (reset), unchanged, unchanged
	assert.Equal(t, 4, report.Iterations)
	assert.True(t, report.Stable)
	assert.Equal(t, 1300, report.LastHeight)
}

func TestScrollToBottom_IterationCapHolds(t *testing.T) {
	tests := []struct {
		name string
		max  int
	}{
		{name: "default cap", max: DefaultMaxScrolls},
		{name: "small cap", max: 3},
		{name: "single", max: 1},
		{name: "zero", max: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newFakePage()
			page.growEveryScroll = true

			report, err := ScrollToBottom(context.Background(), page, tt.max, time.Millisecond)
			require.NoError(t, err)

			assert.Equal(t, tt.max, report.Iterations)
			assert.Equal(t, tt.max, page.scrolls)
			assert.False(t, report.Stable)
		})
	}
}

func TestScrollToBottom_ScrollsMenuStripUntilStable(t *testing.T) {
	page := newFakePage()
	page.loads = []scrollLoad{{grow: 500}}

	report, err := ScrollToBottom(context.Background(), page, 20, time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Iterations)
	assert.Equal(t, 2, page.stripScrolls)
}

func TestScrollToBottom_EvaluationError(t *testing.T) {
	page := newFakePage()
	page.evalErr = errFake

	_, err := ScrollToBottom(context.Background(), page, 20, time.Millisecond)
	assert.ErrorIs(t, err, errFake)
}

func TestScrollToBottom_ContextCancelled(t *testing.T) {
	page := newFakePage()
	page.growEveryScroll = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := ScrollToBottom(ctx, page, 20, time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Iterations)
}

func TestToInt(t *testing.T) {
	for _, v := range []any{42, int64(42), float64(42)} {
		n, ok := toInt(v)
		assert.True(t, ok)
		assert.Equal(t, 42, n)
	}

	_, ok := toInt("42")
	assert.False(t, ok)
}

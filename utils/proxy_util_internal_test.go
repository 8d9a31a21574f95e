package utils

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRobin_StartsAtFirst(t *testing.T) {
	var counter atomic.Uint64

	urls := []string{"a", "b", "c"}

	got := make([]string, 0, 4)
	for range 4 {
		got = append(got, roundRobin(&counter, urls))
	}

	assert.Equal(t, []string{"a", "b", "c", "a"}, got)
}

func TestRoundRobin_CounterWraps(t *testing.T) {
	var counter atomic.Uint64

	counter.Store(math.MaxUint64 - 1)

	urls := []string{"a", "b", "c", "d", "e"}

	assert.NotPanics(t, func() {
		for range 10 {
			assert.Contains(t, urls, roundRobin(&counter, urls))
		}
	})
}

func TestRoundRobin_Empty(t *testing.T) {
	var counter atomic.Uint64

	assert.Empty(t, roundRobin(&counter, nil))
	assert.Zero(t, counter.Load())
}

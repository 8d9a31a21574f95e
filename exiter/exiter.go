package exiter

import (
	"context"
	"sync"
	"time"
)

const checkInterval = time.Second

// Exiter cancels a batch run once every seeded place has been processed.
type Exiter interface {
	SetSeedCount(int)
	SetCancelFunc(context.CancelFunc)
	IncrPlacesCompleted(int)
	Progress() (completed int, total int)
	Run(context.Context)
}

type exiter struct {
	seedCount       int
	placesCompleted int

	mu         *sync.Mutex
	cancelFunc context.CancelFunc
}

func New() Exiter {
	return &exiter{
		mu: &sync.Mutex{},
	}
}

func (e *exiter) SetSeedCount(val int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.seedCount = val
}

func (e *exiter) SetCancelFunc(fn context.CancelFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelFunc = fn
}

func (e *exiter) IncrPlacesCompleted(val int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.placesCompleted += val
}

func (e *exiter) Progress() (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.placesCompleted, e.seedCount
}

// Run blocks until ctx is done or all places are completed, in which case
// the cancel func is called.
func (e *exiter) Run(ctx context.Context) {
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if e.isDone() {
				e.mu.Lock()
				cancel := e.cancelFunc
				e.mu.Unlock()

				if cancel != nil {
					cancel()
				}

				return
			}
		}
	}
}

func (e *exiter) isDone() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.seedCount > 0 && e.placesCompleted >= e.seedCount
}

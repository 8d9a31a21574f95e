package deduper

import (
	"context"
)

type Deduper interface {
	AddIfNotExists(context.Context, string) bool
}

// New returns an insertion-ordered deduper. It is not safe for concurrent use;
// callers keep one per extraction.
func New() *Ordered {
	return &Ordered{
		seen: make(map[string]struct{}),
	}
}

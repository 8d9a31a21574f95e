package deduper

import (
	"context"
)

var _ Deduper = (*Ordered)(nil)

// Ordered remembers keys in the order they were first added.
type Ordered struct {
	seen  map[string]struct{}
	order []string
}

func (d *Ordered) AddIfNotExists(_ context.Context, key string) bool {
	if _, ok := d.seen[key]; ok {
		return false
	}

	d.seen[key] = struct{}{}
	d.order = append(d.order, key)

	return true
}

// Keys returns a copy of the accepted keys in first-seen order.
func (d *Ordered) Keys() []string {
	ans := make([]string, len(d.order))
	copy(ans, d.order)

	return ans
}

func (d *Ordered) Len() int {
	return len(d.order)
}

package deduper_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosom/google-maps-menu-scraper/deduper"
)

func TestOrdered_AddIfNotExists(t *testing.T) {
	ctx := context.Background()
	d := deduper.New()

	require.True(t, d.AddIfNotExists(ctx, "b"))
	require.True(t, d.AddIfNotExists(ctx, "a"))
	require.False(t, d.AddIfNotExists(ctx, "b"))
	require.True(t, d.AddIfNotExists(ctx, "c"))
	require.False(t, d.AddIfNotExists(ctx, "a"))

	assert.Equal(t, []string{"b", "a", "c"}, d.Keys())
	assert.Equal(t, 3, d.Len())
}

func TestOrdered_KeysIsACopy(t *testing.T) {
	d := deduper.New()
	d.AddIfNotExists(context.Background(), "x")

	keys := d.Keys()
	keys[0] = "mutated"

	assert.Equal(t, []string{"x"}, d.Keys())
}

func TestOrdered_Empty(t *testing.T) {
	d := deduper.New()

	assert.Empty(t, d.Keys())
	assert.Equal(t, 0, d.Len())
}

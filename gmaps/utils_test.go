package gmaps_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gosom/google-maps-menu-scraper/gmaps"
)

const cavaURL = "https://www.google.com/maps/place/CAVA/@33.5087058,-112.0458579,17z/data=!3m1!4b1!4m6!3m5!1s0x872b0dc8ef74aa11:0x4f3ccce4e3eb8f6e!8m2!3d33.5087058!4d-112.0458579!16s%2Fg%2F11rq8nl6lt?entry=ttu"

func TestExtractDataIDFromURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "place url with data segment",
			url:      cavaURL,
			expected: "0x872b0dc8ef74aa11:0x4f3ccce4e3eb8f6e",
		},
		{
			name:     "Blue Bottle Coffee",
			url:      "https://www.google.com/maps/place/Blue+Bottle+Coffee/data=!4m7!3m6!1s0x80858098babc2d4b:0xbeedd659cc698c92!8m2!3d37.7763342!4d-122.4232375",
			expected: "0x80858098babc2d4b:0xbeedd659cc698c92",
		},
		{
			name:     "search url",
			url:      "https://www.google.com/maps/search/?api=1&query=CAVA&query_place_id=ChIJEap078gNK4cRbo_r4-TMPE8",
			expected: "",
		},
		{
			name:     "empty",
			url:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, gmaps.ExtractDataIDFromURL(tt.url))
		})
	}
}

func TestParsePlaceURL(t *testing.T) {
	ref := gmaps.ParsePlaceURL(cavaURL)

	assert.Equal(t, "CAVA", ref.Name)
	assert.Equal(t, "0x872b0dc8ef74aa11:0x4f3ccce4e3eb8f6e", ref.DataID)
	assert.True(t, ref.HasGeo)
	assert.InDelta(t, 33.5087058, ref.Lat, 1e-9)
	assert.InDelta(t, -112.0458579, ref.Lon, 1e-9)
	assert.NotEmpty(t, ref.PlusCode)
	assert.Contains(t, ref.PlusCode, "+")
}

func TestParsePlaceURL_EncodedName(t *testing.T) {
	ref := gmaps.ParsePlaceURL("https://www.google.com/maps/place/Blue+Bottle+Caf%C3%A9/data=!4m2")

	assert.Equal(t, "Blue Bottle Café", ref.Name)
	assert.False(t, ref.HasGeo)
	assert.Empty(t, ref.PlusCode)
}

func TestParsePlaceURL_NotAPlace(t *testing.T) {
	ref := gmaps.ParsePlaceURL("https://www.google.com/maps/place/?place_id=ChIJEap078gNK4cRbo_r4-TMPE8")

	assert.Empty(t, ref.Name)
	assert.Empty(t, ref.DataID)
	assert.False(t, ref.HasGeo)
}

package gmaps

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	olc "github.com/google/open-location-code/go"
)

var (
	dataIDRe = regexp.MustCompile(`1s(0x[a-f0-9]+:0x[a-f0-9]+)`)
	coordsRe = regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
)

// plusCodeLen gives roughly 14m precision, enough to tell venues apart.
const plusCodeLen = 10

// PlaceRef is what can be learnt about a place from its URL alone.
type PlaceRef struct {
	Name     string
	DataID   string
	Lat      float64
	Lon      float64
	HasGeo   bool
	PlusCode string
}

// ExtractDataIDFromURL extracts the DataID (0x[hex1]:0x[hex2]) from Google Maps URLs.
//
// Example:
//
//	Input:  "https://www.google.com/maps/place/Blue+Bottle+Coffee/data=!4m7!3m6!1s0x80858098babc2d4b:0xbeedd659cc698c92!8m2"
//	Output: "0x80858098babc2d4b:0xbeedd659cc698c92"
func ExtractDataIDFromURL(u string) string {
	matches := dataIDRe.FindStringSubmatch(u)
	if len(matches) >= 2 {
		return matches[1]
	}

	return ""
}

// ParsePlaceURL pulls the name, data id and map centre out of a place URL.
// Missing parts are left zero.
func ParsePlaceURL(raw string) PlaceRef {
	var ans PlaceRef

	ans.DataID = ExtractDataIDFromURL(raw)

	if u, err := url.Parse(raw); err == nil {
		ans.Name = placeName(u.EscapedPath())
	}

	if m := coordsRe.FindStringSubmatch(raw); len(m) == 3 {
		lat, errLat := strconv.ParseFloat(m[1], 64)
		lon, errLon := strconv.ParseFloat(m[2], 64)

		if errLat == nil && errLon == nil && lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180 {
			ans.Lat = lat
			ans.Lon = lon
			ans.HasGeo = true
			ans.PlusCode = olc.Encode(lat, lon, plusCodeLen)
		}
	}

	return ans
}

func placeName(escapedPath string) string {
	const marker = "/maps/place/"

	idx := strings.Index(escapedPath, marker)
	if idx == -1 {
		return ""
	}

	rest := escapedPath[idx+len(marker):]
	if end := strings.Index(rest, "/"); end != -1 {
		rest = rest[:end]
	}

	if rest == "" || strings.HasPrefix(rest, "@") {
		return ""
	}

	name, err := url.PathUnescape(strings.ReplaceAll(rest, "+", " "))
	if err != nil {
		return rest
	}

	return name
}

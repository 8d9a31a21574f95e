// Package images filters raw image sources collected from a rendered place page.
package images

import (
	"context"
	"net/url"
	"strings"

	"github.com/gosom/google-maps-menu-scraper/deduper"
)

// DefaultHosts are the domains Google serves place photos from.
var DefaultHosts = []string{
	"googleusercontent.com",
	"googleapis.com",
}

// Filter keeps absolute http(s) URLs hosted on one of hosts (or a subdomain)
// and drops repeats. The first occurrence of every URL keeps its position.
func Filter(raw, hosts []string) []string {
	dedup := deduper.New()

	for _, u := range raw {
		if !IsHostedOn(u, hosts) {
			continue
		}

		dedup.AddIfNotExists(context.Background(), u)
	}

	return dedup.Keys()
}

// Dedupe removes repeated entries, preserving first-seen order.
func Dedupe(urls []string) []string {
	dedup := deduper.New()

	for _, u := range urls {
		dedup.AddIfNotExists(context.Background(), u)
	}

	return dedup.Keys()
}

// IsHostedOn reports whether rawURL is an absolute http(s) URL whose host is
// one of hosts or a subdomain of one.
func IsHostedOn(rawURL string, hosts []string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}

	for _, h := range hosts {
		h = strings.ToLower(strings.TrimPrefix(h, "."))
		if h == "" {
			continue
		}

		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}

	return false
}

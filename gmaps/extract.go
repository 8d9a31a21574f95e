package gmaps

import (
	"fmt"
)

const jsImageSources = `() => {
	const images = Array.from(document.querySelectorAll('img'));
	return images
		.map(img => img.src || img.currentSrc || img.getAttribute('data-src'))
		.filter(url => url && url.startsWith('http'));
}`

// ExtractImageSources returns the source of every <img> on the page, in
// document order. Lazy images without a resolved src fall back to data-src.
func ExtractImageSources(page Page) ([]string, error) {
	raw, err := page.Evaluate(jsImageSources)
	if err != nil {
		return nil, fmt.Errorf("read image sources: %w", err)
	}

	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []any:
		ans := make([]string, 0, len(v))

		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				ans = append(ans, s)
			}
		}

		return ans, nil
	default:
		return nil, fmt.Errorf("unexpected image sources type %T", raw)
	}
}

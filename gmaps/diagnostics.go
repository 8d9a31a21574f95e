package gmaps

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const DefaultScreenshotPath = "debug_screenshot.png"

// Uploader stores diagnostic artifacts remotely.
type Uploader interface {
	Upload(ctx context.Context, bucketName, key string, body io.Reader) error
}

// Diagnostics controls what is captured when a place page has no Menu tab.
type Diagnostics struct {
	// ScreenshotPath is where the page screenshot is written. Empty disables it.
	ScreenshotPath string
	// PerRequest adds the request id to the screenshot file name so that
	// concurrent scrapes do not overwrite each other.
	PerRequest bool
	Uploader       Uploader
	Bucket         string
}

// TabInfo describes a tab-like control found on the page.
type TabInfo struct {
	Text      string `json:"text"`
	DataValue string `json:"data_value,omitempty"`
	AriaLabel string `json:"aria_label,omitempty"`
}

// ListTabs parses the rendered HTML and returns every tab-like control in
// document order.
func ListTabs(html string) ([]TabInfo, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var tabs []TabInfo

	doc.Find(`[role="tab"], button[data-value]`).Each(func(_ int, s *goquery.Selection) {
		tabs = append(tabs, TabInfo{
			Text:      strings.TrimSpace(s.Text()),
			DataValue: s.AttrOr("data-value", ""),
			AriaLabel: s.AttrOr("aria-label", ""),
		})
	})

	return tabs, nil
}

// capture is best effort: every failure is logged and swallowed so that a
// missing menu still yields an empty result.
func (d Diagnostics) capture(ctx context.Context, page Page, requestID string, log *zap.Logger) {
	if path := d.screenshotPath(requestID); path != "" {
		shot, err := page.Screenshot(path)
		if err != nil {
			log.Warn("could not take debug screenshot", zap.Error(err))
		} else {
			log.Info("menu tab not found, saved screenshot for inspection", zap.String("path", path))

			d.upload(ctx, shot, requestID, log)
		}
	}

	html, err := page.Content()
	if err != nil {
		log.Warn("could not read page content", zap.Error(err))

		return
	}

	tabs, err := ListTabs(html)
	if err != nil {
		log.Warn("could not parse page content", zap.Error(err))

		return
	}

	log.Info("tabs present on page", zap.Int("count", len(tabs)), zap.Any("tabs", tabs))
}

// screenshotPath turns debug_screenshot.png into debug_screenshot-<id>.png
// when PerRequest is set.
func (d Diagnostics) screenshotPath(requestID string) string {
	if d.ScreenshotPath == "" || !d.PerRequest || requestID == "" {
		return d.ScreenshotPath
	}

	ext := filepath.Ext(d.ScreenshotPath)

	return strings.TrimSuffix(d.ScreenshotPath, ext) + "-" + requestID + ext
}

func (d Diagnostics) upload(ctx context.Context, shot []byte, requestID string, log *zap.Logger) {
	if d.Uploader == nil || d.Bucket == "" || len(shot) == 0 {
		return
	}

	key := fmt.Sprintf("diagnostics/%s.png", requestID)

	if err := d.Uploader.Upload(ctx, d.Bucket, key, bytes.NewReader(shot)); err != nil {
		log.Warn("could not upload debug screenshot", zap.Error(err))

		return
	}

	log.Info("uploaded debug screenshot", zap.String("bucket", d.Bucket), zap.String("key", key))
}

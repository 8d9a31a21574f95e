package models

// ScrapeRequest is the body of POST /scrape-menu and of the lambda event.
type ScrapeRequest struct {
	URL string `json:"url" validate:"required,http_url"`
}

// StatusFailed marks a batch record for a place whose scrape failed.
const StatusFailed = "error"

// ScrapeResponse is always returned with all three fields present. Error is
// only set on batch records of failed places.
type ScrapeResponse struct {
	Status        string   `json:"status"`
	PlaceURL      string   `json:"place_url"`
	MenuImageURLs []string `json:"menu_image_urls"`
	Error         string   `json:"error,omitempty"`
}

func NewScrapeResponse(status, placeURL string, urls []string) ScrapeResponse {
	if urls == nil {
		urls = []string{}
	}

	return ScrapeResponse{
		Status:        status,
		PlaceURL:      placeURL,
		MenuImageURLs: urls,
	}
}

func NewScrapeFailure(placeURL string, err error) ScrapeResponse {
	return ScrapeResponse{
		Status:        StatusFailed,
		PlaceURL:      placeURL,
		MenuImageURLs: []string{},
		Error:         "Scrape failed: " + err.Error(),
	}
}

// ErrorResponse mirrors the {"detail": ...} body used for 4xx/5xx replies.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type StatusMessage struct {
	Message string `json:"message"`
}

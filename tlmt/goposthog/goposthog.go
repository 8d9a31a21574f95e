package goposthog

import (
	"context"
	"errors"

	"github.com/posthog/posthog-go"

	"github.com/gosom/google-maps-menu-scraper/tlmt"
)

var ErrMissingKey = errors.New("posthog api key is required")

type service struct {
	client posthog.Client
}

func New(publicAPIKEY, endpointURL string) (tlmt.Telemetry, error) {
	if publicAPIKEY == "" {
		return nil, ErrMissingKey
	}

	client, err := posthog.NewWithConfig(publicAPIKEY, posthog.Config{Endpoint: endpointURL})
	if err != nil {
		return nil, err
	}

	ans := service{
		client: client,
	}

	return &ans, nil
}

func (s *service) Send(_ context.Context, event tlmt.Event) error {
	props := posthog.NewProperties()
	for k, v := range event.Properties {
		props.Set(k, v)
	}

	capture := posthog.Capture{
		DistinctId: event.AnonymousID,
		Event:      event.Name,
		Properties: props,
	}

	if err := capture.Validate(); err != nil {
		return err
	}

	return s.client.Enqueue(capture)
}

func (s *service) Close() error {
	if s.client != nil {
		return s.client.Close()
	}

	return nil
}

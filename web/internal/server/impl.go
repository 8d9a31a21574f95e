package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/gosom/google-maps-menu-scraper/gmaps"
	"github.com/gosom/google-maps-menu-scraper/models"
)

const IndexMessage = "Google Maps Menu Scraper API is running"

type server struct {
	scraper gmaps.MenuScraper
}

func NewServer(scraper gmaps.MenuScraper) Server {
	ans := server{
		scraper: scraper,
	}

	return &ans
}

func (s *server) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, models.StatusMessage{Message: IndexMessage})
}

func (s *server) ScrapeMenu(c echo.Context) error {
	var req models.ScrapeRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Detail: bindMessage(err)})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Detail: validationMessage(err)})
	}

	res, err := s.scraper.Scrape(c.Request().Context(), req.URL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Detail: "Scrape failed: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.NewScrapeResponse(string(res.ReportedStatus()), res.PlaceURL(), res.ImageURLs()))
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fmt.Sprint(he.Message)
	}

	return err.Error()
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))

	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: field required", fe.Field()))
		case "http_url":
			msgs = append(msgs, fmt.Sprintf("%s: must be an absolute http(s) URL", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s validation", fe.Field(), fe.Tag()))
		}
	}

	return strings.Join(msgs, "; ")
}

package server

import "github.com/labstack/echo/v4"

type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

type Server interface {
	Index(c echo.Context) error
	ScrapeMenu(c echo.Context) error
}

func RegisterHandlers(router EchoRouter, si Server, m ...echo.MiddlewareFunc) {
	router.GET("/", si.Index, m...).Name = "index"
	router.POST("/scrape-menu", si.ScrapeMenu, m...).Name = "scrape-menu"
}

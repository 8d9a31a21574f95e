package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"

	"github.com/gosom/google-maps-menu-scraper/gmaps"
	"github.com/gosom/google-maps-menu-scraper/web/internal/server"
)

const shutdownTimeout = 10 * time.Second

type Config struct {
	Addr    string
	Debug   bool
	Scraper gmaps.MenuScraper
	Logger  *zap.Logger
}

// New builds the echo instance with all routes registered.
func New(cfg Config) *echo.Echo {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	if cfg.Debug {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.ERROR)
	}

	e.Validator = newStructValidator()
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"*"},
	}))
	e.Use(requestLogger(logger))

	srv := server.NewServer(cfg.Scraper)

	server.RegisterHandlers(e, srv)

	return e
}

// Start serves until ctx is cancelled, then shuts the server down gracefully.
func Start(ctx context.Context, cfg Config) error {
	e := New(cfg)

	go func() {
		<-ctx.Done()

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = e.Shutdown(sctx)
	}()

	if cfg.Logger != nil {
		cfg.Logger.Info("http server listening", zap.String("addr", cfg.Addr))
	}

	if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}

			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}

			logger.Info("request", fields...)

			return nil
		},
	})
}

package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gosom/google-maps-menu-scraper/models"
)

// errorHandler renders every unhandled error as {"detail": ...}. Internal
// errors are logged but their text never reaches the client.
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		detail := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			detail = fmt.Sprint(he.Message)
		} else {
			log.Error("unhandled error",
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err),
			)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, models.ErrorResponse{Detail: detail})
		}

		if werr != nil {
			log.Warn("could not write error response", zap.Error(werr))
		}
	}
}

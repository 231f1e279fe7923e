package apis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"events-cms/cmd/events-api/repository"
	"events-cms/internal/model"
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler writes errors that escape the handlers, such as unknown routes
// or oversized bodies, in the response envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
	}
	if code >= http.StatusInternalServerError {
		slog.Error("request failed", slog.String("uri", c.Request().RequestURI), slog.Any("error", err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, model.Failure(message))
	}
	if err != nil {
		slog.Error("write error response", slog.Any("error", err))
	}
}

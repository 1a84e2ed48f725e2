package handler

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/filmhub/swapper-api/internal/config"
)

// Every response is the same JSON envelope: a success flag, an
// optional human-readable message, and endpoint-specific payload
// fields flattened alongside them.

func envelope(success bool, message string, fields echo.Map) echo.Map {
	m := echo.Map{"success": success}
	if message != "" {
		m["message"] = message
	}
	for k, v := range fields {
		m[k] = v
	}
	return m
}

func respondOK(c echo.Context, status int, message string, fields echo.Map) error {
	return c.JSON(status, envelope(true, message, fields))
}

func respondErr(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope(false, message, nil))
}

// Publisher is the hook handlers use to emit domain events.  It is
// best-effort: handlers ignore the returned error.  A nil Publisher
// disables events entirely.
type Publisher func(ctx context.Context, queueName string, event any) error

// reqContext bounds a store call the way all handlers do: the
// request's own context plus a five second ceiling.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// publicBaseURL returns the prefix for derived download URLs: the
// configured BASE_URL when set, otherwise the scheme and host of the
// current request.
func publicBaseURL(cfg config.Config, c echo.Context) string {
	if cfg.BaseURL != "" {
		return strings.TrimRight(cfg.BaseURL, "/")
	}
	return c.Scheme() + "://" + c.Request().Host
}

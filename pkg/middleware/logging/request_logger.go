package loggingmw

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medstore/pkg/logging"
)

// RequestLogger puts a request-scoped logger into the context and writes one
// http_request line per request. The level follows the final status, so a
// handled 404 is a warning and only 5xx responses log as errors. It must run
// after echo's RequestID middleware to pick up generated ids.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()

			attrs := []any{
				"method", req.Method,
				"route", c.Path(),
				"path", req.URL.Path,
				"remote_ip", c.RealIP(),
			}
			if rid := requestID(c); rid != "" {
				attrs = append(attrs, "request_id", rid)
			}
			l := base.With(attrs...)
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				// render now so the status below is the one the client sees
				c.Echo().HTTPErrorHandler(err, c)
			}

			status := res.Status
			fields := []any{"status", status, "duration_ms", time.Since(start).Milliseconds(), "bytes", res.Size}
			if err != nil {
				fields = append(fields, "error", err.Error())
			}
			switch {
			case status >= 500:
				l.Error("http_request", fields...)
			case status >= 400:
				l.Warn("http_request", fields...)
			default:
				l.Info("http_request", fields...)
			}
			return nil
		}
	}
}

func requestID(c echo.Context) string {
	if rid := c.Response().Header().Get(echo.HeaderXRequestID); rid != "" {
		return rid
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medstore/internal/analytics"
	"github.com/Skotchmaster/medstore/internal/transport"
	"github.com/Skotchmaster/medstore/pkg/logging"
)

type AnalyticsHTTP struct {
	Store *analytics.Store
}

func (h *AnalyticsHTTP) Summary(c echo.Context) error {
	ctx := c.Request().Context()
	sum, err := h.Store.Summary(ctx)
	if err != nil {
		logging.FromContext(ctx).With("handler", "admin.analytics").Error("analytics_failed", "status", 500, "error", err)
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Analytics fetched successfully", sum))
}

// Probes answers liveness unconditionally and readiness by pinging the
// store within a short deadline.
type Probes struct {
	Ready func(ctx context.Context) error
}

func (p *Probes) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (p *Probes) ReadyCheck(c echo.Context) error {
	if p.Ready == nil {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := p.Ready(ctx); err != nil {
		logging.FromContext(ctx).Warn("readiness_failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

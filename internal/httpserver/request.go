package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medstore/pkg/logging"
	authmw "github.com/Skotchmaster/medstore/pkg/middleware/auth"
)

// bind decodes the body into req and runs the struct validator. Nothing
// reaches the store when either step fails.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		logging.FromContext(c.Request().Context()).Warn("bind_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return c.Validate(req)
}

func subject(c echo.Context) (uuid.UUID, error) {
	raw, _ := c.Get(authmw.CtxUserID).(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return id, nil
}

func isAdmin(c echo.Context) bool {
	role, _ := c.Get(authmw.CtxRole).(string)
	return role == "admin"
}

func paramUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid field: "+name)
	}
	return id, nil
}

func queryBool(c echo.Context, name string) *bool {
	switch c.QueryParam(name) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

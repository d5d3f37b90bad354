package authmw

import (
	"context"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medstore/pkg/logging"
	"github.com/Skotchmaster/medstore/pkg/tokens"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Refresher rotates a refresh token into a new pair.
type Refresher interface {
	Refresh(ctx context.Context, raw string) (*tokens.Pair, error)
}

type AutoRefresh struct {
	AccessSecret  []byte
	Tokens        Refresher
	SecureCookies bool
}

func New(secret []byte, r Refresher, secure bool) *AutoRefresh {
	return &AutoRefresh{AccessSecret: secret, Tokens: r, SecureCookies: secure}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

func (m *AutoRefresh) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(next, nil)
}

func (m *AutoRefresh) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireRole("admin")(next)
}

func (m *AutoRefresh) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return m.require(next, func(claims *tokens.AccessClaims) error {
			if claims.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, role+" access required")
			}
			return nil
		})
	}
}

// require accepts a valid access cookie. A missing or expired one falls back
// to the refresh cookie; the access cookie expires together with its token
// so the browser stops sending it at the same moment.
func (m *AutoRefresh) require(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("mw", "auth")

		var access string
		if ck, err := c.Cookie(tokens.AccessCookie); err == nil {
			access = ck.Value
		}

		if access != "" {
			claims, err := tokens.AccessClaimsFromToken(access, m.AccessSecret)
			if err == nil {
				return m.admit(c, next, claims, validator)
			}
			if !errors.Is(err, jwt.ErrTokenExpired) {
				l.Warn("auth_failed", "status", 401, "reason", "invalid access token", "error", err)
				m.clear(c)
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid access token")
			}
		}

		refreshCookie, err := c.Cookie(tokens.RefreshCookie)
		if err != nil || refreshCookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
		}
		pair, err := m.Tokens.Refresh(c.Request().Context(), refreshCookie.Value)
		if err != nil {
			l.Warn("auth_failed", "status", 401, "reason", "refresh failed", "error", err)
			m.clear(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "Session expired")
		}
		for _, ck := range pair.Cookies(m.SecureCookies) {
			c.SetCookie(ck)
		}

		claims, err := tokens.AccessClaimsFromToken(pair.AccessToken, m.AccessSecret)
		if err != nil {
			m.clear(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid access token")
		}
		l.Debug("access_token_refreshed", "user_id", claims.Subject)
		return m.admit(c, next, claims, validator)
	}
}

func (m *AutoRefresh) admit(c echo.Context, next echo.HandlerFunc, claims *tokens.AccessClaims, validator ValidatorFunc) error {
	if validator != nil {
		if err := validator(claims); err != nil {
			return err
		}
	}
	c.Set(CtxUserID, claims.Subject)
	c.Set(CtxRole, claims.Role)
	return next(c)
}

func (m *AutoRefresh) clear(c echo.Context) {
	for _, ck := range tokens.ClearCookies(m.SecureCookies) {
		c.SetCookie(ck)
	}
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medstore/internal/service"
	"github.com/Skotchmaster/medstore/internal/transport"
	"github.com/Skotchmaster/medstore/pkg/logging"
	"github.com/Skotchmaster/medstore/pkg/tokens"
)

type AuthHTTP struct {
	Svc           *service.AuthService
	Tokens        *service.TokenService
	SecureCookies bool
}

func (h *AuthHTTP) setCookies(c echo.Context, p *tokens.Pair) {
	for _, ck := range p.Cookies(h.SecureCookies) {
		c.SetCookie(ck)
	}
}

func (h *AuthHTTP) clearCookies(c echo.Context) {
	for _, ck := range tokens.ClearCookies(h.SecureCookies) {
		c.SetCookie(ck)
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	var req transport.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.Svc.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.OK("User registered successfully", user))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return err
	}
	h.setCookies(c, res.Tokens)
	l.Info("login_successful", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, transport.OK("Login successful", res.User))
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	ck, err := c.Cookie(tokens.RefreshCookie)
	if err != nil || ck.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Refresh token missing")
	}
	pair, err := h.Tokens.Refresh(ctx, ck.Value)
	if err != nil {
		h.clearCookies(c)
		return err
	}
	h.setCookies(c, pair)
	return c.JSON(http.StatusOK, transport.OK("Tokens refreshed", nil))
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if ck, err := c.Cookie(tokens.RefreshCookie); err == nil {
		if err := h.Tokens.Revoke(ctx, ck.Value); err != nil {
			l.Error("logout_failed", "status", 500, "reason", "cannot revoke refresh token", "error", err)
			h.clearCookies(c)
			return err
		}
	}
	h.clearCookies(c)
	l.Info("logout_successful")
	return c.JSON(http.StatusOK, transport.OK("Logged out", nil))
}

func (h *AuthHTTP) Me(c echo.Context) error {
	id, err := subject(c)
	if err != nil {
		return err
	}
	user, err := h.Svc.Me(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("User fetched successfully", user))
}

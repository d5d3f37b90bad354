package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medstore/internal/service"
	"github.com/Skotchmaster/medstore/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) Get(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	view, err := h.Svc.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Cart fetched successfully", view))
}

func (h *CartHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := subject(c)
	if err != nil {
		return err
	}
	var req transport.AddCartItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if _, err := h.Svc.Add(ctx, userID, req); err != nil {
		return err
	}
	return h.respond(c, "Cart updated successfully", userID)
}

func (h *CartHTTP) SetQuantity(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	productID, err := paramUUID(c, "productId")
	if err != nil {
		return err
	}
	var req transport.SetQuantityRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if _, err := h.Svc.SetQuantity(c.Request().Context(), userID, productID, *req.Quantity); err != nil {
		return err
	}
	return h.respond(c, "Cart updated successfully", userID)
}

func (h *CartHTTP) Remove(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	productID, err := paramUUID(c, "productId")
	if err != nil {
		return err
	}
	if err := h.Svc.Remove(c.Request().Context(), userID, productID); err != nil {
		return err
	}
	return h.respond(c, "Item removed from cart", userID)
}

func (h *CartHTTP) Replace(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	var req transport.ReplaceCartRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	view, err := h.Svc.Replace(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Cart updated successfully", view))
}

func (h *CartHTTP) Clear(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Clear(c.Request().Context(), userID); err != nil {
		return err
	}
	return h.respond(c, "Cart cleared successfully", userID)
}

// respond answers every cart write with the repriced cart.
func (h *CartHTTP) respond(c echo.Context, msg string, userID uuid.UUID) error {
	view, err := h.Svc.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK(msg, view))
}

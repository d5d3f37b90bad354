package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medstore/internal/service"
	"github.com/Skotchmaster/medstore/internal/transport"
	"github.com/Skotchmaster/medstore/internal/util"
	"github.com/Skotchmaster/medstore/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := subject(c)
	if err != nil {
		return err
	}
	var req transport.CheckoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	order, err := h.Svc.Checkout(ctx, userID, req)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).With("handler", "order.checkout").Info("order_created", "order_id", order.ID)
	return c.JSON(http.StatusCreated, transport.OK("Order created successfully", order))
}

func (h *OrderHTTP) List(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	p := util.NewPage(c.QueryParam("page"), c.QueryParam("limit"), util.DefaultPageSize)
	total, orders, err := h.Svc.List(c.Request().Context(), &userID, c.QueryParam("status"), p.Offset, p.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Page("Orders fetched successfully", orders, total, p))
}

// Get serves the caller's own order; admins may read any.
func (h *OrderHTTP) Get(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	owner := &userID
	if isAdmin(c) {
		owner = nil
	}
	o, err := h.Svc.Get(c.Request().Context(), id, owner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Order fetched successfully", o))
}

func (h *OrderHTTP) Cancel(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	o, err := h.Svc.Cancel(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Order cancelled", o))
}

func (h *OrderHTTP) AdminList(c echo.Context) error {
	p := util.NewPage(c.QueryParam("page"), c.QueryParam("limit"), util.DefaultPageSize)
	total, orders, err := h.Svc.List(c.Request().Context(), nil, c.QueryParam("status"), p.Offset, p.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Page("Orders fetched successfully", orders, total, p))
}

func (h *OrderHTTP) AdminUpdate(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req transport.OrderStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	o, err := h.Svc.AdminUpdate(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Order updated successfully", o))
}

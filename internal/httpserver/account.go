package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medstore/internal/service"
	"github.com/Skotchmaster/medstore/internal/transport"
)

type AddressHTTP struct {
	Svc *service.AddressService
}

func (h *AddressHTTP) List(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	items, err := h.Svc.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Addresses fetched successfully", items))
}

func (h *AddressHTTP) Create(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	var req transport.AddressRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	a, err := h.Svc.Create(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.OK("Address created successfully", a))
}

func (h *AddressHTTP) Delete(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Address deleted successfully", nil))
}

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) List(c echo.Context) error {
	raw := c.QueryParam("productId")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required field: productId")
	}
	productID, err := uuid.Parse(raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid field: productId")
	}
	list, err := h.Svc.ForProduct(c.Request().Context(), productID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Reviews fetched successfully", list))
}

func (h *ReviewHTTP) Create(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	var req transport.ReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	rv, err := h.Svc.Create(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.OK("Review posted successfully", rv))
}

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) List(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	items, err := h.Svc.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Wishlist fetched successfully", items))
}

func (h *WishlistHTTP) Add(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	var req transport.WishlistRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	w, err := h.Svc.Add(c.Request().Context(), userID, uuid.MustParse(req.ProductID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.OK("Added to wishlist", w))
}

func (h *WishlistHTTP) Remove(c echo.Context) error {
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
	return c.JSON(http.StatusOK, transport.OK("Removed from wishlist", nil))
}

type NotificationHTTP struct {
	Svc *service.NotificationService
}

func (h *NotificationHTTP) List(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	list, err := h.Svc.List(c.Request().Context(), userID, queryBool(c, "isRead"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Notifications fetched successfully", list))
}

func (h *NotificationHTTP) Create(c echo.Context) error {
	var req transport.NotificationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	n, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.OK("Notification created successfully", n))
}

func (h *NotificationHTTP) MarkRead(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.Svc.MarkRead(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Notification marked as read", n))
}

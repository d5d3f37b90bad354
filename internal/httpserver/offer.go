package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medstore/internal/service"
	"github.com/Skotchmaster/medstore/internal/transport"
)

type OfferHTTP struct {
	Svc *service.OfferService
}

func (h *OfferHTTP) Active(c echo.Context) error {
	offers, err := h.Svc.Active(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Offers fetched successfully", offers))
}

func (h *OfferHTTP) Create(c echo.Context) error {
	var req transport.CreateOfferRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	o, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.OK("Offer created successfully", o))
}

// Validate checks ?code= without redeeming it. ?cartValue= adds a discount
// preview.
func (h *OfferHTTP) Validate(c echo.Context) error {
	var cartValue *float64
	if raw := c.QueryParam("cartValue"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid field: cartValue")
		}
		cartValue = &v
	}
	check, err := h.Svc.Validate(c.Request().Context(), c.QueryParam("code"), cartValue)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Coupon code is valid", check))
}

func (h *OfferHTTP) QR(c echo.Context) error {
	png, err := h.Svc.QR(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

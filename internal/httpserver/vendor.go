package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medstore/internal/domain"
	"github.com/Skotchmaster/medstore/internal/service"
	"github.com/Skotchmaster/medstore/internal/transport"
	"github.com/Skotchmaster/medstore/internal/util"
	"github.com/Skotchmaster/medstore/pkg/logging"
)

type VendorHTTP struct {
	Auth    *AuthHTTP
	Vendors *service.VendorService
}

func (h *VendorHTTP) Register(c echo.Context) error {
	var req transport.VendorRegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	v, err := h.Auth.Svc.VendorRegister(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.OK("Vendor registered successfully. Awaiting approval.", v))
}

func (h *VendorHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	var req transport.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.Auth.Svc.VendorLogin(ctx, req)
	if err != nil {
		return err
	}
	h.Auth.setCookies(c, res.Tokens)
	logging.FromContext(ctx).Info("vendor_login_successful", "vendor_id", res.Vendor.ID)
	return c.JSON(http.StatusOK, transport.OK("Login successful", res.Vendor))
}

func (h *VendorHTTP) Me(c echo.Context) error {
	id, err := subject(c)
	if err != nil {
		return err
	}
	v, err := h.Auth.Svc.VendorMe(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Vendor fetched successfully", v))
}

func (h *VendorHTTP) Products(c echo.Context) error {
	raw := c.QueryParam("vendorId")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required field: vendorId")
	}
	vendorID, err := uuid.Parse(raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid field: vendorId")
	}
	p := util.NewPage(c.QueryParam("page"), c.QueryParam("limit"), util.DefaultPageSize)
	page, err := h.Vendors.Products(c.Request().Context(), vendorID, p.Offset, p.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Page("Products fetched successfully", page.Items, page.Total, p))
}

func (h *VendorHTTP) CreateProduct(c echo.Context) error {
	vendorID, err := subject(c)
	if err != nil {
		return err
	}
	var req transport.CreateProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.Vendors.CreateProduct(c.Request().Context(), vendorID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.OK("Product added successfully", p))
}

func (h *VendorHTTP) UpdateProduct(c echo.Context) error {
	vendorID, err := subject(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req transport.PatchProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.Vendors.UpdateProduct(c.Request().Context(), vendorID, id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Product updated successfully", p))
}

func (h *VendorHTTP) DeleteProduct(c echo.Context) error {
	vendorID, err := subject(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Vendors.DeleteProduct(c.Request().Context(), vendorID, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Product deleted successfully", nil))
}

// admin side

func (h *VendorHTTP) List(c echo.Context) error {
	vendors, err := h.Vendors.ListByStatus(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Vendors fetched successfully", vendors))
}

func (h *VendorHTTP) Act(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor.act")

	var req transport.VendorActionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	action, _ := domain.ParseVendorAction(req.Action)
	v, err := h.Vendors.Act(ctx, uuid.MustParse(req.VendorID), action, req.RejectionReason)
	if err != nil {
		return err
	}
	l.Info("vendor_action_applied", "vendor_id", v.ID, "status", v.Status)
	return c.JSON(http.StatusOK, transport.OK("Vendor "+v.Status, v))
}

func (h *VendorHTTP) SetActive(c echo.Context) error {
	var req transport.VendorActiveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	v, err := h.Vendors.SetActive(c.Request().Context(), uuid.MustParse(req.VendorID), *req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Vendor "+v.Status, v))
}

package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medstore/internal/service"
	"github.com/Skotchmaster/medstore/internal/transport"
	"github.com/Skotchmaster/medstore/internal/util"
	"github.com/Skotchmaster/medstore/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) List(c echo.Context) error {
	p := util.NewPage(c.QueryParam("page"), c.QueryParam("limit"), util.DefaultPageSize)
	q := service.ProductQuery{
		Category:      c.QueryParam("category"),
		Search:        c.QueryParam("search"),
		HealthConcern: c.QueryParam("healthConcern"),
		Offset:        p.Offset,
		Limit:         p.Limit,
	}
	if raw := c.QueryParam("vendorId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid field: vendorId")
		}
		q.VendorID = &id
	}
	page, err := h.Svc.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Page("Products fetched successfully", page.Items, page.Total, p))
}

func (h *CatalogHTTP) Search(c echo.Context) error {
	p := util.NewPage(c.QueryParam("page"), c.QueryParam("limit"), util.DefaultPageSize)
	page, err := h.Svc.Search(c.Request().Context(), c.QueryParam("q"), p.Offset, p.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Page("Products retrieved", page.Items, page.Total, p))
}

func (h *CatalogHTTP) Get(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Product fetched successfully", p))
}

func (h *CatalogHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	var req transport.CreateProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.Svc.Create(ctx, req, nil)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).With("handler", "product.create").Info("create_product_success", "product_id", p.ID)
	return c.JSON(http.StatusCreated, transport.OK("Product created successfully", p))
}

func (h *CatalogHTTP) Patch(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req transport.PatchProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.Svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Product updated successfully", p))
}

func (h *CatalogHTTP) Delete(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Product deleted successfully", nil))
}

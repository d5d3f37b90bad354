package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/service"
	"github.com/Skotchmaster/medstore/internal/transport"
	"github.com/Skotchmaster/medstore/internal/util"
)

type PrescriptionHTTP struct {
	Svc *service.PrescriptionService
}

func (h *PrescriptionHTTP) List(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	items, err := h.Svc.List(c.Request().Context(), userID, c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Prescriptions fetched successfully", items))
}

func (h *PrescriptionHTTP) Create(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	var req transport.PrescriptionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.Svc.Create(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.OK("Prescription uploaded successfully", p))
}

func (h *PrescriptionHTTP) Delete(c echo.Context) error {
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
	return c.JSON(http.StatusOK, transport.OK("Prescription deleted successfully", nil))
}

type LabTestHTTP struct {
	Svc *service.LabTestService
}

func (h *LabTestHTTP) List(c echo.Context) error {
	p := util.NewPage(c.QueryParam("page"), c.QueryParam("limit"), util.DefaultPageSize)
	total, items, err := h.Svc.List(c.Request().Context(), repo.LabTestFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Offset:   p.Offset,
		Limit:    p.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Page("Lab tests fetched successfully", items, total, p))
}

func (h *LabTestHTTP) Get(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Lab test fetched successfully", t))
}

func (h *LabTestHTTP) Create(c echo.Context) error {
	var req transport.LabTestRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	t, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.OK("Lab test created successfully", t))
}

func (h *LabTestHTTP) Book(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req transport.BookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	b, err := h.Svc.Book(c.Request().Context(), userID, id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.OK("Lab test booked successfully", b))
}

func (h *LabTestHTTP) Bookings(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	items, err := h.Svc.Bookings(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Bookings fetched successfully", items))
}

type ConsultationHTTP struct {
	Svc *service.ConsultationService
}

func (h *ConsultationHTTP) List(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	items, err := h.Svc.List(c.Request().Context(), userID, c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Consultations fetched successfully", items))
}

func (h *ConsultationHTTP) Create(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	var req transport.ConsultationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cons, err := h.Svc.Create(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.OK("Consultation scheduled successfully", cons))
}

func (h *ConsultationHTTP) Cancel(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	cons, err := h.Svc.Cancel(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Consultation cancelled", cons))
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/service"
	"github.com/Skotchmaster/medstore/internal/transport"
	"github.com/Skotchmaster/medstore/internal/util"
)

const articlePageSize = 10

type ContentHTTP struct {
	Articles *service.ArticleService
	Concerns *service.ConcernService
}

func (h *ContentHTTP) ListArticles(c echo.Context) error {
	p := util.NewPage(c.QueryParam("page"), c.QueryParam("limit"), articlePageSize)
	total, items, err := h.Articles.List(c.Request().Context(), repo.ArticleFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Offset:   p.Offset,
		Limit:    p.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Page("Articles fetched successfully", items, total, p))
}

func (h *ContentHTTP) Article(c echo.Context) error {
	a, err := h.Articles.BySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Article fetched successfully", a))
}

func (h *ContentHTTP) CreateArticle(c echo.Context) error {
	var req transport.ArticleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	a, err := h.Articles.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.OK("Article published successfully", a))
}

func (h *ContentHTTP) ListConcerns(c echo.Context) error {
	p := util.NewPage(c.QueryParam("page"), c.QueryParam("limit"), util.DefaultPageSize)
	total, items, err := h.Concerns.List(c.Request().Context(), c.QueryParam("search"), p.Offset, p.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Page("Health concerns fetched successfully", items, total, p))
}

func (h *ContentHTTP) Concern(c echo.Context) error {
	hc, err := h.Concerns.BySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.OK("Health concern fetched successfully", hc))
}

func (h *ContentHTTP) CreateConcern(c echo.Context) error {
	var req transport.HealthConcernRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	hc, err := h.Concerns.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.OK("Health concern created successfully", hc))
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/medstore/internal/cache"
	"github.com/Skotchmaster/medstore/internal/events"
	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/search"
	"github.com/Skotchmaster/medstore/internal/transport"
	"github.com/Skotchmaster/medstore/pkg/logging"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Cache    cache.Cache
	CacheTTL time.Duration
	Searcher search.ProductSearcher
	Events   events.Publisher
}

type ProductQuery struct {
	Category      string
	Search        string
	HealthConcern string
	VendorID      *uuid.UUID
	Offset        int
	Limit         int
}

type ProductPage struct {
	Total int64            `json:"total"`
	Items []models.Product `json:"items"`
}

func (q ProductQuery) cacheKey() string {
	v := url.Values{}
	v.Set("category", q.Category)
	v.Set("search", q.Search)
	v.Set("healthConcern", q.HealthConcern)
	if q.VendorID != nil {
		v.Set("vendorId", q.VendorID.String())
	}
	v.Set("offset", fmt.Sprint(q.Offset))
	v.Set("limit", fmt.Sprint(q.Limit))
	return cache.ProductListPrefix + v.Encode()
}

// List serves active products newest first, through the list cache when one
// is configured. Cache failures only cost a database round trip.
func (s *CatalogService) List(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.list")
	key := q.cacheKey()

	if s.Cache != nil {
		raw, ok, err := s.Cache.Get(ctx, key)
		if err != nil {
			l.Warn("cache_get_failed", "key", key, "error", err)
		}
		if ok {
			var page ProductPage
			if err := json.Unmarshal(raw, &page); err == nil {
				return &page, nil
			}
		}
	}

	total, items, err := s.Repo.ListProducts(ctx, repo.ProductFilter{
		Category:      q.Category,
		Search:        q.Search,
		HealthConcern: q.HealthConcern,
		VendorID:      q.VendorID,
		Offset:        q.Offset,
		Limit:         q.Limit,
	})
	if err != nil {
		return nil, err
	}
	page := &ProductPage{Total: total, Items: items}

	if s.Cache != nil {
		if raw, err := json.Marshal(page); err == nil {
			if err := s.Cache.Set(ctx, key, raw, s.CacheTTL); err != nil {
				l.Warn("cache_set_failed", "key", key, "error", err)
			}
		}
	}
	return page, nil
}

// Search asks Elasticsearch first and falls back to a LIKE scan when it is
// not configured or fails.
func (s *CatalogService) Search(ctx context.Context, query string, offset, limit int) (*ProductPage, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.search")
	if query == "" {
		return nil, validation("missing required field: q")
	}

	if s.Searcher != nil {
		total, items, err := s.Searcher.Search(ctx, query, offset, limit)
		if err == nil {
			return &ProductPage{Total: total, Items: items}, nil
		}
		l.Warn("search_fallback", "reason", "elasticsearch failed", "error", err)
	}

	total, items, err := s.Repo.ListProducts(ctx, repo.ProductFilter{Search: query, Offset: offset, Limit: limit})
	if err != nil {
		return nil, err
	}
	return &ProductPage{Total: total, Items: items}, nil
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "Product not found")
	}
	return p, nil
}

func (s *CatalogService) Create(ctx context.Context, req transport.CreateProductRequest, vendor *models.Vendor) (*models.Product, error) {
	p := models.Product{
		Name:                 req.Name,
		Description:          req.Description,
		Price:                req.Price,
		Discount:             req.Discount,
		Category:             req.Category,
		Brand:                req.Brand,
		Manufacturer:         req.Manufacturer,
		Stock:                req.Stock,
		HealthConcerns:       req.HealthConcerns,
		Dosage:               req.Dosage,
		Packaging:            req.Packaging,
		ExpiryDate:           req.ExpiryDate,
		RequiresPrescription: req.RequiresPrescription,
		Image:                req.Image,
		VendorName:           models.DefaultVendorName,
		IsActive:             true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if p.HealthConcerns == nil {
		p.HealthConcerns = []string{}
	}
	if vendor != nil {
		p.VendorID = &vendor.ID
		p.VendorName = vendor.VendorName
		p.VendorRating = vendor.Rating
	}

	if err := s.Repo.CreateProduct(ctx, &p); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "product_created", &p)
	return &p, nil
}

func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, req transport.PatchProductRequest) (*models.Product, error) {
	p, err := s.Repo.UpdateProduct(ctx, id, func(p *models.Product) { applyPatch(p, req) })
	if err != nil {
		return nil, orNotFound(err, "Product not found")
	}
	s.afterWrite(ctx, "product_updated", p)
	return p, nil
}

func applyPatch(p *models.Product, req transport.PatchProductRequest) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Discount != nil {
		p.Discount = *req.Discount
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Brand != nil {
		p.Brand = *req.Brand
	}
	if req.Manufacturer != nil {
		p.Manufacturer = *req.Manufacturer
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.HealthConcerns != nil {
		p.HealthConcerns = req.HealthConcerns
	}
	if req.Dosage != nil {
		p.Dosage = *req.Dosage
	}
	if req.Packaging != nil {
		p.Packaging = *req.Packaging
	}
	if req.ExpiryDate != nil {
		p.ExpiryDate = req.ExpiryDate
	}
	if req.RequiresPrescription != nil {
		p.RequiresPrescription = *req.RequiresPrescription
	}
	if req.Image != nil {
		p.Image = *req.Image
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
}

func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return orNotFound(err, "Product not found")
	}

	l := logging.FromContext(ctx).With("svc", "catalog.delete")
	if s.Searcher != nil {
		if err := s.Searcher.Delete(ctx, id.String()); err != nil {
			l.Warn("search_delete_failed", "product_id", id, "error", err)
		}
	}
	s.invalidate(ctx)
	events.Emit(ctx, s.Events, events.TopicProducts, events.New("product_deleted", id.String(), nil))
	return nil
}

// afterWrite keeps the search index, list cache and event stream in step
// with a committed product write.
func (s *CatalogService) afterWrite(ctx context.Context, eventType string, p *models.Product) {
	l := logging.FromContext(ctx).With("svc", "catalog.write")
	if s.Searcher != nil {
		if err := s.Searcher.Index(ctx, p); err != nil {
			l.Warn("search_index_failed", "product_id", p.ID, "error", err)
		}
	}
	s.invalidate(ctx)
	events.Emit(ctx, s.Events, events.TopicProducts, events.New(eventType, p.ID.String(), map[string]any{
		"name": p.Name, "price": p.Price, "category": p.Category, "stock": p.Stock,
	}))
}

// Touch resyncs the search index and list cache for products whose stock or
// rating was written outside the catalog, by checkout or a new review.
func (s *CatalogService) Touch(ctx context.Context, ids ...uuid.UUID) {
	if s == nil || len(ids) == 0 {
		return
	}
	if s.Searcher != nil {
		l := logging.FromContext(ctx).With("svc", "catalog.touch")
		for _, id := range ids {
			p, err := s.Repo.GetProduct(ctx, id)
			if err != nil {
				l.Warn("search_reindex_skipped", "product_id", id, "error", err)
				continue
			}
			if err := s.Searcher.Index(ctx, p); err != nil {
				l.Warn("search_index_failed", "product_id", id, "error", err)
			}
		}
	}
	s.invalidate(ctx)
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.DeletePrefix(ctx, cache.ProductListPrefix); err != nil {
		logging.FromContext(ctx).Warn("cache_invalidate_failed", "error", err)
	}
}

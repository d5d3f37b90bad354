// Package app assembles the medstore services and their infrastructure.
package app

import (
	"time"

	"github.com/Skotchmaster/medstore/internal/analytics"
	"github.com/Skotchmaster/medstore/internal/cache"
	"github.com/Skotchmaster/medstore/internal/config"
	"github.com/Skotchmaster/medstore/internal/domain"
	"github.com/Skotchmaster/medstore/internal/events"
	"github.com/Skotchmaster/medstore/internal/httpserver"
	"github.com/Skotchmaster/medstore/internal/qrcode"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/search"
	"github.com/Skotchmaster/medstore/internal/service"
)

// Infra holds the optional backends. Nil Cache and Events fall back to no-ops,
// a nil Searcher sends search to the database.
type Infra struct {
	Cache     cache.Cache
	CacheTTL  time.Duration
	Searcher  search.ProductSearcher
	Events    events.Publisher
	Analytics *analytics.Store
}

func PricingRules(cfg *config.Config) domain.PricingRules {
	return domain.PricingRules{
		DiscountPercent:       cfg.Pricing.DiscountPercent,
		FreeDeliveryThreshold: cfg.Pricing.FreeDeliveryThreshold,
		DeliveryFee:           cfg.Pricing.DeliveryFee,
	}
}

func NewTokenService(cfg *config.Config, r *repo.GormRepo) *service.TokenService {
	return &service.TokenService{
		Repo:          r,
		AccessSecret:  []byte(cfg.Auth.AccessSecret),
		RefreshSecret: []byte(cfg.Auth.RefreshSecret),
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshTTL:    cfg.Auth.RefreshTTL,
	}
}

func NewAuthService(cfg *config.Config, r *repo.GormRepo, tokens *service.TokenService, pub events.Publisher) *service.AuthService {
	if pub == nil {
		pub = events.Noop{}
	}
	return &service.AuthService{Repo: r, Tokens: tokens, BcryptCost: cfg.Auth.BcryptCost, Events: pub}
}

// NewServices wires every domain service over one repository.
func NewServices(cfg *config.Config, r *repo.GormRepo, in Infra) httpserver.Services {
	if in.Cache == nil {
		in.Cache = cache.Noop{}
	}
	if in.Events == nil {
		in.Events = events.Noop{}
	}
	if in.CacheTTL == 0 {
		in.CacheTTL = cfg.Redis.TTL
	}
	rules := PricingRules(cfg)

	tokens := NewTokenService(cfg, r)
	catalog := &service.CatalogService{
		Repo:     r,
		Cache:    in.Cache,
		CacheTTL: in.CacheTTL,
		Searcher: in.Searcher,
		Events:   in.Events,
	}
	notifications := &service.NotificationService{Repo: r}

	return httpserver.Services{
		Auth:          NewAuthService(cfg, r, tokens, in.Events),
		Tokens:        tokens,
		Catalog:       catalog,
		Vendors:       &service.VendorService{Repo: r, Catalog: catalog, Events: in.Events},
		Cart:          &service.CartService{Repo: r, Rules: rules},
		Orders:        &service.OrderService{Repo: r, Rules: rules, Events: in.Events, Notifications: notifications, Catalog: catalog},
		Offers:        &service.OfferService{Repo: r, Codes: qrcode.New(cfg.QRCode.Size, cfg.QRCode.Level)},
		Addresses:     &service.AddressService{Repo: r},
		Reviews:       &service.ReviewService{Repo: r, Catalog: catalog},
		Wishlist:      &service.WishlistService{Repo: r},
		Notifications: notifications,
		Prescriptions: &service.PrescriptionService{Repo: r},
		LabTests:      &service.LabTestService{Repo: r},
		Consultations: &service.ConsultationService{Repo: r},
		Articles:      &service.ArticleService{Repo: r},
		Concerns:      &service.ConcernService{Repo: r},
		Analytics:     in.Analytics,
	}
}

package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/medstore/internal/analytics"
	"github.com/Skotchmaster/medstore/internal/service"
	authmw "github.com/Skotchmaster/medstore/pkg/middleware/auth"
	"github.com/Skotchmaster/medstore/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/medstore/pkg/middleware/logging"
	"github.com/Skotchmaster/medstore/pkg/validate"
)

type Services struct {
	Auth          *service.AuthService
	Tokens        *service.TokenService
	Catalog       *service.CatalogService
	Vendors       *service.VendorService
	Cart          *service.CartService
	Orders        *service.OrderService
	Offers        *service.OfferService
	Addresses     *service.AddressService
	Reviews       *service.ReviewService
	Wishlist      *service.WishlistService
	Notifications *service.NotificationService
	Prescriptions *service.PrescriptionService
	LabTests      *service.LabTestService
	Consultations *service.ConsultationService
	Articles      *service.ArticleService
	Concerns      *service.ConcernService
	Analytics     *analytics.Store
}

type Deps struct {
	Services
	AccessSecret  []byte
	SecureCookies bool
	Ready         func(ctx context.Context) error
}

type Options struct {
	Logger      *slog.Logger
	BodyLimit   string
	CORSOrigins []string
	CSRF        bool

	// CSRFCrossOrigin accepts unsafe requests without a matching Origin.
	CSRFCrossOrigin bool
}

// New builds the echo instance with the shared middleware chain and every
// route registered.
func New(d *Deps, o Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()
	e.HTTPErrorHandler = HTTPErrorHandler

	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	if len(o.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     o.CORSOrigins,
			AllowCredentials: true,
		}))
	}
	if o.BodyLimit != "" {
		e.Use(echomw.BodyLimit(o.BodyLimit))
	}
	if o.CSRF {
		cfg := csrf.DefaultConfig()
		cfg.Secure = d.SecureCookies
		cfg.AllowCrossOrigin = o.CSRFCrossOrigin
		cfg.SkipPrefixes = []string{"/health"}
		e.Use(csrf.Middleware(cfg))
	}

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	probes := &Probes{Ready: d.Ready}
	e.GET("/health/live", probes.Live)
	e.GET("/health/ready", probes.ReadyCheck)

	mw := authmw.New(d.AccessSecret, d.Tokens, d.SecureCookies)
	authH := &AuthHTTP{Svc: d.Auth, Tokens: d.Tokens, SecureCookies: d.SecureCookies}
	vendorH := &VendorHTTP{Auth: authH, Vendors: d.Vendors}
	catalogH := &CatalogHTTP{Svc: d.Catalog}
	cartH := &CartHTTP{Svc: d.Cart}
	orderH := &OrderHTTP{Svc: d.Orders}
	offerH := &OfferHTTP{Svc: d.Offers}
	addressH := &AddressHTTP{Svc: d.Addresses}
	reviewH := &ReviewHTTP{Svc: d.Reviews}
	wishH := &WishlistHTTP{Svc: d.Wishlist}
	notifyH := &NotificationHTTP{Svc: d.Notifications}
	rxH := &PrescriptionHTTP{Svc: d.Prescriptions}
	labH := &LabTestHTTP{Svc: d.LabTests}
	consultH := &ConsultationHTTP{Svc: d.Consultations}
	contentH := &ContentHTTP{Articles: d.Articles, Concerns: d.Concerns}

	api := e.Group("/api")
	user := api.Group("", mw.RequireAuth)
	admin := api.Group("", mw.RequireAdmin)
	vendor := api.Group("", mw.RequireRole("vendor"))

	api.POST("/auth/register", authH.Register)
	api.POST("/auth/signup", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/refresh", authH.Refresh)
	api.POST("/auth/logout", authH.Logout)
	user.GET("/auth/me", authH.Me)

	api.POST("/vendor/register", vendorH.Register)
	api.POST("/vendor/login", vendorH.Login)
	api.GET("/vendor/products", vendorH.Products)
	vendor.GET("/vendor/me", vendorH.Me)
	vendor.POST("/vendor/products", vendorH.CreateProduct)
	vendor.PUT("/vendor/products/:id", vendorH.UpdateProduct)
	vendor.DELETE("/vendor/products/:id", vendorH.DeleteProduct)
	admin.GET("/admin/vendors", vendorH.List)
	admin.POST("/admin/vendors", vendorH.Act)
	admin.PUT("/admin/vendors", vendorH.SetActive)

	api.GET("/products", catalogH.List)
	api.GET("/products/search", catalogH.Search)
	api.GET("/products/:id", catalogH.Get)
	admin.POST("/products", catalogH.Create)
	admin.PATCH("/products/:id", catalogH.Patch)
	admin.DELETE("/products/:id", catalogH.Delete)

	user.GET("/cart", cartH.Get)
	user.PUT("/cart", cartH.Replace)
	user.DELETE("/cart", cartH.Clear)
	user.POST("/cart/items", cartH.Add)
	user.PATCH("/cart/items/:productId", cartH.SetQuantity)
	user.DELETE("/cart/items/:productId", cartH.Remove)

	user.POST("/orders", orderH.Checkout)
	user.GET("/orders", orderH.List)
	user.GET("/orders/:id", orderH.Get)
	user.POST("/orders/:id/cancel", orderH.Cancel)
	admin.GET("/admin/orders", orderH.AdminList)
	admin.PATCH("/admin/orders/:id", orderH.AdminUpdate)

	api.GET("/offers", offerH.Active)
	api.PUT("/offers", offerH.Validate)
	api.GET("/offers/:code/qr", offerH.QR)
	admin.POST("/offers", offerH.Create)

	user.GET("/addresses", addressH.List)
	user.POST("/addresses", addressH.Create)
	user.DELETE("/addresses/:id", addressH.Delete)

	api.GET("/reviews", reviewH.List)
	user.POST("/reviews", reviewH.Create)

	user.GET("/wishlist", wishH.List)
	user.POST("/wishlist", wishH.Add)
	user.DELETE("/wishlist/:productId", wishH.Remove)

	user.GET("/notifications", notifyH.List)
	user.PATCH("/notifications/:id/read", notifyH.MarkRead)
	admin.POST("/notifications", notifyH.Create)

	user.GET("/prescriptions", rxH.List)
	user.POST("/prescriptions", rxH.Create)
	user.DELETE("/prescriptions/:id", rxH.Delete)

	api.GET("/lab-tests", labH.List)
	user.GET("/lab-tests/bookings", labH.Bookings)
	api.GET("/lab-tests/:id", labH.Get)
	admin.POST("/lab-tests", labH.Create)
	user.POST("/lab-tests/:id/bookings", labH.Book)

	user.GET("/consultations", consultH.List)
	user.POST("/consultations", consultH.Create)
	user.POST("/consultations/:id/cancel", consultH.Cancel)

	api.GET("/articles", contentH.ListArticles)
	api.GET("/articles/:slug", contentH.Article)
	admin.POST("/articles", contentH.CreateArticle)

	api.GET("/health-concerns", contentH.ListConcerns)
	api.GET("/health-concerns/:slug", contentH.Concern)
	admin.POST("/health-concerns", contentH.CreateConcern)

	if d.Analytics != nil {
		analyticsH := &AnalyticsHTTP{Store: d.Analytics}
		admin.GET("/admin/analytics", analyticsH.Summary)
	}

	e.RouteNotFound("/api/*", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Route not found")
	})
}

package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/app"
	"github.com/Skotchmaster/medstore/internal/cache"
	"github.com/Skotchmaster/medstore/internal/config"
	"github.com/Skotchmaster/medstore/internal/events"
	"github.com/Skotchmaster/medstore/internal/httpserver"
	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/testutil"
	"github.com/Skotchmaster/medstore/pkg/client"
	"github.com/Skotchmaster/medstore/pkg/db"
)

type env struct {
	srv    *httptest.Server
	db     *gorm.DB
	svcs   httpserver.Services
	events *events.Recorder
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.AccessSecret = "access-secret"
	cfg.Auth.RefreshSecret = "refresh-secret"
	cfg.Auth.AccessTTL = time.Minute
	cfg.Auth.RefreshTTL = time.Hour
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.Pricing = config.Pricing{DiscountPercent: 10, FreeDeliveryThreshold: 299, DeliveryFee: 49}
	cfg.QRCode.Size = 128
	cfg.QRCode.Level = "M"
	cfg.Redis.TTL = time.Minute
	return cfg
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gdb := testutil.NewDB(t)
	cfg := testConfig()
	rec := &events.Recorder{}
	svcs := app.NewServices(cfg, repo.New(gdb), app.Infra{Cache: cache.NewMemory(), Events: rec})

	e := httpserver.New(&httpserver.Deps{
		Services:     svcs,
		AccessSecret: []byte(cfg.Auth.AccessSecret),
		Ready:        func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	}, httpserver.Options{})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return &env{srv: srv, db: gdb, svcs: svcs, events: rec}
}

func (e *env) session(t *testing.T) *client.Session {
	t.Helper()
	s, err := client.New(e.srv.URL)
	require.NoError(t, err)
	return s
}

func (e *env) admin(t *testing.T) *client.Session {
	t.Helper()
	ctx := context.Background()
	_, err := e.svcs.Auth.CreateAdmin(ctx, "admin@t.com", "adminpass", "Admin")
	require.NoError(t, err)
	s := e.session(t)
	u, err := s.Login(ctx, "admin@t.com", "adminpass")
	require.NoError(t, err)
	require.Equal(t, "admin", u.Role)
	return s
}

func apiCode(t *testing.T, err error) string {
	t.Helper()
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	return apiErr.Code
}

func TestStorefrontScenario(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	admin := e.admin(t)
	p, err := admin.CreateProduct(ctx, client.NewProduct{Name: "Vitamin C", Price: 100, Category: "nutrition", Stock: 10})
	require.NoError(t, err)

	s := e.session(t)
	u, err := s.Register(ctx, client.Registration{Email: "t@t.com", Password: "secret1", FullName: "Test User"})
	require.NoError(t, err)
	assert.Equal(t, "t@t.com", u.Email)
	assert.Equal(t, "user", u.Role)

	_, err = s.Register(ctx, client.Registration{Email: "t@t.com", Password: "secret1", FullName: "Again"})
	assert.Equal(t, http.StatusConflict, client.StatusOf(err))
	assert.Equal(t, "conflict", apiCode(t, err))

	_, err = s.Login(ctx, "t@t.com", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, client.StatusOf(err))

	_, err = s.Login(ctx, "t@t.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, s.User)

	var raw map[string]any
	_, err = s.Call(ctx, http.MethodGet, "api/auth/me", nil, &raw)
	require.NoError(t, err)
	assert.Equal(t, "t@t.com", raw["email"])
	assert.NotContains(t, raw, "password")
	assert.NotContains(t, raw, "passwordHash")

	_, err = s.AddToCart(ctx, p.ID, 1)
	require.NoError(t, err)
	cart, err := s.AddToCart(ctx, p.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 200.0, cart.Items[0].LineTotal)
	assert.Equal(t, 20.0, cart.Discount)
	assert.Equal(t, 49.0, cart.DeliveryCharge)
	assert.Equal(t, 229.0, cart.Total)

	_, err = s.Call(ctx, http.MethodPost, "api/cart/items", map[string]any{"quantity": 1}, nil)
	assert.Equal(t, http.StatusBadRequest, client.StatusOf(err))
	assert.Equal(t, "validation_error", apiCode(t, err))
	cart, err = s.Cart(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.TotalItems)

	_, err = s.CreateProduct(ctx, client.NewProduct{Name: "Nope", Price: 1, Category: "nutrition"})
	assert.Equal(t, http.StatusForbidden, client.StatusOf(err))

	order, err := s.Checkout(ctx, client.Checkout{DeliveryAddress: &client.Address{
		FullName: "Test User", Phone: "9999999999", AddressLine1: "1 Main St",
		City: "Pune", State: "MH", Pincode: "411001",
	}})
	require.NoError(t, err)
	assert.Equal(t, 229.0, order.TotalPrice)
	assert.Equal(t, "pending", order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Contains(t, e.events.Types(events.TopicOrders), "order_created")

	cart, err = s.Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Total)

	orders, err := s.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	got, err := s.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Stock)

	require.NoError(t, s.Logout(ctx))
	_, err = s.Me(ctx)
	assert.Equal(t, http.StatusUnauthorized, client.StatusOf(err))
}

func TestCheckoutWithoutAddressWritesNothing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	p, err := e.admin(t).CreateProduct(ctx, client.NewProduct{Name: "Zinc", Price: 50, Category: "nutrition", Stock: 3})
	require.NoError(t, err)

	s := e.session(t)
	_, err = s.Register(ctx, client.Registration{Email: "a@t.com", Password: "secret1", FullName: "A"})
	require.NoError(t, err)
	_, err = s.Login(ctx, "a@t.com", "secret1")
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, p.ID, 1)
	require.NoError(t, err)

	_, err = s.Checkout(ctx, client.Checkout{})
	assert.Equal(t, http.StatusBadRequest, client.StatusOf(err))

	orders, err := s.Orders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	got, err := s.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
}

func TestVendorApprovalFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)

	vs := e.session(t)
	var vendor client.Vendor
	_, err := vs.Call(ctx, http.MethodPost, "api/vendor/register", map[string]any{
		"vendorName":   "Good Pharma",
		"email":        "shop@t.com",
		"password":     "vendorpass",
		"phone":        "9000000000",
		"businessType": "pharmacy",
	}, &vendor)
	require.NoError(t, err)
	assert.Equal(t, "pending", vendor.Status)

	user := e.session(t)
	_, err = user.Register(ctx, client.Registration{Email: "u@t.com", Password: "secret1", FullName: "U"})
	require.NoError(t, err)
	_, err = user.Login(ctx, "u@t.com", "secret1")
	require.NoError(t, err)
	_, err = user.Call(ctx, http.MethodGet, "api/admin/vendors", nil, nil)
	assert.Equal(t, http.StatusForbidden, client.StatusOf(err))
	assert.Equal(t, "forbidden", apiCode(t, err))

	approve := map[string]any{"vendorId": vendor.ID, "action": "approve"}
	for i := 0; i < 2; i++ {
		var out client.Vendor
		msg, err := admin.Call(ctx, http.MethodPost, "api/admin/vendors", approve, &out)
		require.NoError(t, err)
		assert.Equal(t, "verified", out.Status)
		assert.Equal(t, "Vendor verified", msg)
	}
	assert.Equal(t, []string{"vendor_registered", "vendor_status_changed"}, e.events.Types(events.TopicVendors))

	_, err = admin.Call(ctx, http.MethodPost, "api/admin/vendors", map[string]any{"vendorId": vendor.ID, "action": "reject"}, nil)
	assert.Equal(t, http.StatusConflict, client.StatusOf(err))

	v, err := vs.VendorLogin(ctx, "shop@t.com", "vendorpass")
	require.NoError(t, err)
	assert.Equal(t, "verified", v.Status)
	require.NotNil(t, vs.Vendor)

	var created client.Product
	_, err = vs.Call(ctx, http.MethodPost, "api/vendor/products", client.NewProduct{Name: "Ashwagandha", Price: 250, Category: "ayurveda", Stock: 5}, &created)
	require.NoError(t, err)
	require.NotNil(t, created.VendorID)
	assert.Equal(t, vendor.ID, *created.VendorID)

	var listed []client.Product
	_, err = vs.Call(ctx, http.MethodGet, "api/vendor/products?vendorId="+vendor.ID, nil, &listed)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestOffersAndProbes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)

	now := time.Now().UTC()
	_, err := admin.Call(ctx, http.MethodPost, "api/offers", map[string]any{
		"code":          "save20",
		"discountType":  "percentage",
		"discountValue": 20,
		"maxDiscount":   100,
		"validFrom":     now.Add(-time.Hour),
		"validUntil":    now.Add(24 * time.Hour),
	}, nil)
	require.NoError(t, err)

	anon := e.session(t)
	var check struct {
		Discount *float64 `json:"discount"`
	}
	msg, err := anon.Call(ctx, http.MethodPut, "api/offers?code=SAVE20&cartValue=1000", nil, &check)
	require.NoError(t, err)
	assert.Equal(t, "Coupon code is valid", msg)
	require.NotNil(t, check.Discount)
	assert.Equal(t, 100.0, *check.Discount)

	_, err = anon.Call(ctx, http.MethodPut, "api/offers?code=MISSING", nil, nil)
	assert.Equal(t, http.StatusNotFound, client.StatusOf(err))

	resp, err := http.Get(e.srv.URL + "/api/offers/SAVE20/qr")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp, err := http.Get(e.srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	_, err = anon.Call(ctx, http.MethodGet, "api/does-not-exist", nil, nil)
	assert.Equal(t, http.StatusNotFound, client.StatusOf(err))
	assert.Equal(t, "not_found", apiCode(t, err))
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/medstore/internal/cache"
	"github.com/Skotchmaster/medstore/internal/domain"
	"github.com/Skotchmaster/medstore/internal/events"
	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/internal/qrcode"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/testutil"
	"github.com/Skotchmaster/medstore/internal/transport"
	"github.com/Skotchmaster/medstore/pkg/tokens"
)

type fixture struct {
	repo     *repo.GormRepo
	events   *events.Recorder
	cache    *cache.Memory
	tokens   *TokenService
	auth     *AuthService
	catalog  *CatalogService
	vendors  *VendorService
	cart     *CartService
	orders   *OrderService
	offers   *OfferService
	notifier *NotificationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	r := repo.New(testutil.NewDB(t))
	rec := &events.Recorder{}
	mem := cache.NewMemory()
	ts := &TokenService{
		Repo:          r,
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	}
	catalog := &CatalogService{Repo: r, Cache: mem, CacheTTL: time.Minute, Events: rec}
	notifier := &NotificationService{Repo: r}
	return &fixture{
		repo:     r,
		events:   rec,
		cache:    mem,
		tokens:   ts,
		auth:     &AuthService{Repo: r, Tokens: ts, BcryptCost: bcrypt.MinCost, Events: rec},
		catalog:  catalog,
		vendors:  &VendorService{Repo: r, Catalog: catalog, Events: rec},
		cart:     &CartService{Repo: r, Rules: domain.DefaultPricingRules()},
		orders:   &OrderService{Repo: r, Rules: domain.DefaultPricingRules(), Events: rec, Notifications: notifier, Catalog: catalog},
		offers:   &OfferService{Repo: r, Codes: qrcode.New(128, "M")},
		notifier: notifier,
	}
}

func (f *fixture) product(t *testing.T, name string, price float64, stock int) *models.Product {
	t.Helper()
	p, err := f.catalog.Create(context.Background(), transport.CreateProductRequest{
		Name: name, Price: price, Category: "nutrition", Stock: stock,
	}, nil)
	require.NoError(t, err)
	return p
}

func (f *fixture) user(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), transport.RegisterRequest{Email: email, Password: "secret1", FullName: "Test User"})
	require.NoError(t, err)
	return u
}

func kindOf(t *testing.T, err error, kind error, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind), "want %v, got %v", kind, err)
	if msg != "" {
		assert.Equal(t, msg, err.Error())
	}
}

func TestAuth_RegisterLoginAndDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.user(t, "T@T.com")
	assert.Equal(t, "t@t.com", u.Email)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	_, err := f.auth.Register(ctx, transport.RegisterRequest{Email: "t@t.com", Password: "another", FullName: "Dup"})
	kindOf(t, err, ErrConflict, "Email already registered")

	res, err := f.auth.Login(ctx, transport.LoginRequest{Email: "t@t.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	claims, err := tokens.AccessClaimsFromToken(res.Tokens.AccessToken, f.tokens.AccessSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.Equal(t, models.RoleUser, claims.Role)

	_, err = f.auth.Login(ctx, transport.LoginRequest{Email: "t@t.com", Password: "wrong!"})
	kindOf(t, err, ErrUnauthorized, "Invalid email or password")
	_, err = f.auth.Login(ctx, transport.LoginRequest{Email: "nobody@t.com", Password: "secret1"})
	kindOf(t, err, ErrUnauthorized, "Invalid email or password")
}

func TestTokens_RefreshRotatesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "r@t.com")

	res, err := f.auth.Login(ctx, transport.LoginRequest{Email: "r@t.com", Password: "secret1"})
	require.NoError(t, err)

	next, err := f.tokens.Refresh(ctx, res.Tokens.RefreshToken)
	require.NoError(t, err)
	claims, err := tokens.AccessClaimsFromToken(next.AccessToken, f.tokens.AccessSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.Subject)

	_, err = f.tokens.Refresh(ctx, res.Tokens.RefreshToken)
	kindOf(t, err, ErrUnauthorized, "")

	require.NoError(t, f.tokens.Revoke(ctx, next.RefreshToken))
	_, err = f.tokens.Refresh(ctx, next.RefreshToken)
	kindOf(t, err, ErrUnauthorized, "")

	_, err = f.tokens.Refresh(ctx, "garbage")
	kindOf(t, err, ErrUnauthorized, "Invalid refresh token")
}

func TestCreateAdmin_Promotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "boss@t.com")

	admin, err := f.auth.CreateAdmin(ctx, "boss@t.com", "newpass", "Boss")
	require.NoError(t, err)
	assert.Equal(t, u.ID, admin.ID)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	res, err := f.auth.Login(ctx, transport.LoginRequest{Email: "boss@t.com", Password: "newpass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, res.User.Role)

	_, err = f.auth.CreateAdmin(ctx, "x@t.com", "123", "X")
	kindOf(t, err, ErrValidation, "")
}

func registerVendor(t *testing.T, f *fixture, email string) *models.Vendor {
	t.Helper()
	v, err := f.auth.VendorRegister(context.Background(), transport.VendorRegisterRequest{
		VendorName: "Care Pharmacy", Email: email, Password: "secret1", Phone: "999", BusinessType: "pharmacy",
	})
	require.NoError(t, err)
	return v
}

func TestVendor_LifecycleAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := registerVendor(t, f, "v@t.com")
	assert.Equal(t, models.VendorPending, v.Status)
	assert.Equal(t, 10.0, v.CommissionPercentage)

	_, err := f.auth.VendorRegister(ctx, transport.VendorRegisterRequest{VendorName: "x", Email: "v@t.com", Password: "secret1", Phone: "1", BusinessType: "lab"})
	kindOf(t, err, ErrConflict, "Email already registered")

	_, err = f.vendors.CreateProduct(ctx, v.ID, transport.CreateProductRequest{Name: "P", Price: 10, Category: "fitness"})
	kindOf(t, err, ErrForbidden, "Your vendor account is not verified")

	got, err := f.vendors.Act(ctx, v.ID, domain.VendorApprove, "")
	require.NoError(t, err)
	assert.Equal(t, models.VendorVerified, got.Status)
	got, err = f.vendors.Act(ctx, v.ID, domain.VendorApprove, "")
	require.NoError(t, err)
	assert.Equal(t, models.VendorVerified, got.Status)

	_, err = f.vendors.Act(ctx, v.ID, domain.VendorReject, "late")
	kindOf(t, err, ErrConflict, "illegal vendor transition: cannot reject a verified vendor")

	assert.Equal(t, []string{"vendor_registered", "vendor_status_changed"}, f.events.Types(events.TopicVendors))

	res, err := f.auth.VendorLogin(ctx, transport.LoginRequest{Email: "v@t.com", Password: "secret1"})
	require.NoError(t, err)
	claims, err := tokens.AccessClaimsFromToken(res.Tokens.AccessToken, f.tokens.AccessSecret)
	require.NoError(t, err)
	assert.Equal(t, models.RoleVendor, claims.Role)

	_, err = f.vendors.SetActive(ctx, v.ID, false)
	require.NoError(t, err)
	_, err = f.auth.VendorLogin(ctx, transport.LoginRequest{Email: "v@t.com", Password: "secret1"})
	kindOf(t, err, ErrForbidden, "Your vendor account is suspended")

	_, err = f.vendors.Act(ctx, uuid.New(), domain.VendorApprove, "")
	kindOf(t, err, ErrNotFound, "Vendor not found")
}

func TestVendor_RejectedCannotLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := registerVendor(t, f, "rej@t.com")

	got, err := f.vendors.Act(ctx, v.ID, domain.VendorReject, "missing license")
	require.NoError(t, err)
	assert.Equal(t, "missing license", got.RejectionReason)

	_, err = f.auth.VendorLogin(ctx, transport.LoginRequest{Email: "rej@t.com", Password: "secret1"})
	kindOf(t, err, ErrForbidden, "Your vendor account was rejected. Contact support.")
	_, err = f.auth.VendorLogin(ctx, transport.LoginRequest{Email: "rej@t.com", Password: "nope12"})
	kindOf(t, err, ErrUnauthorized, "Invalid email or password")
}

func TestVendor_ProductOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := registerVendor(t, f, "own@t.com")
	other := registerVendor(t, f, "other@t.com")
	for _, v := range []*models.Vendor{owner, other} {
		_, err := f.vendors.Act(ctx, v.ID, domain.VendorApprove, "")
		require.NoError(t, err)
	}

	p, err := f.vendors.CreateProduct(ctx, owner.ID, transport.CreateProductRequest{Name: "Balm", Price: 99, Category: "ayurveda", Stock: 3})
	require.NoError(t, err)
	require.NotNil(t, p.VendorID)
	assert.Equal(t, owner.ID, *p.VendorID)
	assert.Equal(t, "Care Pharmacy", p.VendorName)

	price := 120.0
	_, err = f.vendors.UpdateProduct(ctx, other.ID, p.ID, transport.PatchProductRequest{Price: &price})
	kindOf(t, err, ErrForbidden, "Unauthorized")
	kindOf(t, f.vendors.DeleteProduct(ctx, other.ID, p.ID), ErrForbidden, "Unauthorized")

	updated, err := f.vendors.UpdateProduct(ctx, owner.ID, p.ID, transport.PatchProductRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 120.0, updated.Price)

	page, err := f.vendors.Products(ctx, owner.ID, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	require.NoError(t, f.vendors.DeleteProduct(ctx, owner.ID, p.ID))
}

type failingSearcher struct{}

func (failingSearcher) Search(context.Context, string, int, int) (int64, []models.Product, error) {
	return 0, nil, errors.New("es down")
}
func (failingSearcher) Index(context.Context, *models.Product) error { return errors.New("es down") }
func (failingSearcher) Delete(context.Context, string) error         { return errors.New("es down") }

func TestCatalog_CacheAndInvalidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "Vitamin D", 150, 10)

	q := ProductQuery{Limit: 20}
	page, err := f.catalog.List(ctx, q)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 1, f.cache.Len())

	// bypass the service so only the cache can answer
	require.NoError(t, f.repo.CreateProduct(ctx, &models.Product{Name: "Hidden write", Price: 1, Category: "fitness", IsActive: true}))
	page, err = f.catalog.List(ctx, q)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	f.product(t, "Calcium", 90, 10)
	assert.Equal(t, 0, f.cache.Len())
	page, err = f.catalog.List(ctx, q)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)

	assert.Equal(t, []string{"product_created", "product_created"}, f.events.Types(events.TopicProducts))
}

func TestCatalog_SearchFallsBackToDatabase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.catalog.Searcher = failingSearcher{}
	f.product(t, "Ashwagandha Tablets", 300, 10)
	f.product(t, "Fish Oil", 400, 10)

	page, err := f.catalog.Search(ctx, "ashwa", 0, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, "Ashwagandha Tablets", page.Items[0].Name)

	_, err = f.catalog.Search(ctx, "", 0, 20)
	kindOf(t, err, ErrValidation, "")
}

func TestCatalog_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Syrup", 80, 5)

	name := "Cough Syrup"
	inactive := false
	got, err := f.catalog.Update(ctx, p.ID, transport.PatchProductRequest{Name: &name, IsActive: &inactive, HealthConcerns: []string{"cold"}})
	require.NoError(t, err)
	assert.Equal(t, "Cough Syrup", got.Name)
	assert.False(t, got.IsActive)
	assert.Equal(t, []string{"cold"}, got.HealthConcerns)
	assert.Equal(t, 80.0, got.Price)

	_, err = f.catalog.Update(ctx, uuid.New(), transport.PatchProductRequest{Name: &name})
	kindOf(t, err, ErrNotFound, "Product not found")

	require.NoError(t, f.catalog.Delete(ctx, p.ID))
	kindOf(t, f.catalog.Delete(ctx, p.ID), ErrNotFound, "Product not found")
	_, err = f.catalog.Get(ctx, p.ID)
	kindOf(t, err, ErrNotFound, "Product not found")
}

func TestCart_TotalsFollowCatalogPrices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "cart@t.com")
	p := f.product(t, "Tea", 100, 10)

	for i := 0; i < 2; i++ {
		_, err := f.cart.Add(ctx, u.ID, transport.AddCartItemRequest{ProductID: p.ID.String(), Quantity: 1})
		require.NoError(t, err)
	}
	view, err := f.cart.Get(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 200.0, view.Items[0].LineTotal)
	assert.Equal(t, 200.0, view.Subtotal)
	assert.Equal(t, 20.0, view.Discount)
	assert.Equal(t, 49.0, view.DeliveryCharge)
	assert.Equal(t, 229.0, view.Total)

	price := 250.0
	_, err = f.catalog.Update(ctx, p.ID, transport.PatchProductRequest{Price: &price})
	require.NoError(t, err)
	view, err = f.cart.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, view.Subtotal)
	assert.Equal(t, 450.0, view.Total)

	_, err = f.cart.Add(ctx, u.ID, transport.AddCartItemRequest{ProductID: uuid.NewString(), Quantity: 1})
	kindOf(t, err, ErrNotFound, "Product not found")

	view, err = f.cart.Replace(ctx, u.ID, transport.ReplaceCartRequest{Items: []transport.CartLine{
		{ProductID: p.ID.String(), Quantity: 1},
		{ProductID: p.ID.String(), Quantity: 2},
	}})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)

	require.NoError(t, f.cart.Clear(ctx, u.ID))
	view, err = f.cart.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)
	assert.Zero(t, view.DeliveryCharge)
}

func TestOrder_CheckoutEmitsAndNotifies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "buyer@t.com")
	p := f.product(t, "Oximeter", 1200, 3)

	_, err := f.orders.Checkout(ctx, u.ID, transport.CheckoutRequest{})
	kindOf(t, err, ErrValidation, "missing required field: deliveryAddress")

	addr := &transport.DeliveryAddress{FullName: "T", Phone: "1", AddressLine1: "L1", City: "Pune", State: "MH", Pincode: "411001"}
	_, err = f.orders.Checkout(ctx, u.ID, transport.CheckoutRequest{DeliveryAddress: addr})
	kindOf(t, err, ErrValidation, "Cart is empty")

	_, err = f.cart.Add(ctx, u.ID, transport.AddCartItemRequest{ProductID: p.ID.String(), Quantity: 1})
	require.NoError(t, err)
	order, err := f.orders.Checkout(ctx, u.ID, transport.CheckoutRequest{DeliveryAddress: addr, OrderNotes: "ring bell"})
	require.NoError(t, err)
	assert.Equal(t, "India", order.DeliveryAddress.Country)
	assert.Equal(t, 1080.0, order.TotalPrice)
	assert.Equal(t, []string{"order_created"}, f.events.Types(events.TopicOrders))

	notes, err := f.notifier.List(ctx, u.ID, nil)
	require.NoError(t, err)
	require.Len(t, notes.Notifications, 1)
	assert.Equal(t, "order", notes.Notifications[0].Type)
	assert.EqualValues(t, 1, notes.UnreadCount)

	stranger := uuid.New()
	_, err = f.orders.Get(ctx, order.ID, &stranger)
	kindOf(t, err, ErrNotFound, "Order not found")

	cancelled, err := f.orders.Cancel(ctx, order.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)

	_, err = f.orders.AdminUpdate(ctx, order.ID, transport.OrderStatusRequest{Status: models.OrderShipped})
	kindOf(t, err, ErrConflict, "")
	_, _, err = f.orders.List(ctx, nil, "lost", 0, 10)
	kindOf(t, err, ErrValidation, "")
}

func TestOrder_CheckoutWithCouponErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()
	u := f.user(t, "coupon@t.com")
	p := f.product(t, "Protein", 500, 5)
	_, err := f.cart.Add(ctx, u.ID, transport.AddCartItemRequest{ProductID: p.ID.String(), Quantity: 1})
	require.NoError(t, err)

	_, err = f.offers.Create(ctx, transport.CreateOfferRequest{
		Code: "old", DiscountType: models.DiscountFixed, DiscountValue: 50,
		ValidFrom: now.Add(-48 * time.Hour), ValidUntil: now.Add(-24 * time.Hour),
	})
	require.NoError(t, err)

	addr := &transport.DeliveryAddress{FullName: "T", Phone: "1", AddressLine1: "L1", City: "C", State: "S", Pincode: "1"}
	_, err = f.orders.Checkout(ctx, u.ID, transport.CheckoutRequest{DeliveryAddress: addr, CouponCode: "OLD"})
	kindOf(t, err, ErrValidation, "Coupon code has expired")
	_, err = f.orders.Checkout(ctx, u.ID, transport.CheckoutRequest{DeliveryAddress: addr, CouponCode: "missing"})
	kindOf(t, err, ErrNotFound, "Coupon code not found")

	fresh, err := f.catalog.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, fresh.Stock)
}

func TestOffer_Validate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.offers.Now = func() time.Time { return now }

	mk := func(code string, from, until time.Time, limit int, active bool) {
		_, err := f.offers.Create(ctx, transport.CreateOfferRequest{
			Code: code, DiscountType: models.DiscountPercentage, DiscountValue: 20, MaxDiscount: 100,
			ValidFrom: from, ValidUntil: until, UsageLimit: limit, IsActive: &active,
		})
		require.NoError(t, err)
	}
	day := 24 * time.Hour
	mk("GOOD", now.Add(-day), now.Add(day), 10, true)
	mk("EXPIRED", now.Add(-2*day), now.Add(-day), 10, true)
	mk("OFF", now.Add(-day), now.Add(day), 10, false)
	mk("USEDUP", now.Add(-day), now.Add(day), 1, true)
	mk("BOTH", now.Add(-2*day), now.Add(-day), 1, true)
	for _, code := range []string{"USEDUP", "BOTH"} {
		o, err := f.repo.OfferByCode(ctx, code)
		require.NoError(t, err)
		ok, err := f.repo.RedeemOffer(ctx, o.ID)
		require.NoError(t, err)
		require.True(t, ok)
	}

	tests := []struct {
		code string
		kind error
		msg  string
	}{
		{"nope", ErrNotFound, "Coupon code not found"},
		{"off", ErrValidation, "Coupon code is inactive"},
		{"expired", ErrValidation, "Coupon code has expired"},
		{"usedup", ErrValidation, "Coupon usage limit exceeded"},
		{"both", ErrValidation, "Coupon code has expired"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			_, err := f.offers.Validate(ctx, tt.code, nil)
			kindOf(t, err, tt.kind, tt.msg)
		})
	}

	cart := 1000.0
	check, err := f.offers.Validate(ctx, "good", &cart)
	require.NoError(t, err)
	require.NotNil(t, check.Discount)
	assert.Equal(t, 100.0, *check.Discount)

	active, err := f.offers.Active(ctx)
	require.NoError(t, err)
	codes := []string{}
	for _, o := range active {
		codes = append(codes, o.Code)
	}
	assert.ElementsMatch(t, []string{"GOOD", "USEDUP"}, codes)

	_, err = f.offers.Create(ctx, transport.CreateOfferRequest{Code: "good", DiscountType: models.DiscountFixed, DiscountValue: 1, ValidFrom: now, ValidUntil: now.Add(day)})
	kindOf(t, err, ErrConflict, "Coupon code already exists")

	png, err := f.offers.QR(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestAuth_LongPasswords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	long := strings.Repeat("x", 80)

	u, err := f.auth.Register(ctx, transport.RegisterRequest{Email: "long@t.com", Password: long, FullName: "Long"})
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, transport.RegisterRequest{Email: "long@t.com", Password: long + "y", FullName: "Dup"})
	kindOf(t, err, ErrConflict, "Email already registered")

	res, err := f.auth.Login(ctx, transport.LoginRequest{Email: "long@t.com", Password: long})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	_, err = f.auth.Login(ctx, transport.LoginRequest{Email: "long@t.com", Password: long[:72]})
	kindOf(t, err, ErrUnauthorized, "Invalid email or password")

	_, err = f.auth.VendorRegister(ctx, transport.VendorRegisterRequest{
		VendorName: "Long Pharma", Email: "lv@t.com", Password: long, Phone: "1", BusinessType: "pharmacy",
	})
	require.NoError(t, err)
	_, err = f.auth.VendorRegister(ctx, transport.VendorRegisterRequest{
		VendorName: "Again", Email: "lv@t.com", Password: long, Phone: "1", BusinessType: "pharmacy",
	})
	kindOf(t, err, ErrConflict, "Email already registered")
}

func TestVendor_SuspensionEndsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := registerVendor(t, f, "sus@t.com")
	_, err := f.vendors.Act(ctx, v.ID, domain.VendorApprove, "")
	require.NoError(t, err)

	res, err := f.auth.VendorLogin(ctx, transport.LoginRequest{Email: "sus@t.com", Password: "secret1"})
	require.NoError(t, err)
	p, err := f.vendors.CreateProduct(ctx, v.ID, transport.CreateProductRequest{Name: "Balm", Price: 99, Category: "ayurveda", Stock: 3})
	require.NoError(t, err)

	next, err := f.tokens.Refresh(ctx, res.Tokens.RefreshToken)
	require.NoError(t, err)

	_, err = f.vendors.SetActive(ctx, v.ID, false)
	require.NoError(t, err)

	_, err = f.tokens.Refresh(ctx, next.RefreshToken)
	kindOf(t, err, ErrUnauthorized, "Vendor account is not active")

	price := 999.0
	_, err = f.vendors.UpdateProduct(ctx, v.ID, p.ID, transport.PatchProductRequest{Price: &price})
	kindOf(t, err, ErrForbidden, "Your vendor account is not verified")
	kindOf(t, f.vendors.DeleteProduct(ctx, v.ID, p.ID), ErrForbidden, "Your vendor account is not verified")

	got, err := f.catalog.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 99.0, got.Price)

	// reactivation does not revive the refused token
	_, err = f.vendors.SetActive(ctx, v.ID, true)
	require.NoError(t, err)
	_, err = f.tokens.Refresh(ctx, next.RefreshToken)
	kindOf(t, err, ErrUnauthorized, "")
}

func TestVendor_RejectDefaultsReason(t *testing.T) {
	f := newFixture(t)
	v := registerVendor(t, f, "noreason@t.com")

	got, err := f.vendors.Act(context.Background(), v.ID, domain.VendorReject, "  ")
	require.NoError(t, err)
	assert.Equal(t, "Application rejected", got.RejectionReason)
}

type indexRecorder struct {
	failingSearcher
	indexed map[uuid.UUID]int
}

func (r *indexRecorder) Index(_ context.Context, p *models.Product) error {
	r.indexed[p.ID] = p.Stock
	return nil
}

func TestCatalog_StockWritesRefreshListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	idx := &indexRecorder{indexed: map[uuid.UUID]int{}}
	f.catalog.Searcher = idx
	u := f.user(t, "stock@t.com")
	p := f.product(t, "Multivitamin", 100, 5)

	q := ProductQuery{Limit: 20}
	page, err := f.catalog.List(ctx, q)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 5, page.Items[0].Stock)

	_, err = f.cart.Add(ctx, u.ID, transport.AddCartItemRequest{ProductID: p.ID.String(), Quantity: 2})
	require.NoError(t, err)
	addr := &transport.DeliveryAddress{FullName: "T", Phone: "1", AddressLine1: "L1", City: "Pune", State: "MH", Pincode: "411001"}
	order, err := f.orders.Checkout(ctx, u.ID, transport.CheckoutRequest{DeliveryAddress: addr})
	require.NoError(t, err)

	page, err = f.catalog.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Items[0].Stock)
	assert.Equal(t, 3, idx.indexed[p.ID])

	_, err = f.orders.Cancel(ctx, order.ID, u.ID)
	require.NoError(t, err)
	page, err = f.catalog.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Items[0].Stock)
	assert.Equal(t, 5, idx.indexed[p.ID])

	reviews := &ReviewService{Repo: f.repo, Catalog: f.catalog}
	_, err = reviews.Create(ctx, u.ID, transport.ReviewRequest{ProductID: p.ID.String(), Rating: 4})
	require.NoError(t, err)
	page, err = f.catalog.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 4.0, page.Items[0].Rating)
}

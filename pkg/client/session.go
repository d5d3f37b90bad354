package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone,omitempty"`
}

func (s *Session) Register(ctx context.Context, r Registration) (*User, error) {
	var u User
	if _, _, err := s.do(ctx, http.MethodPost, "api/auth/register", r, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login stores the session cookies and the returned user.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	var u User
	if _, _, err := s.do(ctx, http.MethodPost, "api/auth/login", Credentials{email, password}, &u); err != nil {
		return nil, err
	}
	s.User, s.Vendor = &u, nil
	return &u, nil
}

func (s *Session) VendorLogin(ctx context.Context, email, password string) (*Vendor, error) {
	var v Vendor
	if _, _, err := s.do(ctx, http.MethodPost, "api/vendor/login", Credentials{email, password}, &v); err != nil {
		return nil, err
	}
	s.User, s.Vendor = nil, &v
	return &v, nil
}

func (s *Session) Logout(ctx context.Context) error {
	_, _, err := s.do(ctx, http.MethodPost, "api/auth/logout", nil, nil)
	s.User, s.Vendor = nil, nil
	return err
}

func (s *Session) Me(ctx context.Context) (*User, error) {
	var u User
	if _, _, err := s.do(ctx, http.MethodGet, "api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

type ProductQuery struct {
	Category      string
	Search        string
	HealthConcern string
	Page          int
	Limit         int
}

func (s *Session) Products(ctx context.Context, q ProductQuery) ([]Product, *Pagination, error) {
	v := url.Values{}
	for k, val := range map[string]string{"category": q.Category, "search": q.Search, "healthConcern": q.HealthConcern} {
		if val != "" {
			v.Set(k, val)
		}
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	path := "api/products"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}
	var items []Product
	_, page, err := s.do(ctx, http.MethodGet, path, nil, &items)
	if err != nil {
		return nil, nil, err
	}
	return items, page, nil
}

func (s *Session) Product(ctx context.Context, id string) (*Product, error) {
	var p Product
	if _, _, err := s.do(ctx, http.MethodGet, "api/products/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct needs an admin session.
func (s *Session) CreateProduct(ctx context.Context, p NewProduct) (*Product, error) {
	var out Product
	if _, _, err := s.do(ctx, http.MethodPost, "api/products", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) Cart(ctx context.Context) (*Cart, error) {
	var c Cart
	if _, _, err := s.do(ctx, http.MethodGet, "api/cart", nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Session) AddToCart(ctx context.Context, productID string, quantity int) (*Cart, error) {
	body := map[string]any{"productId": productID, "quantity": quantity}
	var c Cart
	if _, _, err := s.do(ctx, http.MethodPost, "api/cart/items", body, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Session) SetQuantity(ctx context.Context, productID string, quantity int) (*Cart, error) {
	body := map[string]any{"quantity": quantity}
	var c Cart
	if _, _, err := s.do(ctx, http.MethodPatch, "api/cart/items/"+url.PathEscape(productID), body, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Session) ClearCart(ctx context.Context) error {
	_, _, err := s.do(ctx, http.MethodDelete, "api/cart", nil, nil)
	return err
}

func (s *Session) Checkout(ctx context.Context, in Checkout) (*Order, error) {
	var o Order
	if _, _, err := s.do(ctx, http.MethodPost, "api/orders", in, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Session) Orders(ctx context.Context) ([]Order, error) {
	var out []Order
	if _, _, err := s.do(ctx, http.MethodGet, "api/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Call reaches endpoints without a typed wrapper. out receives the data field.
func (s *Session) Call(ctx context.Context, method, path string, body, out any) (string, error) {
	msg, _, err := s.do(ctx, method, path, body, out)
	return msg, err
}

package analytics

import (
	"context"
	"math"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

type StatusShare struct {
	Status     string  `db:"status"     json:"status"`
	Count      int64   `db:"count"      json:"count"`
	Percentage float64 `db:"-"          json:"percentage"`
}

type Summary struct {
	TotalUsers           int64         `json:"totalUsers"`
	TotalVendors         int64         `json:"totalVendors"`
	TotalProducts        int64         `json:"totalProducts"`
	TotalOrders          int64         `json:"totalOrders"`
	Revenue              float64       `json:"revenue"`
	AverageOrderValue    float64       `json:"averageOrderValue"`
	AverageProductRating float64       `json:"averageProductRating"`
	OrdersByStatus       []StatusShare `json:"ordersByStatus"`
	VendorsByStatus      []StatusShare `json:"vendorsByStatus"`
}

type Store struct {
	DB *sqlx.DB
}

// Open connects the reporting pool through lib/pq.
func Open(ctx context.Context, dsn string, maxOpen int) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open analytics pool")
	}
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping analytics pool")
	}
	return db, nil
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Summary(ctx context.Context) (*Summary, error) {
	var out Summary

	counts := []struct {
		dst   *int64
		query string
	}{
		{&out.TotalUsers, `SELECT count(*) FROM users`},
		{&out.TotalVendors, `SELECT count(*) FROM vendors`},
		{&out.TotalProducts, `SELECT count(*) FROM products`},
		{&out.TotalOrders, `SELECT count(*) FROM orders`},
	}
	for _, c := range counts {
		if err := s.DB.GetContext(ctx, c.dst, c.query); err != nil {
			return nil, errors.Wrapf(err, "analytics count %q", c.query)
		}
	}

	var revenue struct {
		Sum   float64 `db:"revenue"`
		Count int64   `db:"n"`
	}
	q := s.DB.Rebind(`SELECT COALESCE(SUM(total_price), 0) AS revenue, count(*) AS n FROM orders WHERE status <> ?`)
	if err := s.DB.GetContext(ctx, &revenue, q, "cancelled"); err != nil {
		return nil, errors.Wrap(err, "analytics revenue")
	}
	out.Revenue = round2(revenue.Sum)
	if revenue.Count > 0 {
		out.AverageOrderValue = round2(revenue.Sum / float64(revenue.Count))
	}

	if err := s.DB.GetContext(ctx, &out.AverageProductRating,
		`SELECT COALESCE(AVG(rating), 0) FROM products`); err != nil {
		return nil, errors.Wrap(err, "analytics product rating")
	}
	out.AverageProductRating = round2(out.AverageProductRating)

	var err error
	if out.OrdersByStatus, err = s.byStatus(ctx, "orders", out.TotalOrders); err != nil {
		return nil, err
	}
	if out.VendorsByStatus, err = s.byStatus(ctx, "vendors", out.TotalVendors); err != nil {
		return nil, err
	}
	return &out, nil
}

// table is one of a fixed set of identifiers, never user input.
func (s *Store) byStatus(ctx context.Context, table string, total int64) ([]StatusShare, error) {
	rows := []StatusShare{}
	q := `SELECT status, count(*) AS count FROM ` + table + ` GROUP BY status ORDER BY count DESC, status`
	if err := s.DB.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrapf(err, "analytics %s by status", table)
	}
	for i := range rows {
		rows[i].Percentage = Percentage(rows[i].Count, total)
	}
	return rows, nil
}

// Percentage returns part/total*100 rounded to two places, 0 for an empty total.
func Percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package repo is the gorm-backed store. Multi-row writes run inside a single
// transaction and lock the rows they read with SELECT ... FOR UPDATE.
package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAlreadyExists  = errors.New("already exists")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrCouponNotFound = errors.New("coupon not found")
)

// LineError reports a cart line that cannot be checked out.
type LineError struct {
	ProductName string
	Reason      string
}

func (e *LineError) Error() string {
	return e.ProductName + ": " + e.Reason
}

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// like builds a case-insensitive LIKE pattern that works on postgres and sqlite.
func like(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}

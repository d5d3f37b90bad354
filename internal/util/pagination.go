package util

import "strconv"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*size far from int overflow.
	MaxPage = 1_000_000
)

type Page struct {
	Page   int
	Limit  int
	Offset int
}

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func Calculate(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	offset = (page - 1) * size
	return offset, size
}

// NewPage normalises raw query values; def is the resource's default page size.
func NewPage(rawPage, rawLimit string, def int) Page {
	page := ParseIntDefault(rawPage, 1)
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	offset, limit := Calculate(page, ParseIntDefault(rawLimit, def))
	return Page{Page: page, Limit: limit, Offset: offset}
}

func TotalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

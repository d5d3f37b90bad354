package transport

import "github.com/Skotchmaster/medstore/internal/util"

type Envelope struct {
	Message    string      `json:"message"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

func NewPagination(total int64, p util.Page) *Pagination {
	return &Pagination{Total: total, Page: p.Page, Limit: p.Limit, Pages: util.TotalPages(total, p.Limit)}
}

type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func OK(message string, data any) Envelope {
	return Envelope{Message: message, Data: data}
}

func Page(message string, data any, total int64, p util.Page) Envelope {
	return Envelope{Message: message, Data: data, Pagination: NewPagination(total, p)}
}

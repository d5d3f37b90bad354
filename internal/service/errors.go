package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrValidation   = errors.New("validation")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error carries a client-facing message and one of the sentinel kinds above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func newErr(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func validation(format string, args ...any) error { return newErr(ErrValidation, format, args...) }
func notFound(format string, args ...any) error   { return newErr(ErrNotFound, format, args...) }
func conflict(format string, args ...any) error   { return newErr(ErrConflict, format, args...) }
func forbidden(format string, args ...any) error  { return newErr(ErrForbidden, format, args...) }

// orNotFound maps a missing row to a typed not-found error with msg.
func orNotFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: ErrNotFound, Msg: msg}
	}
	return err
}

package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medstore/internal/service"
	"github.com/Skotchmaster/medstore/internal/transport"
	"github.com/Skotchmaster/medstore/pkg/logging"
	"github.com/Skotchmaster/medstore/pkg/validate"
)

var kindStatus = []struct {
	kind   error
	status int
	code   string
}{
	{service.ErrValidation, http.StatusBadRequest, "validation_error"},
	{service.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{service.ErrForbidden, http.StatusForbidden, "forbidden"},
	{service.ErrNotFound, http.StatusNotFound, "not_found"},
	{service.ErrConflict, http.StatusConflict, "conflict"},
}

func codeFor(status int) string {
	for _, k := range kindStatus {
		if k.status == status {
			return k.code
		}
	}
	if status >= 500 {
		return "internal_error"
	}
	return "error"
}

// HTTPErrorHandler renders every failure as {"message", "code"}. Unknown
// errors become a generic 500 and are logged with their cause.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, body := render(err)
	if status >= 500 {
		logging.FromContext(c.Request().Context()).Error("request_failed", "status", status, "error", err)
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("write_error_response_failed", "error", err)
	}
}

func render(err error) (int, transport.ErrorBody) {
	var se *service.Error
	if errors.As(err, &se) {
		for _, k := range kindStatus {
			if errors.Is(se.Kind, k.kind) {
				return k.status, transport.ErrorBody{Message: se.Msg, Code: k.code}
			}
		}
	}

	var ve *validate.Error
	if errors.As(err, &ve) {
		return http.StatusBadRequest, transport.ErrorBody{Message: ve.Message, Code: "validation_error"}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		switch m := he.Message.(type) {
		case string:
			msg = m
		case error:
			msg = m.Error()
		case nil:
		default:
			msg = fmt.Sprint(m)
		}
		if he.Code >= 500 {
			msg = "Internal server error"
		}
		return he.Code, transport.ErrorBody{Message: msg, Code: codeFor(he.Code)}
	}

	return http.StatusInternalServerError, transport.ErrorBody{Message: "Internal server error", Code: "internal_error"}
}

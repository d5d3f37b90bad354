package loggingmw

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/medstore/pkg/logging"
)

func newServer(buf *bytes.Buffer) *echo.Echo {
	e := echo.New()
	e.Use(echomw.RequestID())
	e.Use(RequestLogger(logging.NewWithWriter(buf, "debug", false)))
	e.GET("/ok", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("inside_handler")
		return c.String(http.StatusOK, "fine")
	})
	e.GET("/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "gone")
	})
	e.GET("/broken", func(c echo.Context) error {
		return errors.New("db down")
	})
	return e
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := newServer(&buf)

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(echo.HeaderXRequestID, "rid-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "rid-1", rec.Header().Get(echo.HeaderXRequestID))
	assert.Contains(t, buf.String(), `"msg":"inside_handler"`)
	assert.Contains(t, buf.String(), `"request_id":"rid-1"`)
	assert.Contains(t, buf.String(), `"level":"INFO","msg":"http_request"`)
	assert.Contains(t, buf.String(), `"route":"/ok"`)

	buf.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.NotContains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"status":404`)

	buf.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/broken", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), `"level":"ERROR","msg":"http_request"`)
	assert.Contains(t, buf.String(), `"error":"db down"`)
}

func TestRequestLogger_LogsGeneratedRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rec := httptest.NewRecorder()
	newServer(&buf).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	rid := rec.Header().Get(echo.HeaderXRequestID)
	require.NotEmpty(t, rid)
	assert.Contains(t, buf.String(), `"request_id":"`+rid+`"`)
}

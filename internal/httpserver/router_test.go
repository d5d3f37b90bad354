package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/medstore/internal/transport"
	"github.com/Skotchmaster/medstore/pkg/logging"
)

func TestNew_CSRFChecksOrigin(t *testing.T) {
	e := New(&Deps{AccessSecret: []byte("s")}, Options{CSRF: true})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{}`))
	req.Host = "shop.test"
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Origin", "http://evil.test")
	req.Header.Set("X-CSRF-Token", "tok")
	req.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: "tok"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	var body transport.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid origin", body.Message)
}

func TestNew_LogsUnknownRouteAsWarning(t *testing.T) {
	var buf bytes.Buffer
	e := New(&Deps{AccessSecret: []byte("s")}, Options{Logger: logging.NewWithWriter(&buf, "info", false)})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	rid := rec.Header().Get(echo.HeaderXRequestID)
	require.NotEmpty(t, rid)
	assert.Contains(t, buf.String(), `"level":"WARN","msg":"http_request"`)
	assert.Contains(t, buf.String(), `"request_id":"`+rid+`"`)
	assert.NotContains(t, buf.String(), `"level":"ERROR"`)
}

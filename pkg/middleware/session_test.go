package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func server(required bool) *echo.Echo {
	e := echo.New()
	e.Use(Session(required))
	e.GET("/uid", func(c echo.Context) error { return c.String(http.StatusOK, c.Get("uid").(string)) })
	return e
}

func TestSessionSources(t *testing.T) {
	e := server(true)

	req := httptest.NewRequest(http.MethodGet, "/uid", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "U_COOKIE"})
	req.Header.Set(UIDHeader, "U_HEADER")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "U_COOKIE", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/uid", nil)
	req.Header.Set(UIDHeader, "U_HEADER")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "U_HEADER", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uid", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionDevFallback(t *testing.T) {
	rec := httptest.NewRecorder()
	server(false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uid", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, DevUID, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Set-Cookie"), SessionCookie+"="+DevUID)
}

func TestRequestLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := echo.New()
	e.Use(RequestLog(zap.New(core)))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, int64(http.StatusNoContent), entries[0].ContextMap()["status"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}

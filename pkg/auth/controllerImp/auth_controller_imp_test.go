package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriplan/database"
	"agriplan/pkg/kvstore"
	"agriplan/pkg/middleware"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	h := NewAuthController(kvstore.New(db))

	e := echo.New()
	e.POST("/auth/sign-in", h.SignIn)
	e.POST("/auth/sign-up", h.SignUp)
	e.POST("/auth/sign-out", h.SignOut)
	e.GET("/whoami", h.WhoAmI, middleware.Session(true))
	return e
}

func post(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSignUpThenWhoAmI(t *testing.T) {
	e := newServer(t)

	rec := post(e, "/auth/sign-up", `{"name":"Amina","email":"Amina@Farm.ma","password":"x","confirm_password":"x"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	uid := out["uid"]
	assert.True(t, strings.HasPrefix(uid, "U_"))
	cookie := rec.Result().Cookies()[0]
	assert.Equal(t, middleware.SessionCookie, cookie.Name)
	assert.Equal(t, uid, cookie.Value)

	// same email, same uid
	rec = post(e, "/auth/sign-in", `{"email":"amina@farm.ma ","password":"anything"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), uid)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"uid":"`+uid+`","name":"Amina","email":"amina@farm.ma"}`, rec.Body.String())

	rec = post(e, "/auth/sign-out", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthValidation(t *testing.T) {
	e := newServer(t)
	assert.Equal(t, http.StatusBadRequest, post(e, "/auth/sign-in", `{"email":"a@b.c"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(e, "/auth/sign-up", `{"name":"A","email":"a@b.c","password":"x"}`).Code)
	rec := post(e, "/auth/sign-up", `{"name":"A","email":"a@b.c","password":"x","confirm_password":"y"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "do not match")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(middleware.UIDHeader, "U_GUEST")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.JSONEq(t, `{"uid":"U_GUEST"}`, rec.Body.String())
}

package controllerImp

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"agriplan/pkg/apperr"
	"agriplan/pkg/auth/controller"
	"agriplan/pkg/kvstore"
	"agriplan/pkg/middleware"
)

// Accounts are not verified: any non-empty credentials sign in. The uid is
// derived from the email so the same address always maps to the same data.
type authCtrl struct{ kv kvstore.Store }

type account struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewAuthController(kv kvstore.Store) controller.AuthController { return &authCtrl{kv: kv} }

func uidFor(email string) string {
	return "U_" + uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String()
}

func accountKey(uid string) string { return "account:" + uid }

func signIn(c echo.Context, uid string) {
	c.SetCookie(&http.Cookie{Name: middleware.SessionCookie, Value: uid, Path: "/", HttpOnly: true})
	c.Set("uid", uid)
}

func (h *authCtrl) SignIn(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please fill in all fields"})
	}
	uid := uidFor(email)
	signIn(c, uid)
	return c.JSON(http.StatusOK, map[string]string{"uid": uid})
}

func (h *authCtrl) SignUp(c echo.Context) error {
	var body struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	name := strings.TrimSpace(body.Name)
	if name == "" || email == "" || body.Password == "" || body.ConfirmPassword == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please fill in all fields"})
	}
	if body.Password != body.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Passwords do not match"})
	}
	uid := uidFor(email)
	if err := h.kv.Put(c.Request().Context(), accountKey(uid), account{Name: name, Email: email}); err != nil {
		return apperr.JSON(c, err)
	}
	signIn(c, uid)
	return c.JSON(http.StatusCreated, map[string]string{"uid": uid, "name": name})
}

func (h *authCtrl) SignOut(c echo.Context) error {
	c.SetCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "", Path: "/", MaxAge: -1})
	return c.NoContent(http.StatusNoContent)
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	out := map[string]string{"uid": uid}
	var a account
	err := h.kv.Get(c.Request().Context(), accountKey(uid), &a)
	switch {
	case err == nil:
		out["name"] = a.Name
		out["email"] = a.Email
	case !errors.Is(err, kvstore.ErrNotFound):
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

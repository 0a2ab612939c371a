package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/libriverse/libriverse/pkg/errcodes"
	"github.com/libriverse/libriverse/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthedContext(t *testing.T, svc *Service, user *models.User) echo.Context {
	t.Helper()

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestAuthenticateMiddleware(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)
	mw := NewMiddleware(svc)

	user, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	c := newAuthedContext(t, svc, user)
	require.NoError(t, mw.Authenticate(next)(c))

	gotUser, ok := GetUserFromContext(c)
	require.True(t, ok)
	assert.Equal(t, user.ID, gotUser.ID)
	gotID, ok := GetUserIDFromContext(c)
	require.True(t, ok)
	assert.Equal(t, user.ID, gotID)
}

func TestAuthenticateMiddlewareRejections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)
	mw := NewMiddleware(svc)

	user, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)
	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "empty token", header: "Bearer "},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "tampered token", header: "Bearer " + token + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			err := mw.Authenticate(next)(c)
			var appErr *errcodes.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 401, appErr.HTTPCode)
		})
	}
}

func TestAuthenticateMiddlewareExpiredToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)
	mw := NewMiddleware(svc)

	user, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	claims := &JWTClaims{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-15 * 24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.jwtSecret)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	err = mw.Authenticate(func(c echo.Context) error { return nil })(c)
	var appErr *errcodes.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.HTTPCode)
	assert.Equal(t, "Authentication required", appErr.Message)
}

func TestAuthenticateMiddlewareDeletedUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)
	mw := NewMiddleware(svc)

	user, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)
	c := newAuthedContext(t, svc, user)

	_, err = svc.db.NewDelete().Model(user).WherePK().Exec(ctx)
	require.NoError(t, err)

	err = mw.Authenticate(func(c echo.Context) error { return nil })(c)
	var appErr *errcodes.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.HTTPCode)
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	mw := NewMiddleware(svc)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set("user", &models.User{ID: 1, IsAdmin: true})
	require.NoError(t, mw.RequireAdmin(next)(c))

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set("user", &models.User{ID: 2})
	err := mw.RequireAdmin(next)(c)
	var appErr *errcodes.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.HTTPCode)
	assert.Equal(t, "Admin access required", appErr.Message)
}

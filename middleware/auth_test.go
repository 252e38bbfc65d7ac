package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Govind-619/BuyMeAChai/identity"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	users map[string]string
	down  bool
}

func (p stubProvider) Authenticate(_ context.Context, token string) (*identity.Identity, error) {
	if p.down {
		return nil, fmt.Errorf("%w: dial tcp: connection refused", identity.ErrProviderUnavailable)
	}
	id, ok := p.users[token]
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	return &identity.Identity{ID: id}, nil
}

func newRouter(provider identity.Provider, admins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(provider), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.String(http.StatusOK, user.ID)
	})
	r.GET("/admin", AuthMiddleware(provider), AdminMiddleware(admins), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(stubProvider{users: map[string]string{"good": "user-1"}}, nil)

	w := get(r, "/me", "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())

	w = get(r, "/me", "bearer good")
	assert.Equal(t, http.StatusOK, w.Code)

	for _, header := range []string{"", "good", "Basic good", "Bearer ", "Bearer"} {
		w := get(r, "/me", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.JSONEq(t, `{"error":"Unauthorized: Missing or invalid token"}`, w.Body.String())
	}

	w = get(r, "/me", "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized: Invalid token"}`, w.Body.String())
}

func TestAuthMiddlewareProviderDown(t *testing.T) {
	r := newRouter(stubProvider{down: true}, nil)

	w := get(r, "/me", "Bearer good")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestAdminMiddleware(t *testing.T) {
	r := newRouter(stubProvider{users: map[string]string{"admin": "admin-1", "user": "user-1"}}, []string{"admin-1"})

	assert.Equal(t, http.StatusNoContent, get(r, "/admin", "Bearer admin").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "Bearer user").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/admin", "").Code)
}

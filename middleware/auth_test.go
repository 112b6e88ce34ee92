package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menswear/storefront/services"
)

func authTestRouter(t *testing.T) (*gin.Engine, *services.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := services.NewTokenService("test-secret")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", RequireAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	r.GET("/admin", RequireAuth(tokens), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, tokens
}

func doAuthRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRejectsMissingOrBadToken(t *testing.T) {
	r, _ := authTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, doAuthRequest(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doAuthRequest(r, "/me", "Bearer ").Code)
	assert.Equal(t, http.StatusUnauthorized, doAuthRequest(r, "/me", "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doAuthRequest(r, "/me", "Bearer not.a.token").Code)
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	r, tokens := authTestRouter(t)

	token, err := tokens.Generate("u1", "arjun@example.com", "user")
	require.NoError(t, err)

	w := doAuthRequest(r, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	r, tokens := authTestRouter(t)

	userToken, err := tokens.Generate("u1", "arjun@example.com", "user")
	require.NoError(t, err)
	adminToken, err := tokens.Generate("a1", "ops@example.com", "admin")
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doAuthRequest(r, "/admin", "Bearer "+userToken).Code)
	assert.Equal(t, http.StatusOK, doAuthRequest(r, "/admin", "Bearer "+adminToken).Code)
}

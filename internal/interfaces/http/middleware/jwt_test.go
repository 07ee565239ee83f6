package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chatforge/backend/internal/infrastructure/auth"
	"github.com/chatforge/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) *auth.JWTService {
	t.Helper()
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "0123456789abcdef0123456789abcdef",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "chatforge-test",
	})
}

func newAuthRouter(cfg JWTMiddlewareConfig, requireAdmin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{JWTAuth(cfg)}
	if requireAdmin {
		handlers = append(handlers, RequireAdmin())
	}
	group := r.Group("/admin", handlers...)
	group.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"email": GetJWTEmail(c),
			"role":  GetJWTRole(c),
		})
	})
	return r
}

func issueToken(t *testing.T, svc *auth.JWTService, role string) string {
	t.Helper()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "ops@chatforge.test",
		Role:   role,
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func TestJWTAuth(t *testing.T) {
	svc := newTestAuthService(t)

	t.Run("valid token populates context", func(t *testing.T) {
		router := newAuthRouter(JWTMiddlewareConfig{JWTService: svc}, false)

		req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, svc, auth.RoleOperator))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ops@chatforge.test")
		assert.Contains(t, w.Body.String(), auth.RoleOperator)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		router := newAuthRouter(JWTMiddlewareConfig{JWTService: svc}, false)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/whoami", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		router := newAuthRouter(JWTMiddlewareConfig{JWTService: svc}, false)

		req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not-a-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("revoked token rejected", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		router := newAuthRouter(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: blacklist}, false)

		token := issueToken(t, svc, auth.RoleAdmin)
		claims, err := svc.ValidateAccessToken(token)
		require.NoError(t, err)
		require.NoError(t, blacklist.AddToBlacklist(t.Context(), claims.ID, time.Minute))

		req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
	})
}

func TestRequireAdmin(t *testing.T) {
	svc := newTestAuthService(t)

	t.Run("admin admitted", func(t *testing.T) {
		router := newAuthRouter(JWTMiddlewareConfig{JWTService: svc}, true)

		req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, svc, auth.RoleAdmin))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("operator forbidden", func(t *testing.T) {
		router := newAuthRouter(JWTMiddlewareConfig{JWTService: svc}, true)

		req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, svc, auth.RoleOperator))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

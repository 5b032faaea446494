package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-admin-server/internal/config"
	"hospital-admin-server/internal/lifecycle"
	"hospital-admin-server/internal/models"
	"hospital-admin-server/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRouter(cfg *config.Config, roles ...lifecycle.ActorRole) *gin.Engine {
	router := gin.New()
	group := router.Group("/", AuthMiddleware(cfg))
	if len(roles) > 0 {
		group.Use(RoleAuthMiddleware(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		role, _ := GetUserRoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	return router
}

func tokenFor(t *testing.T, cfg *config.Config, role lifecycle.ActorRole) string {
	t.Helper()
	user := &models.User{Role: role}
	user.ID = "55555555-5555-5555-5555-555555555555"
	access, _, err := utils.GenerateTokens(user, cfg)
	require.NoError(t, err)
	return access
}

func testCfg() *config.Config {
	return &config.Config{
		JWTSecret:                 "mw_secret",
		JWTRefreshSecret:          "mw_refresh",
		JWTExpirationMinutes:      5,
		JWTRefreshExpirationHours: 1,
	}
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := testRouter(testCfg())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	router := testRouter(testCfg())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	cfg := testCfg()
	router := testRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, lifecycle.RoleDoctor))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(lifecycle.RoleDoctor))
}

func TestRoleAuthMiddleware(t *testing.T) {
	cfg := testCfg()
	router := testRouter(cfg, lifecycle.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, lifecycle.RoleHelpdesk))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, lifecycle.RoleAdmin))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

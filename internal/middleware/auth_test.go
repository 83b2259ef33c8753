package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(jwtService *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuth(jwtService), func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r
}

func TestJWTAuth_MissingToken(t *testing.T) {
	r := setupRouter(jwt.New("test-secret", time.Minute))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	r := setupRouter(jwt.New("test-secret", time.Minute))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	other := jwt.New("other-secret", time.Minute)
	token, err := other.GenerateToken(7)
	require.NoError(t, err)

	r := setupRouter(jwt.New("test-secret", time.Minute))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := jwt.New("test-secret", time.Minute)
	token, err := jwtService.GenerateToken(42)
	require.NoError(t, err)

	r := setupRouter(jwtService)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["user_id"])
}

func TestJWTAuth_TokenQueryParam(t *testing.T) {
	jwtService := jwt.New("test-secret", time.Minute)
	token, err := jwtService.GenerateToken(9)
	require.NoError(t, err)

	r := setupRouter(jwtService)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

type stubRoleStore struct {
	roles map[int64][]domain.Role
}

func (s *stubRoleStore) GetRoles(_ context.Context, userID int64) ([]domain.Role, error) {
	return s.roles[userID], nil
}

func roleRouter(jwtService *jwt.Service, store RoleStore, allowed ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", JWTAuth(jwtService), RequireAnyRole(store, allowed...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireAnyRole_Allowed(t *testing.T) {
	jwtService := jwt.New("test-secret", time.Minute)
	token, err := jwtService.GenerateToken(1)
	require.NoError(t, err)

	store := &stubRoleStore{roles: map[int64][]domain.Role{
		1: {domain.RoleUser, domain.RoleAdmin},
	}}
	r := roleRouter(jwtService, store, domain.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAnyRole_ForbiddenWithDashboardHint(t *testing.T) {
	jwtService := jwt.New("test-secret", time.Minute)
	token, err := jwtService.GenerateToken(2)
	require.NoError(t, err)

	store := &stubRoleStore{roles: map[int64][]domain.Role{
		2: {domain.RoleServiceProvider},
	}}
	r := roleRouter(jwtService, store, domain.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Dashboard string `json:"dashboard"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
	assert.Equal(t, "/provider/dashboard", body.Error.Details.Dashboard)
}

func TestRequireAnyRole_NoRoles(t *testing.T) {
	jwtService := jwt.New("test-secret", time.Minute)
	token, err := jwtService.GenerateToken(3)
	require.NoError(t, err)

	store := &stubRoleStore{roles: map[int64][]domain.Role{}}
	r := roleRouter(jwtService, store, domain.RoleAdmin, domain.RoleServiceProvider)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

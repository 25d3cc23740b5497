package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, role string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": "u-1",
		"email":   "owner@voltstock.local",
		"role":    role,
		"jti":     "jti-1",
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := []gin.HandlerFunc{JWTAuth(testSecret, nil)}
	if len(roles) > 0 {
		chain = append(chain, RequireRole(roles...))
	}
	group := r.Group("/", chain...)
	group.GET("/ping", func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email, "jti": claims.ID})
	})
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingHeader(t *testing.T) {
	w := doGet(protectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	w := doGet(protectedRouter(), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthBadSignature(t *testing.T) {
	token := signToken(t, "other-secret", "staff", time.Hour)
	w := doGet(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, "staff", -time.Minute)
	w := doGet(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthValidTokenExposesClaims(t *testing.T) {
	token := signToken(t, testSecret, "staff", time.Hour)
	w := doGet(protectedRouter(), "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "owner@voltstock.local")
	assert.Contains(t, w.Body.String(), "jti-1")
}

func TestRequireRole(t *testing.T) {
	admin := signToken(t, testSecret, "admin", time.Hour)
	staff := signToken(t, testSecret, "staff", time.Hour)
	r := protectedRouter("admin")

	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+admin).Code)
	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+staff).Code)
}

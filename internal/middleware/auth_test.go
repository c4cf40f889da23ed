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

func signToken(t *testing.T, role, department string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		UserID:     "u-1",
		Username:   "tester",
		Role:       role,
		Department: department,
		CompanyID:  "acme",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func authRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuth(testSecret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"company": claims.CompanyID, "role": claims.Role})
	})
	r.GET("/probe", handlers...)
	return r
}

func doProbe(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingHeader(t *testing.T) {
	w := doProbe(authRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	w := doProbe(authRouter(), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthInvalidSignature(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{})
	signed, _ := token.SignedString([]byte("wrong-secret"))
	w := doProbe(authRouter(), "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthValidTokenExposesClaims(t *testing.T) {
	w := doProbe(authRouter(), "Bearer "+signToken(t, "manager", "sales"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"company":"acme"`)
	assert.Contains(t, w.Body.String(), `"role":"manager"`)
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	w := doProbe(authRouter(RequireRole("admin", "manager")), "Bearer "+signToken(t, "manager", ""))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	w := doProbe(authRouter(RequireRole("admin")), "Bearer "+signToken(t, "staff", ""))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireDepartmentAdminBypasses(t *testing.T) {
	w := doProbe(authRouter(RequireDepartment("hr")), "Bearer "+signToken(t, "admin", "sales"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireDepartmentMatchIsCaseInsensitive(t *testing.T) {
	w := doProbe(authRouter(RequireDepartment("hr")), "Bearer "+signToken(t, "staff", "HR"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireDepartmentRejectsOutsider(t *testing.T) {
	w := doProbe(authRouter(RequireDepartment("hr")), "Bearer "+signToken(t, "staff", "sales"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"billtrack/internal/config"
	"billtrack/internal/handler"
	"billtrack/internal/middleware"
	"billtrack/internal/reconcile"
	"billtrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routerTestSecret = "router-test-secret"

type stubInventoryService struct{}

func (stubInventoryService) Analysis(context.Context, string) (*reconcile.Report, error) {
	return reconcile.Analyze(nil, nil, reconcile.DefaultThresholds, 30*24*time.Hour, time.Now()), nil
}

func (stubInventoryService) UnifiedAnalysis(context.Context, string) (*reconcile.Report, error) {
	return reconcile.Analyze(nil, nil, reconcile.UnifiedThresholds, 30*24*time.Hour, time.Now()), nil
}

func (stubInventoryService) UnifiedSales(context.Context, string) (*service.UnifiedSales, error) {
	return &service.UnifiedSales{}, nil
}

func testEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: "production", JWTSecret: routerTestSecret}
	return New(cfg, Handlers{Inventory: handler.NewInventoryHandler(stubInventoryService{})})
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.JWTClaims{
		UserID:    "u-1",
		Username:  "reader",
		Role:      role,
		CompanyID: "acme",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(routerTestSecret))
	require.NoError(t, err)
	return signed
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAnalysisReadsNeedOnlyAValidSession(t *testing.T) {
	r := testEngine()
	token := tokenFor(t, "staff")

	for _, path := range []string{
		"/v1/inventory/analysis",
		"/v1/inventory/unified-analysis",
		"/v1/inventory/unified-sales",
	} {
		w := get(r, path, token)
		assert.Equal(t, http.StatusOK, w.Code, "staff session must be able to read %s", path)
	}
}

func TestAnalysisReadsRejectMissingToken(t *testing.T) {
	w := get(testEngine(), "/v1/inventory/analysis", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesStayGated(t *testing.T) {
	w := get(testEngine(), "/v1/users", tokenFor(t, "staff"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

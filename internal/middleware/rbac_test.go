package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/acadly/timetable-api/internal/models"
)

func performWithClaims(t *testing.T, claims *models.JWTClaims, paramID string, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	c.Request = req
	if paramID != "" {
		c.Params = gin.Params{{Key: "id", Value: paramID}}
	}
	if claims != nil {
		c.Set(ContextUserKey, claims)
	}

	called := false
	RequireRoles(allowed...)(c)
	if !c.IsAborted() {
		called = true
		c.Status(http.StatusOK)
	}
	if called {
		require.Equal(t, http.StatusOK, w.Code)
	}
	return w
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	w := performWithClaims(t, &models.JWTClaims{UserID: "u1", Role: models.RoleAdmin}, "", models.RoleAdmin, models.RoleScheduler)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesRejectsOtherRole(t *testing.T) {
	w := performWithClaims(t, &models.JWTClaims{UserID: "u1", Role: models.RoleFaculty}, "", models.RoleAdmin)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesSelfMatchesPathParam(t *testing.T) {
	w := performWithClaims(t, &models.JWTClaims{UserID: "fac-1", Role: models.RoleFaculty}, "fac-1", models.RoleAdmin, "SELF")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesSelfRejectsOtherTarget(t *testing.T) {
	w := performWithClaims(t, &models.JWTClaims{UserID: "fac-1", Role: models.RoleFaculty}, "fac-2", models.RoleAdmin, "SELF")
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesMissingClaims(t *testing.T) {
	w := performWithClaims(t, nil, "", models.RoleAdmin)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

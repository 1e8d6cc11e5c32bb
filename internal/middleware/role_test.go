package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tour-booking-api/internal/domain/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoleTestRouter(gate gin.HandlerFunc, current *user.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler("production"))
	router.Use(func(c *gin.Context) {
		if current != nil {
			c.Set(CurrentUserKey, current)
		}
		c.Next()
	})
	router.Use(gate)
	router.DELETE("/guarded", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func doGuarded(router *gin.Engine) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/guarded", nil))
	return recorder
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name     string
		gate     gin.HandlerFunc
		role     user.Role
		expected int
	}{
		{name: "admin passes admin gate", gate: AdminOnly(), role: user.RoleAdmin, expected: http.StatusNoContent},
		{name: "user blocked by admin gate", gate: AdminOnly(), role: user.RoleUser, expected: http.StatusForbidden},
		{name: "guide blocked by admin gate", gate: AdminOnly(), role: user.RoleGuide, expected: http.StatusForbidden},
		{name: "lead-guide passes manager gate", gate: TourManagersOnly(), role: user.RoleLeadGuide, expected: http.StatusNoContent},
		{name: "admin passes manager gate", gate: TourManagersOnly(), role: user.RoleAdmin, expected: http.StatusNoContent},
		{name: "user blocked by manager gate", gate: TourManagersOnly(), role: user.RoleUser, expected: http.StatusForbidden},
		{name: "guide blocked by manager gate", gate: TourManagersOnly(), role: user.RoleGuide, expected: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := &user.User{ID: uuid.New(), Role: tt.role, Active: true}
			recorder := doGuarded(newRoleTestRouter(tt.gate, current))

			assert.Equal(t, tt.expected, recorder.Code)

			if tt.expected == http.StatusForbidden {
				var body map[string]string
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
				assert.Equal(t, "fail", body["status"])
				assert.Equal(t, "you do not have permission to perform this action", body["message"])
			}
		})
	}
}

func TestRequireRoles_NoResolvedIdentity(t *testing.T) {
	recorder := doGuarded(newRoleTestRouter(AdminOnly(), nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

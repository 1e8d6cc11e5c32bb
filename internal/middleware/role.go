package middleware

import (
	"tour-booking-api/internal/domain/user"
	"tour-booking-api/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// RequireRoles restricts a route to the given roles. It must run after
// AuthMiddleware has resolved an identity.
func RequireRoles(roles ...user.Role) gin.HandlerFunc {
	allowed := user.NewRoleSet(roles...)

	return func(c *gin.Context) {
		current, ok := CurrentUser(c)
		if !ok {
			abortWith(c, apperrors.Unauthorized(apperrors.ErrNotLoggedIn.Error()))
			return
		}

		if !allowed.Contains(current.Role) {
			abortWith(c, apperrors.Forbidden(apperrors.ErrForbiddenRole.Error()))
			return
		}

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRoles(user.RoleAdmin)
}

func TourManagersOnly() gin.HandlerFunc {
	return RequireRoles(user.RoleAdmin, user.RoleLeadGuide)
}

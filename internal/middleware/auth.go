package middleware

import (
	"errors"
	"strings"

	"tour-booking-api/internal/domain/user"
	"tour-booking-api/pkg/apperrors"
	"tour-booking-api/pkg/token"

	"github.com/gin-gonic/gin"
)

const CurrentUserKey = "currentUser"

// AuthMiddleware gates protected routes: the bearer token must be present and
// verify, its subject must still exist, and the subject's password must not
// have changed since the token was issued. The resolved user is attached to
// the request context for downstream handlers.
func AuthMiddleware(tokens *token.JWTManager, users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, apperrors.Unauthorized(apperrors.ErrNotLoggedIn.Error()))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abortWith(c, apperrors.Unauthorized(apperrors.ErrNotLoggedIn.Error()))
			return
		}

		// Invalid and expired tokens are told apart by the error
		// normalizer, not here.
		info, err := tokens.Verify(parts[1])
		if err != nil {
			abortWith(c, err)
			return
		}

		resolved, err := users.GetByID(c.Request.Context(), info.Subject)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				abortWith(c, apperrors.Unauthorized(apperrors.ErrUserGone.Error()))
				return
			}
			abortWith(c, err)
			return
		}
		if !resolved.Active {
			abortWith(c, apperrors.Unauthorized(apperrors.ErrUserGone.Error()))
			return
		}

		// Closes the window where a token stolen before a password change
		// would remain usable.
		if resolved.ChangedPasswordAfter(info.IssuedAt) {
			abortWith(c, apperrors.Unauthorized(apperrors.ErrPasswordChanged.Error()))
			return
		}

		c.Set(CurrentUserKey, resolved)
		c.Next()
	}
}

// CurrentUser returns the identity resolved by AuthMiddleware.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	resolved, ok := value.(*user.User)
	return resolved, ok
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

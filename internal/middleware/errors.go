package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"runtime/debug"
	"strings"

	"tour-booking-api/internal/logger"
	"tour-booking-api/pkg/apperrors"
	"tour-booking-api/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

var pgDetailPattern = regexp.MustCompile(`Key \((.+?)\)=\((.+?)\)`)

// ErrorHandler is the single place failures become responses. Handlers and
// middleware push errors into the gin context; after the chain runs, the last
// error is classified and rendered. In development the full error and a stack
// are included; in production only operational errors surface their message,
// everything else is logged and reduced to a generic 500.
func ErrorHandler(environment string) gin.HandlerFunc {
	development := environment != "production"

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, operational := classify(err)

		if development {
			c.JSON(appErr.StatusCode, gin.H{
				"status":  appErr.Status(),
				"error":   err.Error(),
				"message": appErr.Message,
				"stack":   string(debug.Stack()),
			})
			return
		}

		if operational {
			c.JSON(appErr.StatusCode, gin.H{
				"status":  appErr.Status(),
				"message": appErr.Message,
			})
			return
		}

		logger.Error("Unhandled error",
			zap.String("request_id", GetRequestID(c)),
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "something went wrong",
		})
	}
}

// classify maps an internal failure onto the client-facing error taxonomy and
// reports whether it is operational (safe to surface verbatim).
func classify(err error) (*apperrors.AppError, bool) {
	// An explicitly constructed AppError is operational by definition.
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperrors.BadRequest(formatValidationErrors(validationErrs)), true
	}

	if errors.Is(err, token.ErrExpired) {
		return apperrors.Unauthorized(apperrors.ErrTokenExpired.Error()), true
	}
	if errors.Is(err, token.ErrInvalid) {
		return apperrors.Unauthorized(apperrors.ErrTokenInvalid.Error()), true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperrors.Conflict(duplicateKeyMessage(pgErr)), true
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("resource not found"), true
	}

	return apperrors.Internal("something went wrong"), false
}

func formatValidationErrors(errs validator.ValidationErrors) string {
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		messages = append(messages, validationMessage(fe))
	}
	return strings.Join(messages, ", and ")
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "user_role":
		return fmt.Sprintf("%s must be one of: user, guide, lead-guide, admin", field)
	case "difficulty":
		return fmt.Sprintf("%s is either: easy, medium or difficult", field)
	case "tour_name":
		return fmt.Sprintf("%s must contain only letters and spaces", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// duplicateKeyMessage extracts the offending field and value from the
// Postgres detail line, e.g. `Key (name)=(The Forest Hiker) already exists.`
func duplicateKeyMessage(pgErr *pgconn.PgError) string {
	if match := pgDetailPattern.FindStringSubmatch(pgErr.Detail); match != nil {
		return fmt.Sprintf("duplicate %s with value %s, this value already exists", match[1], match[2])
	}
	return "duplicate field value, this value already exists"
}

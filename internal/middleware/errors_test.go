package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tour-booking-api/pkg/apperrors"
	"tour-booking-api/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newErrorTestRouter(environment string, err error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler(environment))
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(err)
		c.Abort()
	})
	return router
}

func doBoom(environment string, err error) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	newErrorTestRouter(environment, err).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/boom", nil))
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func sampleValidationError(t *testing.T) error {
	t.Helper()
	type payload struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}
	err := validator.New().Struct(&payload{Email: "not-an-email", Password: "short"})
	require.Error(t, err)
	return err
}

func TestErrorHandler_OperationalErrorPassesThrough(t *testing.T) {
	recorder := doBoom("production", apperrors.NotFound("no tour found for the id: abc"))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, "no tour found for the id: abc", body["message"])
	assert.NotContains(t, body, "stack")
}

func TestErrorHandler_InternalOperationalMessageSurfaces(t *testing.T) {
	recorder := doBoom("production", apperrors.Internal("there was an error sending the email, please try again later"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "there was an error sending the email, please try again later", body["message"])
}

func TestErrorHandler_UnknownErrorSuppressedInProduction(t *testing.T) {
	recorder := doBoom("production", errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "something went wrong", body["message"])
	assert.NotContains(t, recorder.Body.String(), "connection refused")
}

func TestErrorHandler_DevelopmentIncludesDetail(t *testing.T) {
	recorder := doBoom("development", errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "pq: connection refused", body["error"])
	assert.NotEmpty(t, body["stack"])
}

func TestErrorHandler_TokenErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{name: "expired", err: token.ErrExpired, message: "token has expired, please log in again"},
		{name: "invalid", err: token.ErrInvalid, message: "invalid token, please log in again"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doBoom("production", tt.err)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			body := decodeBody(t, recorder)
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestErrorHandler_DuplicateKey(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:   "23505",
		Detail: "Key (name)=(The Forest Hiker) already exists.",
	}
	recorder := doBoom("production", pgErr)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "duplicate name with value The Forest Hiker, this value already exists", body["message"])
}

func TestErrorHandler_DuplicateKeyWithoutDetail(t *testing.T) {
	recorder := doBoom("production", &pgconn.PgError{Code: "23505"})

	assert.Equal(t, http.StatusConflict, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "duplicate field value, this value already exists", body["message"])
}

func TestErrorHandler_RecordNotFound(t *testing.T) {
	recorder := doBoom("production", gorm.ErrRecordNotFound)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "resource not found", body["message"])
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	recorder := doBoom("production", sampleValidationError(t))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	message, ok := body["message"].(string)
	require.True(t, ok)
	assert.Contains(t, message, "Email must be a valid email address")
	assert.Contains(t, message, "Password must be at least 8 characters")
	assert.Contains(t, message, ", and ")
}

func TestErrorHandler_NoErrorsNoWrite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler("production"))
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "success")
}

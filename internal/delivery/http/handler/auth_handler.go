package handler

import (
	"fmt"
	"net/http"

	"tour-booking-api/internal/middleware"
	"tour-booking-api/internal/usecase/auth"
	"tour-booking-api/pkg/apperrors"
	"tour-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *auth.Service
}

func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/signup", h.Signup)
	router.POST("/login", h.Login)
	router.POST("/forgotPassword", h.ForgotPassword)
	router.PATCH("/resetPassword/:token", h.ResetPassword)
}

func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.PATCH("/updateMyPassword", h.UpdatePassword)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var request auth.SignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		fail(c, apperrors.BadRequest("invalid request body"))
		return
	}

	request.Email = utils.SanitizeEmail(request.Email)
	request.Name = utils.SanitizeString(request.Name)

	result, err := h.service.Signup(c.Request.Context(), &request)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessWithToken(c, http.StatusCreated, result.Token, gin.H{"user": result.User})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var request auth.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		fail(c, apperrors.BadRequest("invalid request body"))
		return
	}

	request.Email = utils.SanitizeEmail(request.Email)

	result, err := h.service.Login(c.Request.Context(), &request)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessWithToken(c, http.StatusOK, result.Token, gin.H{"user": result.User})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var request auth.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		fail(c, apperrors.BadRequest("invalid request body"))
		return
	}

	request.Email = utils.SanitizeEmail(request.Email)

	if err := h.service.ForgotPassword(c.Request.Context(), &request, resetURLBase(c)); err != nil {
		fail(c, err)
		return
	}

	utils.SuccessMessage(c, http.StatusOK, "reset token sent to your email address")
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var request auth.ResetPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		fail(c, apperrors.BadRequest("invalid request body"))
		return
	}

	result, err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), &request)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessWithToken(c, http.StatusOK, result.Token, gin.H{"user": result.User})
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, apperrors.Unauthorized(apperrors.ErrNotLoggedIn.Error()))
		return
	}

	var request auth.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		fail(c, apperrors.BadRequest("invalid request body"))
		return
	}

	result, err := h.service.UpdatePassword(c.Request.Context(), current.ID, &request)
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessWithToken(c, http.StatusOK, result.Token, gin.H{"user": result.User})
}

// resetURLBase reconstructs the public reset endpoint from the request, the
// raw token is appended by the mail flow.
func resetURLBase(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/api/v1/users/resetPassword", scheme, c.Request.Host)
}

// fail forwards a handler-level failure to the centralized error normalizer.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"tour-booking-api/internal/middleware"
	"tour-booking-api/internal/usecase/user"
	"tour-booking-api/pkg/apperrors"
	"tour-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	service *user.Service
}

func NewUserHandler(service *user.Service) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/me", h.GetMe)
	router.PATCH("/me", h.UpdateMe)
	router.DELETE("/me", h.DeleteMe)
}

func (h *UserHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("", h.List)
	router.GET("/:id", h.Get)
	router.PATCH("/:id", h.Update)
	router.DELETE("/:id", h.Delete)
}

func (h *UserHandler) GetMe(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, apperrors.Unauthorized(apperrors.ErrNotLoggedIn.Error()))
		return
	}

	response, err := h.service.Get(c.Request.Context(), current.ID)
	if err != nil {
		fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"user": response})
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, apperrors.Unauthorized(apperrors.ErrNotLoggedIn.Error()))
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		fail(c, apperrors.BadRequest("invalid request body"))
		return
	}
	if containsPasswordFields(body) {
		fail(c, apperrors.BadRequest("this route is not for password updates, please use /updateMyPassword"))
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var request user.UpdateMeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		fail(c, apperrors.BadRequest("invalid request body"))
		return
	}

	if request.Name != nil {
		sanitized := utils.SanitizeString(*request.Name)
		request.Name = &sanitized
	}
	if request.Email != nil {
		sanitized := utils.SanitizeEmail(*request.Email)
		request.Email = &sanitized
	}

	response, err := h.service.UpdateMe(c.Request.Context(), current.ID, &request)
	if err != nil {
		fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"user": response})
}

func (h *UserHandler) DeleteMe(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, apperrors.Unauthorized(apperrors.ErrNotLoggedIn.Error()))
		return
	}

	if err := h.service.DeactivateMe(c.Request.Context(), current.ID); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessList(c, http.StatusOK, len(users), gin.H{"users": users})
}

func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := parseID(c)
	if !ok {
		return
	}

	response, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"user": response})
}

func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := parseID(c)
	if !ok {
		return
	}

	var request user.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		fail(c, apperrors.BadRequest("invalid request body"))
		return
	}

	response, err := h.service.AdminUpdate(c.Request.Context(), userID, &request)
	if err != nil {
		fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"user": response})
}

func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseID reads the :id path parameter; a malformed identifier becomes a
// client-facing cast error.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		fail(c, apperrors.BadRequest(fmt.Sprintf("invalid id: %s", raw)))
		return uuid.Nil, false
	}
	return id, true
}

func containsPasswordFields(body []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return false
	}
	for _, key := range []string{"password", "passwordConfirm", "passwordCurrent"} {
		if _, ok := fields[key]; ok {
			return true
		}
	}
	return false
}

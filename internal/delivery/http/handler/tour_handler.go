package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"tour-booking-api/internal/usecase/tour"
	"tour-booking-api/pkg/apperrors"
	"tour-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type TourHandler struct {
	service *tour.Service
}

func NewTourHandler(service *tour.Service) *TourHandler {
	return &TourHandler{service: service}
}

func (h *TourHandler) RegisterRoutes(router *gin.RouterGroup) {
	tours := router.Group("/tours")
	{
		tours.GET("", h.List)
		tours.GET("/top-5-cheap", h.TopCheap)
		tours.GET("/tour-stats", h.Stats)
		tours.GET("/monthly-plan/:year", h.MonthlyPlan)
		tours.GET("/:id", h.Get)
	}
}

func (h *TourHandler) RegisterManagementRoutes(router *gin.RouterGroup) {
	tours := router.Group("/tours")
	{
		tours.POST("", h.Create)
		tours.PATCH("/:id", h.Update)
		tours.DELETE("/:id", h.Delete)
	}
}

func (h *TourHandler) List(c *gin.Context) {
	tours, err := h.service.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessList(c, http.StatusOK, len(tours), gin.H{"tours": tours})
}

func (h *TourHandler) TopCheap(c *gin.Context) {
	tours, err := h.service.TopCheap(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	utils.SuccessList(c, http.StatusOK, len(tours), gin.H{"tours": tours})
}

func (h *TourHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *TourHandler) MonthlyPlan(c *gin.Context) {
	rawYear := c.Param("year")
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		fail(c, apperrors.BadRequest(fmt.Sprintf("invalid year: %s", rawYear)))
		return
	}

	plan, err := h.service.MonthlyPlan(c.Request.Context(), year)
	if err != nil {
		fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"plan": plan})
}

func (h *TourHandler) Get(c *gin.Context) {
	tourID, ok := parseID(c)
	if !ok {
		return
	}

	response, err := h.service.Get(c.Request.Context(), tourID)
	if err != nil {
		fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"tour": response})
}

func (h *TourHandler) Create(c *gin.Context) {
	var request tour.CreateTourRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		fail(c, apperrors.BadRequest("invalid request body"))
		return
	}

	request.Summary = utils.SanitizeText(request.Summary)
	if request.Description != nil {
		sanitized := utils.SanitizeText(*request.Description)
		request.Description = &sanitized
	}

	response, err := h.service.Create(c.Request.Context(), &request)
	if err != nil {
		fail(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, gin.H{"tour": response})
}

func (h *TourHandler) Update(c *gin.Context) {
	tourID, ok := parseID(c)
	if !ok {
		return
	}

	var request tour.UpdateTourRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		fail(c, apperrors.BadRequest("invalid request body"))
		return
	}

	if request.Summary != nil {
		sanitized := utils.SanitizeText(*request.Summary)
		request.Summary = &sanitized
	}
	if request.Description != nil {
		sanitized := utils.SanitizeText(*request.Description)
		request.Description = &sanitized
	}

	response, err := h.service.Update(c.Request.Context(), tourID, &request)
	if err != nil {
		fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"tour": response})
}

func (h *TourHandler) Delete(c *gin.Context) {
	tourID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tourID); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

package integration

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List registered integrations
// @Tags integrations
// @Security BearerAuth
// @Router /integrations [get]
func (h *Handler) List(c *gin.Context) {
	integrations, err := h.service.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch integrations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"integrations": integrations})
}

// Request godoc
// @Summary Request a new integration
// @Tags integrations
// @Security BearerAuth
// @Router /integrations/requests [post]
func (h *Handler) Request(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	var input RequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.service.RequestIntegration(ac.UserID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": req})
}

// ListRequests godoc
// @Summary List integration requests (admin)
// @Tags integrations
// @Security BearerAuth
// @Router /admin/integrations/requests [get]
func (h *Handler) ListRequests(c *gin.Context) {
	requests, err := h.service.ListRequests(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

type decideInput struct {
	Status string `json:"status" binding:"required"`
}

// DecideRequest godoc
// @Summary Approve or reject an integration request (admin)
// @Tags integrations
// @Security BearerAuth
// @Router /admin/integrations/requests/{id} [put]
func (h *Handler) DecideRequest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var input decideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.DecideRequest(uint(id), input.Status); err != nil {
		switch {
		case errors.Is(err, ErrBadDecision):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update request"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "request updated"})
}

// Usage godoc
// @Summary Daily delivery counters for an integration (admin)
// @Tags integrations
// @Security BearerAuth
// @Router /admin/integrations/{id}/usage [get]
func (h *Handler) Usage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid integration id"})
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	usage, err := h.service.Usage(uint(id), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch usage"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}

// Deliveries godoc
// @Summary Recent webhook deliveries for an integration (admin)
// @Tags integrations
// @Security BearerAuth
// @Router /admin/integrations/{id}/deliveries [get]
func (h *Handler) Deliveries(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid integration id"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	deliveries, err := h.service.Deliveries(uint(id), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch deliveries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deliveries": deliveries})
}

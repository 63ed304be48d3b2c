package showing

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

// Request godoc
// @Summary Request a property showing
// @Tags showings
// @Security BearerAuth
// @Router /showings [post]
func (h *Handler) Request(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	var input RequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sh, err := h.service.Request(c.Request.Context(), ac, input, middleware.GetIPFromContext(c))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrOwnerOnly) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"showing": sh})
}

// UpdateStatus godoc
// @Summary Confirm, complete, cancel or reschedule a showing
// @Tags showings
// @Security BearerAuth
// @Router /showings/{id}/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid showing id"})
		return
	}

	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sh, err := h.service.UpdateStatus(c.Request.Context(), ac, uint(id), input, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotInvolved), errors.Is(err, ErrOwnerOnly):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, ErrBadTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"showing": sh})
}

// Mine godoc
// @Summary List the caller's showings
// @Tags showings
// @Security BearerAuth
// @Router /showings [get]
func (h *Handler) Mine(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	showings, err := h.service.Mine(ac)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch showings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"showings": showings})
}

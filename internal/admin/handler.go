package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/profile"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// VerificationQueue godoc
// @Summary Profiles awaiting verification
// @Tags admin
// @Security BearerAuth
// @Router /admin/verifications [get]
func (h *Handler) VerificationQueue(c *gin.Context) {
	rows, err := h.service.VerificationQueue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch verification queue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": rows})
}

type profileActionInput struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// Verify godoc
// @Summary Verify a basic profile
// @Tags admin
// @Security BearerAuth
// @Router /admin/verifications/verify [post]
func (h *Handler) Verify(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	var input profileActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.service.VerifyProfile(c.Request.Context(), ac.UserID, input.UserID, input.Role, middleware.GetIPFromContext(c))
	if err != nil {
		h.profileActionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile verified"})
}

// Upgrade godoc
// @Summary Upgrade a verified profile to premium
// @Tags admin
// @Security BearerAuth
// @Router /admin/verifications/upgrade [post]
func (h *Handler) Upgrade(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	var input profileActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.service.UpgradeProfile(c.Request.Context(), ac.UserID, input.UserID, input.Role, middleware.GetIPFromContext(c))
	if err != nil {
		h.profileActionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile upgraded"})
}

func (h *Handler) profileActionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnknownRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, profile.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
	}
}

// Users godoc
// @Summary List users, optionally by role
// @Tags admin
// @Security BearerAuth
// @Router /admin/users [get]
func (h *Handler) Users(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, total, err := h.service.Users(c.Query("role"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

type userStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// SetUserStatus godoc
// @Summary Activate or deactivate a user
// @Tags admin
// @Security BearerAuth
// @Router /admin/users/{id}/status [put]
func (h *Handler) SetUserStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var input userStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SetUserStatus(uint(id), input.Status); err != nil {
		if errors.Is(err, ErrBadStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user status updated"})
}

// Stats godoc
// @Summary Platform dashboard counters
// @Tags admin
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

package invite

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/middleware"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

func (h *Handler) Send(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	var req SendInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := h.service.Send(c.Request.Context(), ac, req, middleware.GetIPFromContext(c))
	if err != nil {
		status := http.StatusBadRequest
		if err == ErrNoListing {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, inv)
}

type respondReq struct {
	Status string `json:"status" binding:"required"` // accepted | declined
}

func (h *Handler) Respond(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invite id"})
		return
	}

	var req respondReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := h.service.Respond(c.Request.Context(), ac.UserID, uint(id), req.Status, middleware.GetIPFromContext(c))
	if err != nil {
		status := http.StatusBadRequest
		switch err {
		case ErrNotFound:
			status = http.StatusNotFound
		case ErrNotRecipient:
			status = http.StatusForbidden
		case ErrAlreadyDecided:
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, inv)
}

// Received lists invites addressed to the calling tenant.
func (h *Handler) Received(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	invites, err := h.service.ListForTenant(ac.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load invitations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"invites": invites})
}

// Sent lists invites created by the caller.
func (h *Handler) Sent(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	invites, err := h.service.ListForSender(ac.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load invitations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"invites": invites})
}

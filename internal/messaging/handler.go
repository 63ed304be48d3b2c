package messaging

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"nhooyr.io/websocket"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/config"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/middleware"
)

type Handler struct {
	service Service
	hub     *Hub
	repo    Repository
	cfg     *config.Config
}

func NewHandler(service Service, hub *Hub, repo Repository, cfg *config.Config) *Handler {
	return &Handler{service: service, hub: hub, repo: repo, cfg: cfg}
}

// CreateThread godoc
// @Summary Create a message thread
// @Tags messaging
// @Security BearerAuth
// @Router /messages/threads [post]
func (h *Handler) CreateThread(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	var input CreateThreadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thread, err := h.service.CreateThread(ac.UserID, ac.RoleName, input)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrBadThreadType) || errors.Is(err, ErrNoParticipants) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"thread": thread})
}

// Threads godoc
// @Summary List the caller's threads with unread counts
// @Tags messaging
// @Security BearerAuth
// @Router /messages/threads [get]
func (h *Handler) Threads(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	threads, err := h.service.Threads(ac.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch threads"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"threads": threads})
}

// Messages godoc
// @Summary Fetch a thread's messages, marking them read
// @Tags messaging
// @Security BearerAuth
// @Router /messages/threads/{id} [get]
func (h *Handler) Messages(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid thread id"})
		return
	}

	thread, participants, messages, err := h.service.FetchMessages(ac.UserID, uint(threadID))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, ErrThreadNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch messages"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"thread":       thread,
		"participants": participants,
		"messages":     messages,
	})
}

type sendMessageInput struct {
	Content string `json:"content"`
}

// SendMessage godoc
// @Summary Post a message to a thread
// @Tags messaging
// @Security BearerAuth
// @Router /messages/threads/{id} [post]
func (h *Handler) SendMessage(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid thread id"})
		return
	}

	var input sendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.service.SendMessage(ac.UserID, uint(threadID), input.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// Subscribe upgrades to a websocket and streams a thread's events. Browsers
// cannot set headers on websocket dials, so the token rides in the query
// string instead.
//
// @Summary Subscribe to a thread's realtime events
// @Tags messaging
// @Router /ws/threads/{id} [get]
func (h *Handler) Subscribe(c *gin.Context) {
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid thread id"})
		return
	}

	userID, err := middleware.UserIDFromToken(h.cfg, c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	ok, err := h.repo.IsParticipant(uint(threadID), userID)
	if err != nil || !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a participant of this thread"})
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: h.cfg.CORSOrigins,
	})
	if err != nil {
		log.WithError(err).Warn("websocket accept failed")
		return
	}

	client := h.hub.AddClient(userID, uint(threadID), conn)
	defer h.hub.RemoveClient(client)

	// Block reading until the peer goes away. Clients publish over HTTP,
	// so inbound frames are only control traffic.
	ctx := c.Request.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}

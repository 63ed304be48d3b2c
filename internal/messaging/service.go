package messaging

import (
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/auth"
)

var (
	ErrEmptyMessage   = errors.New("message content cannot be empty")
	ErrNotParticipant = errors.New("you are not a participant of this thread")
	ErrThreadNotFound = errors.New("thread not found")
	ErrBadThreadType  = errors.New("invalid thread type")
	ErrNoParticipants = errors.New("a thread needs at least one participant")
)

// UserDirectory resolves sender info for enriched realtime events.
// Satisfied by the auth service.
type UserDirectory interface {
	GetUserByID(userID uint) (auth.User, error)
}

// ParticipantInput names a member to add at thread creation.
type ParticipantInput struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role"`
}

type CreateThreadInput struct {
	Title             string             `json:"title" binding:"required"`
	ThreadType        string             `json:"thread_type"`
	ListingID         *uint              `json:"listing_id"`
	PropertyShowingID *uint              `json:"property_showing_id"`
	Participants      []ParticipantInput `json:"participants"`
	InitialMessage    string             `json:"initial_message"`
}

// EnrichedMessage is a message with sender details for push delivery.
type EnrichedMessage struct {
	Message
	SenderEmail string `json:"sender_email"`
	SenderRole  string `json:"sender_role"`
}

type Service interface {
	CreateThread(creatorID uint, creatorRole string, in CreateThreadInput) (*MessageThread, error)
	Threads(userID uint) ([]ThreadSummary, error)
	// FetchMessages loads a thread's messages and marks everything not sent
	// by the caller as read in the same call.
	FetchMessages(userID, threadID uint) (*MessageThread, []ThreadParticipant, []Message, error)
	SendMessage(userID, threadID uint, content string) (*Message, error)
}

type service struct {
	repo  Repository
	hub   *Hub
	users UserDirectory
}

func NewService(repo Repository, hub *Hub, users UserDirectory) Service {
	return &service{repo: repo, hub: hub, users: users}
}

func validThreadType(t string) bool {
	switch t {
	case ThreadGeneral, ThreadShowing, ThreadApplication, ThreadTransaction:
		return true
	}
	return false
}

// CreateThread inserts the thread, participants and optional first message
// atomically. The creator is always a participant exactly once.
func (s *service) CreateThread(creatorID uint, creatorRole string, in CreateThreadInput) (*MessageThread, error) {
	threadType := in.ThreadType
	if threadType == "" {
		threadType = ThreadGeneral
	}
	if !validThreadType(threadType) {
		return nil, ErrBadThreadType
	}

	t := &MessageThread{
		Title:             in.Title,
		ThreadType:        threadType,
		ListingID:         in.ListingID,
		PropertyShowingID: in.PropertyShowingID,
		CreatedBy:         creatorID,
	}

	// dedupe participants, auto-including the creator
	seen := map[uint]struct{}{}
	var participants []ThreadParticipant
	add := func(userID uint, role string) {
		if _, ok := seen[userID]; ok {
			return
		}
		seen[userID] = struct{}{}
		participants = append(participants, ThreadParticipant{UserID: userID, Role: role})
	}
	add(creatorID, creatorRole)
	for _, p := range in.Participants {
		add(p.UserID, p.Role)
	}
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	var firstMessage *Message
	if content := strings.TrimSpace(in.InitialMessage); content != "" {
		firstMessage = &Message{SenderID: creatorID, Content: content}
	}

	if err := s.repo.CreateThread(t, participants, firstMessage); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Threads(userID uint) ([]ThreadSummary, error) {
	return s.repo.ThreadsForUser(userID)
}

func (s *service) FetchMessages(userID, threadID uint) (*MessageThread, []ThreadParticipant, []Message, error) {
	ok, err := s.repo.IsParticipant(threadID, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !ok {
		return nil, nil, nil, ErrNotParticipant
	}

	t, err := s.repo.GetThread(threadID)
	if err != nil {
		return nil, nil, nil, ErrThreadNotFound
	}

	parts, err := s.repo.Participants(threadID)
	if err != nil {
		return nil, nil, nil, err
	}

	msgs, err := s.repo.MessagesForThread(threadID)
	if err != nil {
		return nil, nil, nil, err
	}

	// Mark everything from other senders as read. The update only touches
	// read_at IS NULL rows, so a second fetch changes nothing.
	if _, err := s.repo.MarkRead(threadID, userID); err != nil {
		log.WithError(err).WithField("thread_id", threadID).Warn("failed to mark messages read")
	} else {
		now := time.Now()
		for i := range msgs {
			if msgs[i].SenderID != userID && msgs[i].ReadAt == nil {
				msgs[i].ReadAt = &now
			}
		}
	}

	return t, parts, msgs, nil
}

// SendMessage validates content before any write, inserts the row, marks it
// read for currently connected subscribers and pushes the enriched event.
func (s *service) SendMessage(userID, threadID uint, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	ok, err := s.repo.IsParticipant(threadID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotParticipant
	}

	m := &Message{
		ThreadID: threadID,
		SenderID: userID,
		Content:  content,
	}
	if err := s.repo.CreateMessage(m); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.deliver(m)
	}

	return m, nil
}

// deliver marks the new message read for subscribers already watching the
// thread, then fans it out with sender details attached.
func (s *service) deliver(m *Message) {
	for _, uid := range s.hub.SubscribersOf(m.ThreadID) {
		if uid == m.SenderID {
			continue
		}
		if _, err := s.repo.MarkRead(m.ThreadID, uid); err != nil {
			log.WithError(err).Warn("failed to mark delivered message read")
		}
	}

	enriched := EnrichedMessage{Message: *m}
	if s.users != nil {
		if sender, err := s.users.GetUserByID(m.SenderID); err == nil {
			enriched.SenderEmail = sender.Email
			enriched.SenderRole = sender.Role.RoleName
		}
	}

	s.hub.BroadcastToThread(m.ThreadID, m.SenderID, Event{
		Type: "message.created",
		Data: enriched,
	})
}

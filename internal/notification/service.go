package notification

import (
	"encoding/json"
	"errors"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/auth"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/utils"
)

var ErrNotFound = errors.New("notification not found")

// UserLookup resolves a recipient for the SMTP channel. Implemented by the
// auth service.
type UserLookup interface {
	GetUserByID(userID uint) (auth.User, error)
}

type Service interface {
	Notify(userID uint, kind, title, body string, data map[string]interface{}) error
	List(userID uint, unreadOnly bool, limit int) ([]Notification, error)
	UnreadCount(userID uint) (int64, error)
	MarkRead(userID, notificationID uint) error
	MarkAllRead(userID uint) (int64, error)
}

type service struct {
	repo  Repository
	users UserLookup
}

func NewService(repo Repository, users UserLookup) Service {
	return &service{repo: repo, users: users}
}

// Notify writes the in-app row and, when the recipient resolves, sends the
// email copy in the background.
func (s *service) Notify(userID uint, kind, title, body string, data map[string]interface{}) error {
	n := &Notification{
		UserID: userID,
		Kind:   kind,
		Title:  title,
		Body:   body,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err == nil {
			n.Data = datatypes.JSON(raw)
		}
	}
	if err := s.repo.Create(n); err != nil {
		return err
	}

	if s.users != nil {
		if user, err := s.users.GetUserByID(userID); err == nil && user.Email != "" {
			utils.SendEmailAsync(user.Email, title, body)
		} else if err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("could not resolve notification recipient")
		}
	}

	return nil
}

func (s *service) List(userID uint, unreadOnly bool, limit int) ([]Notification, error) {
	return s.repo.ListForUser(userID, unreadOnly, limit)
}

func (s *service) UnreadCount(userID uint) (int64, error) {
	return s.repo.UnreadCount(userID)
}

func (s *service) MarkRead(userID, notificationID uint) error {
	affected, err := s.repo.MarkRead(userID, notificationID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *service) MarkAllRead(userID uint) (int64, error) {
	return s.repo.MarkAllRead(userID)
}

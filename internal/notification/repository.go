package notification

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(n *Notification) error
	ListForUser(userID uint, unreadOnly bool, limit int) ([]Notification, error)
	UnreadCount(userID uint) (int64, error)
	MarkRead(userID, notificationID uint) (int64, error)
	MarkAllRead(userID uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(n *Notification) error {
	return r.db.Create(n).Error
}

func (r *repository) ListForUser(userID uint, unreadOnly bool, limit int) ([]Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	q := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}
	var out []Notification
	err := q.Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *repository) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

func (r *repository) MarkRead(userID, notificationID uint) (int64, error) {
	res := r.db.Model(&Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", notificationID, userID).
		Update("read_at", time.Now())
	return res.RowsAffected, res.Error
}

func (r *repository) MarkAllRead(userID uint) (int64, error) {
	res := r.db.Model(&Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", time.Now())
	return res.RowsAffected, res.Error
}

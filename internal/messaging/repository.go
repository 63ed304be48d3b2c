package messaging

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	// CreateThread inserts the thread, its participants and the optional
	// first message in a single transaction.
	CreateThread(t *MessageThread, participants []ThreadParticipant, firstMessage *Message) error
	GetThread(threadID uint) (*MessageThread, error)
	Participants(threadID uint) ([]ThreadParticipant, error)
	IsParticipant(threadID, userID uint) (bool, error)
	ThreadsForUser(userID uint) ([]ThreadSummary, error)

	CreateMessage(m *Message) error
	MessagesForThread(threadID uint) ([]Message, error)
	// MarkRead stamps read_at on unread messages in the thread that were not
	// sent by readerID. Already-read rows are untouched, so repeated calls
	// are no-ops.
	MarkRead(threadID, readerID uint) (int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) CreateThread(t *MessageThread, participants []ThreadParticipant, firstMessage *Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		for i := range participants {
			participants[i].ThreadID = t.ID
		}
		if err := tx.Create(&participants).Error; err != nil {
			return err
		}
		if firstMessage != nil {
			firstMessage.ThreadID = t.ID
			if err := tx.Create(firstMessage).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) GetThread(threadID uint) (*MessageThread, error) {
	var t MessageThread
	err := r.db.First(&t, threadID).Error
	return &t, err
}

func (r *repository) Participants(threadID uint) ([]ThreadParticipant, error) {
	var parts []ThreadParticipant
	err := r.db.Where("thread_id = ?", threadID).Find(&parts).Error
	return parts, err
}

func (r *repository) IsParticipant(threadID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&ThreadParticipant{}).
		Where("thread_id = ? AND user_id = ?", threadID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ThreadsForUser(userID uint) ([]ThreadSummary, error) {
	var summaries []ThreadSummary
	err := r.db.Model(&MessageThread{}).
		Select(`message_threads.*,
			(SELECT count(*) FROM messages
			 WHERE messages.thread_id = message_threads.id
			   AND messages.sender_id <> ?
			   AND messages.read_at IS NULL) as unread_count`, userID).
		Joins("JOIN thread_participants ON thread_participants.thread_id = message_threads.id").
		Where("thread_participants.user_id = ?", userID).
		Order("message_threads.updated_at DESC").
		Scan(&summaries).Error
	return summaries, err
}

func (r *repository) CreateMessage(m *Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		// bump the thread for inbox ordering
		return tx.Model(&MessageThread{}).
			Where("id = ?", m.ThreadID).
			Update("updated_at", time.Now()).Error
	})
}

func (r *repository) MessagesForThread(threadID uint) ([]Message, error) {
	var msgs []Message
	err := r.db.Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&msgs).Error
	return msgs, err
}

func (r *repository) MarkRead(threadID, readerID uint) (int64, error) {
	res := r.db.Model(&Message{}).
		Where("thread_id = ? AND sender_id <> ? AND read_at IS NULL", threadID, readerID).
		Update("read_at", time.Now())
	return res.RowsAffected, res.Error
}

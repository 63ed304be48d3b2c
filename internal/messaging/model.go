package messaging

import (
	"time"

	"gorm.io/gorm"
)

// Thread types carry the conversation's context.
const (
	ThreadGeneral     = "general"
	ThreadShowing     = "showing"
	ThreadApplication = "application"
	ThreadTransaction = "transaction"
)

// MessageThread is a conversation between two or more users, optionally
// linked to a listing or a showing.
type MessageThread struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Title             string         `gorm:"size:200;not null" json:"title"`
	ThreadType        string         `gorm:"size:20;not null;default:'general'" json:"thread_type"`
	ListingID         *uint          `gorm:"index" json:"listing_id,omitempty"`
	PropertyShowingID *uint          `gorm:"index" json:"property_showing_id,omitempty"`
	CreatedBy         uint           `gorm:"not null" json:"created_by"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MessageThread) TableName() string { return "message_threads" }

// ThreadParticipant is a membership row. A thread always has at least one
// participant; the creator is added automatically when absent.
type ThreadParticipant struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	ThreadID uint      `gorm:"not null;index:idx_thread_user,unique" json:"thread_id"`
	UserID   uint      `gorm:"not null;index:idx_thread_user,unique" json:"user_id"`
	Role     string    `gorm:"size:20" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (ThreadParticipant) TableName() string { return "thread_participants" }

// Message is one entry in a thread. ReadAt stays null until a recipient
// fetches or receives it.
type Message struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ThreadID  uint       `gorm:"not null;index" json:"thread_id"`
	SenderID  uint       `gorm:"not null;index" json:"sender_id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

func (Message) TableName() string { return "messages" }

// ThreadSummary is the inbox listing row.
type ThreadSummary struct {
	MessageThread
	UnreadCount int64 `json:"unread_count"`
}

package invite

import (
	"time"

	"gorm.io/gorm"
)

// Invite statuses
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// Invite links a tenant to a listing. Sent by a landlord/agent to a tenant,
// or by a tenant expressing interest in a listing.
type Invite struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SenderID  uint           `gorm:"not null;index" json:"sender_id"`
	TenantID  uint           `gorm:"not null;index" json:"tenant_id"`
	ListingID uint           `gorm:"not null;index" json:"listing_id"`
	Message   string         `gorm:"size:1000" json:"message"`
	Status    string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Invite) TableName() string { return "invites" }

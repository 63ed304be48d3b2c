package integration

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusActive   = "active"
	StatusDisabled = "disabled"

	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// Integration is a registered outbound endpoint, e.g. the workflow
// automation hook fired on invite creation.
type Integration struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Kind      string         `gorm:"size:30;not null" json:"kind"`
	TargetURL string         `gorm:"size:500;not null" json:"target_url"`
	Status    string         `gorm:"size:20;not null;default:'active'" json:"status"`
	Config    datatypes.JSON `json:"config"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// IntegrationRequest is a user's ask for a new integration, pending admin
// approval.
type IntegrationRequest struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:20;not null;default:'pending'" json:"status"`
	Details     datatypes.JSON `json:"details"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// IntegrationUsage aggregates delivery counters per integration per day.
type IntegrationUsage struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	IntegrationID uint      `gorm:"not null;uniqueIndex:idx_integration_day" json:"integration_id"`
	Day           time.Time `gorm:"type:date;not null;uniqueIndex:idx_integration_day" json:"day"`
	Deliveries    int64     `gorm:"not null;default:0" json:"deliveries"`
	Failures      int64     `gorm:"not null;default:0" json:"failures"`
}

// IntegrationAuditLog records one delivery attempt.
type IntegrationAuditLog struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	IntegrationID uint           `gorm:"not null;index" json:"integration_id"`
	DeliveryID    string         `gorm:"size:36;not null" json:"delivery_id"`
	Event         string         `gorm:"size:50;not null" json:"event"`
	Payload       datatypes.JSON `json:"payload"`
	StatusCode    int            `json:"status_code"`
	Success       bool           `json:"success"`
	Error         string         `gorm:"size:500" json:"error,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (IntegrationAuditLog) TableName() string {
	return "integration_audit_log"
}

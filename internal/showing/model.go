package showing

import "time"

const (
	StatusRequested   = "requested"
	StatusConfirmed   = "confirmed"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"
)

// PropertyShowing is a scheduled (or requested) visit of a tenant to a
// listing. Either side can request; the listing owner confirms.
type PropertyShowing struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ListingID   uint      `gorm:"not null;index" json:"listing_id"`
	TenantID    uint      `gorm:"not null;index" json:"tenant_id"`
	RequestedBy uint      `gorm:"not null" json:"requested_by"`
	ScheduledAt time.Time `gorm:"not null" json:"scheduled_at"`
	Status      string    `gorm:"size:20;not null;default:'requested'" json:"status"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PropertyShowing) TableName() string {
	return "property_showings"
}

// allowedTransitions is the showing lifecycle. Completed and cancelled are
// terminal.
var allowedTransitions = map[string][]string{
	StatusRequested:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed:   {StatusCompleted, StatusCancelled, StatusRescheduled},
	StatusRescheduled: {StatusConfirmed, StatusCancelled},
}

// CanTransition reports whether a showing may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

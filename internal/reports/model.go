package reports

import (
	"errors"
	"time"
)

// Report types served by the exporter.
const (
	ReportTypeListings  = "listings"
	ReportTypeInvites   = "invites"
	ReportTypeAuditLogs = "audit_logs"
)

// Export formats.
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// Date range presets.
const (
	DateRangeWeekly  = "weekly"
	DateRangeMonthly = "monthly"
	DateRangeCustom  = "custom"
)

var ErrBadDateRange = errors.New("invalid date range")

// ListingReportRow is one line of the listings report, joined to its owner.
type ListingReportRow struct {
	ID         uint      `json:"id"`
	OwnerEmail string    `json:"owner_email"`
	OwnerRole  string    `json:"owner_role"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Bedrooms   int       `json:"bedrooms"`
	Price      float64   `json:"price"`
	IsActive   bool      `json:"is_active"`
	IsFeatured bool      `json:"is_featured"`
	CreatedAt  time.Time `json:"created_at"`
}

// InviteReportRow is one line of the invites report.
type InviteReportRow struct {
	ID          uint      `json:"id"`
	SenderEmail string    `json:"sender_email"`
	TenantEmail string    `json:"tenant_email"`
	ListingID   uint      `json:"listing_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuditLogReportRow is one line of the audit trail report.
type AuditLogReportRow struct {
	ID        uint      `json:"id"`
	UserID    *uint     `json:"user_id"`
	UserEmail string    `json:"user_email"`
	Action    string    `json:"action"`
	Status    string    `json:"status"`
	IPAddress string    `json:"ip_address"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportData carries whichever rows the requested report produced.
type ReportData struct {
	Listings  []ListingReportRow
	Invites   []InviteReportRow
	AuditLogs []AuditLogReportRow
}

// ReportRequest is the parsed query for any report endpoint.
type ReportRequest struct {
	Type      string
	Format    string
	DateRange string
	Start     time.Time
	End       time.Time
}

// GetDateRange resolves a preset or custom window into concrete bounds.
func GetDateRange(preset, startStr, endStr string) (time.Time, time.Time, error) {
	now := time.Now()
	switch preset {
	case DateRangeWeekly:
		return now.AddDate(0, 0, -7), now, nil
	case DateRangeMonthly:
		return now.AddDate(0, -1, 0), now, nil
	case DateRangeCustom:
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, ErrBadDateRange
		}
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, ErrBadDateRange
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, ErrBadDateRange
		}
		// include the whole end day
		return start, end.AddDate(0, 0, 1), nil
	default:
		return time.Time{}, time.Time{}, ErrBadDateRange
	}
}

package reports

import (
	"time"

	"gorm.io/gorm"
)

// ReportRepository runs the read-only reporting queries. Rows are joined to
// users for email/role columns so exports stand alone.
type ReportRepository interface {
	ListingRows(start, end time.Time) ([]ListingReportRow, error)
	InviteRows(start, end time.Time) ([]InviteReportRow, error)
	AuditLogRows(start, end time.Time) ([]AuditLogReportRow, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) ListingRows(start, end time.Time) ([]ListingReportRow, error) {
	var rows []ListingReportRow
	err := r.db.Table("listings").
		Select(`listings.id, users.email as owner_email, user_roles.role_name as owner_role,
			listings.city, listings.state, listings.bedrooms, listings.price,
			listings.is_active, listings.is_featured, listings.created_at`).
		Joins("JOIN users ON users.id = listings.owner_id").
		Joins("JOIN user_roles ON user_roles.id = users.role_id").
		Where("listings.created_at >= ? AND listings.created_at < ?", start, end).
		Order("listings.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) InviteRows(start, end time.Time) ([]InviteReportRow, error) {
	var rows []InviteReportRow
	err := r.db.Table("invites").
		Select(`invites.id, senders.email as sender_email, tenants.email as tenant_email,
			invites.listing_id, invites.status, invites.created_at`).
		Joins("JOIN users senders ON senders.id = invites.sender_id").
		Joins("JOIN users tenants ON tenants.id = invites.tenant_id").
		Where("invites.created_at >= ? AND invites.created_at < ?", start, end).
		Order("invites.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) AuditLogRows(start, end time.Time) ([]AuditLogReportRow, error) {
	var rows []AuditLogReportRow
	err := r.db.Table("audit_logs").
		Select(`audit_logs.id, audit_logs.user_id, users.email as user_email,
			audit_logs.action, audit_logs.status, audit_logs.ip_address,
			audit_logs.details, audit_logs.created_at`).
		Joins("LEFT JOIN users ON users.id = audit_logs.user_id").
		Where("audit_logs.created_at >= ? AND audit_logs.created_at < ?", start, end).
		Order("audit_logs.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

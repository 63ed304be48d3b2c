package integration

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	UpsertIntegration(i *Integration) error
	FindByKind(kind string) (*Integration, error)
	ListIntegrations() ([]Integration, error)

	CreateRequest(r *IntegrationRequest) error
	ListRequests(status string) ([]IntegrationRequest, error)
	SetRequestStatus(id uint, status string) (int64, error)

	BumpUsage(integrationID uint, day time.Time, success bool) error
	UsageFor(integrationID uint, since time.Time) ([]IntegrationUsage, error)

	LogDelivery(l *IntegrationAuditLog) error
	RecentDeliveries(integrationID uint, limit int) ([]IntegrationAuditLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UpsertIntegration(i *Integration) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "target_url", "status", "updated_at"}),
	}).Create(i).Error
}

func (r *repository) FindByKind(kind string) (*Integration, error) {
	var i Integration
	err := r.db.Where("kind = ? AND status = ?", kind, StatusActive).First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *repository) ListIntegrations() ([]Integration, error) {
	var out []Integration
	err := r.db.Order("name ASC").Find(&out).Error
	return out, err
}

func (r *repository) CreateRequest(req *IntegrationRequest) error {
	return r.db.Create(req).Error
}

func (r *repository) ListRequests(status string) ([]IntegrationRequest, error) {
	q := r.db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []IntegrationRequest
	err := q.Find(&out).Error
	return out, err
}

func (r *repository) SetRequestStatus(id uint, status string) (int64, error) {
	res := r.db.Model(&IntegrationRequest{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

// BumpUsage increments the per-day counter, inserting the row on first use.
func (r *repository) BumpUsage(integrationID uint, day time.Time, success bool) error {
	col := "deliveries"
	if !success {
		col = "failures"
	}
	day = day.Truncate(24 * time.Hour)

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "integration_id"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{col: gorm.Expr(col + " + 1")}),
	}).Create(&IntegrationUsage{
		IntegrationID: integrationID,
		Day:           day,
		Deliveries:    boolToCount(success),
		Failures:      boolToCount(!success),
	}).Error
}

func boolToCount(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func (r *repository) UsageFor(integrationID uint, since time.Time) ([]IntegrationUsage, error) {
	var out []IntegrationUsage
	err := r.db.Where("integration_id = ? AND day >= ?", integrationID, since).
		Order("day ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) LogDelivery(l *IntegrationAuditLog) error {
	return r.db.Create(l).Error
}

func (r *repository) RecentDeliveries(integrationID uint, limit int) ([]IntegrationAuditLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var out []IntegrationAuditLog
	err := r.db.Where("integration_id = ?", integrationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

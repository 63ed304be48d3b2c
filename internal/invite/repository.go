package invite

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(inv *Invite) error
	GetByID(id uint) (*Invite, error)
	UpdateStatus(id uint, status string) error
	ListForTenant(tenantID uint) ([]Invite, error)
	ListForSender(senderID uint) ([]Invite, error)
	CountByStatus() (map[string]int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(inv *Invite) error {
	return r.db.Create(inv).Error
}

func (r *repository) GetByID(id uint) (*Invite, error) {
	var inv Invite
	err := r.db.First(&inv, id).Error
	return &inv, err
}

func (r *repository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&Invite{}).Where("id = ?", id).Update("status", status).Error
}

func (r *repository) ListForTenant(tenantID uint) ([]Invite, error) {
	var invites []Invite
	err := r.db.Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&invites).Error
	return invites, err
}

func (r *repository) ListForSender(senderID uint) ([]Invite, error) {
	var invites []Invite
	err := r.db.Where("sender_id = ?", senderID).
		Order("created_at DESC").
		Find(&invites).Error
	return invites, err
}

func (r *repository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&Invite{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{}
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

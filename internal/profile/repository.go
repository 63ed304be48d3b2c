package profile

import (
	"gorm.io/gorm"
)

// VerificationRow is a pending-review entry for the admin queue.
type VerificationRow struct {
	UserID    uint    `json:"user_id"`
	Role      string  `json:"role"`
	FullName  *string `json:"full_name,omitempty"`
	Status    string  `json:"status"`
	UpdatedAt string  `json:"updated_at"`
}

type Repository interface {
	EnsureExists(userID uint, role Role) error
	StatusFor(userID uint, role Role) (status string, verified bool, err error)
	SetStatus(userID uint, role Role, status string, verified bool) error

	GetTenant(userID uint) (*TenantProfile, error)
	GetAgent(userID uint) (*AgentProfile, error)
	GetLandlord(userID uint) (*LandlordProfile, error)
	SaveTenant(p *TenantProfile) error
	SaveAgent(p *AgentProfile) error
	SaveLandlord(p *LandlordProfile) error
	SetProfileImage(userID uint, role Role, url string) error

	Directory() ([]DirectoryEntry, error)
	PendingVerification() ([]VerificationRow, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// EnsureExists creates the incomplete profile row that accompanies a new
// user. FirstOrCreate keeps retried signups idempotent.
func (r *repository) EnsureExists(userID uint, role Role) error {
	switch role.Name {
	case RoleTenant.Name:
		var p TenantProfile
		return r.db.Where(TenantProfile{UserID: userID}).
			Attrs(TenantProfile{Status: StatusIncomplete}).
			FirstOrCreate(&p).Error
	case RoleAgent.Name:
		var p AgentProfile
		return r.db.Where(AgentProfile{UserID: userID}).
			Attrs(AgentProfile{Status: StatusIncomplete}).
			FirstOrCreate(&p).Error
	case RoleLandlord.Name:
		var p LandlordProfile
		return r.db.Where(LandlordProfile{UserID: userID}).
			Attrs(LandlordProfile{Status: StatusIncomplete}).
			FirstOrCreate(&p).Error
	}
	return nil
}

func (r *repository) StatusFor(userID uint, role Role) (string, bool, error) {
	var row struct {
		Status     string
		IsVerified bool
	}
	err := r.db.Table(role.Table).
		Select("status, is_verified").
		Where("user_id = ? AND deleted_at IS NULL", userID).
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return StatusIncomplete, false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Status, row.IsVerified, nil
}

func (r *repository) SetStatus(userID uint, role Role, status string, verified bool) error {
	return r.db.Table(role.Table).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"status":      status,
			"is_verified": verified,
		}).Error
}

func (r *repository) GetTenant(userID uint) (*TenantProfile, error) {
	var p TenantProfile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

func (r *repository) GetAgent(userID uint) (*AgentProfile, error) {
	var p AgentProfile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

func (r *repository) GetLandlord(userID uint) (*LandlordProfile, error) {
	var p LandlordProfile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

func (r *repository) SaveTenant(p *TenantProfile) error {
	return r.db.Save(p).Error
}

func (r *repository) SaveAgent(p *AgentProfile) error {
	return r.db.Save(p).Error
}

func (r *repository) SaveLandlord(p *LandlordProfile) error {
	return r.db.Save(p).Error
}

func (r *repository) SetProfileImage(userID uint, role Role, url string) error {
	return r.db.Table(role.Table).
		Where("user_id = ?", userID).
		Update("profile_image_url", url).Error
}

// Directory lists tenant profiles visible to verified agents and landlords.
// Only verified and premium tenants appear.
func (r *repository) Directory() ([]DirectoryEntry, error) {
	var entries []DirectoryEntry
	err := r.db.Table(RoleTenant.Table).
		Select("user_id, status, full_name, household_size, move_in_date, preferred_locations, max_budget, profile_image_url").
		Where("status IN ? AND deleted_at IS NULL", []string{StatusVerified, StatusPremium}).
		Order("updated_at DESC").
		Scan(&entries).Error
	return entries, err
}

// PendingVerification returns basic-status profiles across all three tables
// for the admin review queue.
func (r *repository) PendingVerification() ([]VerificationRow, error) {
	var rows []VerificationRow
	for _, role := range []Role{RoleTenant, RoleAgent, RoleLandlord} {
		var part []VerificationRow
		err := r.db.Table(role.Table).
			Select("user_id, ? as role, full_name, status, updated_at", role.Name).
			Where("status = ? AND deleted_at IS NULL", StatusBasic).
			Scan(&part).Error
		if err != nil {
			return nil, err
		}
		rows = append(rows, part...)
	}
	return rows, nil
}

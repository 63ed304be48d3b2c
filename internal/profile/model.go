package profile

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role is the tagged role variant carrying its profile table. The role name
// to table mapping lives here and nowhere else.
type Role struct {
	Name  string
	Table string
}

var (
	RoleTenant   = Role{Name: "tenant", Table: "tenant_profiles"}
	RoleAgent    = Role{Name: "agent", Table: "realtor_profiles"}
	RoleLandlord = Role{Name: "landlord", Table: "landlord_profiles"}
)

// RoleFor resolves a role name to its variant. Admins carry no profile and
// resolve to false.
func RoleFor(name string) (Role, bool) {
	switch name {
	case RoleTenant.Name:
		return RoleTenant, true
	case RoleAgent.Name:
		return RoleAgent, true
	case RoleLandlord.Name:
		return RoleLandlord, true
	default:
		return Role{}, false
	}
}

// ManagementType values for landlord profiles
const (
	ManagementSelf    = "self"
	ManagementCompany = "company"
	ManagementHybrid  = "hybrid"
)

// TenantProfile is the role-specific extension record for tenants.
type TenantProfile struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	UserID             uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	Status             string         `gorm:"size:20;not null;default:'incomplete';index" json:"status"`
	IsVerified         bool           `gorm:"default:false" json:"is_verified"`
	FullName           *string        `json:"full_name,omitempty"`
	Phone              *string        `json:"phone,omitempty"`
	HouseholdSize      *int           `json:"household_size,omitempty"`
	HouseholdIncome    *float64       `json:"household_income,omitempty"`
	MoveInDate         *time.Time     `json:"move_in_date,omitempty"`
	PreferredLocations datatypes.JSON `json:"preferred_locations,omitempty"`
	MaxBudget          *float64       `json:"max_budget,omitempty"`
	Bio                *string        `json:"bio,omitempty"`
	ProfileImageURL    *string        `json:"profile_image_url,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TenantProfile) TableName() string { return RoleTenant.Table }

// AgentProfile is the role-specific extension record for agents.
// The table keeps the legacy realtor_profiles name.
type AgentProfile struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	Status          string         `gorm:"size:20;not null;default:'incomplete';index" json:"status"`
	IsVerified      bool           `gorm:"default:false" json:"is_verified"`
	FullName        *string        `json:"full_name,omitempty"`
	Phone           *string        `json:"phone,omitempty"`
	LicenseNumber   *string        `json:"license_number,omitempty"`
	Agency          *string        `json:"agency,omitempty"`
	YearsExperience *int           `json:"years_experience,omitempty"`
	ServiceAreas    datatypes.JSON `json:"service_areas,omitempty"`
	Bio             *string        `json:"bio,omitempty"`
	ProfileImageURL *string        `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AgentProfile) TableName() string { return RoleAgent.Table }

// LandlordProfile is the role-specific extension record for landlords.
type LandlordProfile struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	Status          string         `gorm:"size:20;not null;default:'incomplete';index" json:"status"`
	IsVerified      bool           `gorm:"default:false" json:"is_verified"`
	FullName        *string        `json:"full_name,omitempty"`
	Phone           *string        `json:"phone,omitempty"`
	PropertyCount   *int           `json:"property_count,omitempty"`
	ManagementType  *string        `json:"management_type,omitempty"` // self | company | hybrid
	Bio             *string        `json:"bio,omitempty"`
	ProfileImageURL *string        `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LandlordProfile) TableName() string { return RoleLandlord.Table }

// DirectoryEntry is a tenant card shown to verified agents and landlords.
type DirectoryEntry struct {
	UserID             uint           `json:"user_id"`
	Status             string         `json:"status"`
	FullName           *string        `json:"full_name,omitempty"`
	HouseholdSize      *int           `json:"household_size,omitempty"`
	MoveInDate         *time.Time     `json:"move_in_date,omitempty"`
	PreferredLocations datatypes.JSON `json:"preferred_locations,omitempty"`
	MaxBudget          *float64       `json:"max_budget,omitempty"`
	ProfileImageURL    *string        `json:"profile_image_url,omitempty"`
}

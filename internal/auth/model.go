package auth

import (
	"time"

	"gorm.io/gorm"
)

const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// UserRole is the static role catalog seeded at startup.
type UserRole struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	RoleName            string `gorm:"size:30;uniqueIndex;not null" json:"role_name"`
	Description         string `gorm:"size:255" json:"description"`
	CanRegisterPublicly bool   `gorm:"default:true" json:"can_register_publicly"`
}

func (UserRole) TableName() string { return "user_roles" }

// User represents a platform account. The role is fixed at signup; there is
// no role-change flow.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	RoleID       uint           `gorm:"not null" json:"-"`
	Role         UserRole       `gorm:"foreignKey:RoleID" json:"role"`
	Status       string         `gorm:"size:20;default:'active'" json:"status"` // active | inactive
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// PublicRoleResponse is the registration-page role listing.
type PublicRoleResponse struct {
	ID          uint   `json:"id"`
	RoleName    string `json:"role_name"`
	Description string `json:"description"`
}

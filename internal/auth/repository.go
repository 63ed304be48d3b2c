package auth

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)
	FindRoleByName(name string) (*UserRole, error)
	Update(user *User) error
	TouchLastLogin(userID uint) error
	GetPublicRoles() ([]UserRole, error)

	ListUsers(role string, page, limit int) ([]User, int64, error)
	SetUserStatus(userID uint, status string) error
	CountByRole() (map[string]int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

// Find user by email (used in login & password reset)
func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Preload("Role").Where("email = ?", email).First(&u).Error
	return &u, err
}

// Find user by ID (with role preload)
func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.Preload("Role").First(&user, userID).Error
	return user, err
}

func (r *repository) FindRoleByName(name string) (*UserRole, error) {
	var role UserRole
	err := r.db.Where("role_name = ?", name).First(&role).Error
	return &role, err
}

func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

func (r *repository) TouchLastLogin(userID uint) error {
	now := time.Now()
	return r.db.Model(&User{}).Where("id = ?", userID).Update("last_login_at", now).Error
}

func (r *repository) GetPublicRoles() ([]UserRole, error) {
	var roles []UserRole
	err := r.db.Where("can_register_publicly = ?", true).Find(&roles).Error
	return roles, err
}

// ListUsers pages through accounts for the admin user-management view.
func (r *repository) ListUsers(role string, page, limit int) ([]User, int64, error) {
	var users []User
	var total int64

	query := r.db.Model(&User{}).Preload("Role")
	if role != "" {
		query = query.Joins("JOIN user_roles ON users.role_id = user_roles.id").
			Where("user_roles.role_name = ?", role)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	err := query.Order("users.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error
	return users, total, err
}

func (r *repository) SetUserStatus(userID uint, status string) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Update("status", status).Error
}

func (r *repository) CountByRole() (map[string]int64, error) {
	type row struct {
		RoleName string
		Count    int64
	}
	var rows []row
	err := r.db.Table("users").
		Select("user_roles.role_name, count(*) as count").
		Joins("JOIN user_roles ON users.role_id = user_roles.id").
		Where("users.deleted_at IS NULL").
		Group("user_roles.role_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{}
	for _, r := range rows {
		counts[r.RoleName] = r.Count
	}
	return counts, nil
}

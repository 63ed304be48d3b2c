package listing

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(l *Listing) error
	GetByID(id uint) (*Listing, error)
	ListActive(f Filter) ([]Listing, int64, error)
	ListByOwner(ownerID uint) ([]Listing, error)
	Update(l *Listing) error
	SetActive(id uint, active bool) error
	SetFeatured(id uint, featured bool) error
	CountActiveByOwner(ownerID uint) (int64, error)
	CountActive() (int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(l *Listing) error {
	return r.db.Create(l).Error
}

func (r *repository) GetByID(id uint) (*Listing, error) {
	var l Listing
	err := r.db.First(&l, id).Error
	return &l, err
}

func (r *repository) ListActive(f Filter) ([]Listing, int64, error) {
	var listings []Listing
	var total int64

	query := r.db.Model(&Listing{}).Where("is_active = ?", true)
	if f.City != "" {
		query = query.Where("LOWER(city) LIKE LOWER(?)", "%"+f.City+"%")
	}
	if f.MinBedrooms > 0 {
		query = query.Where("bedrooms >= ?", f.MinBedrooms)
	}
	if f.MaxPrice > 0 {
		query = query.Where("price <= ?", f.MaxPrice)
	}
	if f.Featured {
		query = query.Where("is_featured = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	err := query.Order("is_featured DESC, created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&listings).Error
	return listings, total, err
}

func (r *repository) ListByOwner(ownerID uint) ([]Listing, error) {
	var listings []Listing
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (r *repository) Update(l *Listing) error {
	return r.db.Save(l).Error
}

func (r *repository) SetActive(id uint, active bool) error {
	return r.db.Model(&Listing{}).Where("id = ?", id).Update("is_active", active).Error
}

func (r *repository) SetFeatured(id uint, featured bool) error {
	return r.db.Model(&Listing{}).Where("id = ?", id).Update("is_featured", featured).Error
}

func (r *repository) CountActiveByOwner(ownerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&Listing{}).
		Where("owner_id = ? AND is_active = ?", ownerID, true).
		Count(&count).Error
	return count, err
}

func (r *repository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&Listing{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

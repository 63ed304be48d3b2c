package showing

import "gorm.io/gorm"

type Repository interface {
	Create(s *PropertyShowing) error
	GetByID(id uint) (*PropertyShowing, error)
	Update(s *PropertyShowing) error
	ListForTenant(tenantID uint) ([]PropertyShowing, error)
	ListForListings(listingIDs []uint) ([]PropertyShowing, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(s *PropertyShowing) error {
	return r.db.Create(s).Error
}

func (r *repository) GetByID(id uint) (*PropertyShowing, error) {
	var s PropertyShowing
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Update(s *PropertyShowing) error {
	return r.db.Save(s).Error
}

func (r *repository) ListForTenant(tenantID uint) ([]PropertyShowing, error) {
	var out []PropertyShowing
	err := r.db.Where("tenant_id = ?", tenantID).
		Order("scheduled_at ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) ListForListings(listingIDs []uint) ([]PropertyShowing, error) {
	if len(listingIDs) == 0 {
		return nil, nil
	}
	var out []PropertyShowing
	err := r.db.Where("listing_id IN ?", listingIDs).
		Order("scheduled_at ASC").
		Find(&out).Error
	return out, err
}

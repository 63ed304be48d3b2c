package document

import "gorm.io/gorm"

type Repository interface {
	Create(d *ApplicationDocument) error
	GetByID(id uint) (*ApplicationDocument, error)
	ListForUser(userID uint) ([]ApplicationDocument, error)
	Delete(id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(d *ApplicationDocument) error {
	return r.db.Create(d).Error
}

func (r *repository) GetByID(id uint) (*ApplicationDocument, error) {
	var d ApplicationDocument
	if err := r.db.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) ListForUser(userID uint) ([]ApplicationDocument, error) {
	var out []ApplicationDocument
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *repository) Delete(id uint) error {
	return r.db.Delete(&ApplicationDocument{}, id).Error
}

package listing

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/auditlog"
)

var (
	ErrNotFound = errors.New("listing not found")
	ErrNotOwner = errors.New("you do not own this listing")
)

type CreateInput struct {
	Title         string     `json:"title" binding:"required"`
	StreetAddress string     `json:"street_address" binding:"required"`
	City          string     `json:"city" binding:"required"`
	State         string     `json:"state" binding:"required"`
	ZipCode       string     `json:"zip_code"`
	Bedrooms      int        `json:"bedrooms" binding:"required,min=0"`
	Bathrooms     float64    `json:"bathrooms" binding:"required,min=0"`
	Price         float64    `json:"price" binding:"required,min=1"`
	AvailableDate *time.Time `json:"available_date"`
	Description   string     `json:"description"`
}

type UpdateInput struct {
	Title         *string    `json:"title"`
	StreetAddress *string    `json:"street_address"`
	City          *string    `json:"city"`
	State         *string    `json:"state"`
	ZipCode       *string    `json:"zip_code"`
	Bedrooms      *int       `json:"bedrooms"`
	Bathrooms     *float64   `json:"bathrooms"`
	Price         *float64   `json:"price"`
	AvailableDate *time.Time `json:"available_date"`
	Description   *string    `json:"description"`
}

type Service interface {
	Create(ctx context.Context, ownerID uint, in CreateInput, ip string) (*Listing, error)
	Get(id uint) (*Listing, error)
	Browse(f Filter) ([]Listing, int64, error)
	Mine(ownerID uint) ([]Listing, error)
	Update(ownerID, id uint, in UpdateInput) (*Listing, error)
	Deactivate(ownerID, id uint) error
	SetFeatured(id uint, featured bool) error
	HasActiveListing(ownerID uint) (bool, error)
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

func (s *service) Create(ctx context.Context, ownerID uint, in CreateInput, ip string) (*Listing, error) {
	l := &Listing{
		OwnerID:       ownerID,
		Title:         in.Title,
		StreetAddress: in.StreetAddress,
		City:          in.City,
		State:         in.State,
		ZipCode:       in.ZipCode,
		Bedrooms:      in.Bedrooms,
		Bathrooms:     in.Bathrooms,
		Price:         in.Price,
		AvailableDate: in.AvailableDate,
		IsActive:      true,
	}
	if in.Description != "" {
		l.Description = &in.Description
	}

	if err := s.repo.Create(l); err != nil {
		return nil, err
	}

	if s.auditSvc != nil {
		err := s.auditSvc.LogAction(ctx, &ownerID, "LISTING_CREATED", map[string]interface{}{
			"listing_id": l.ID,
			"city":       l.City,
		}, ip, "success")
		if err != nil {
			log.WithError(err).Warn("audit log write failed")
		}
	}

	return l, nil
}

func (s *service) Get(id uint) (*Listing, error) {
	l, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return l, nil
}

func (s *service) Browse(f Filter) ([]Listing, int64, error) {
	return s.repo.ListActive(f)
}

func (s *service) Mine(ownerID uint) ([]Listing, error) {
	return s.repo.ListByOwner(ownerID)
}

func (s *service) Update(ownerID, id uint, in UpdateInput) (*Listing, error) {
	l, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if l.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	if in.Title != nil {
		l.Title = *in.Title
	}
	if in.StreetAddress != nil {
		l.StreetAddress = *in.StreetAddress
	}
	if in.City != nil {
		l.City = *in.City
	}
	if in.State != nil {
		l.State = *in.State
	}
	if in.ZipCode != nil {
		l.ZipCode = *in.ZipCode
	}
	if in.Bedrooms != nil {
		l.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		l.Bathrooms = *in.Bathrooms
	}
	if in.Price != nil {
		l.Price = *in.Price
	}
	if in.AvailableDate != nil {
		l.AvailableDate = in.AvailableDate
	}
	if in.Description != nil {
		l.Description = in.Description
	}

	if err := s.repo.Update(l); err != nil {
		return nil, err
	}
	return l, nil
}

// Deactivate is the soft delete: the row stays, is_active flips off.
func (s *service) Deactivate(ownerID, id uint) error {
	l, err := s.repo.GetByID(id)
	if err != nil {
		return ErrNotFound
	}
	if l.OwnerID != ownerID {
		return ErrNotOwner
	}
	return s.repo.SetActive(id, false)
}

func (s *service) SetFeatured(id uint, featured bool) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return ErrNotFound
	}
	return s.repo.SetFeatured(id, featured)
}

func (s *service) HasActiveListing(ownerID uint) (bool, error) {
	count, err := s.repo.CountActiveByOwner(ownerID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

package listing

import (
	"time"

	"gorm.io/gorm"
)

// Listing is a rental property owned by an agent or landlord.
type Listing struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	OwnerID       uint           `gorm:"not null;index" json:"owner_id"`
	Title         string         `gorm:"size:150;not null" json:"title"`
	StreetAddress string         `gorm:"size:255;not null" json:"street_address"`
	City          string         `gorm:"size:100;not null;index" json:"city"`
	State         string         `gorm:"size:50;not null" json:"state"`
	ZipCode       string         `gorm:"size:20" json:"zip_code"`
	Bedrooms      int            `gorm:"not null" json:"bedrooms"`
	Bathrooms     float64        `gorm:"not null" json:"bathrooms"`
	Price         float64        `gorm:"not null;index" json:"price"`
	AvailableDate *time.Time     `json:"available_date,omitempty"`
	Description   *string        `json:"description,omitempty"`
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`
	IsFeatured    bool           `gorm:"default:false" json:"is_featured"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Listing) TableName() string { return "listings" }

// Filter narrows the public browse query.
type Filter struct {
	City        string
	MinBedrooms int
	MaxPrice    float64
	Featured    bool
	Page        int
	Limit       int
}

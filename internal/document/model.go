package document

import "time"

const (
	TypeIDProof       = "id_proof"
	TypeIncomeProof   = "income_proof"
	TypeReference     = "reference"
	TypeCreditReport  = "credit_report"
	TypeRentalHistory = "rental_history"
	TypeOther         = "other"
)

// ApplicationDocument is the metadata row for a file a tenant uploaded to
// back a rental application. The file itself lives in object storage.
type ApplicationDocument struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	DocumentType string    `gorm:"size:30;not null" json:"document_type"`
	FileName     string    `gorm:"size:255;not null" json:"file_name"`
	FileURL      string    `gorm:"size:500;not null" json:"file_url"`
	ContentType  string    `gorm:"size:100" json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (ApplicationDocument) TableName() string {
	return "application_documents"
}

// ValidType reports whether a document type is one we accept.
func ValidType(t string) bool {
	switch t {
	case TypeIDProof, TypeIncomeProof, TypeReference, TypeCreditReport, TypeRentalHistory, TypeOther:
		return true
	}
	return false
}

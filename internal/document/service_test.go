package document

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ApplicationDocument{}))
	return db
}

// Validation runs before any storage call, so a nil store is safe here.
func TestUploadValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db), nil)

	pdf := []byte("%PDF-1.4 fake")

	tests := []struct {
		name     string
		docType  string
		fileName string
		data     []byte
		wantErr  error
	}{
		{"unknown type", "visa", "doc.pdf", pdf, ErrBadType},
		{"empty file", TypeIDProof, "doc.pdf", nil, ErrEmptyFile},
		{"oversized file", TypeIDProof, "doc.pdf", bytes.Repeat([]byte("a"), maxDocumentSize+1), ErrTooLarge},
		{"bad extension", TypeIDProof, "doc.exe", pdf, ErrBadFileType},
		{"no extension", TypeIDProof, "doc", pdf, ErrBadFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(5, tt.docType, tt.fileName, "application/pdf", tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	var count int64
	require.NoError(t, db.Model(&ApplicationDocument{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUploadWithoutObjectStorage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db), nil)

	_, err := svc.Upload(5, TypeIncomeProof, "paystub.pdf", "application/pdf", []byte("%PDF-1.4 fake"))
	assert.EqualError(t, err, "object storage not configured")

	var count int64
	require.NoError(t, db.Model(&ApplicationDocument{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db), nil)

	d := ApplicationDocument{
		UserID:       5,
		DocumentType: TypeIncomeProof,
		FileName:     "paystub.pdf",
		FileURL:      "https://bucket.example.com/5/paystub.pdf",
		ContentType:  "application/pdf",
		SizeBytes:    1024,
	}
	require.NoError(t, db.Create(&d).Error)

	assert.ErrorIs(t, svc.Delete(6, d.ID), ErrNotOwner)
	assert.ErrorIs(t, svc.Delete(5, 9999), ErrNotFound)
	require.NoError(t, svc.Delete(5, d.ID))

	docs, err := svc.ListMine(5)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestListMineReturnsOnlyOwn(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db), nil)

	rows := []ApplicationDocument{
		{UserID: 5, DocumentType: TypeIDProof, FileName: "id.png", FileURL: "u1", ContentType: "image/png", SizeBytes: 10},
		{UserID: 5, DocumentType: TypeReference, FileName: "ref.pdf", FileURL: "u2", ContentType: "application/pdf", SizeBytes: 10},
		{UserID: 6, DocumentType: TypeIDProof, FileName: "id.pdf", FileURL: "u3", ContentType: "application/pdf", SizeBytes: 10},
	}
	require.NoError(t, db.Create(&rows).Error)

	docs, err := svc.ListMine(5)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

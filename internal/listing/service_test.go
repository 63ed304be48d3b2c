package listing

import (
	"context"
	"testing"
	"time"

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
	require.NoError(t, db.AutoMigrate(&Listing{}))
	return db
}

func createListing(t *testing.T, svc Service, ownerID uint, city string) *Listing {
	t.Helper()
	available := time.Now().AddDate(0, 1, 0)
	l, err := svc.Create(context.Background(), ownerID, CreateInput{
		Title:         "Two-bed near the park",
		StreetAddress: "12 Elm St",
		City:          city,
		State:         "IL",
		Bedrooms:      2,
		Bathrooms:     1,
		Price:         1400,
		AvailableDate: &available,
	}, "127.0.0.1")
	require.NoError(t, err)
	return l
}

func TestCreateActivatesListing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db), nil)

	l := createListing(t, svc, 7, "Springfield")
	assert.True(t, l.IsActive)
	assert.False(t, l.IsFeatured)

	has, err := svc.HasActiveListing(7)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = svc.HasActiveListing(99)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestUpdateOnlyByOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db), nil)

	l := createListing(t, svc, 7, "Springfield")

	newPrice := 1550.0
	updated, err := svc.Update(7, l.ID, UpdateInput{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 1550.0, updated.Price)
	assert.Equal(t, "Springfield", updated.City)

	_, err = svc.Update(8, l.ID, UpdateInput{Price: &newPrice})
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Update(7, 9999, UpdateInput{Price: &newPrice})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeactivateIsSoftAndOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db), nil)

	l := createListing(t, svc, 7, "Springfield")

	assert.ErrorIs(t, svc.Deactivate(8, l.ID), ErrNotOwner)
	require.NoError(t, svc.Deactivate(7, l.ID))

	// Row survives, just inactive.
	got, err := svc.Get(l.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	has, err := svc.HasActiveListing(7)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBrowseFiltersAndSkipsInactive(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db), nil)

	a := createListing(t, svc, 1, "Springfield")
	createListing(t, svc, 2, "Shelbyville")
	inactive := createListing(t, svc, 3, "Springfield")
	require.NoError(t, svc.Deactivate(3, inactive.ID))

	got, total, err := svc.Browse(Filter{City: "Springfield"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}

func TestSetFeatured(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db), nil)

	l := createListing(t, svc, 7, "Springfield")
	require.NoError(t, svc.SetFeatured(l.ID, true))

	got, err := svc.Get(l.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFeatured)

	assert.ErrorIs(t, svc.SetFeatured(9999, true), ErrNotFound)
}

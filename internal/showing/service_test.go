package showing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/listing"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/middleware"
)

func showingFixture(t *testing.T) (*gorm.DB, Service, listing.Service) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&PropertyShowing{}, &listing.Listing{}))

	listingSvc := listing.NewService(listing.NewRepository(db), nil)
	return db, NewService(NewRepository(db), listingSvc, nil), listingSvc
}

func createListing(t *testing.T, svc listing.Service, ownerID uint) *listing.Listing {
	t.Helper()
	available := time.Now().AddDate(0, 1, 0)
	l, err := svc.Create(context.Background(), ownerID, listing.CreateInput{
		Title:         "Two-bed near the park",
		StreetAddress: "12 Elm St",
		City:          "Springfield",
		State:         "IL",
		Bedrooms:      2,
		Bathrooms:     1,
		Price:         1400,
		AvailableDate: &available,
	}, "127.0.0.1")
	require.NoError(t, err)
	return l
}

func tenantCaller(id uint) middleware.AccessContext {
	return middleware.AccessContext{UserID: id, RoleName: middleware.RoleTenant, ProfileStatus: "verified", Verified: true}
}

func ownerCaller(id uint) middleware.AccessContext {
	return middleware.AccessContext{UserID: id, RoleName: middleware.RoleLandlord, ProfileStatus: "verified", Verified: true}
}

func TestRequestByTenant(t *testing.T) {
	_, svc, listingSvc := showingFixture(t)
	l := createListing(t, listingSvc, 7)

	sh, err := svc.Request(context.Background(), tenantCaller(5), RequestInput{
		ListingID:   l.ID,
		ScheduledAt: time.Now().Add(48 * time.Hour),
		Notes:       "after work please",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, StatusRequested, sh.Status)
	assert.EqualValues(t, 5, sh.TenantID)
	assert.EqualValues(t, 5, sh.RequestedBy)
}

func TestRequestRejectsPastDate(t *testing.T) {
	_, svc, listingSvc := showingFixture(t)
	l := createListing(t, listingSvc, 7)

	_, err := svc.Request(context.Background(), tenantCaller(5), RequestInput{
		ListingID:   l.ID,
		ScheduledAt: time.Now().Add(-time.Hour),
	}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestRequestOnBehalfRequiresOwnership(t *testing.T) {
	_, svc, listingSvc := showingFixture(t)
	l := createListing(t, listingSvc, 7)

	// Someone other than the listing owner cannot book for a tenant.
	_, err := svc.Request(context.Background(), ownerCaller(8), RequestInput{
		ListingID:   l.ID,
		TenantID:    5,
		ScheduledAt: time.Now().Add(48 * time.Hour),
	}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrOwnerOnly)

	sh, err := svc.Request(context.Background(), ownerCaller(7), RequestInput{
		ListingID:   l.ID,
		TenantID:    5,
		ScheduledAt: time.Now().Add(48 * time.Hour),
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.EqualValues(t, 5, sh.TenantID)
	assert.EqualValues(t, 7, sh.RequestedBy)
}

func TestUpdateStatusLifecycle(t *testing.T) {
	_, svc, listingSvc := showingFixture(t)
	l := createListing(t, listingSvc, 7)

	sh, err := svc.Request(context.Background(), tenantCaller(5), RequestInput{
		ListingID:   l.ID,
		ScheduledAt: time.Now().Add(48 * time.Hour),
	}, "127.0.0.1")
	require.NoError(t, err)

	// Tenant cannot confirm their own request.
	_, err = svc.UpdateStatus(context.Background(), tenantCaller(5), sh.ID, UpdateInput{Status: StatusConfirmed}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrOwnerOnly)

	// Outsiders get nothing.
	_, err = svc.UpdateStatus(context.Background(), ownerCaller(9), sh.ID, UpdateInput{Status: StatusCancelled}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrNotInvolved)

	confirmed, err := svc.UpdateStatus(context.Background(), ownerCaller(7), sh.ID, UpdateInput{Status: StatusConfirmed}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)

	// Rescheduling needs a future date.
	_, err = svc.UpdateStatus(context.Background(), tenantCaller(5), sh.ID, UpdateInput{Status: StatusRescheduled}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrRescheduleNoDate)

	newTime := time.Now().Add(96 * time.Hour)
	rescheduled, err := svc.UpdateStatus(context.Background(), tenantCaller(5), sh.ID, UpdateInput{Status: StatusRescheduled, ScheduledAt: &newTime}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, StatusRescheduled, rescheduled.Status)
	assert.WithinDuration(t, newTime, rescheduled.ScheduledAt, time.Second)

	// Rescheduled cannot jump straight to completed.
	_, err = svc.UpdateStatus(context.Background(), ownerCaller(7), sh.ID, UpdateInput{Status: StatusCompleted}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrBadTransition)

	_, err = svc.UpdateStatus(context.Background(), ownerCaller(7), sh.ID, UpdateInput{Status: StatusConfirmed}, "127.0.0.1")
	require.NoError(t, err)
	done, err := svc.UpdateStatus(context.Background(), ownerCaller(7), sh.ID, UpdateInput{Status: StatusCompleted}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)

	// Terminal.
	_, err = svc.UpdateStatus(context.Background(), ownerCaller(7), sh.ID, UpdateInput{Status: StatusCancelled}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	_, svc, _ := showingFixture(t)

	_, err := svc.UpdateStatus(context.Background(), tenantCaller(5), 1, UpdateInput{Status: "archived"}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestMineSplitsByRole(t *testing.T) {
	_, svc, listingSvc := showingFixture(t)
	mine := createListing(t, listingSvc, 7)
	other := createListing(t, listingSvc, 8)

	_, err := svc.Request(context.Background(), tenantCaller(5), RequestInput{
		ListingID:   mine.ID,
		ScheduledAt: time.Now().Add(48 * time.Hour),
	}, "127.0.0.1")
	require.NoError(t, err)
	_, err = svc.Request(context.Background(), tenantCaller(6), RequestInput{
		ListingID:   other.ID,
		ScheduledAt: time.Now().Add(48 * time.Hour),
	}, "127.0.0.1")
	require.NoError(t, err)

	tenantView, err := svc.Mine(tenantCaller(5))
	require.NoError(t, err)
	require.Len(t, tenantView, 1)
	assert.Equal(t, mine.ID, tenantView[0].ListingID)

	ownerView, err := svc.Mine(ownerCaller(7))
	require.NoError(t, err)
	require.Len(t, ownerView, 1)
	assert.EqualValues(t, 5, ownerView[0].TenantID)

	emptyView, err := svc.Mine(ownerCaller(9))
	require.NoError(t, err)
	assert.Empty(t, emptyView)
}

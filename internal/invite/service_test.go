package invite

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
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/profile"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/middleware"
)

type webhookSpy struct {
	calls int
}

func (w *webhookSpy) NotifyInviteCreated(tenantID, senderID, listingID uint) {
	w.calls++
}

type inviteFixture struct {
	svc        Service
	db         *gorm.DB
	listingSvc listing.Service
	webhook    *webhookSpy
}

func setupInviteTest(t *testing.T) *inviteFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Invite{}, &listing.Listing{}, &profile.TenantProfile{}))

	listingSvc := listing.NewService(listing.NewRepository(db), nil)
	webhook := &webhookSpy{}
	svc := NewService(NewRepository(db), listingSvc, profile.NewRepository(db), nil, webhook)

	return &inviteFixture{svc: svc, db: db, listingSvc: listingSvc, webhook: webhook}
}

func (f *inviteFixture) createListing(t *testing.T, ownerID uint, active bool) *listing.Listing {
	t.Helper()
	available := time.Now().AddDate(0, 1, 0)
	l := &listing.Listing{
		OwnerID:       ownerID,
		Title:         "Two-bed near the park",
		StreetAddress: "12 Elm St",
		City:          "Springfield",
		State:         "IL",
		Bedrooms:      2,
		Bathrooms:     1,
		Price:         1400,
		AvailableDate: &available,
		IsActive:      active,
	}
	require.NoError(t, f.db.Create(l).Error)
	return l
}

func landlord(userID uint) middleware.AccessContext {
	return middleware.AccessContext{
		UserID:        userID,
		RoleName:      middleware.RoleLandlord,
		ProfileStatus: middleware.StatusVerified,
		Verified:      true,
	}
}

func TestSendAbortsWhenSenderHasNoListing(t *testing.T) {
	f := setupInviteTest(t)

	// a listing exists, but it belongs to someone else
	other := f.createListing(t, 9, true)

	_, err := f.svc.Send(context.Background(), landlord(2), SendInput{
		TenantID:  5,
		ListingID: other.ID,
	}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrNoListing)

	var count int64
	f.db.Model(&Invite{}).Count(&count)
	assert.Equal(t, int64(0), count, "no invite row on abort")
	assert.Equal(t, 0, f.webhook.calls, "no webhook on abort")
}

func TestSendRequiresOwnListing(t *testing.T) {
	f := setupInviteTest(t)

	f.createListing(t, 2, true) // sender's own
	other := f.createListing(t, 9, true)

	_, err := f.svc.Send(context.Background(), landlord(2), SendInput{
		TenantID:  5,
		ListingID: other.ID,
	}, "127.0.0.1")
	require.Error(t, err)
	assert.Equal(t, 0, f.webhook.calls)
}

func TestSendCreatesPendingInviteAndFiresWebhook(t *testing.T) {
	f := setupInviteTest(t)

	l := f.createListing(t, 2, true)
	require.NoError(t, f.db.Create(&profile.TenantProfile{UserID: 5, Status: profile.StatusVerified}).Error)

	inv, err := f.svc.Send(context.Background(), landlord(2), SendInput{
		TenantID:  5,
		ListingID: l.ID,
		Message:   "We think you'd be a great fit.",
	}, "127.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, inv.Status)
	assert.Equal(t, uint(2), inv.SenderID)
	assert.Equal(t, uint(5), inv.TenantID)
	assert.Equal(t, 1, f.webhook.calls)
}

func TestSendUnknownTenantRejected(t *testing.T) {
	f := setupInviteTest(t)

	l := f.createListing(t, 2, true)

	_, err := f.svc.Send(context.Background(), landlord(2), SendInput{
		TenantID:  404,
		ListingID: l.ID,
	}, "127.0.0.1")
	require.Error(t, err)

	var count int64
	f.db.Model(&Invite{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestTenantExpressesInterest(t *testing.T) {
	f := setupInviteTest(t)

	l := f.createListing(t, 2, true)

	tenant := middleware.AccessContext{
		UserID:        5,
		RoleName:      middleware.RoleTenant,
		ProfileStatus: middleware.StatusVerified,
		Verified:      true,
	}
	inv, err := f.svc.Send(context.Background(), tenant, SendInput{ListingID: l.ID}, "127.0.0.1")
	require.NoError(t, err)

	// tenant interest pins the invite to themselves
	assert.Equal(t, uint(5), inv.TenantID)
	assert.Equal(t, uint(5), inv.SenderID)
}

func TestRespondOnlyRecipientOnlyPending(t *testing.T) {
	f := setupInviteTest(t)

	l := f.createListing(t, 2, true)
	require.NoError(t, f.db.Create(&profile.TenantProfile{UserID: 5, Status: profile.StatusVerified}).Error)

	inv, err := f.svc.Send(context.Background(), landlord(2), SendInput{
		TenantID:  5,
		ListingID: l.ID,
	}, "127.0.0.1")
	require.NoError(t, err)

	// sender cannot answer their own invite
	_, err = f.svc.Respond(context.Background(), 2, inv.ID, StatusAccepted, "127.0.0.1")
	assert.ErrorIs(t, err, ErrNotRecipient)

	// bad status string
	_, err = f.svc.Respond(context.Background(), 5, inv.ID, "maybe", "127.0.0.1")
	assert.ErrorIs(t, err, ErrBadStatus)

	// recipient accepts
	answered, err := f.svc.Respond(context.Background(), 5, inv.ID, StatusAccepted, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, answered.Status)

	// second answer is rejected
	_, err = f.svc.Respond(context.Background(), 5, inv.ID, StatusDeclined, "127.0.0.1")
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

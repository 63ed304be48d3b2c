package integration

import (
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
	require.NoError(t, db.AutoMigrate(&Integration{}, &IntegrationRequest{}))
	return db
}

func TestDecideRequest(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))

	req, err := svc.RequestIntegration(5, RequestInput{Name: "listing-sync", Description: "push listings to the CRM"})
	require.NoError(t, err)
	assert.Equal(t, RequestPending, req.Status)

	assert.ErrorIs(t, svc.DecideRequest(req.ID, "maybe"), ErrBadDecision)

	require.NoError(t, svc.DecideRequest(req.ID, RequestApproved))

	var stored IntegrationRequest
	require.NoError(t, db.First(&stored, req.ID).Error)
	assert.Equal(t, RequestApproved, stored.Status)
}

func TestDecideRequestUnknownID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))

	err := svc.DecideRequest(9999, RequestApproved)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

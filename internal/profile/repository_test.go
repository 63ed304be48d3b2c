package profile

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
	require.NoError(t, db.AutoMigrate(&TenantProfile{}, &AgentProfile{}, &LandlordProfile{}))
	return db
}

func TestEnsureExistsIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, repo.EnsureExists(1, RoleTenant))
	require.NoError(t, repo.EnsureExists(1, RoleTenant))

	var count int64
	db.Model(&TenantProfile{}).Where("user_id = ?", 1).Count(&count)
	assert.Equal(t, int64(1), count)

	p, err := repo.GetTenant(1)
	require.NoError(t, err)
	assert.Equal(t, StatusIncomplete, p.Status)
	assert.False(t, p.IsVerified)
}

func TestStatusForMissingProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	status, verified, err := repo.StatusFor(42, RoleAgent)
	require.NoError(t, err)
	assert.Equal(t, StatusIncomplete, status)
	assert.False(t, verified)
}

func TestSetStatusRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, repo.EnsureExists(7, RoleLandlord))
	require.NoError(t, repo.SetStatus(7, RoleLandlord, StatusVerified, true))

	status, verified, err := repo.StatusFor(7, RoleLandlord)
	require.NoError(t, err)
	assert.Equal(t, StatusVerified, status)
	assert.True(t, verified)
}

func TestDirectoryOnlyVerifiedAndPremium(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	name := func(s string) *string { return &s }
	profiles := []TenantProfile{
		{UserID: 1, Status: StatusIncomplete, FullName: name("Incomplete I")},
		{UserID: 2, Status: StatusBasic, FullName: name("Basic B")},
		{UserID: 3, Status: StatusVerified, FullName: name("Verified V")},
		{UserID: 4, Status: StatusPremium, FullName: name("Premium P")},
	}
	for i := range profiles {
		require.NoError(t, db.Create(&profiles[i]).Error)
	}

	entries, err := repo.Directory()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	got := map[uint]bool{}
	for _, e := range entries {
		got[e.UserID] = true
		assert.Contains(t, []string{StatusVerified, StatusPremium}, e.Status)
	}
	assert.True(t, got[3])
	assert.True(t, got[4])
}

func TestPendingVerificationSpansRoles(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, db.Create(&TenantProfile{UserID: 1, Status: StatusBasic}).Error)
	require.NoError(t, db.Create(&AgentProfile{UserID: 2, Status: StatusBasic}).Error)
	require.NoError(t, db.Create(&LandlordProfile{UserID: 3, Status: StatusVerified}).Error)

	rows, err := repo.PendingVerification()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	roles := map[string]uint{}
	for _, r := range rows {
		roles[r.Role] = r.UserID
		assert.Equal(t, StatusBasic, r.Status)
	}
	assert.Equal(t, uint(1), roles[RoleTenant.Name])
	assert.Equal(t, uint(2), roles[RoleAgent.Name])
}

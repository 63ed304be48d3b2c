package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/config"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/profile"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&UserRole{}, &User{},
		&profile.TenantProfile{}, &profile.AgentProfile{}, &profile.LandlordProfile{},
	))

	roles := []UserRole{
		{RoleName: "tenant", Description: "Renter", CanRegisterPublicly: true},
		{RoleName: "agent", Description: "Real estate agent", CanRegisterPublicly: true},
		{RoleName: "landlord", Description: "Property owner", CanRegisterPublicly: true},
		{RoleName: "admin", Description: "Platform admin", CanRegisterPublicly: false},
	}
	require.NoError(t, db.Create(&roles).Error)
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	cfg := &config.Config{
		JWTAccessSecret:    "test-access-secret",
		JWTRefreshSecret:   "test-refresh-secret",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 24,
	}
	return NewService(NewRepository(db), profile.NewRepository(db), cfg)
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		pw      string
		wantErr string
	}{
		{"too short", "a1!", "password must be at least 8 characters"},
		{"no digit", "abcdefg!", "password must contain at least one digit"},
		{"no symbol", "abcdefg1", "password must contain at least one symbol"},
		{"valid", "abcdef1!", ""},
		{"symbol via punctuation", "abcdef1.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePassword(tt.pw)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validatePassword(%q) = %v, want nil", tt.pw, err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("validatePassword(%q) = %v, want %q", tt.pw, err, tt.wantErr)
			}
		})
	}
}

func TestRegisterCreatesUserAndIncompleteProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	err := svc.Register(RegisterInput{
		Email:    "Tenant@Example.com",
		Password: "sup3r-secret",
		Role:     "tenant",
	})
	require.NoError(t, err)

	var user User
	require.NoError(t, db.Preload("Role").Where("email = ?", "tenant@example.com").First(&user).Error)
	assert.Equal(t, "tenant", user.Role.RoleName)
	assert.Equal(t, UserActive, user.Status)
	assert.NotEqual(t, "sup3r-secret", user.PasswordHash)

	var tp profile.TenantProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&tp).Error)
	assert.Equal(t, profile.StatusIncomplete, tp.Status)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	err := svc.Register(RegisterInput{Email: "x@example.com", Password: "sup3r-secret!1", Role: "superuser"})
	assert.EqualError(t, err, "invalid role")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	in := RegisterInput{Email: "dup@example.com", Password: "sup3r-secret!1", Role: "landlord"}
	require.NoError(t, svc.Register(in))
	err := svc.Register(in)
	assert.EqualError(t, err, "email is already registered")
}

func TestRegisterAdminRequiresValidInviteCode(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	// No redis in tests, so every code lookup fails and registration must
	// abort before any user row is written.
	err := svc.Register(RegisterInput{
		Email:     "admin@example.com",
		Password:  "sup3r-secret!1",
		Role:      "admin",
		AdminCode: "not-a-real-code",
	})
	assert.ErrorIs(t, err, ErrInvalidAdminCode)

	var count int64
	require.NoError(t, db.Model(&User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoginReturnsTokensAndProfileStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	require.NoError(t, svc.Register(RegisterInput{
		Email:    "agent@example.com",
		Password: "sup3r-secret!1",
		Role:     "agent",
	}))

	pair, user, status, err := svc.Login(LoginInput{Email: "agent@example.com", Password: "sup3r-secret!1"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "agent", user.Role.RoleName)
	assert.Equal(t, profile.StatusIncomplete, status)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	require.NoError(t, svc.Register(RegisterInput{
		Email:    "tenant@example.com",
		Password: "sup3r-secret!1",
		Role:     "tenant",
	}))

	_, _, _, err := svc.Login(LoginInput{Email: "tenant@example.com", Password: "wrong-pass!1"})
	assert.EqualError(t, err, "invalid credentials")
}

func TestLoginUnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	_, _, _, err := svc.Login(LoginInput{Email: "ghost@example.com", Password: "whatever!1"})
	assert.EqualError(t, err, "invalid credentials")
}

func TestLoginDeactivatedAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	require.NoError(t, svc.Register(RegisterInput{
		Email:    "gone@example.com",
		Password: "sup3r-secret!1",
		Role:     "tenant",
	}))
	require.NoError(t, db.Model(&User{}).Where("email = ?", "gone@example.com").
		Update("status", UserInactive).Error)

	_, _, _, err := svc.Login(LoginInput{Email: "gone@example.com", Password: "sup3r-secret!1"})
	assert.EqualError(t, err, "your account has been deactivated")
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	require.NoError(t, svc.Register(RegisterInput{
		Email:    "tenant@example.com",
		Password: "sup3r-secret!1",
		Role:     "tenant",
	}))
	pair, _, _, err := svc.Login(LoginInput{Email: "tenant@example.com", Password: "sup3r-secret!1"})
	require.NoError(t, err)

	access, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	_, err = svc.Refresh("garbage.token.here")
	assert.EqualError(t, err, "invalid refresh token")
}

func TestLoadAccessContextAdminIsAlwaysVerified(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	var adminRole UserRole
	require.NoError(t, db.Where("role_name = ?", "admin").First(&adminRole).Error)
	admin := User{Email: "root@example.com", PasswordHash: "x", RoleID: adminRole.ID, Status: UserActive}
	require.NoError(t, db.Create(&admin).Error)

	ac, err := svc.LoadAccessContext(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", ac.RoleName)
	assert.Equal(t, profile.StatusVerified, ac.ProfileStatus)
	assert.True(t, ac.Verified)
}

func TestGetPublicRolesExcludesAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	roles, err := svc.GetPublicRoles()
	require.NoError(t, err)
	require.Len(t, roles, 3)
	for _, r := range roles {
		assert.NotEqual(t, "admin", r.RoleName)
	}
}

package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setOf(perms ...Permission) map[Permission]bool {
	set := map[Permission]bool{}
	for _, p := range perms {
		set[p] = true
	}
	return set
}

func TestPermissionTable(t *testing.T) {
	cases := []struct {
		role string
		tier Tier
		want map[Permission]bool
	}{
		{RoleTenant, TierBasic, setOf(PermViewPropertyDetails)},
		{RoleTenant, TierVerified, setOf(PermViewPropertyDetails, PermSendInvitations)},
		{RoleTenant, TierPremium, setOf(PermViewPropertyDetails, PermSendInvitations)},

		{RoleAgent, TierBasic, setOf(PermViewPropertyDetails, PermCreateListing, PermManageProperties)},
		{RoleAgent, TierVerified, setOf(PermViewPropertyDetails, PermCreateListing, PermManageProperties,
			PermViewTenantDirectory, PermSendInvitations, PermContactTenants)},
		{RoleAgent, TierPremium, setOf(PermViewPropertyDetails, PermCreateListing, PermManageProperties,
			PermViewTenantDirectory, PermSendInvitations, PermContactTenants, PermAccessAnalytics)},

		{RoleLandlord, TierBasic, setOf(PermViewPropertyDetails, PermCreateListing, PermManageProperties)},
		{RoleLandlord, TierVerified, setOf(PermViewPropertyDetails, PermCreateListing, PermManageProperties,
			PermViewTenantDirectory, PermSendInvitations, PermContactTenants)},
		{RoleLandlord, TierPremium, setOf(PermViewPropertyDetails, PermCreateListing, PermManageProperties,
			PermViewTenantDirectory, PermSendInvitations, PermContactTenants, PermAccessAnalytics)},

		{RoleAdmin, TierBasic, setOf(PermManageUsers, PermViewAdminDashboard, PermViewTenantDirectory,
			PermViewPropertyDetails, PermAccessAnalytics)},
		{RoleAdmin, TierVerified, setOf(PermManageUsers, PermViewAdminDashboard, PermViewTenantDirectory,
			PermViewPropertyDetails, PermAccessAnalytics)},
		{RoleAdmin, TierPremium, setOf(PermManageUsers, PermViewAdminDashboard, PermViewTenantDirectory,
			PermViewPropertyDetails, PermAccessAnalytics)},
	}

	for _, tc := range cases {
		got := Permissions(tc.role, tc.tier)
		assert.Equal(t, tc.want, got, "permissions(%s, %d)", tc.role, tc.tier)
	}
}

func TestPermissionsUnknownRoleAndTier(t *testing.T) {
	assert.Empty(t, Permissions("ghost", TierVerified))
	assert.Empty(t, Permissions(RoleTenant, TierNone))
}

// Tiers accumulate permissions within a role: whatever is granted at a lower
// tier must stay granted at every higher tier.
func TestTierMonotonicity(t *testing.T) {
	roles := []string{RoleTenant, RoleAgent, RoleLandlord, RoleAdmin}
	tiers := []Tier{TierBasic, TierVerified, TierPremium}

	for _, role := range roles {
		for i := 0; i < len(tiers)-1; i++ {
			lower := Permissions(role, tiers[i])
			higher := Permissions(role, tiers[i+1])
			for p := range lower {
				assert.True(t, higher[p], "%s: %s granted at tier %d but missing at %d", role, p, tiers[i], tiers[i+1])
			}
		}
	}
}

func TestCheckAccessRequiredTier(t *testing.T) {
	verified := TierVerified
	basic := TierBasic

	incompleteTenant := AccessContext{UserID: 1, RoleName: RoleTenant, ProfileStatus: StatusIncomplete}
	assert.False(t, incompleteTenant.CheckAccess(AccessQuery{
		Permission:   PermViewTenantDirectory,
		RequiredTier: &verified,
	}))

	basicLandlord := AccessContext{UserID: 2, RoleName: RoleLandlord, ProfileStatus: StatusBasic}
	assert.False(t, basicLandlord.CheckAccess(AccessQuery{
		Permission:   PermViewTenantDirectory,
		RequiredTier: &verified,
	}), "basic landlord must not reach the directory")

	verifiedLandlord := AccessContext{UserID: 3, RoleName: RoleLandlord, ProfileStatus: StatusVerified, Verified: true}
	require.True(t, verifiedLandlord.CheckAccess(AccessQuery{
		Permission:   PermViewTenantDirectory,
		RequiredTier: &verified,
	}))
	// granted at verified implies granted at the lower bound too
	assert.True(t, verifiedLandlord.CheckAccess(AccessQuery{
		Permission:   PermViewTenantDirectory,
		RequiredTier: &basic,
	}))

	premiumAgent := AccessContext{UserID: 4, RoleName: RoleAgent, ProfileStatus: StatusPremium, Verified: true}
	assert.True(t, premiumAgent.CheckAccess(AccessQuery{
		Permission:   PermViewTenantDirectory,
		RequiredTier: &verified,
	}), "premium satisfies a verified floor")
}

func TestCheckAccessRequireVerification(t *testing.T) {
	// status can say premium while the admin-reviewed flag is still off
	unreviewed := AccessContext{UserID: 5, RoleName: RoleAgent, ProfileStatus: StatusPremium, Verified: false}
	assert.False(t, unreviewed.CheckAccess(AccessQuery{
		Permission:          PermContactTenants,
		RequireVerification: true,
	}))
	assert.True(t, unreviewed.CheckAccess(AccessQuery{Permission: PermContactTenants}))
}

func TestTierFromStatus(t *testing.T) {
	assert.Equal(t, TierNone, TierFromStatus(StatusIncomplete))
	assert.Equal(t, TierBasic, TierFromStatus(StatusBasic))
	assert.Equal(t, TierVerified, TierFromStatus(StatusVerified))
	assert.Equal(t, TierPremium, TierFromStatus(StatusPremium))
	assert.Equal(t, TierNone, TierFromStatus("bogus"))
}

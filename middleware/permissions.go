package middleware

// Role constants to avoid string typos
const (
	RoleTenant   = "tenant"
	RoleAgent    = "agent"
	RoleLandlord = "landlord"
	RoleAdmin    = "admin"
)

// Profile status values, ordered. Incomplete profiles carry no tier.
const (
	StatusIncomplete = "incomplete"
	StatusBasic      = "basic"
	StatusVerified   = "verified"
	StatusPremium    = "premium"
)

// Tier is the derived access level used by the feature gate.
type Tier int

const (
	TierNone Tier = iota - 1 // incomplete profile, below every tier
	TierBasic
	TierVerified
	TierPremium
)

// TierFromStatus maps a profile status to its tier ordinal.
func TierFromStatus(status string) Tier {
	switch status {
	case StatusBasic:
		return TierBasic
	case StatusVerified:
		return TierVerified
	case StatusPremium:
		return TierPremium
	default:
		return TierNone
	}
}

// Permission names gate individual features across dashboards.
type Permission string

const (
	PermViewTenantDirectory Permission = "view_tenant_directory"
	PermCreateListing       Permission = "create_listing"
	PermSendInvitations     Permission = "send_invitations"
	PermAccessAnalytics     Permission = "access_analytics"
	PermManageProperties    Permission = "manage_properties"
	PermContactTenants      Permission = "contact_tenants"
	PermViewPropertyDetails Permission = "view_property_details"
	PermManageUsers         Permission = "manage_users"
	PermViewAdminDashboard  Permission = "view_admin_dashboard"
)

// permissionTable is the single source of truth for role × tier access.
// Every role/tier pair is present; tiers are cumulative within a role.
var permissionTable = map[string]map[Tier][]Permission{
	RoleTenant: {
		TierBasic: {PermViewPropertyDetails},
		TierVerified: {
			PermViewPropertyDetails,
			PermSendInvitations,
		},
		TierPremium: {
			PermViewPropertyDetails,
			PermSendInvitations,
		},
	},
	RoleAgent: {
		TierBasic: {
			PermViewPropertyDetails,
			PermCreateListing,
			PermManageProperties,
		},
		TierVerified: {
			PermViewPropertyDetails,
			PermCreateListing,
			PermManageProperties,
			PermViewTenantDirectory,
			PermSendInvitations,
			PermContactTenants,
		},
		TierPremium: {
			PermViewPropertyDetails,
			PermCreateListing,
			PermManageProperties,
			PermViewTenantDirectory,
			PermSendInvitations,
			PermContactTenants,
			PermAccessAnalytics,
		},
	},
	RoleLandlord: {
		TierBasic: {
			PermViewPropertyDetails,
			PermCreateListing,
			PermManageProperties,
		},
		TierVerified: {
			PermViewPropertyDetails,
			PermCreateListing,
			PermManageProperties,
			PermViewTenantDirectory,
			PermSendInvitations,
			PermContactTenants,
		},
		TierPremium: {
			PermViewPropertyDetails,
			PermCreateListing,
			PermManageProperties,
			PermViewTenantDirectory,
			PermSendInvitations,
			PermContactTenants,
			PermAccessAnalytics,
		},
	},
	RoleAdmin: {
		TierBasic: {
			PermManageUsers,
			PermViewAdminDashboard,
			PermViewTenantDirectory,
			PermViewPropertyDetails,
			PermAccessAnalytics,
		},
		TierVerified: {
			PermManageUsers,
			PermViewAdminDashboard,
			PermViewTenantDirectory,
			PermViewPropertyDetails,
			PermAccessAnalytics,
		},
		TierPremium: {
			PermManageUsers,
			PermViewAdminDashboard,
			PermViewTenantDirectory,
			PermViewPropertyDetails,
			PermAccessAnalytics,
		},
	},
}

// Permissions returns the fixed permission set for a role and tier.
// Unknown roles and TierNone map to the empty set.
func Permissions(role string, tier Tier) map[Permission]bool {
	set := map[Permission]bool{}
	byTier, ok := permissionTable[role]
	if !ok {
		return set
	}
	for _, p := range byTier[tier] {
		set[p] = true
	}
	return set
}

// AccessContext stores the caller's identity and derived access level.
// Built once per request by AuthMiddleware; read-only downstream.
type AccessContext struct {
	UserID        uint
	RoleName      string
	ProfileStatus string
	Verified      bool
}

// Tier returns the caller's tier ordinal.
func (ac *AccessContext) Tier() Tier {
	return TierFromStatus(ac.ProfileStatus)
}

// CanAccess reports whether the permission is in the caller's set.
func (ac *AccessContext) CanAccess(p Permission) bool {
	return Permissions(ac.RoleName, ac.Tier())[p]
}

// AccessQuery describes a feature-gate check.
type AccessQuery struct {
	Permission          Permission
	RequiredTier        *Tier
	RequireVerification bool
}

// CheckAccess is the feature gate: permission membership first, then an
// optional minimum tier, then an optional verification flag.
func (ac *AccessContext) CheckAccess(q AccessQuery) bool {
	if !ac.CanAccess(q.Permission) {
		return false
	}
	if q.RequiredTier != nil && ac.Tier() < *q.RequiredTier {
		return false
	}
	if q.RequireVerification && !ac.Verified {
		return false
	}
	return true
}

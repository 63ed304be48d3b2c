package admin

import (
	"context"
	"errors"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/auth"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/invite"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/listing"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/profile"
)

var (
	ErrUnknownRole = errors.New("unknown role")
	ErrBadStatus   = errors.New("status must be active or inactive")
)

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	UsersByRole     map[string]int64 `json:"users_by_role"`
	InvitesByStatus map[string]int64 `json:"invites_by_status"`
	PendingReviews  int              `json:"pending_reviews"`
	ActiveListings  int64            `json:"active_listings"`
}

type Service interface {
	VerificationQueue() ([]profile.VerificationRow, error)
	VerifyProfile(ctx context.Context, adminID, userID uint, roleName, ip string) error
	UpgradeProfile(ctx context.Context, adminID, userID uint, roleName, ip string) error
	Users(role string, page, limit int) ([]auth.User, int64, error)
	SetUserStatus(userID uint, status string) error
	Stats() (*PlatformStats, error)
}

type service struct {
	profileSvc  profile.Service
	userRepo    auth.Repository
	inviteRepo  invite.Repository
	listingRepo listing.Repository
}

func NewService(profileSvc profile.Service, userRepo auth.Repository, inviteRepo invite.Repository, listingRepo listing.Repository) Service {
	return &service{
		profileSvc:  profileSvc,
		userRepo:    userRepo,
		inviteRepo:  inviteRepo,
		listingRepo: listingRepo,
	}
}

func (s *service) VerificationQueue() ([]profile.VerificationRow, error) {
	return s.profileSvc.PendingVerification()
}

func (s *service) VerifyProfile(ctx context.Context, adminID, userID uint, roleName, ip string) error {
	role, ok := profile.RoleFor(roleName)
	if !ok {
		return ErrUnknownRole
	}
	return s.profileSvc.Verify(ctx, adminID, userID, role, ip)
}

func (s *service) UpgradeProfile(ctx context.Context, adminID, userID uint, roleName, ip string) error {
	role, ok := profile.RoleFor(roleName)
	if !ok {
		return ErrUnknownRole
	}
	return s.profileSvc.UpgradeToPremium(ctx, adminID, userID, role, ip)
}

func (s *service) Users(role string, page, limit int) ([]auth.User, int64, error) {
	return s.userRepo.ListUsers(role, page, limit)
}

func (s *service) SetUserStatus(userID uint, status string) error {
	if status != auth.UserActive && status != auth.UserInactive {
		return ErrBadStatus
	}
	return s.userRepo.SetUserStatus(userID, status)
}

func (s *service) Stats() (*PlatformStats, error) {
	byRole, err := s.userRepo.CountByRole()
	if err != nil {
		return nil, err
	}
	byStatus, err := s.inviteRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	pending, err := s.profileSvc.PendingVerification()
	if err != nil {
		return nil, err
	}
	active, err := s.listingRepo.CountActive()
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		UsersByRole:     byRole,
		InvitesByStatus: byStatus,
		PendingReviews:  len(pending),
		ActiveListings:  active,
	}, nil
}

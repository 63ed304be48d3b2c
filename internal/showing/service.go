package showing

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/auditlog"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/listing"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/middleware"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/utils"
)

var (
	ErrNotFound         = errors.New("showing not found")
	ErrNotInvolved      = errors.New("you are not part of this showing")
	ErrBadTransition    = errors.New("this status change is not allowed")
	ErrPastDate         = errors.New("showing must be scheduled in the future")
	ErrOwnerOnly        = errors.New("only the listing owner can do that")
	ErrRescheduleNoDate = errors.New("rescheduling requires a new date")
	ErrUnknownStatus    = errors.New("unknown showing status")
)

var validStatusSet = map[string]struct{}{
	StatusConfirmed:   {},
	StatusCompleted:   {},
	StatusCancelled:   {},
	StatusRescheduled: {},
}

type RequestInput struct {
	ListingID   uint      `json:"listing_id" binding:"required"`
	TenantID    uint      `json:"tenant_id"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Notes       string    `json:"notes"`
}

type UpdateInput struct {
	Status      string     `json:"status" binding:"required"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

type Service interface {
	Request(ctx context.Context, caller middleware.AccessContext, in RequestInput, ip string) (*PropertyShowing, error)
	UpdateStatus(ctx context.Context, caller middleware.AccessContext, showingID uint, in UpdateInput, ip string) (*PropertyShowing, error)
	Mine(caller middleware.AccessContext) ([]PropertyShowing, error)
}

type service struct {
	repo       Repository
	listingSvc listing.Service
	auditSvc   auditlog.Service
}

func NewService(repo Repository, listingSvc listing.Service, auditSvc auditlog.Service) Service {
	return &service{repo: repo, listingSvc: listingSvc, auditSvc: auditSvc}
}

// Request creates a showing in requested state. A tenant requests for
// themselves; the listing owner can request on behalf of a tenant.
func (s *service) Request(ctx context.Context, caller middleware.AccessContext, in RequestInput, ip string) (*PropertyShowing, error) {
	if !in.ScheduledAt.After(time.Now()) {
		return nil, ErrPastDate
	}

	l, err := s.listingSvc.Get(in.ListingID)
	if err != nil {
		return nil, errors.New("listing not found")
	}

	tenantID := in.TenantID
	if caller.RoleName == middleware.RoleTenant {
		tenantID = caller.UserID
	} else {
		if l.OwnerID != caller.UserID {
			return nil, ErrOwnerOnly
		}
		if tenantID == 0 {
			return nil, errors.New("tenant_id is required")
		}
	}

	sh := &PropertyShowing{
		ListingID:   in.ListingID,
		TenantID:    tenantID,
		RequestedBy: caller.UserID,
		ScheduledAt: in.ScheduledAt,
		Status:      StatusRequested,
		Notes:       in.Notes,
	}
	if err := s.repo.Create(sh); err != nil {
		return nil, err
	}

	s.publish(sh, l.OwnerID)
	s.audit(ctx, caller.UserID, "SHOWING_REQUESTED", map[string]interface{}{
		"showing_id": sh.ID,
		"listing_id": sh.ListingID,
	}, ip)

	return sh, nil
}

// UpdateStatus moves a showing along its lifecycle. Confirm and complete are
// owner actions; either side may cancel or reschedule.
func (s *service) UpdateStatus(ctx context.Context, caller middleware.AccessContext, showingID uint, in UpdateInput, ip string) (*PropertyShowing, error) {
	if _, ok := validStatusSet[in.Status]; !ok {
		return nil, ErrUnknownStatus
	}

	sh, err := s.repo.GetByID(showingID)
	if err != nil {
		return nil, ErrNotFound
	}

	l, err := s.listingSvc.Get(sh.ListingID)
	if err != nil {
		return nil, errors.New("listing not found")
	}
	isOwner := caller.UserID == l.OwnerID
	isTenant := caller.UserID == sh.TenantID
	if !isOwner && !isTenant {
		return nil, ErrNotInvolved
	}

	if (in.Status == StatusConfirmed || in.Status == StatusCompleted) && !isOwner {
		return nil, ErrOwnerOnly
	}

	if !CanTransition(sh.Status, in.Status) {
		return nil, ErrBadTransition
	}

	if in.Status == StatusRescheduled {
		if in.ScheduledAt == nil {
			return nil, ErrRescheduleNoDate
		}
		if !in.ScheduledAt.After(time.Now()) {
			return nil, ErrPastDate
		}
		sh.ScheduledAt = *in.ScheduledAt
	}

	sh.Status = in.Status
	if err := s.repo.Update(sh); err != nil {
		return nil, err
	}

	s.publish(sh, l.OwnerID)
	s.audit(ctx, caller.UserID, "SHOWING_UPDATED", map[string]interface{}{
		"showing_id": sh.ID,
		"status":     sh.Status,
	}, ip)

	return sh, nil
}

// Mine lists the caller's showings: their own visits for tenants, visits on
// their listings for agents and landlords.
func (s *service) Mine(caller middleware.AccessContext) ([]PropertyShowing, error) {
	if caller.RoleName == middleware.RoleTenant {
		return s.repo.ListForTenant(caller.UserID)
	}

	listings, err := s.listingSvc.Mine(caller.UserID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.ID)
	}
	return s.repo.ListForListings(ids)
}

// publish notifies the counterparty of a state change.
func (s *service) publish(sh *PropertyShowing, ownerID uint) {
	recipient := sh.TenantID
	if sh.RequestedBy == sh.TenantID {
		recipient = ownerID
	}
	utils.PublishEvent(utils.PlatformEvent{
		Type:   utils.EventShowingUpdated,
		UserID: recipient,
		Payload: map[string]interface{}{
			"showing_id":   sh.ID,
			"listing_id":   sh.ListingID,
			"status":       sh.Status,
			"scheduled_at": sh.ScheduledAt,
		},
	})
}

func (s *service) audit(ctx context.Context, userID uint, action string, details map[string]interface{}, ip string) {
	if s.auditSvc == nil {
		return
	}
	if err := s.auditSvc.LogAction(ctx, &userID, action, details, ip, "success"); err != nil {
		log.WithError(err).Warn("audit log write failed")
	}
}

package invite

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/auditlog"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/listing"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/profile"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/middleware"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/utils"
)

var (
	ErrNoListing      = errors.New("You need to add a listing first")
	ErrNotFound       = errors.New("invite not found")
	ErrNotRecipient   = errors.New("only the invite recipient can respond")
	ErrAlreadyDecided = errors.New("invite has already been answered")
	ErrBadStatus      = errors.New("status must be accepted or declined")
)

// WebhookNotifier posts invite events to the external workflow-automation
// endpoint, fire-and-forget. Implemented by the integration dispatcher.
type WebhookNotifier interface {
	NotifyInviteCreated(tenantID, senderID, listingID uint)
}

type SendInput struct {
	TenantID  uint   `json:"tenant_id"`
	ListingID uint   `json:"listing_id" binding:"required"`
	Message   string `json:"message"`
}

type Service interface {
	Send(ctx context.Context, sender middleware.AccessContext, in SendInput, ip string) (*Invite, error)
	Respond(ctx context.Context, callerID, inviteID uint, status string, ip string) (*Invite, error)
	ListForTenant(tenantID uint) ([]Invite, error)
	ListForSender(senderID uint) ([]Invite, error)
}

type service struct {
	repo        Repository
	listingSvc  listing.Service
	profileRepo profile.Repository
	auditSvc    auditlog.Service
	webhook     WebhookNotifier
}

func NewService(repo Repository, listingSvc listing.Service, profileRepo profile.Repository, auditSvc auditlog.Service, webhook WebhookNotifier) Service {
	return &service{
		repo:        repo,
		listingSvc:  listingSvc,
		profileRepo: profileRepo,
		auditSvc:    auditSvc,
		webhook:     webhook,
	}
}

// Send creates a pending invite. Landlords and agents must hold at least one
// active listing before inviting anyone; the webhook fires only after the
// row is committed.
func (s *service) Send(ctx context.Context, sender middleware.AccessContext, in SendInput, ip string) (*Invite, error) {
	l, err := s.listingSvc.Get(in.ListingID)
	if err != nil {
		return nil, errors.New("listing not found")
	}

	tenantID := in.TenantID
	if sender.RoleName == middleware.RoleTenant {
		// tenant expressing interest in a listing
		tenantID = sender.UserID
	} else {
		has, err := s.listingSvc.HasActiveListing(sender.UserID)
		if err != nil {
			return nil, err
		}
		if !has {
			return nil, ErrNoListing
		}
		if l.OwnerID != sender.UserID {
			return nil, errors.New("you can only invite tenants to your own listings")
		}
		if tenantID == 0 {
			return nil, errors.New("tenant_id is required")
		}
		// invite must reference an existing tenant profile
		if _, err := s.profileRepo.GetTenant(tenantID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("tenant not found")
			}
			return nil, err
		}
	}

	inv := &Invite{
		SenderID:  sender.UserID,
		TenantID:  tenantID,
		ListingID: in.ListingID,
		Message:   in.Message,
		Status:    StatusPending,
	}

	if err := s.repo.Create(inv); err != nil {
		return nil, err
	}

	if s.webhook != nil {
		s.webhook.NotifyInviteCreated(inv.TenantID, inv.SenderID, inv.ListingID)
	}

	utils.PublishEvent(utils.PlatformEvent{
		Type:   utils.EventInviteSent,
		UserID: s.recipientOf(inv, l.OwnerID),
		Payload: map[string]interface{}{
			"invite_id":  inv.ID,
			"sender_id":  inv.SenderID,
			"listing_id": inv.ListingID,
		},
	})

	s.audit(ctx, inv.SenderID, "INVITE_SENT", map[string]interface{}{
		"invite_id":  inv.ID,
		"tenant_id":  inv.TenantID,
		"listing_id": inv.ListingID,
	}, ip)

	return inv, nil
}

// recipientOf is the user expected to answer: the tenant for agent/landlord
// invites, the listing owner for tenant interest.
func (s *service) recipientOf(inv *Invite, listingOwnerID uint) uint {
	if inv.SenderID == inv.TenantID {
		return listingOwnerID
	}
	return inv.TenantID
}

// Respond applies the recipient's decision. Only pending invites can be
// answered, and only by their recipient.
func (s *service) Respond(ctx context.Context, callerID, inviteID uint, status string, ip string) (*Invite, error) {
	if status != StatusAccepted && status != StatusDeclined {
		return nil, ErrBadStatus
	}

	inv, err := s.repo.GetByID(inviteID)
	if err != nil {
		return nil, ErrNotFound
	}
	if inv.Status != StatusPending {
		return nil, ErrAlreadyDecided
	}

	l, err := s.listingSvc.Get(inv.ListingID)
	if err != nil {
		return nil, errors.New("listing not found")
	}
	if callerID != s.recipientOf(inv, l.OwnerID) {
		return nil, ErrNotRecipient
	}

	if err := s.repo.UpdateStatus(inviteID, status); err != nil {
		return nil, err
	}
	inv.Status = status

	utils.PublishEvent(utils.PlatformEvent{
		Type:   utils.EventInviteAnswered,
		UserID: inv.SenderID,
		Payload: map[string]interface{}{
			"invite_id": inv.ID,
			"status":    status,
		},
	})

	s.audit(ctx, callerID, "INVITE_ANSWERED", map[string]interface{}{
		"invite_id": inv.ID,
		"status":    status,
	}, ip)

	return inv, nil
}

func (s *service) ListForTenant(tenantID uint) ([]Invite, error) {
	return s.repo.ListForTenant(tenantID)
}

func (s *service) ListForSender(senderID uint) ([]Invite, error) {
	return s.repo.ListForSender(senderID)
}

func (s *service) audit(ctx context.Context, userID uint, action string, details map[string]interface{}, ip string) {
	if s.auditSvc == nil {
		return
	}
	if err := s.auditSvc.LogAction(ctx, &userID, action, details, ip, "success"); err != nil {
		log.WithError(err).Warn("audit log write failed")
	}
}

package integration

import (
	"errors"
	"time"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/config"
)

var (
	ErrRequestNotFound = errors.New("integration request not found")
	ErrBadDecision     = errors.New("status must be approved or rejected")
)

type RequestInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type Service interface {
	List() ([]Integration, error)
	RequestIntegration(userID uint, in RequestInput) (*IntegrationRequest, error)
	ListRequests(status string) ([]IntegrationRequest, error)
	DecideRequest(id uint, status string) error
	Usage(integrationID uint, days int) ([]IntegrationUsage, error)
	Deliveries(integrationID uint, limit int) ([]IntegrationAuditLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// EnsureInviteWebhook registers (or updates) the invite webhook integration
// from config at boot. A blank URL disables it.
func EnsureInviteWebhook(repo Repository, cfg *config.Config) error {
	status := StatusActive
	if cfg.InviteWebhookURL == "" {
		status = StatusDisabled
	}
	return repo.UpsertIntegration(&Integration{
		Name:      "invite-workflow",
		Kind:      KindInviteWebhook,
		TargetURL: cfg.InviteWebhookURL,
		Status:    status,
	})
}

func (s *service) List() ([]Integration, error) {
	return s.repo.ListIntegrations()
}

func (s *service) RequestIntegration(userID uint, in RequestInput) (*IntegrationRequest, error) {
	req := &IntegrationRequest{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Status:      RequestPending,
	}
	if err := s.repo.CreateRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListRequests(status string) ([]IntegrationRequest, error) {
	return s.repo.ListRequests(status)
}

func (s *service) DecideRequest(id uint, status string) error {
	if status != RequestApproved && status != RequestRejected {
		return ErrBadDecision
	}
	affected, err := s.repo.SetRequestStatus(id, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (s *service) Usage(integrationID uint, days int) ([]IntegrationUsage, error) {
	if days <= 0 || days > 90 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days).Truncate(24 * time.Hour)
	return s.repo.UsageFor(integrationID, since)
}

func (s *service) Deliveries(integrationID uint, limit int) ([]IntegrationAuditLog, error) {
	return s.repo.RecentDeliveries(integrationID, limit)
}

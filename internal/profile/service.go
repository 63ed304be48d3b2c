package profile

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/auditlog"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/utils"
)

const directoryCacheKey = "directory:tenants"
const directoryCacheTTL = 60 * time.Second

// TenantOnboardingInput carries the tenant onboarding form. Completing it
// writes every field plus the basic status in one call.
type TenantOnboardingInput struct {
	FullName           string     `json:"full_name" binding:"required"`
	Phone              string     `json:"phone"`
	HouseholdSize      int        `json:"household_size" binding:"required,min=1"`
	HouseholdIncome    float64    `json:"household_income" binding:"required,min=0"`
	MoveInDate         *time.Time `json:"move_in_date" binding:"required"`
	PreferredLocations []string   `json:"preferred_locations" binding:"required,min=1"`
	MaxBudget          *float64   `json:"max_budget"`
	Bio                string     `json:"bio"`
}

type AgentOnboardingInput struct {
	FullName        string   `json:"full_name" binding:"required"`
	Phone           string   `json:"phone"`
	LicenseNumber   string   `json:"license_number" binding:"required"`
	Agency          string   `json:"agency" binding:"required"`
	YearsExperience *int     `json:"years_experience"`
	ServiceAreas    []string `json:"service_areas"`
	Bio             string   `json:"bio"`
}

type LandlordOnboardingInput struct {
	FullName       string `json:"full_name" binding:"required"`
	Phone          string `json:"phone"`
	PropertyCount  int    `json:"property_count" binding:"required,min=1"`
	ManagementType string `json:"management_type" binding:"required"`
	Bio            string `json:"bio"`
}

type Service interface {
	GetTenant(userID uint) (*TenantProfile, error)
	GetAgent(userID uint) (*AgentProfile, error)
	GetLandlord(userID uint) (*LandlordProfile, error)

	OnboardTenant(ctx context.Context, userID uint, in TenantOnboardingInput, ip string) (*TenantProfile, error)
	OnboardAgent(ctx context.Context, userID uint, in AgentOnboardingInput, ip string) (*AgentProfile, error)
	OnboardLandlord(ctx context.Context, userID uint, in LandlordOnboardingInput, ip string) (*LandlordProfile, error)

	// Verify moves a basic profile to verified; admin-only caller.
	Verify(ctx context.Context, adminID, userID uint, role Role, ip string) error
	// UpgradeToPremium moves a verified profile to premium; admin-only caller.
	UpgradeToPremium(ctx context.Context, adminID, userID uint, role Role, ip string) error

	Directory(ctx context.Context) ([]DirectoryEntry, error)
	PendingVerification() ([]VerificationRow, error)

	SetProfileImage(userID uint, role Role, filename, contentType string, data []byte) (string, error)
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
	store    *utils.ObjectStore
}

func NewService(repo Repository, auditSvc auditlog.Service, store *utils.ObjectStore) Service {
	return &service{repo: repo, auditSvc: auditSvc, store: store}
}

func (s *service) GetTenant(userID uint) (*TenantProfile, error)     { return s.repo.GetTenant(userID) }
func (s *service) GetAgent(userID uint) (*AgentProfile, error)       { return s.repo.GetAgent(userID) }
func (s *service) GetLandlord(userID uint) (*LandlordProfile, error) { return s.repo.GetLandlord(userID) }

// onboardingStatus decides the status written by an onboarding submit.
// First completion advances incomplete → basic; re-submitting the form on a
// later status only updates fields and keeps the status.
func onboardingStatus(current string) (string, error) {
	if current == StatusIncomplete {
		return StatusBasic, nil
	}
	if ValidStatus(current) {
		return current, nil
	}
	return "", ErrInvalidTransition
}

func (s *service) OnboardTenant(ctx context.Context, userID uint, in TenantOnboardingInput, ip string) (*TenantProfile, error) {
	p, err := s.repo.GetTenant(userID)
	if err != nil {
		return nil, errors.New("profile not found")
	}

	status, err := onboardingStatus(p.Status)
	if err != nil {
		return nil, err
	}

	locations, _ := json.Marshal(in.PreferredLocations)
	p.FullName = &in.FullName
	p.Phone = strPtr(in.Phone)
	p.HouseholdSize = &in.HouseholdSize
	p.HouseholdIncome = &in.HouseholdIncome
	p.MoveInDate = in.MoveInDate
	p.PreferredLocations = locations
	p.MaxBudget = in.MaxBudget
	p.Bio = strPtr(in.Bio)
	p.Status = status

	if err := s.repo.SaveTenant(p); err != nil {
		return nil, err
	}
	s.logOnboarded(ctx, userID, RoleTenant, status, ip)
	return p, nil
}

func (s *service) OnboardAgent(ctx context.Context, userID uint, in AgentOnboardingInput, ip string) (*AgentProfile, error) {
	p, err := s.repo.GetAgent(userID)
	if err != nil {
		return nil, errors.New("profile not found")
	}

	status, err := onboardingStatus(p.Status)
	if err != nil {
		return nil, err
	}

	areas, _ := json.Marshal(in.ServiceAreas)
	p.FullName = &in.FullName
	p.Phone = strPtr(in.Phone)
	p.LicenseNumber = &in.LicenseNumber
	p.Agency = &in.Agency
	p.YearsExperience = in.YearsExperience
	p.ServiceAreas = areas
	p.Bio = strPtr(in.Bio)
	p.Status = status

	if err := s.repo.SaveAgent(p); err != nil {
		return nil, err
	}
	s.logOnboarded(ctx, userID, RoleAgent, status, ip)
	return p, nil
}

func (s *service) OnboardLandlord(ctx context.Context, userID uint, in LandlordOnboardingInput, ip string) (*LandlordProfile, error) {
	switch in.ManagementType {
	case ManagementSelf, ManagementCompany, ManagementHybrid:
	default:
		return nil, errors.New("management type must be self, company or hybrid")
	}

	p, err := s.repo.GetLandlord(userID)
	if err != nil {
		return nil, errors.New("profile not found")
	}

	status, err := onboardingStatus(p.Status)
	if err != nil {
		return nil, err
	}

	p.FullName = &in.FullName
	p.Phone = strPtr(in.Phone)
	p.PropertyCount = &in.PropertyCount
	p.ManagementType = &in.ManagementType
	p.Bio = strPtr(in.Bio)
	p.Status = status

	if err := s.repo.SaveLandlord(p); err != nil {
		return nil, err
	}
	s.logOnboarded(ctx, userID, RoleLandlord, status, ip)
	return p, nil
}

// Verify enforces the basic → verified step of the lifecycle.
func (s *service) Verify(ctx context.Context, adminID, userID uint, role Role, ip string) error {
	current, _, err := s.repo.StatusFor(userID, role)
	if err != nil {
		return err
	}
	if !CanTransition(current, StatusVerified) {
		return ErrInvalidTransition
	}

	if err := s.repo.SetStatus(userID, role, StatusVerified, true); err != nil {
		return err
	}

	s.invalidateDirectory()
	s.audit(ctx, adminID, "PROFILE_VERIFIED", map[string]interface{}{
		"target_user_id": userID,
		"role":           role.Name,
	}, ip)

	utils.PublishEvent(utils.PlatformEvent{
		Type:   utils.EventProfileVerified,
		UserID: userID,
		Payload: map[string]interface{}{
			"role": role.Name,
		},
	})
	return nil
}

// UpgradeToPremium enforces the verified → premium step.
func (s *service) UpgradeToPremium(ctx context.Context, adminID, userID uint, role Role, ip string) error {
	current, verified, err := s.repo.StatusFor(userID, role)
	if err != nil {
		return err
	}
	if !CanTransition(current, StatusPremium) {
		return ErrInvalidTransition
	}

	if err := s.repo.SetStatus(userID, role, StatusPremium, verified); err != nil {
		return err
	}

	s.invalidateDirectory()
	s.audit(ctx, adminID, "PROFILE_UPGRADED", map[string]interface{}{
		"target_user_id": userID,
		"role":           role.Name,
	}, ip)
	return nil
}

// Directory serves the verified-tenant directory, cached briefly in Redis.
func (s *service) Directory(ctx context.Context) ([]DirectoryEntry, error) {
	if cached, err := utils.CacheGet(directoryCacheKey); err == nil && cached != "" {
		var entries []DirectoryEntry
		if json.Unmarshal([]byte(cached), &entries) == nil {
			return entries, nil
		}
	}

	entries, err := s.repo.Directory()
	if err != nil {
		return nil, err
	}

	if body, err := json.Marshal(entries); err == nil {
		if err := utils.CacheSet(directoryCacheKey, string(body), directoryCacheTTL); err != nil {
			log.WithError(err).Debug("directory cache write failed")
		}
	}
	return entries, nil
}

func (s *service) PendingVerification() ([]VerificationRow, error) {
	return s.repo.PendingVerification()
}

func (s *service) SetProfileImage(userID uint, role Role, filename, contentType string, data []byte) (string, error) {
	if s.store == nil {
		return "", errors.New("object storage not configured")
	}
	url, err := s.store.Upload(userID, filename, contentType, data)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetProfileImage(userID, role, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *service) invalidateDirectory() {
	if err := utils.DeleteToken(directoryCacheKey); err != nil {
		log.WithError(err).Debug("directory cache invalidation failed")
	}
}

func (s *service) logOnboarded(ctx context.Context, userID uint, role Role, status string, ip string) {
	s.audit(ctx, userID, "PROFILE_ONBOARDED", map[string]interface{}{
		"role":   role.Name,
		"status": status,
	}, ip)
}

func (s *service) audit(ctx context.Context, userID uint, action string, details map[string]interface{}, ip string) {
	if s.auditSvc == nil {
		return
	}
	if err := s.auditSvc.LogAction(ctx, &userID, action, details, ip, "success"); err != nil {
		log.WithError(err).Warn("audit log write failed")
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

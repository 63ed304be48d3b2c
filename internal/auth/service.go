package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/config"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/profile"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/middleware"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/utils"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ErrInvalidAdminCode is surfaced verbatim to registration callers.
var ErrInvalidAdminCode = errors.New("Invalid admin registration code")

type Service interface {
	Register(input RegisterInput) error
	Login(input LoginInput) (*TokenPair, *User, string, error)
	Refresh(refreshToken string) (string, error)
	GetUserByID(userID uint) (User, error)
	LoadAccessContext(userID uint) (middleware.AccessContext, error)

	RequestPasswordReset(email string) error
	ResetPassword(token string, newPassword string) error
	Logout() error

	GetPublicRoles() ([]PublicRoleResponse, error)

	// MintAdminInvite issues a single-use admin registration code. The code
	// is returned once and only its hash is stored.
	MintAdminInvite(adminID uint) (string, error)
}

type service struct {
	repo          Repository
	profileRepo   profile.Repository
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, profileRepo profile.Repository, cfg *config.Config) Service {
	return &service{
		repo:          r,
		profileRepo:   profileRepo,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// =============================
// Register
// =============================

type RegisterInput struct {
	Email     string
	Password  string
	Role      string
	AdminCode string
}

func (s *service) Register(in RegisterInput) error {
	roleName := strings.ToLower(in.Role)
	role, err := s.repo.FindRoleByName(roleName)
	if err != nil {
		return errors.New("invalid role")
	}

	if err := validatePassword(in.Password); err != nil {
		return err
	}

	// Admin elevation happens server-side only: the submitted code must match
	// a stored single-use invite hash. No code or hash ever reaches a client.
	if roleName == middleware.RoleAdmin {
		if err := redeemAdminInvite(in.AdminCode); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &User{
		Email:        strings.ToLower(in.Email),
		PasswordHash: string(hash),
		RoleID:       role.ID,
		Status:       "active",
	}

	if err := s.repo.Create(user); err != nil {
		return errors.New("email is already registered")
	}

	// Profile row is created alongside the user, starting incomplete.
	if r, ok := profile.RoleFor(roleName); ok {
		if err := s.profileRepo.EnsureExists(user.ID, r); err != nil {
			return errors.New("failed to create profile")
		}
	}

	return nil
}

// validatePassword mirrors the registration form rules: at least 8
// characters, one digit and one symbol.
func validatePassword(pw string) error {
	if len(pw) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	var hasDigit, hasSymbol bool
	for _, r := range pw {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	if !hasDigit {
		return errors.New("password must contain at least one digit")
	}
	if !hasSymbol {
		return errors.New("password must contain at least one symbol")
	}
	return nil
}

func adminInviteKey(code string) string {
	sum := sha256.Sum256([]byte(code))
	return "admin_invite:" + hex.EncodeToString(sum[:])
}

func redeemAdminInvite(code string) error {
	if code == "" {
		return ErrInvalidAdminCode
	}
	key := adminInviteKey(code)
	if _, err := utils.GetToken(key); err != nil {
		return ErrInvalidAdminCode
	}
	// single use
	_ = utils.DeleteToken(key)
	return nil
}

func (s *service) MintAdminInvite(adminID uint) (string, error) {
	code := generateSecureToken()
	if err := utils.SetToken(adminInviteKey(code), fmt.Sprint(adminID), 7*24*time.Hour); err != nil {
		return "", errors.New("could not store invite code")
	}
	return code, nil
}

// =============================
// Login
// =============================

type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns tokens plus the caller's profile
// status in one response, so clients never have to poll for auth to settle.
func (s *service) Login(in LoginInput) (*TokenPair, *User, string, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(in.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, "", errors.New("invalid credentials")
		}
		return nil, nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, "", errors.New("invalid credentials")
	}

	if user.Status == "inactive" {
		return nil, nil, "", errors.New("your account has been deactivated")
	}

	status := profile.StatusIncomplete
	if r, ok := profile.RoleFor(user.Role.RoleName); ok {
		status, _, err = s.profileRepo.StatusFor(user.ID, r)
		if err != nil {
			return nil, nil, "", err
		}
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, nil, "", err
	}
	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, nil, "", err
	}

	_ = s.repo.TouchLastLogin(user.ID)

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, user, status, nil
}

func (s *service) generateAccessToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role.RoleName,
		"exp":     time.Now().Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.accessSecret))
}

func (s *service) generateRefreshToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.refreshTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.refreshSecret))
}

// =============================
// Refresh
// =============================

func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil {
		return "", errors.New("invalid token claims")
	}

	userID := uint(claims["user_id"].(float64))
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return "", errors.New("user not found")
	}

	return s.generateAccessToken(&user)
}

// =============================
// Access context
// =============================

// LoadAccessContext backs the auth middleware: role plus current profile
// status, resolved fresh per request. Admins carry no profile table and are
// treated as verified.
func (s *service) LoadAccessContext(userID uint) (middleware.AccessContext, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return middleware.AccessContext{}, err
	}
	if user.Status == "inactive" {
		return middleware.AccessContext{}, errors.New("account deactivated")
	}

	ac := middleware.AccessContext{
		UserID:   user.ID,
		RoleName: user.Role.RoleName,
	}

	if user.Role.RoleName == middleware.RoleAdmin {
		ac.ProfileStatus = profile.StatusVerified
		ac.Verified = true
		return ac, nil
	}

	r, ok := profile.RoleFor(user.Role.RoleName)
	if !ok {
		return middleware.AccessContext{}, errors.New("unsupported role")
	}

	status, verified, err := s.profileRepo.StatusFor(user.ID, r)
	if err != nil {
		return middleware.AccessContext{}, err
	}
	ac.ProfileStatus = status
	ac.Verified = verified
	return ac, nil
}

// =============================
// Forgot Password
// =============================

func (s *service) RequestPasswordReset(email string) error {
	user, err := s.repo.FindByEmail(strings.ToLower(email))
	if err != nil {
		return errors.New("user not found")
	}

	resetToken := generateSecureToken()
	key := fmt.Sprintf("reset_token:%s", resetToken)

	if err := utils.SetToken(key, fmt.Sprint(user.ID), 15*time.Minute); err != nil {
		return errors.New("could not save reset token")
	}

	if err := utils.SendResetLink(user.Email, resetToken); err != nil {
		return errors.New("failed to send email")
	}

	return nil
}

func (s *service) ResetPassword(token string, newPassword string) error {
	key := fmt.Sprintf("reset_token:%s", token)
	val, err := utils.GetToken(key)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	var userID uint
	if _, err := fmt.Sscan(val, &userID); err != nil {
		return errors.New("invalid token data")
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.repo.Update(&user); err != nil {
		return errors.New("failed to update password")
	}

	_ = utils.DeleteToken(key)
	return nil
}

// =============================
// Logout
// =============================

func (s *service) Logout() error {
	// JWT is stateless — frontend should just clear token
	return nil
}

func (s *service) GetUserByID(userID uint) (User, error) {
	return s.repo.FindByID(userID)
}

func (s *service) GetPublicRoles() ([]PublicRoleResponse, error) {
	roles, err := s.repo.GetPublicRoles()
	if err != nil {
		return nil, err
	}

	var publicRoles []PublicRoleResponse
	for _, role := range roles {
		publicRoles = append(publicRoles, PublicRoleResponse{
			ID:          role.ID,
			RoleName:    role.RoleName,
			Description: role.Description,
		})
	}

	return publicRoles, nil
}

func generateSecureToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

package profile

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Me godoc
// @Summary The caller's role-specific profile
// @Tags profiles
// @Security BearerAuth
// @Router /profiles/me [get]
func (h *Handler) Me(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	role, ok := RoleFor(ac.RoleName)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "admins do not have a profile"})
		return
	}

	var (
		body interface{}
		err  error
	)
	switch role.Name {
	case middleware.RoleTenant:
		body, err = h.service.GetTenant(ac.UserID)
	case middleware.RoleAgent:
		body, err = h.service.GetAgent(ac.UserID)
	case middleware.RoleLandlord:
		body, err = h.service.GetLandlord(ac.UserID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  body,
		"progress": ProgressForStatus(ac.ProfileStatus),
	})
}

// OnboardTenant godoc
// @Summary Complete tenant onboarding
// @Tags profiles
// @Security BearerAuth
// @Router /profiles/onboard/tenant [post]
func (h *Handler) OnboardTenant(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	var input TenantOnboardingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.OnboardTenant(c.Request.Context(), ac.UserID, input, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  p,
		"progress": ProgressForStatus(p.Status),
	})
}

// OnboardAgent godoc
// @Summary Complete agent onboarding
// @Tags profiles
// @Security BearerAuth
// @Router /profiles/onboard/agent [post]
func (h *Handler) OnboardAgent(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	var input AgentOnboardingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.OnboardAgent(c.Request.Context(), ac.UserID, input, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  p,
		"progress": ProgressForStatus(p.Status),
	})
}

// OnboardLandlord godoc
// @Summary Complete landlord onboarding
// @Tags profiles
// @Security BearerAuth
// @Router /profiles/onboard/landlord [post]
func (h *Handler) OnboardLandlord(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	var input LandlordOnboardingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.OnboardLandlord(c.Request.Context(), ac.UserID, input, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  p,
		"progress": ProgressForStatus(p.Status),
	})
}

// Directory godoc
// @Summary Verified tenant directory
// @Tags profiles
// @Security BearerAuth
// @Router /directory/tenants [get]
func (h *Handler) Directory(c *gin.Context) {
	entries, err := h.service.Directory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch directory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenants": entries})
}

// UploadImage godoc
// @Summary Upload a profile image
// @Tags profiles
// @Accept multipart/form-data
// @Security BearerAuth
// @Router /profiles/me/image [post]
func (h *Handler) UploadImage(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	role, ok := RoleFor(ac.RoleName)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "admins do not have a profile"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}

	url, err := h.service.SetProfileImage(ac.UserID, role, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile_image_url": url})
}

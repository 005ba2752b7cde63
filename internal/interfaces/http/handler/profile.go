package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/gmu1026/billing/internal/application/billing"
	"github.com/google/uuid"
)

// ProfileHandler handles company and contract billing profile endpoints
type ProfileHandler struct {
	BaseHandler
	profileService *billingapp.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *billingapp.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetCompanyProfile returns one company-level profile
func (h *ProfileHandler) GetCompanyProfile(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid company id")
		return
	}

	profile, err := h.profileService.GetCompanyProfile(c.Request.Context(), companyID, c.Param("vendor"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if profile == nil {
		h.NotFound(c, "Billing profile not found")
		return
	}
	h.Success(c, profile)
}

// UpsertCompanyProfile creates or updates a company-level profile
func (h *ProfileHandler) UpsertCompanyProfile(c *gin.Context) {
	var req billingapp.UpsertCompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.UpsertCompanyProfile(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// GetContractProfile returns one contract-level profile
func (h *ProfileHandler) GetContractProfile(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract id")
		return
	}

	profile, err := h.profileService.GetContractProfile(c.Request.Context(), contractID, c.Param("vendor"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if profile == nil {
		h.NotFound(c, "Billing profile not found")
		return
	}
	h.Success(c, profile)
}

// UpsertContractProfile creates or updates a contract-level profile
func (h *ProfileHandler) UpsertContractProfile(c *gin.Context) {
	var req billingapp.UpsertContractProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.UpsertContractProfile(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// DeleteContractProfile removes a contract-level profile without deposits
func (h *ProfileHandler) DeleteContractProfile(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract id")
		return
	}

	if err := h.profileService.DeleteContractProfile(c.Request.Context(), contractID, c.Param("vendor")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers all billing profile routes
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profiles := rg.Group("/billing-profiles")
	{
		profiles.GET("/companies/:id/:vendor", h.GetCompanyProfile)
		profiles.PUT("/companies", h.UpsertCompanyProfile)
		profiles.GET("/contracts/:id/:vendor", h.GetContractProfile)
		profiles.PUT("/contracts", h.UpsertContractProfile)
		profiles.DELETE("/contracts/:id/:vendor", h.DeleteContractProfile)
	}
}

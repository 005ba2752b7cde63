package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/gmu1026/billing/internal/application/partner"
	"github.com/google/uuid"
)

// CompanyHandler handles company master and BP assignment endpoints
type CompanyHandler struct {
	BaseHandler
	companyService *partnerapp.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *partnerapp.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// ListCompanies returns the full company master
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, companies)
}

// GetCompany returns one company
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid company id")
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// AssignBPRequest links a company to a BP master number
type AssignBPRequest struct {
	BPNumber string `json:"bp_number" binding:"required"`
}

// AssignBP links a company to an existing BP master record
func (h *CompanyHandler) AssignBP(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid company id")
		return
	}

	var req AssignBPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	company, err := h.companyService.AssignBP(c.Request.Context(), id, req.BPNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// UpsertBPCode writes one BP master record
func (h *CompanyHandler) UpsertBPCode(c *gin.Context) {
	var req partnerapp.UpsertBPCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bp, err := h.companyService.UpsertBPCode(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bp)
}

// RegisterRoutes registers all company and BP master routes
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	{
		companies.GET("", h.ListCompanies)
		companies.GET("/:id", h.GetCompany)
		companies.POST("/:id/bp", h.AssignBP)
	}

	rg.PUT("/bp-codes", h.UpsertBPCode)
}

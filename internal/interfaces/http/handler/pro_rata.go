package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/gmu1026/billing/internal/application/billing"
	"github.com/google/uuid"
)

// ProRataHandler handles manual pro-rata period endpoints
type ProRataHandler struct {
	BaseHandler
	proRataService *billingapp.ProRataService
}

// NewProRataHandler creates a new ProRataHandler
func NewProRataHandler(proRataService *billingapp.ProRataService) *ProRataHandler {
	return &ProRataHandler{proRataService: proRataService}
}

// CreatePeriod stores or replaces a contract's manual pro-rata period
func (h *ProRataHandler) CreatePeriod(c *gin.Context) {
	var req billingapp.CreateProRataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	period, err := h.proRataService.CreatePeriod(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, period)
}

// ListPeriods returns the manual periods of one billing cycle
func (h *ProRataHandler) ListPeriods(c *gin.Context) {
	periods, err := h.proRataService.ListPeriods(c.Request.Context(), c.Query("billing_cycle"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, periods)
}

// DeletePeriod removes a manual period
func (h *ProRataHandler) DeletePeriod(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period id")
		return
	}

	if err := h.proRataService.DeletePeriod(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Preview derives a contract's effective ratio for a cycle without writing
func (h *ProRataHandler) Preview(c *gin.Context) {
	contractID, err := uuid.Parse(c.Query("contract_id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract_id")
		return
	}

	preview, err := h.proRataService.Preview(c.Request.Context(), contractID, c.Query("billing_cycle"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, preview)
}

// RegisterRoutes registers all pro-rata routes
func (h *ProRataHandler) RegisterRoutes(rg *gin.RouterGroup) {
	periods := rg.Group("/pro-rata")
	{
		periods.POST("", h.CreatePeriod)
		periods.GET("", h.ListPeriods)
		periods.DELETE("/:id", h.DeletePeriod)
		periods.GET("/preview", h.Preview)
	}
}

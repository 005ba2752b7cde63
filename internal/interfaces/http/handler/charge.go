package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/gmu1026/billing/internal/application/billing"
	"github.com/google/uuid"
)

// ChargeHandler handles additional charge endpoints
type ChargeHandler struct {
	BaseHandler
	chargeService *billingapp.ChargeService
}

// NewChargeHandler creates a new ChargeHandler
func NewChargeHandler(chargeService *billingapp.ChargeService) *ChargeHandler {
	return &ChargeHandler{chargeService: chargeService}
}

// CreateCharge registers an additional charge against a contract
func (h *ChargeHandler) CreateCharge(c *gin.Context) {
	var req billingapp.CreateChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	charge, err := h.chargeService.CreateCharge(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, charge)
}

// ListCharges returns the charges registered against one contract
func (h *ChargeHandler) ListCharges(c *gin.Context) {
	contractID, err := uuid.Parse(c.Query("contract_id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract_id")
		return
	}

	charges, err := h.chargeService.ListByContract(c.Request.Context(), contractID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, charges)
}

// DeactivateCharge stops a charge from joining future generation runs
func (h *ChargeHandler) DeactivateCharge(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid charge id")
		return
	}

	if err := h.chargeService.DeactivateCharge(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteCharge removes a charge no batch has ever applied
func (h *ChargeHandler) DeleteCharge(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid charge id")
		return
	}

	if err := h.chargeService.DeleteCharge(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers all additional charge routes
func (h *ChargeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	charges := rg.Group("/charges")
	{
		charges.POST("", h.CreateCharge)
		charges.GET("", h.ListCharges)
		charges.POST("/:id/deactivate", h.DeactivateCharge)
		charges.DELETE("/:id", h.DeleteCharge)
	}
}

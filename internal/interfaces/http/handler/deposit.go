package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/gmu1026/billing/internal/application/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositHandler handles prepaid deposit endpoints
type DepositHandler struct {
	BaseHandler
	depositService *billingapp.DepositService
}

// NewDepositHandler creates a new DepositHandler
func NewDepositHandler(depositService *billingapp.DepositService) *DepositHandler {
	return &DepositHandler{depositService: depositService}
}

// CreateDeposit stores a new deposit charge
func (h *DepositHandler) CreateDeposit(c *gin.Context) {
	var req billingapp.CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	deposit, err := h.depositService.CreateDeposit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, deposit)
}

// AdjustDepositRequest rewrites the amount of an unconsumed deposit
type AdjustDepositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// AdjustDeposit changes the amount of a deposit nothing has drawn from yet
func (h *DepositHandler) AdjustDeposit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid deposit id")
		return
	}

	var req AdjustDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	deposit, err := h.depositService.AdjustDeposit(c.Request.Context(), id, req.Amount)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, deposit)
}

// Balance returns a profile's open balance grouped by currency
func (h *DepositHandler) Balance(c *gin.Context) {
	companyProfileID, err := optionalUUIDQuery(c, "company_profile_id")
	if err != nil {
		h.BadRequest(c, "Invalid company_profile_id")
		return
	}
	contractProfileID, err := optionalUUIDQuery(c, "contract_profile_id")
	if err != nil {
		h.BadRequest(c, "Invalid contract_profile_id")
		return
	}

	result, err := h.depositService.Balance(c.Request.Context(), companyProfileID, contractProfileID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Consume spends an amount across a profile's deposits oldest first
func (h *DepositHandler) Consume(c *gin.Context) {
	var req billingapp.ConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.depositService.Consume(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// RegisterRoutes registers all deposit routes
func (h *DepositHandler) RegisterRoutes(rg *gin.RouterGroup) {
	deposits := rg.Group("/deposits")
	{
		deposits.POST("", h.CreateDeposit)
		deposits.PUT("/:id", h.AdjustDeposit)
		deposits.GET("/balance", h.Balance)
		deposits.POST("/consume", h.Consume)
	}
}

package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/gmu1026/billing/internal/application/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitRuleHandler handles split billing rule endpoints
type SplitRuleHandler struct {
	BaseHandler
	splitService *billingapp.SplitRuleService
}

// NewSplitRuleHandler creates a new SplitRuleHandler
func NewSplitRuleHandler(splitService *billingapp.SplitRuleService) *SplitRuleHandler {
	return &SplitRuleHandler{splitService: splitService}
}

// CreateRule validates and stores a split billing rule
func (h *SplitRuleHandler) CreateRule(c *gin.Context) {
	var req billingapp.CreateSplitRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rule, err := h.splitService.CreateRule(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rule)
}

// ListRules returns every split rule with its allocations
func (h *SplitRuleHandler) ListRules(c *gin.Context) {
	rules, err := h.splitService.ListRules(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rules)
}

// GetRule returns one split rule
func (h *SplitRuleHandler) GetRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rule id")
		return
	}

	rule, err := h.splitService.GetRule(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rule)
}

// DeactivateRule takes a rule out of future generation runs
func (h *SplitRuleHandler) DeactivateRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rule id")
		return
	}

	if err := h.splitService.DeactivateRule(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteRule removes a rule and its allocations
func (h *SplitRuleHandler) DeleteRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rule id")
		return
	}

	if err := h.splitService.DeleteRule(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SimulateRequest carries the hypothetical amount for a split simulation
type SimulateRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// Simulate runs the allocator against a hypothetical source amount
func (h *SplitRuleHandler) Simulate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rule id")
		return
	}

	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.splitService.Simulate(c.Request.Context(), id, req.Amount)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers all split rule routes
func (h *SplitRuleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rules := rg.Group("/split-rules")
	{
		rules.POST("", h.CreateRule)
		rules.GET("", h.ListRules)
		rules.GET("/:id", h.GetRule)
		rules.POST("/:id/deactivate", h.DeactivateRule)
		rules.DELETE("/:id", h.DeleteRule)
		rules.POST("/:id/simulate", h.Simulate)
	}
}

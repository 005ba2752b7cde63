package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	slipapp "github.com/gmu1026/billing/internal/application/slip"
)

// ExchangeRateHandler handles exchange rate entry, listing and remote sync
type ExchangeRateHandler struct {
	BaseHandler
	rateService *slipapp.ExchangeRateService
}

// NewExchangeRateHandler creates a new ExchangeRateHandler
func NewExchangeRateHandler(rateService *slipapp.ExchangeRateService) *ExchangeRateHandler {
	return &ExchangeRateHandler{rateService: rateService}
}

// CreateRate enters one manual exchange rate
func (h *ExchangeRateHandler) CreateRate(c *gin.Context) {
	var req slipapp.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rate, err := h.rateService.CreateRate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rate)
}

// ListRates returns the most recent rates for a currency pair
func (h *ExchangeRateHandler) ListRates(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	rates, err := h.rateService.ListRecent(
		c.Request.Context(),
		c.Query("currency_from"),
		c.Query("currency_to"),
		limit,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rates)
}

// SyncRequest asks for a remote sync of the recent rate history
type SyncRequest struct {
	Days int `json:"days" binding:"omitempty,min=1,max=90"`
}

// Sync pulls recent rates from the remote source into the local table
func (h *ExchangeRateHandler) Sync(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.rateService.Sync(c.Request.Context(), req.Days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers all exchange rate routes
func (h *ExchangeRateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.CreateRate)
		rates.GET("", h.ListRates)
		rates.POST("/sync", h.Sync)
	}
}

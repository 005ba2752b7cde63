package handler

import (
	"github.com/gin-gonic/gin"
	slipapp "github.com/gmu1026/billing/internal/application/slip"
)

// VendorConfigHandler exposes the per-vendor account defaults
type VendorConfigHandler struct {
	BaseHandler
	configService *slipapp.VendorConfigService
}

// NewVendorConfigHandler creates a new VendorConfigHandler
func NewVendorConfigHandler(configService *slipapp.VendorConfigService) *VendorConfigHandler {
	return &VendorConfigHandler{configService: configService}
}

// GetConfig returns the configuration for one vendor
func (h *VendorConfigHandler) GetConfig(c *gin.Context) {
	cfg, err := h.configService.Get(c.Request.Context(), c.Param("vendor"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}

// UpdateConfig partially updates a vendor configuration
func (h *VendorConfigHandler) UpdateConfig(c *gin.Context) {
	var req slipapp.UpdateVendorConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cfg, err := h.configService.Update(c.Request.Context(), c.Param("vendor"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}

// RegisterRoutes registers all vendor config routes
func (h *VendorConfigHandler) RegisterRoutes(rg *gin.RouterGroup) {
	vendors := rg.Group("/vendors")
	{
		vendors.GET("/:vendor/config", h.GetConfig)
		vendors.PUT("/:vendor/config", h.UpdateConfig)
	}
}

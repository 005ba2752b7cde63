package handler

import (
	"github.com/gin-gonic/gin"
	slipapp "github.com/gmu1026/billing/internal/application/slip"
	"github.com/google/uuid"
)

// SlipHandler handles slip generation and batch lifecycle endpoints
type SlipHandler struct {
	BaseHandler
	generationService *slipapp.GenerationService
	batchService      *slipapp.BatchService
	exportService     *slipapp.ExportService
}

// NewSlipHandler creates a new SlipHandler
func NewSlipHandler(
	generationService *slipapp.GenerationService,
	batchService *slipapp.BatchService,
	exportService *slipapp.ExportService,
) *SlipHandler {
	return &SlipHandler{
		generationService: generationService,
		batchService:      batchService,
		exportService:     exportService,
	}
}

// Generate runs one slip generation pass for a cycle and slip type
func (h *SlipHandler) Generate(c *gin.Context) {
	var req slipapp.GenerateSlipsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.generationService.Generate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, report)
}

// ListSlips returns a filtered page of slip records
func (h *SlipHandler) ListSlips(c *gin.Context) {
	var filter slipapp.SlipListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.batchService.ListSlips(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	h.SuccessWithMeta(c, result.Records, result.Total, page, pageSize)
}

// PatchSlip edits fix-up fields on one unconfirmed slip line
func (h *SlipHandler) PatchSlip(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid slip record id")
		return
	}

	var req slipapp.PatchSlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.batchService.PatchSlip(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// ListBatches returns every batch with derived status and totals
func (h *SlipHandler) ListBatches(c *gin.Context) {
	batches, err := h.batchService.ListBatches(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// ConfirmBatch confirms a whole batch or reports the lines blocking it
func (h *SlipHandler) ConfirmBatch(c *gin.Context) {
	result, err := h.batchService.ConfirmBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DeleteBatch removes an unconfirmed batch
func (h *SlipHandler) DeleteBatch(c *gin.Context) {
	if err := h.batchService.DeleteBatch(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ExportBatch renders a batch as a CSV download. The optional layout query
// parameter overrides the batch's own slip type.
func (h *SlipHandler) ExportBatch(c *gin.Context) {
	layout := slipapp.ExportLayout(c.Query("layout"))
	if layout != "" && !layout.IsValid() {
		h.BadRequest(c, "Unknown export layout")
		return
	}

	result, err := h.exportService.Export(c.Request.Context(), c.Param("id"), layout)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(200, "text/csv; charset=utf-8", result.Content)
}

// RegisterRoutes registers all slip and batch routes
func (h *SlipHandler) RegisterRoutes(rg *gin.RouterGroup) {
	slips := rg.Group("/slips")
	{
		slips.POST("/generate", h.Generate)
		slips.GET("", h.ListSlips)
		slips.PATCH("/:id", h.PatchSlip)
	}

	batches := rg.Group("/batches")
	{
		batches.GET("", h.ListBatches)
		batches.POST("/:id/confirm", h.ConfirmBatch)
		batches.DELETE("/:id", h.DeleteBatch)
		batches.GET("/:id/export", h.ExportBatch)
	}
}

package handler

import (
	consignmentapp "github.com/freightline/backend/internal/application/consignment"
	"github.com/gin-gonic/gin"
)

// LorryReceiptHandler handles lorry receipt API endpoints
type LorryReceiptHandler struct {
	BaseHandler
	receiptService *consignmentapp.LorryReceiptService
}

// NewLorryReceiptHandler creates a new LorryReceiptHandler
func NewLorryReceiptHandler(receiptService *consignmentapp.LorryReceiptService) *LorryReceiptHandler {
	return &LorryReceiptHandler{receiptService: receiptService}
}

// Create creates a new lorry receipt
func (h *LorryReceiptHandler) Create(c *gin.Context) {
	var req consignmentapp.CreateLorryReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.receiptService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receipt)
}

// Get returns a single lorry receipt by id
func (h *LorryReceiptHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid lorry receipt ID")
		return
	}

	receipt, err := h.receiptService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receipt)
}

// List returns lorry receipts matching the query
func (h *LorryReceiptHandler) List(c *gin.Context) {
	var q consignmentapp.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.receiptService.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update updates a lorry receipt
func (h *LorryReceiptHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid lorry receipt ID")
		return
	}

	var req consignmentapp.UpdateLorryReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.receiptService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receipt)
}

// MarkDelivered marks the consignment as delivered
func (h *LorryReceiptHandler) MarkDelivered(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid lorry receipt ID")
		return
	}

	receipt, err := h.receiptService.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receipt)
}

// Delete deletes a lorry receipt
func (h *LorryReceiptHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid lorry receipt ID")
		return
	}

	if err := h.receiptService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers lorry receipt routes
func (h *LorryReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receipts := rg.Group("/lorry-receipts")
	{
		receipts.POST("", h.Create)
		receipts.GET("", h.List)
		receipts.GET("/:id", h.Get)
		receipts.PUT("/:id", h.Update)
		receipts.POST("/:id/deliver", h.MarkDelivered)
		receipts.DELETE("/:id", h.Delete)
	}
}

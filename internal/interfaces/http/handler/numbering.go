package handler

import (
	numberingapp "github.com/freightline/backend/internal/application/numbering"
	"github.com/gin-gonic/gin"
)

// NumberingHandler handles document numbering configuration endpoints
type NumberingHandler struct {
	BaseHandler
	numberingService *numberingapp.Service
}

// NewNumberingHandler creates a new NumberingHandler
func NewNumberingHandler(numberingService *numberingapp.Service) *NumberingHandler {
	return &NumberingHandler{numberingService: numberingService}
}

// List returns the numbering configuration of every document type
func (h *NumberingHandler) List(c *gin.Context) {
	configs, err := h.numberingService.ListConfigs(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, configs)
}

// Get returns the numbering configuration for one document type
func (h *NumberingHandler) Get(c *gin.Context) {
	config, err := h.numberingService.GetConfig(c.Request.Context(), c.Param("docType"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, config)
}

// Update changes the range and flags for one document type
func (h *NumberingHandler) Update(c *gin.Context) {
	var req numberingapp.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	config, err := h.numberingService.UpdateConfig(c.Request.Context(), c.Param("docType"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, config)
}

// ValidateManual checks a manually entered number against the configuration
// and documents already issued. The normalized number is returned so the form
// can show exactly what would be stored.
func (h *NumberingHandler) ValidateManual(c *gin.Context) {
	var req numberingapp.ValidateManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	number, err := h.numberingService.ValidateManualNumber(c.Request.Context(), c.Param("docType"), req.Number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, numberingapp.IssuedNumberResponse{
		DocType: c.Param("docType"),
		Number:  number,
	})
}

// RegisterRoutes registers numbering routes
func (h *NumberingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	numbering := rg.Group("/numbering")
	{
		numbering.GET("", h.List)
		numbering.GET("/:docType", h.Get)
		numbering.PUT("/:docType", h.Update)
		numbering.POST("/:docType/validate", h.ValidateManual)
	}
}

package handler

import (
	"fmt"
	"net/http"
	"time"

	ledgerapp "github.com/freightline/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// LedgerHandler handles ledger and statement API endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService *ledgerapp.Service
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *ledgerapp.Service) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// ClientStatement returns the running-balance statement for one client
func (h *LedgerHandler) ClientStatement(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var q ledgerapp.StatementQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	statement, err := h.ledgerService.ClientStatement(c.Request.Context(), id, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statement)
}

// ExportClientStatement streams the client statement as a CSV download
func (h *LedgerHandler) ExportClientStatement(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var q ledgerapp.StatementQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filename := fmt.Sprintf("statement-%s-%s.csv", id, time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.ledgerService.ExportClientStatementCSV(c.Request.Context(), id, q, c.Writer); err != nil {
		// Headers may already be out; all we can do is drop the connection.
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
}

// CompanyLedger returns the company-wide income and expense ledger
func (h *LedgerHandler) CompanyLedger(c *gin.Context) {
	var q ledgerapp.StatementQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ledger, err := h.ledgerService.CompanyLedger(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ledger)
}

// ExportCompanyLedger streams the company ledger as a CSV download
func (h *LedgerHandler) ExportCompanyLedger(c *gin.Context) {
	var q ledgerapp.StatementQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filename := fmt.Sprintf("company-ledger-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.ledgerService.ExportCompanyLedgerCSV(c.Request.Context(), q, c.Writer); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledger := rg.Group("/ledger")
	{
		ledger.GET("/clients/:id", h.ClientStatement)
		ledger.GET("/clients/:id/export", h.ExportClientStatement)
		ledger.GET("/company", h.CompanyLedger)
		ledger.GET("/company/export", h.ExportCompanyLedger)
	}
}

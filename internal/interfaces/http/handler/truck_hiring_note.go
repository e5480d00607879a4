package handler

import (
	consignmentapp "github.com/freightline/backend/internal/application/consignment"
	"github.com/gin-gonic/gin"
)

// TruckHiringNoteHandler handles truck hiring note API endpoints
type TruckHiringNoteHandler struct {
	BaseHandler
	noteService *consignmentapp.TruckHiringNoteService
}

// NewTruckHiringNoteHandler creates a new TruckHiringNoteHandler
func NewTruckHiringNoteHandler(noteService *consignmentapp.TruckHiringNoteService) *TruckHiringNoteHandler {
	return &TruckHiringNoteHandler{noteService: noteService}
}

// Create creates a new truck hiring note
func (h *TruckHiringNoteHandler) Create(c *gin.Context) {
	var req consignmentapp.CreateTruckHiringNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, note)
}

// Get returns a single truck hiring note by id
func (h *TruckHiringNoteHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid truck hiring note ID")
		return
	}

	note, err := h.noteService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// List returns truck hiring notes matching the query
func (h *TruckHiringNoteHandler) List(c *gin.Context) {
	var q consignmentapp.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.noteService.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update updates a truck hiring note
func (h *TruckHiringNoteHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid truck hiring note ID")
		return
	}

	var req consignmentapp.UpdateTruckHiringNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// Delete deletes a truck hiring note
func (h *TruckHiringNoteHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid truck hiring note ID")
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers truck hiring note routes
func (h *TruckHiringNoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notes := rg.Group("/truck-hiring-notes")
	{
		notes.POST("", h.Create)
		notes.GET("", h.List)
		notes.GET("/:id", h.Get)
		notes.PUT("/:id", h.Update)
		notes.DELETE("/:id", h.Delete)
	}
}

package partner

import (
	"time"

	"github.com/freightline/backend/internal/domain/partner"
	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CreateClientRequest creates a client
type CreateClientRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	Address      string `json:"address" binding:"max=500"`
	City         string `json:"city" binding:"max=100"`
	GSTIN        string `json:"gstin" binding:"max=15"`
	ContactName  string `json:"contact_name" binding:"max=100"`
	ContactPhone string `json:"contact_phone" binding:"max=20"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
}

// UpdateClientRequest updates a client's master data and contact
type UpdateClientRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	Address      string `json:"address" binding:"max=500"`
	City         string `json:"city" binding:"max=100"`
	GSTIN        string `json:"gstin" binding:"max=15"`
	ContactName  string `json:"contact_name" binding:"max=100"`
	ContactPhone string `json:"contact_phone" binding:"max=20"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
}

// ListQuery selects and pages clients
type ListQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
}

// ToFilter converts the query to a repository filter
func (q ListQuery) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	filter.Search = q.Search
	return filter
}

// ClientResponse is the client representation returned by the API
type ClientResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	GSTIN        string    `json:"gstin"`
	ContactName  string    `json:"contact_name"`
	ContactPhone string    `json:"contact_phone"`
	ContactEmail string    `json:"contact_email"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToClientResponse converts a domain client to a ClientResponse
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		Address:      c.Address,
		City:         c.City,
		GSTIN:        c.GSTIN,
		ContactName:  c.ContactName,
		ContactPhone: c.ContactPhone,
		ContactEmail: c.ContactEmail,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

package partner

import (
	"context"
	"strings"

	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Client is a customer of the transport company: consignor or consignee on
// lorry receipts, billed party on invoices.
type Client struct {
	shared.BaseEntity
	Name         string
	Address      string
	City         string
	GSTIN        string
	ContactName  string
	ContactPhone string
	ContactEmail string
	Active       bool
}

// NewClient creates a new client
func NewClient(name, address, city string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client name cannot be empty")
	}
	return &Client{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Address:    strings.TrimSpace(address),
		City:       strings.TrimSpace(city),
		Active:     true,
	}, nil
}

// UpdateDetails updates the client's master data
func (c *Client) UpdateDetails(name, address, city, gstin string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Client name cannot be empty")
	}
	c.Name = name
	c.Address = strings.TrimSpace(address)
	c.City = strings.TrimSpace(city)
	c.GSTIN = strings.ToUpper(strings.TrimSpace(gstin))
	return nil
}

// UpdateContact updates the client's contact person
func (c *Client) UpdateContact(name, phone, email string) {
	c.ContactName = strings.TrimSpace(name)
	c.ContactPhone = strings.TrimSpace(phone)
	c.ContactEmail = strings.TrimSpace(email)
}

// Deactivate marks the client inactive; inactive clients keep their history
// but cannot be put on new documents.
func (c *Client) Deactivate() {
	c.Active = false
}

// Activate marks the client active
func (c *Client) Activate() {
	c.Active = true
}

// ClientRepository persists clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, int64, error)
	Save(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

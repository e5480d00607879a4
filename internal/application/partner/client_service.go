package partner

import (
	"context"

	"github.com/freightline/backend/internal/domain/partner"
	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService handles client master data
type ClientService struct {
	clientRepo partner.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(req.Name, req.Address, req.City)
	if err != nil {
		return nil, err
	}
	if req.GSTIN != "" {
		if err := client.UpdateDetails(req.Name, req.Address, req.City, req.GSTIN); err != nil {
			return nil, err
		}
	}
	if req.ContactName != "" || req.ContactPhone != "" || req.ContactEmail != "" {
		client.UpdateContact(req.ContactName, req.ContactPhone, req.ContactEmail)
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with paging and name search
func (s *ClientService) List(ctx context.Context, q ListQuery) (*shared.Paginated[ClientResponse], error) {
	filter := q.ToFilter()
	clients, total, err := s.clientRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, ToClientResponse(&clients[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update updates a client's master data and contact person
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := client.UpdateDetails(req.Name, req.Address, req.City, req.GSTIN); err != nil {
		return nil, err
	}
	client.UpdateContact(req.ContactName, req.ContactPhone, req.ContactEmail)

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// SetActive activates or deactivates a client. Deactivated clients keep
// their documents and statement history.
func (s *ClientService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if active {
		client.Activate()
	} else {
		client.Deactivate()
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// Delete removes a client
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, id)
}

package consignment

import (
	"time"

	"github.com/freightline/backend/internal/domain/consignment"
	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_INPUT", "Date must be YYYY-MM-DD")
	}
	return d, nil
}

// CreateLorryReceiptRequest books a consignment. Number is optional: empty
// means the allocator issues the next one, anything else is validated as a
// manual entry.
type CreateLorryReceiptRequest struct {
	Number       string          `json:"number" binding:"omitempty,docnumber"`
	Date         string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	ConsignorID  uuid.UUID       `json:"consignor_id" binding:"required"`
	ConsigneeID  uuid.UUID       `json:"consignee_id" binding:"required"`
	FromLocation string          `json:"from_location" binding:"required,max=200"`
	ToLocation   string          `json:"to_location" binding:"required,max=200"`
	TruckNumber  string          `json:"truck_number" binding:"max=20"`
	Packages     int             `json:"packages" binding:"min=0"`
	Description  string          `json:"description" binding:"max=500"`
	ActualWeight decimal.Decimal `json:"actual_weight"`
	Freight      decimal.Decimal `json:"freight"`
	Hamali       decimal.Decimal `json:"hamali"`
	OtherCharges decimal.Decimal `json:"other_charges"`
}

// UpdateLorryReceiptRequest edits a booked consignment
type UpdateLorryReceiptRequest struct {
	FromLocation string          `json:"from_location" binding:"required,max=200"`
	ToLocation   string          `json:"to_location" binding:"required,max=200"`
	TruckNumber  string          `json:"truck_number" binding:"max=20"`
	Packages     int             `json:"packages" binding:"min=0"`
	Description  string          `json:"description" binding:"max=500"`
	ActualWeight decimal.Decimal `json:"actual_weight"`
	Freight      decimal.Decimal `json:"freight"`
	Hamali       decimal.Decimal `json:"hamali"`
	OtherCharges decimal.Decimal `json:"other_charges"`
}

// LorryReceiptResponse is the lorry receipt representation returned by the API
type LorryReceiptResponse struct {
	ID           uuid.UUID       `json:"id"`
	Number       string          `json:"number"`
	Date         string          `json:"date"`
	ConsignorID  uuid.UUID       `json:"consignor_id"`
	ConsigneeID  uuid.UUID       `json:"consignee_id"`
	FromLocation string          `json:"from_location"`
	ToLocation   string          `json:"to_location"`
	TruckNumber  string          `json:"truck_number"`
	Packages     int             `json:"packages"`
	Description  string          `json:"description"`
	ActualWeight decimal.Decimal `json:"actual_weight"`
	Freight      decimal.Decimal `json:"freight"`
	Hamali       decimal.Decimal `json:"hamali"`
	OtherCharges decimal.Decimal `json:"other_charges"`
	TotalCharges decimal.Decimal `json:"total_charges"`
	Status       string          `json:"status"`
	InvoiceID    *uuid.UUID      `json:"invoice_id,omitempty"`
}

// ToLorryReceiptResponse converts a domain lorry receipt to a response
func ToLorryReceiptResponse(lr *consignment.LorryReceipt) LorryReceiptResponse {
	return LorryReceiptResponse{
		ID:           lr.ID,
		Number:       lr.Number,
		Date:         lr.Date.Format(dateLayout),
		ConsignorID:  lr.ConsignorID,
		ConsigneeID:  lr.ConsigneeID,
		FromLocation: lr.FromLocation,
		ToLocation:   lr.ToLocation,
		TruckNumber:  lr.TruckNumber,
		Packages:     lr.Packages,
		Description:  lr.Description,
		ActualWeight: lr.ActualWeight,
		Freight:      lr.Freight,
		Hamali:       lr.Hamali,
		OtherCharges: lr.OtherCharges,
		TotalCharges: lr.TotalCharges(),
		Status:       string(lr.Status),
		InvoiceID:    lr.InvoiceID,
	}
}

// CreateTruckHiringNoteRequest hires an outside truck for a trip
type CreateTruckHiringNoteRequest struct {
	Number        string          `json:"number" binding:"omitempty,docnumber"`
	Date          string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	TruckNumber   string          `json:"truck_number" binding:"required,max=20"`
	OwnerName     string          `json:"owner_name" binding:"required,max=200"`
	OwnerPhone    string          `json:"owner_phone" binding:"max=20"`
	FromLocation  string          `json:"from_location" binding:"max=200"`
	ToLocation    string          `json:"to_location" binding:"max=200"`
	FreightAmount decimal.Decimal `json:"freight_amount" binding:"required"`
	AdvanceAmount decimal.Decimal `json:"advance_amount"`
}

// UpdateTruckHiringNoteRequest edits a hiring note's route, owner and advance
type UpdateTruckHiringNoteRequest struct {
	OwnerName     string          `json:"owner_name" binding:"required,max=200"`
	OwnerPhone    string          `json:"owner_phone" binding:"max=20"`
	FromLocation  string          `json:"from_location" binding:"max=200"`
	ToLocation    string          `json:"to_location" binding:"max=200"`
	AdvanceAmount decimal.Decimal `json:"advance_amount"`
}

// TruckHiringNoteResponse is the hiring note representation returned by the API
type TruckHiringNoteResponse struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	Date          string          `json:"date"`
	TruckNumber   string          `json:"truck_number"`
	OwnerName     string          `json:"owner_name"`
	OwnerPhone    string          `json:"owner_phone"`
	FromLocation  string          `json:"from_location"`
	ToLocation    string          `json:"to_location"`
	FreightAmount decimal.Decimal `json:"freight_amount"`
	AdvanceAmount decimal.Decimal `json:"advance_amount"`
	BalanceDue    decimal.Decimal `json:"balance_due"`
}

// ToTruckHiringNoteResponse converts a domain hiring note to a response
func ToTruckHiringNoteResponse(n *consignment.TruckHiringNote) TruckHiringNoteResponse {
	return TruckHiringNoteResponse{
		ID:            n.ID,
		Number:        n.Number,
		Date:          n.Date.Format(dateLayout),
		TruckNumber:   n.TruckNumber,
		OwnerName:     n.OwnerName,
		OwnerPhone:    n.OwnerPhone,
		FromLocation:  n.FromLocation,
		ToLocation:    n.ToLocation,
		FreightAmount: n.FreightAmount,
		AdvanceAmount: n.AdvanceAmount,
		BalanceDue:    n.BalanceDue(),
	}
}

// ListQuery selects and pages documents
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

package models

import (
	"time"

	"github.com/freightline/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice domain entity. The
// covered lorry receipt ids are stored as a uuid array; the receipts also
// carry an invoice_id back-reference for querying from the other side.
type InvoiceModel struct {
	BaseModel
	Number          string                `gorm:"type:varchar(30);not null;uniqueIndex"`
	Date            time.Time             `gorm:"not null;index"`
	ClientID        uuid.UUID             `gorm:"type:uuid;not null;index"`
	LorryReceiptIDs pq.StringArray        `gorm:"type:uuid[]"`
	FreightTotal    decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	TaxAmount       decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	GrandTotal      decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	AmountPaid      decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Status          billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'UNPAID'"`
	Remarks         string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	receiptIDs := make([]uuid.UUID, 0, len(m.LorryReceiptIDs))
	for _, raw := range m.LorryReceiptIDs {
		if id, err := uuid.Parse(raw); err == nil {
			receiptIDs = append(receiptIDs, id)
		}
	}
	return &billing.Invoice{
		BaseEntity:      m.BaseModel.ToDomain(),
		Number:          m.Number,
		Date:            m.Date,
		ClientID:        m.ClientID,
		LorryReceiptIDs: receiptIDs,
		FreightTotal:    m.FreightTotal,
		TaxAmount:       m.TaxAmount,
		GrandTotal:      m.GrandTotal,
		AmountPaid:      m.AmountPaid,
		Status:          m.Status,
		Remarks:         m.Remarks,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.Number = inv.Number
	m.Date = inv.Date
	m.ClientID = inv.ClientID
	m.LorryReceiptIDs = make(pq.StringArray, 0, len(inv.LorryReceiptIDs))
	for _, id := range inv.LorryReceiptIDs {
		m.LorryReceiptIDs = append(m.LorryReceiptIDs, id.String())
	}
	m.FreightTotal = inv.FreightTotal
	m.TaxAmount = inv.TaxAmount
	m.GrandTotal = inv.GrandTotal
	m.AmountPaid = inv.AmountPaid
	m.Status = inv.Status
	m.Remarks = inv.Remarks
}

// PaymentModel is the persistence model for the Payment domain entity. The
// invoice and hiring note links are plain ids without foreign key
// constraints: a payment outlives the document it settled.
type PaymentModel struct {
	BaseModel
	Date         time.Time           `gorm:"not null;index"`
	Amount       decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Mode         billing.PaymentMode `gorm:"type:varchar(10);not null"`
	ClientID     uuid.UUID           `gorm:"type:uuid;index"`
	InvoiceID    *uuid.UUID          `gorm:"type:uuid;index"`
	HiringNoteID *uuid.UUID          `gorm:"type:uuid;index"`
	Reference    string              `gorm:"type:varchar(100)"`
	Remarks      string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseEntity:   m.BaseModel.ToDomain(),
		Date:         m.Date,
		Amount:       m.Amount,
		Mode:         m.Mode,
		ClientID:     m.ClientID,
		InvoiceID:    m.InvoiceID,
		HiringNoteID: m.HiringNoteID,
		Reference:    m.Reference,
		Remarks:      m.Remarks,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Date = p.Date
	m.Amount = p.Amount
	m.Mode = p.Mode
	m.ClientID = p.ClientID
	m.InvoiceID = p.InvoiceID
	m.HiringNoteID = p.HiringNoteID
	m.Reference = p.Reference
	m.Remarks = p.Remarks
}

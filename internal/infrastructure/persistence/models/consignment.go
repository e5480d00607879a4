package models

import (
	"time"

	"github.com/freightline/backend/internal/domain/consignment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LorryReceiptModel is the persistence model for the LorryReceipt domain entity.
type LorryReceiptModel struct {
	BaseModel
	Number       string                         `gorm:"type:varchar(30);not null;uniqueIndex"`
	Date         time.Time                      `gorm:"not null;index"`
	ConsignorID  uuid.UUID                      `gorm:"type:uuid;not null;index"`
	ConsigneeID  uuid.UUID                      `gorm:"type:uuid;not null;index"`
	FromLocation string                         `gorm:"type:varchar(200)"`
	ToLocation   string                         `gorm:"type:varchar(200)"`
	TruckNumber  string                         `gorm:"type:varchar(20)"`
	Packages     int                            `gorm:"not null;default:0"`
	Description  string                         `gorm:"type:text"`
	ActualWeight decimal.Decimal                `gorm:"type:decimal(18,3);not null;default:0"`
	Freight      decimal.Decimal                `gorm:"type:decimal(18,2);not null;default:0"`
	Hamali       decimal.Decimal                `gorm:"type:decimal(18,2);not null;default:0"`
	OtherCharges decimal.Decimal                `gorm:"type:decimal(18,2);not null;default:0"`
	Status       consignment.LorryReceiptStatus `gorm:"type:varchar(20);not null;default:'OPEN'"`
	InvoiceID    *uuid.UUID                     `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (LorryReceiptModel) TableName() string {
	return "lorry_receipts"
}

// ToDomain converts the persistence model to a domain LorryReceipt entity.
func (m *LorryReceiptModel) ToDomain() *consignment.LorryReceipt {
	return &consignment.LorryReceipt{
		BaseEntity:   m.BaseModel.ToDomain(),
		Number:       m.Number,
		Date:         m.Date,
		ConsignorID:  m.ConsignorID,
		ConsigneeID:  m.ConsigneeID,
		FromLocation: m.FromLocation,
		ToLocation:   m.ToLocation,
		TruckNumber:  m.TruckNumber,
		Packages:     m.Packages,
		Description:  m.Description,
		ActualWeight: m.ActualWeight,
		Freight:      m.Freight,
		Hamali:       m.Hamali,
		OtherCharges: m.OtherCharges,
		Status:       m.Status,
		InvoiceID:    m.InvoiceID,
	}
}

// FromDomain populates the persistence model from a domain LorryReceipt entity.
func (m *LorryReceiptModel) FromDomain(lr *consignment.LorryReceipt) {
	m.FromDomainBaseEntity(lr.BaseEntity)
	m.Number = lr.Number
	m.Date = lr.Date
	m.ConsignorID = lr.ConsignorID
	m.ConsigneeID = lr.ConsigneeID
	m.FromLocation = lr.FromLocation
	m.ToLocation = lr.ToLocation
	m.TruckNumber = lr.TruckNumber
	m.Packages = lr.Packages
	m.Description = lr.Description
	m.ActualWeight = lr.ActualWeight
	m.Freight = lr.Freight
	m.Hamali = lr.Hamali
	m.OtherCharges = lr.OtherCharges
	m.Status = lr.Status
	m.InvoiceID = lr.InvoiceID
}

// TruckHiringNoteModel is the persistence model for the TruckHiringNote domain entity.
type TruckHiringNoteModel struct {
	BaseModel
	Number        string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	Date          time.Time       `gorm:"not null;index"`
	TruckNumber   string          `gorm:"type:varchar(20);not null"`
	OwnerName     string          `gorm:"type:varchar(200);not null"`
	OwnerPhone    string          `gorm:"type:varchar(20)"`
	FromLocation  string          `gorm:"type:varchar(200)"`
	ToLocation    string          `gorm:"type:varchar(200)"`
	FreightAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AdvanceAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (TruckHiringNoteModel) TableName() string {
	return "truck_hiring_notes"
}

// ToDomain converts the persistence model to a domain TruckHiringNote entity.
func (m *TruckHiringNoteModel) ToDomain() *consignment.TruckHiringNote {
	return &consignment.TruckHiringNote{
		BaseEntity:    m.BaseModel.ToDomain(),
		Number:        m.Number,
		Date:          m.Date,
		TruckNumber:   m.TruckNumber,
		OwnerName:     m.OwnerName,
		OwnerPhone:    m.OwnerPhone,
		FromLocation:  m.FromLocation,
		ToLocation:    m.ToLocation,
		FreightAmount: m.FreightAmount,
		AdvanceAmount: m.AdvanceAmount,
	}
}

// FromDomain populates the persistence model from a domain TruckHiringNote entity.
func (m *TruckHiringNoteModel) FromDomain(n *consignment.TruckHiringNote) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.Number = n.Number
	m.Date = n.Date
	m.TruckNumber = n.TruckNumber
	m.OwnerName = n.OwnerName
	m.OwnerPhone = n.OwnerPhone
	m.FromLocation = n.FromLocation
	m.ToLocation = n.ToLocation
	m.FreightAmount = n.FreightAmount
	m.AdvanceAmount = n.AdvanceAmount
}

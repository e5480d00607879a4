package models

import (
	"github.com/freightline/backend/internal/domain/partner"
)

// ClientModel is the persistence model for the Client domain entity.
type ClientModel struct {
	BaseModel
	Name         string `gorm:"type:varchar(200);not null;index"`
	Address      string `gorm:"type:text"`
	City         string `gorm:"type:varchar(100)"`
	GSTIN        string `gorm:"type:varchar(15)"`
	ContactName  string `gorm:"type:varchar(100)"`
	ContactPhone string `gorm:"type:varchar(20)"`
	ContactEmail string `gorm:"type:varchar(200)"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		Address:      m.Address,
		City:         m.City,
		GSTIN:        m.GSTIN,
		ContactName:  m.ContactName,
		ContactPhone: m.ContactPhone,
		ContactEmail: m.ContactEmail,
		Active:       m.Active,
	}
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *partner.Client) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Address = c.Address
	m.City = c.City
	m.GSTIN = c.GSTIN
	m.ContactName = c.ContactName
	m.ContactPhone = c.ContactPhone
	m.ContactEmail = c.ContactEmail
	m.Active = c.Active
}

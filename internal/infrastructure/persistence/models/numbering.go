package models

import (
	"github.com/freightline/backend/internal/domain/numbering"
)

// NumberingConfigModel is the persistence model for the numbering Config
// entity. After the row is created, the cursor column changes only through
// the conditional UPDATEs in the repository; Save never rewrites it.
type NumberingConfigModel struct {
	BaseModel
	DocType           string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Prefix            string `gorm:"type:varchar(10);not null"`
	StartNumber       int64  `gorm:"not null"`
	EndNumber         int64  `gorm:"not null"`
	CurrentNumber     int64  `gorm:"not null"`
	AllowManualEntry  bool   `gorm:"not null;default:false"`
	AllowOutsideRange bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (NumberingConfigModel) TableName() string {
	return "numbering_configs"
}

// ToDomain converts the persistence model to a domain Config entity.
func (m *NumberingConfigModel) ToDomain() *numbering.Config {
	return &numbering.Config{
		BaseEntity:        m.BaseModel.ToDomain(),
		DocType:           m.DocType,
		Prefix:            m.Prefix,
		StartNumber:       m.StartNumber,
		EndNumber:         m.EndNumber,
		CurrentNumber:     m.CurrentNumber,
		AllowManualEntry:  m.AllowManualEntry,
		AllowOutsideRange: m.AllowOutsideRange,
	}
}

// FromDomain populates the persistence model from a domain Config entity.
func (m *NumberingConfigModel) FromDomain(c *numbering.Config) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.DocType = c.DocType
	m.Prefix = c.Prefix
	m.StartNumber = c.StartNumber
	m.EndNumber = c.EndNumber
	m.CurrentNumber = c.CurrentNumber
	m.AllowManualEntry = c.AllowManualEntry
	m.AllowOutsideRange = c.AllowOutsideRange
}

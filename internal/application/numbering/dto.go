package numbering

import (
	"github.com/freightline/backend/internal/domain/numbering"
)

// ConfigResponse is the numbering configuration for one document type
type ConfigResponse struct {
	DocType           string `json:"doc_type"`
	Prefix            string `json:"prefix"`
	StartNumber       int64  `json:"start_number"`
	EndNumber         int64  `json:"end_number"`
	CurrentNumber     int64  `json:"current_number"`
	NextFormatted     string `json:"next_formatted"`
	AllowManualEntry  bool   `json:"allow_manual_entry"`
	AllowOutsideRange bool   `json:"allow_outside_range"`
}

// UpdateConfigRequest edits the range and entry flags for a document type
type UpdateConfigRequest struct {
	Prefix            string `json:"prefix" binding:"required"`
	StartNumber       int64  `json:"start_number" binding:"required,min=1"`
	EndNumber         int64  `json:"end_number" binding:"required,min=1"`
	AllowManualEntry  bool   `json:"allow_manual_entry"`
	AllowOutsideRange bool   `json:"allow_outside_range"`
}

// ValidateManualRequest carries a manually keyed document number
type ValidateManualRequest struct {
	Number string `json:"number" binding:"required,docnumber"`
}

// IssuedNumberResponse is a number handed out or accepted by the allocator
type IssuedNumberResponse struct {
	DocType string `json:"doc_type"`
	Number  string `json:"number"`
}

// ToConfigResponse converts a domain config to a ConfigResponse
func ToConfigResponse(c *numbering.Config) ConfigResponse {
	return ConfigResponse{
		DocType:           c.DocType,
		Prefix:            c.Prefix,
		StartNumber:       c.StartNumber,
		EndNumber:         c.EndNumber,
		CurrentNumber:     c.CurrentNumber,
		NextFormatted:     c.PeekFormatted(),
		AllowManualEntry:  c.AllowManualEntry,
		AllowOutsideRange: c.AllowOutsideRange,
	}
}

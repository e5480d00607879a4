package numbering

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/freightline/backend/internal/domain/shared"
)

// NumberWidth is the zero-padded width of every issued document number.
const NumberWidth = 6

// Well-known document types with independent numbering sequences.
const (
	DocTypeLorryReceipt    = "lorry-receipt"
	DocTypeInvoice         = "invoice"
	DocTypeTruckHiringNote = "truck-hiring-note"
)

// Numbering errors
var (
	ErrRangeExhausted = shared.NewDomainError("RANGE_EXHAUSTED",
		"Numbering range exhausted; widen the range or allow issuing outside it")
	ErrManualEntryDisabled = shared.NewDomainError("INVALID_MANUAL_NUMBER",
		"Manual number entry is not allowed for this document type")
	ErrUnknownDocType = shared.NewDomainError("INVALID_INPUT", "Unknown document type")
)

// NewInvalidManualNumberError creates an INVALID_MANUAL_NUMBER error with a
// specific reason so the form can tell the user what to fix.
func NewInvalidManualNumberError(reason string) *shared.DomainError {
	return shared.NewDomainError("INVALID_MANUAL_NUMBER", reason)
}

// Config owns the numbering sequence for one document type. CurrentNumber is
// the next number to be issued, never one already handed out.
type Config struct {
	shared.BaseEntity
	DocType           string
	Prefix            string
	StartNumber       int64
	EndNumber         int64
	CurrentNumber     int64
	AllowManualEntry  bool
	AllowOutsideRange bool
}

// NewConfig creates a numbering config with the cursor at the start of the range
func NewConfig(docType, prefix string, start, end int64) (*Config, error) {
	if docType == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Document type cannot be empty")
	}
	if start < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Start number must be at least 1")
	}
	if end < start {
		return nil, shared.NewDomainError("INVALID_INPUT", "End number cannot be below start number")
	}
	return &Config{
		BaseEntity:    shared.NewBaseEntity(),
		DocType:       docType,
		Prefix:        prefix,
		StartNumber:   start,
		EndNumber:     end,
		CurrentNumber: start,
	}, nil
}

// RangeExhausted reports whether the cursor has advanced past the configured
// upper bound.
func (c *Config) RangeExhausted() bool {
	return c.CurrentNumber > c.EndNumber
}

// CanIssue reports whether the next number may be handed out.
func (c *Config) CanIssue() bool {
	return !c.RangeExhausted() || c.AllowOutsideRange
}

// Format renders a raw number as the human-readable identifier.
func (c *Config) Format(n int64) string {
	return fmt.Sprintf("%s%0*d", c.Prefix, NumberWidth, n)
}

// PeekFormatted returns the identifier the next issuance would produce,
// without advancing anything.
func (c *Config) PeekFormatted() string {
	return c.Format(c.CurrentNumber)
}

// Settings is the administrator-editable slice of a Config: prefix, range and
// entry flags. The cursor is deliberately not part of it; it only ever
// advances through issuance.
type Settings struct {
	Prefix            string
	StartNumber       int64
	EndNumber         int64
	AllowManualEntry  bool
	AllowOutsideRange bool
}

// Validate checks the range bounds
func (s Settings) Validate() error {
	if s.StartNumber < 1 {
		return shared.NewDomainError("INVALID_INPUT", "Start number must be at least 1")
	}
	if s.EndNumber < s.StartNumber {
		return shared.NewDomainError("INVALID_INPUT", "End number cannot be below start number")
	}
	return nil
}

// ApplySettings applies an administrator edit. The cursor is pulled up to the
// new start if it would fall below it; it is never moved backwards past
// numbers already issued.
func (c *Config) ApplySettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.Prefix = s.Prefix
	c.StartNumber = s.StartNumber
	c.EndNumber = s.EndNumber
	c.AllowManualEntry = s.AllowManualEntry
	c.AllowOutsideRange = s.AllowOutsideRange
	if c.CurrentNumber < s.StartNumber {
		c.CurrentNumber = s.StartNumber
	}
	return nil
}

// ValidateManual checks a manually entered identifier against the prefix,
// format and configured range. Uniqueness against already-issued documents is
// the caller's concern; see the allocator service.
func (c *Config) ValidateManual(candidate string) (int64, error) {
	if !c.AllowManualEntry {
		return 0, ErrManualEntryDisabled
	}
	digits := strings.TrimPrefix(candidate, c.Prefix)
	if digits == "" {
		return 0, NewInvalidManualNumberError(
			fmt.Sprintf("Number %q has no digits after prefix %q", candidate, c.Prefix))
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, NewInvalidManualNumberError(
			fmt.Sprintf("Number %q is not of the form %s<digits>", candidate, c.Prefix))
	}
	if n < 1 {
		return 0, NewInvalidManualNumberError("Number must be positive")
	}
	if (n < c.StartNumber || n > c.EndNumber) && !c.AllowOutsideRange {
		return 0, NewInvalidManualNumberError(
			fmt.Sprintf("Number %d is outside the configured range [%d, %d]", n, c.StartNumber, c.EndNumber))
	}
	return n, nil
}

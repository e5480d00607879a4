package numbering

import "context"

// Repository persists numbering configurations.
//
// IncrementCurrent is the compare-and-swap at the heart of duplicate-free
// issuance: it advances the cursor by exactly one, but only if the stored
// cursor still equals the value the caller read. A stale read surfaces as
// shared.ErrConcurrencyConflict and the caller retries with a fresh read, so
// two sessions can never both be handed the same number.
//
// UpdateSettings persists an administrator edit without writing the cursor
// column, only pulling the cursor forward when the start of the range was
// raised past it. Save writes the whole row and is reserved for creating a
// config that does not exist yet.
type Repository interface {
	FindAll(ctx context.Context) ([]Config, error)
	FindByDocType(ctx context.Context, docType string) (*Config, error)
	Save(ctx context.Context, config *Config) error
	UpdateSettings(ctx context.Context, docType string, settings Settings) error
	IncrementCurrent(ctx context.Context, docType string, expected int64) error
}

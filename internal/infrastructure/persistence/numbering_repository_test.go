package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/freightline/backend/internal/domain/numbering"
	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockNumberingRepository creates a GormNumberingRepository with a mocked SQL connection
func newMockNumberingRepository(t *testing.T) (*GormNumberingRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormNumberingRepository(gormDB), mock, mockDB
}

func TestGormNumberingRepository_FindByDocType(t *testing.T) {
	t.Run("finds existing config", func(t *testing.T) {
		repo, mock, mockDB := newMockNumberingRepository(t)
		defer mockDB.Close()

		configID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "doc_type", "prefix", "start_number", "end_number", "current_number", "allow_manual_entry", "allow_outside_range"}).
			AddRow(configID, numbering.DocTypeInvoice, "INV", 1, 999999, 42, true, false)

		mock.ExpectQuery(`SELECT \* FROM "numbering_configs" WHERE doc_type = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(numbering.DocTypeInvoice, 1).
			WillReturnRows(rows)

		config, err := repo.FindByDocType(context.Background(), numbering.DocTypeInvoice)

		assert.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, "INV", config.Prefix)
		assert.Equal(t, int64(42), config.CurrentNumber)
		assert.True(t, config.AllowManualEntry)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown doc type", func(t *testing.T) {
		repo, mock, mockDB := newMockNumberingRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "numbering_configs" WHERE doc_type = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("quotation", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		config, err := repo.FindByDocType(context.Background(), "quotation")

		assert.Nil(t, config)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormNumberingRepository_UpdateSettings(t *testing.T) {
	settings := numbering.Settings{
		Prefix:           "INV",
		StartNumber:      200,
		EndNumber:        5000,
		AllowManualEntry: true,
	}

	t.Run("writes settings without touching the cursor", func(t *testing.T) {
		repo, mock, mockDB := newMockNumberingRepository(t)
		defer mockDB.Close()

		// The cursor must never appear as a plain assignment; it is only
		// pulled forward to a raised start.
		mock.ExpectExec(`UPDATE "numbering_configs" SET .*"current_number"=GREATEST\(current_number, \$\d+\).* WHERE doc_type = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateSettings(context.Background(), numbering.DocTypeInvoice, settings)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown doc type", func(t *testing.T) {
		repo, mock, mockDB := newMockNumberingRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "numbering_configs" SET .* WHERE doc_type = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateSettings(context.Background(), "quotation", settings)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormNumberingRepository_IncrementCurrent(t *testing.T) {
	t.Run("advances cursor when expected value matches", func(t *testing.T) {
		repo, mock, mockDB := newMockNumberingRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "numbering_configs" SET "current_number"=current_number \+ 1,"updated_at"=\$1 WHERE doc_type = \$2 AND current_number = \$3`).
			WithArgs(sqlmock.AnyArg(), numbering.DocTypeLorryReceipt, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementCurrent(context.Background(), numbering.DocTypeLorryReceipt, 42)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports conflict when cursor moved under us", func(t *testing.T) {
		repo, mock, mockDB := newMockNumberingRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "numbering_configs" SET "current_number"=current_number \+ 1,"updated_at"=\$1 WHERE doc_type = \$2 AND current_number = \$3`).
			WithArgs(sqlmock.AnyArg(), numbering.DocTypeLorryReceipt, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.IncrementCurrent(context.Background(), numbering.DocTypeLorryReceipt, 42)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

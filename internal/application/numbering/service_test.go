package numbering

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/freightline/backend/internal/domain/numbering"
	"github.com/freightline/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of numbering.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindAll(ctx context.Context) ([]numbering.Config, error) {
	args := m.Called(ctx)
	return args.Get(0).([]numbering.Config), args.Error(1)
}

func (m *MockRepository) FindByDocType(ctx context.Context, docType string) (*numbering.Config, error) {
	args := m.Called(ctx, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*numbering.Config), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, config *numbering.Config) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockRepository) UpdateSettings(ctx context.Context, docType string, settings numbering.Settings) error {
	args := m.Called(ctx, docType, settings)
	return args.Error(0)
}

func (m *MockRepository) IncrementCurrent(ctx context.Context, docType string, expected int64) error {
	args := m.Called(ctx, docType, expected)
	return args.Error(0)
}

// casRepo is an in-memory numbering.Repository with the same conditional
// update semantics as the SQL implementation: the cursor advances only when
// the expected value still matches, and a settings edit never writes it.
type casRepo struct {
	mu                   sync.Mutex
	cfgs                 map[string]*numbering.Config
	beforeUpdateSettings func()
}

func newCASRepo(cfgs ...*numbering.Config) *casRepo {
	r := &casRepo{cfgs: make(map[string]*numbering.Config)}
	for _, cfg := range cfgs {
		r.cfgs[cfg.DocType] = cfg
	}
	return r
}

func (r *casRepo) FindAll(ctx context.Context) ([]numbering.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	configs := make([]numbering.Config, 0, len(r.cfgs))
	for _, cfg := range r.cfgs {
		configs = append(configs, *cfg)
	}
	return configs, nil
}

func (r *casRepo) FindByDocType(ctx context.Context, docType string) (*numbering.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.cfgs[docType]
	if !ok {
		return nil, shared.ErrNotFound
	}
	snapshot := *cfg
	return &snapshot, nil
}

func (r *casRepo) Save(ctx context.Context, config *numbering.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *config
	r.cfgs[config.DocType] = &stored
	return nil
}

func (r *casRepo) UpdateSettings(ctx context.Context, docType string, settings numbering.Settings) error {
	if hook := r.beforeUpdateSettings; hook != nil {
		r.beforeUpdateSettings = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.cfgs[docType]
	if !ok {
		return shared.ErrNotFound
	}
	cfg.Prefix = settings.Prefix
	cfg.StartNumber = settings.StartNumber
	cfg.EndNumber = settings.EndNumber
	cfg.AllowManualEntry = settings.AllowManualEntry
	cfg.AllowOutsideRange = settings.AllowOutsideRange
	if cfg.CurrentNumber < settings.StartNumber {
		cfg.CurrentNumber = settings.StartNumber
	}
	return nil
}

func (r *casRepo) IncrementCurrent(ctx context.Context, docType string, expected int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.cfgs[docType]
	if !ok || cfg.CurrentNumber != expected {
		return shared.ErrConcurrencyConflict
	}
	cfg.CurrentNumber++
	return nil
}

func (r *casRepo) current(docType string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfgs[docType].CurrentNumber
}

func testDefaults() map[string]Defaults {
	return map[string]Defaults{
		numbering.DocTypeLorryReceipt:    {Prefix: "LR", StartNumber: 1, EndNumber: 999999},
		numbering.DocTypeInvoice:         {Prefix: "INV", StartNumber: 1, EndNumber: 999999, AllowManualEntry: true},
		numbering.DocTypeTruckHiringNote: {Prefix: "THN", StartNumber: 100, EndNumber: 999999},
	}
}

func testConfig(t *testing.T, docType, prefix string, start, end, current int64) *numbering.Config {
	t.Helper()
	cfg, err := numbering.NewConfig(docType, prefix, start, end)
	require.NoError(t, err)
	cfg.CurrentNumber = current
	return cfg
}

func TestNextNumberSequential(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testDefaults())
	ctx := context.Background()

	cfg := testConfig(t, numbering.DocTypeLorryReceipt, "LR", 1, 999999, 1)
	repo.On("FindByDocType", ctx, numbering.DocTypeLorryReceipt).Return(cfg, nil).Once()
	repo.On("IncrementCurrent", ctx, numbering.DocTypeLorryReceipt, int64(1)).Return(nil).Once()
	repo.On("IncrementCurrent", ctx, numbering.DocTypeLorryReceipt, int64(2)).Return(nil).Once()
	repo.On("IncrementCurrent", ctx, numbering.DocTypeLorryReceipt, int64(3)).Return(nil).Once()

	for i, want := range []string{"LR000001", "LR000002", "LR000003"} {
		got, err := svc.NextNumber(ctx, numbering.DocTypeLorryReceipt)
		require.NoError(t, err, "issue %d", i+1)
		assert.Equal(t, want, got)
	}
	repo.AssertExpectations(t)
}

func TestNextNumberRetriesOnConflict(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testDefaults())
	ctx := context.Background()

	// Cursor read as 5, but another session takes 5 first. The retry
	// re-reads a cursor of 6 and wins.
	stale := testConfig(t, numbering.DocTypeInvoice, "INV", 1, 999999, 5)
	fresh := testConfig(t, numbering.DocTypeInvoice, "INV", 1, 999999, 6)
	repo.On("FindByDocType", ctx, numbering.DocTypeInvoice).Return(stale, nil).Once()
	repo.On("IncrementCurrent", ctx, numbering.DocTypeInvoice, int64(5)).
		Return(shared.ErrConcurrencyConflict).Once()
	repo.On("FindByDocType", ctx, numbering.DocTypeInvoice).Return(fresh, nil).Once()
	repo.On("IncrementCurrent", ctx, numbering.DocTypeInvoice, int64(6)).Return(nil).Once()

	got, err := svc.NextNumber(ctx, numbering.DocTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, "INV000006", got)
	repo.AssertExpectations(t)
}

func TestNextNumberGivesUpAfterRepeatedConflicts(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testDefaults())
	ctx := context.Background()

	repo.On("FindByDocType", ctx, numbering.DocTypeInvoice).
		Return(testConfig(t, numbering.DocTypeInvoice, "INV", 1, 999999, 5), nil)
	repo.On("IncrementCurrent", ctx, numbering.DocTypeInvoice, int64(5)).
		Return(shared.ErrConcurrencyConflict)

	_, err := svc.NextNumber(ctx, numbering.DocTypeInvoice)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	repo.AssertNumberOfCalls(t, "IncrementCurrent", maxIssueAttempts)
}

func TestNextNumberPersistenceFailureDoesNotAdvance(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testDefaults())
	ctx := context.Background()

	cfg := testConfig(t, numbering.DocTypeLorryReceipt, "LR", 1, 999999, 1)
	repo.On("FindByDocType", ctx, numbering.DocTypeLorryReceipt).Return(cfg, nil).Once()
	repo.On("IncrementCurrent", ctx, numbering.DocTypeLorryReceipt, int64(1)).
		Return(errors.New("connection reset")).Once()

	_, err := svc.NextNumber(ctx, numbering.DocTypeLorryReceipt)
	require.Error(t, err)

	// The failed write must not have burned the number: the next attempt
	// issues the same one.
	repo.On("IncrementCurrent", ctx, numbering.DocTypeLorryReceipt, int64(1)).Return(nil).Once()
	got, err := svc.NextNumber(ctx, numbering.DocTypeLorryReceipt)
	require.NoError(t, err)
	assert.Equal(t, "LR000001", got)
	repo.AssertExpectations(t)
}

func TestNextNumberRangeExhausted(t *testing.T) {
	ctx := context.Background()

	t.Run("exhausted range refuses to issue", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testDefaults())
		repo.On("FindByDocType", ctx, numbering.DocTypeInvoice).
			Return(testConfig(t, numbering.DocTypeInvoice, "INV", 1, 2, 3), nil).Once()

		_, err := svc.NextNumber(ctx, numbering.DocTypeInvoice)
		assert.ErrorIs(t, err, numbering.ErrRangeExhausted)
		repo.AssertNotCalled(t, "IncrementCurrent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("override keeps issuing past the end", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testDefaults())
		cfg := testConfig(t, numbering.DocTypeInvoice, "INV", 1, 2, 3)
		cfg.AllowOutsideRange = true
		repo.On("FindByDocType", ctx, numbering.DocTypeInvoice).Return(cfg, nil).Once()
		repo.On("IncrementCurrent", ctx, numbering.DocTypeInvoice, int64(3)).Return(nil).Once()

		got, err := svc.NextNumber(ctx, numbering.DocTypeInvoice)
		require.NoError(t, err)
		assert.Equal(t, "INV000003", got)
	})
}

func TestConfigCreatedFromDefaultsOnFirstTouch(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testDefaults())
	ctx := context.Background()

	repo.On("FindByDocType", ctx, numbering.DocTypeTruckHiringNote).
		Return(nil, shared.ErrNotFound).Once()
	repo.On("Save", ctx, mock.MatchedBy(func(c *numbering.Config) bool {
		return c.DocType == numbering.DocTypeTruckHiringNote &&
			c.Prefix == "THN" && c.StartNumber == 100 && c.CurrentNumber == 100
	})).Return(nil).Once()
	repo.On("IncrementCurrent", ctx, numbering.DocTypeTruckHiringNote, int64(100)).Return(nil).Once()

	got, err := svc.NextNumber(ctx, numbering.DocTypeTruckHiringNote)
	require.NoError(t, err)
	assert.Equal(t, "THN000100", got)
	repo.AssertExpectations(t)
}

func TestConfigUnknownDocType(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testDefaults())
	ctx := context.Background()

	repo.On("FindByDocType", ctx, "delivery-challan").Return(nil, shared.ErrNotFound).Once()

	_, err := svc.NextNumber(ctx, "delivery-challan")
	assert.ErrorIs(t, err, numbering.ErrUnknownDocType)
}

func TestValidateManualNumber(t *testing.T) {
	ctx := context.Background()

	newService := func(t *testing.T, cfg *numbering.Config) (*Service, *MockRepository) {
		t.Helper()
		repo := new(MockRepository)
		repo.On("FindByDocType", ctx, cfg.DocType).Return(cfg, nil).Once()
		return NewService(repo, testDefaults()), repo
	}

	t.Run("valid number is normalized", func(t *testing.T) {
		cfg := testConfig(t, numbering.DocTypeInvoice, "INV", 1, 999, 10)
		cfg.AllowManualEntry = true
		svc, _ := newService(t, cfg)

		got, err := svc.ValidateManualNumber(ctx, numbering.DocTypeInvoice, "INV50")
		require.NoError(t, err)
		assert.Equal(t, "INV000050", got)
	})

	t.Run("duplicate rejected by registered check", func(t *testing.T) {
		cfg := testConfig(t, numbering.DocTypeInvoice, "INV", 1, 999, 10)
		cfg.AllowManualEntry = true
		svc, _ := newService(t, cfg)
		svc.RegisterUniquenessCheck(numbering.DocTypeInvoice, func(ctx context.Context, number string) (bool, error) {
			return number == "INV000050", nil
		})

		_, err := svc.ValidateManualNumber(ctx, numbering.DocTypeInvoice, "INV000050")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_MANUAL_NUMBER", domainErr.Code)

		got, err := svc.ValidateManualNumber(ctx, numbering.DocTypeInvoice, "INV000051")
		require.NoError(t, err)
		assert.Equal(t, "INV000051", got)
	})

	t.Run("manual entry disabled", func(t *testing.T) {
		cfg := testConfig(t, numbering.DocTypeLorryReceipt, "LR", 1, 999, 10)
		svc, _ := newService(t, cfg)

		_, err := svc.ValidateManualNumber(ctx, numbering.DocTypeLorryReceipt, "LR000050")
		assert.ErrorIs(t, err, numbering.ErrManualEntryDisabled)
	})

	t.Run("uniqueness check failure propagates", func(t *testing.T) {
		cfg := testConfig(t, numbering.DocTypeInvoice, "INV", 1, 999, 10)
		cfg.AllowManualEntry = true
		svc, _ := newService(t, cfg)
		svc.RegisterUniquenessCheck(numbering.DocTypeInvoice, func(ctx context.Context, number string) (bool, error) {
			return false, errors.New("query timeout")
		})

		_, err := svc.ValidateManualNumber(ctx, numbering.DocTypeInvoice, "INV000050")
		assert.EqualError(t, err, "query timeout")
	})
}

func TestUpdateConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("cursor pulled up to raised start", func(t *testing.T) {
		repo := newCASRepo(testConfig(t, numbering.DocTypeInvoice, "INV", 1, 999, 50))
		svc := NewService(repo, testDefaults())

		resp, err := svc.UpdateConfig(ctx, numbering.DocTypeInvoice, UpdateConfigRequest{
			Prefix:            "INV",
			StartNumber:       200,
			EndNumber:         5000,
			AllowManualEntry:  true,
			AllowOutsideRange: false,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(200), resp.CurrentNumber)
		assert.Equal(t, "INV000200", resp.NextFormatted)

		// The updated config is served from cache afterwards
		got, err := svc.NextNumber(ctx, numbering.DocTypeInvoice)
		require.NoError(t, err)
		assert.Equal(t, "INV000200", got)
	})

	t.Run("inverted range rejected before persisting", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testDefaults())
		repo.On("FindByDocType", ctx, numbering.DocTypeInvoice).
			Return(testConfig(t, numbering.DocTypeInvoice, "INV", 1, 999, 50), nil).Once()

		_, err := svc.UpdateConfig(ctx, numbering.DocTypeInvoice, UpdateConfigRequest{
			Prefix:      "INV",
			StartNumber: 900,
			EndNumber:   100,
		})
		require.Error(t, err)
		repo.AssertNotCalled(t, "UpdateSettings", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateConfigDoesNotRewindConcurrentIssuance(t *testing.T) {
	ctx := context.Background()
	repo := newCASRepo(testConfig(t, numbering.DocTypeInvoice, "INV", 1, 999999, 5))
	svc := NewService(repo, testDefaults())

	// Another session issues a number after the edit read its snapshot but
	// before the edit is persisted.
	var issued string
	repo.beforeUpdateSettings = func() {
		n, err := svc.NextNumber(ctx, numbering.DocTypeInvoice)
		require.NoError(t, err)
		issued = n
	}

	resp, err := svc.UpdateConfig(ctx, numbering.DocTypeInvoice, UpdateConfigRequest{
		Prefix:           "INV",
		StartNumber:      1,
		EndNumber:        5000,
		AllowManualEntry: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "INV000005", issued)

	// The edit must not have rewound the stored cursor past the issued
	// number, and the next issuance must not repeat it.
	assert.Equal(t, int64(6), repo.current(numbering.DocTypeInvoice))
	assert.Equal(t, int64(6), resp.CurrentNumber)
	next, err := svc.NextNumber(ctx, numbering.DocTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, "INV000006", next)
}

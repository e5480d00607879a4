package numbering

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/freightline/backend/internal/domain/numbering"
	"github.com/freightline/backend/internal/domain/shared"
)

// maxIssueAttempts bounds the retry loop when two sessions race for the same
// number. Each retry re-reads the cursor, so the loop only spins while other
// writers keep winning.
const maxIssueAttempts = 5

// Defaults seeds the numbering config for a document type the first time it
// is touched.
type Defaults struct {
	Prefix           string
	StartNumber      int64
	EndNumber        int64
	AllowManualEntry bool
}

// UniquenessCheck reports whether a formatted document number is already in
// use. Document services register one per document type so manual entries are
// rejected before they collide in the documents table.
type UniquenessCheck func(ctx context.Context, number string) (bool, error)

// Service is the single authority for issuing document numbers. It keeps a
// per-type cache of the config so issuance does not re-read the config row,
// but the cursor itself only ever advances through the repository's
// compare-and-swap, so the cache can never hand out a duplicate.
type Service struct {
	repo     numbering.Repository
	defaults map[string]Defaults

	mu         sync.RWMutex
	cache      map[string]*numbering.Config
	uniqueness map[string]UniquenessCheck
}

// NewService creates the allocator service
func NewService(repo numbering.Repository, defaults map[string]Defaults) *Service {
	return &Service{
		repo:       repo,
		defaults:   defaults,
		cache:      make(map[string]*numbering.Config),
		uniqueness: make(map[string]UniquenessCheck),
	}
}

// RegisterUniquenessCheck wires a per-type duplicate check into manual number
// validation. Called once per document type during startup wiring.
func (s *Service) RegisterUniquenessCheck(docType string, check UniquenessCheck) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uniqueness[docType] = check
}

// NextNumber issues the next identifier for a document type. The cursor is
// persisted before the number is returned, so a number handed to a caller is
// never handed out again even if the caller crashes without using it.
func (s *Service) NextNumber(ctx context.Context, docType string) (string, error) {
	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		cfg, err := s.config(ctx, docType)
		if err != nil {
			return "", err
		}
		if !cfg.CanIssue() {
			return "", numbering.ErrRangeExhausted
		}

		n := cfg.CurrentNumber
		if err := s.repo.IncrementCurrent(ctx, docType, n); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				// Another session took this number first; drop the stale
				// cached cursor and retry with a fresh read.
				s.evict(docType)
				continue
			}
			return "", err
		}

		s.advance(docType, n+1)
		return cfg.Format(n), nil
	}
	return "", shared.ErrConcurrencyConflict
}

// ValidateManualNumber checks a manually keyed identifier against the type's
// config and the registered uniqueness check, and returns it in canonical
// prefixed zero-padded form.
func (s *Service) ValidateManualNumber(ctx context.Context, docType, candidate string) (string, error) {
	cfg, err := s.config(ctx, docType)
	if err != nil {
		return "", err
	}

	n, err := cfg.ValidateManual(candidate)
	if err != nil {
		return "", err
	}
	formatted := cfg.Format(n)

	s.mu.RLock()
	check := s.uniqueness[docType]
	s.mu.RUnlock()
	if check != nil {
		taken, err := check(ctx, formatted)
		if err != nil {
			return "", err
		}
		if taken {
			return "", numbering.NewInvalidManualNumberError(
				fmt.Sprintf("Number %s is already in use", formatted))
		}
	}
	return formatted, nil
}

// GetConfig returns the numbering config for a document type, creating it
// from the configured defaults on first touch.
func (s *Service) GetConfig(ctx context.Context, docType string) (*ConfigResponse, error) {
	cfg, err := s.config(ctx, docType)
	if err != nil {
		return nil, err
	}
	resp := ToConfigResponse(&cfg)
	return &resp, nil
}

// ListConfigs returns the numbering config for every known document type
func (s *Service) ListConfigs(ctx context.Context) ([]ConfigResponse, error) {
	docTypes := make([]string, 0, len(s.defaults))
	for docType := range s.defaults {
		docTypes = append(docTypes, docType)
	}
	sort.Strings(docTypes)

	responses := make([]ConfigResponse, 0, len(docTypes))
	for _, docType := range docTypes {
		cfg, err := s.config(ctx, docType)
		if err != nil {
			return nil, err
		}
		responses = append(responses, ToConfigResponse(&cfg))
	}
	return responses, nil
}

// UpdateConfig applies an administrator edit of the range, prefix and entry
// flags for a document type. The edit is persisted without writing the cursor
// column, so an issuance landing while the edit is in flight keeps its
// number; the cache is refreshed from a re-read, never from the pre-edit
// snapshot.
func (s *Service) UpdateConfig(ctx context.Context, docType string, req UpdateConfigRequest) (*ConfigResponse, error) {
	// Loads lazily on first touch, so the row exists before the update.
	cfg, err := s.config(ctx, docType)
	if err != nil {
		return nil, err
	}

	settings := numbering.Settings{
		Prefix:            req.Prefix,
		StartNumber:       req.StartNumber,
		EndNumber:         req.EndNumber,
		AllowManualEntry:  req.AllowManualEntry,
		AllowOutsideRange: req.AllowOutsideRange,
	}
	// Applied to the snapshot only to validate; the snapshot's cursor may be
	// stale by the time the edit lands and is never written back.
	if err := cfg.ApplySettings(settings); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSettings(ctx, docType, settings); err != nil {
		return nil, err
	}

	s.evict(docType)
	fresh, err := s.config(ctx, docType)
	if err != nil {
		return nil, err
	}
	resp := ToConfigResponse(&fresh)
	return &resp, nil
}

// config returns a snapshot of the config for a document type, loading and
// lazily creating it as needed. Callers get a copy; the cached entity is only
// mutated under the service lock.
func (s *Service) config(ctx context.Context, docType string) (numbering.Config, error) {
	s.mu.RLock()
	if cached, ok := s.cache[docType]; ok {
		cfg := *cached
		s.mu.RUnlock()
		return cfg, nil
	}
	s.mu.RUnlock()

	cfg, err := s.repo.FindByDocType(ctx, docType)
	if errors.Is(err, shared.ErrNotFound) {
		cfg, err = s.createDefault(ctx, docType)
	}
	if err != nil {
		return numbering.Config{}, err
	}

	s.mu.Lock()
	s.cache[docType] = cfg
	snapshot := *cfg
	s.mu.Unlock()
	return snapshot, nil
}

func (s *Service) createDefault(ctx context.Context, docType string) (*numbering.Config, error) {
	def, ok := s.defaults[docType]
	if !ok {
		return nil, numbering.ErrUnknownDocType
	}
	cfg, err := numbering.NewConfig(docType, def.Prefix, def.StartNumber, def.EndNumber)
	if err != nil {
		return nil, err
	}
	cfg.AllowManualEntry = def.AllowManualEntry
	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *Service) advance(docType string, next int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.cache[docType]; ok && cached.CurrentNumber < next {
		cached.CurrentNumber = next
	}
}

func (s *Service) evict(docType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, docType)
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/macrolens/maxprotein/internal/domain"
	"github.com/macrolens/maxprotein/internal/selection"
)

// SelectionServiceConfig holds configuration for the selection service
type SelectionServiceConfig struct {
	// Defaults fill in parameters a request leaves unset
	Defaults domain.SelectionParams
	// MaxExhaustiveCandidates caps the limit of exhaustive requests
	MaxExhaustiveCandidates int
	// Workers is the number of goroutines used by exhaustive search
	Workers  int
	CacheTTL time.Duration
}

// SelectionService filters the catalog and runs a selection algorithm over it,
// caching results per catalog generation and parameters
type SelectionService struct {
	catalog *Catalog
	cache   domain.CacheRepository
	config  SelectionServiceConfig
}

// NewSelectionService creates a new selection service with dependencies
func NewSelectionService(
	catalog *Catalog,
	cache domain.CacheRepository,
	config SelectionServiceConfig,
) *SelectionService {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.MaxExhaustiveCandidates < 1 || config.MaxExhaustiveCandidates >= selection.MaxCandidates {
		config.MaxExhaustiveCandidates = selection.MaxCandidates - 1
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = time.Hour
	}

	return &SelectionService{
		catalog: catalog,
		cache:   cache,
		config:  config,
	}
}

// Select runs algorithm over the filtered catalog.
// Flow: resolve params -> check cache -> filter -> select -> aggregate -> cache -> return
func (s *SelectionService) Select(
	ctx context.Context,
	algorithm domain.Algorithm,
	request *domain.SelectionRequest,
) (*domain.Selection, error) {
	params, err := s.resolve(algorithm, request)
	if err != nil {
		return nil, err
	}

	foods, generation, err := s.catalog.snapshot()
	if err != nil {
		return nil, err
	}

	return s.selectFrom(ctx, foods, generation, algorithm, params)
}

// Compare runs both algorithms over the same catalog snapshot, so a reload
// in between cannot make the two results disagree on their input
func (s *SelectionService) Compare(ctx context.Context, request *domain.SelectionRequest) (*domain.Comparison, error) {
	exhaustiveParams, err := s.resolve(domain.AlgorithmExhaustive, request)
	if err != nil {
		return nil, err
	}
	greedyParams, err := s.resolve(domain.AlgorithmGreedy, request)
	if err != nil {
		return nil, err
	}

	foods, generation, err := s.catalog.snapshot()
	if err != nil {
		return nil, err
	}

	exhaustive, err := s.selectFrom(ctx, foods, generation, domain.AlgorithmExhaustive, exhaustiveParams)
	if err != nil {
		return nil, err
	}
	greedy, err := s.selectFrom(ctx, foods, generation, domain.AlgorithmGreedy, greedyParams)
	if err != nil {
		return nil, err
	}

	return &domain.Comparison{
		Greedy:      greedy,
		Exhaustive:  exhaustive,
		ProteinGapG: exhaustive.TotalProteinG - greedy.TotalProteinG,
	}, nil
}

// selectFrom runs algorithm over foods, the catalog at the given generation
func (s *SelectionService) selectFrom(
	ctx context.Context,
	foods []domain.Food,
	generation uint64,
	algorithm domain.Algorithm,
	params domain.SelectionParams,
) (*domain.Selection, error) {
	cacheKey := generateCacheKey(generation, algorithm, params)
	if cached, ok := s.getFromCache(ctx, cacheKey); ok {
		selectionCacheHits.Inc()
		slog.Debug("selection cache hit", "key", cacheKey)
		return cached, nil
	}

	candidates := selection.Filter(foods, params.MinKcal, params.MaxKcal, params.Limit)

	start := time.Now()
	chosen, err := s.run(ctx, algorithm, candidates, params.TotalKcal)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	totalKcal, totalProtein := selection.Sum(chosen)
	result := &domain.Selection{
		Algorithm:     algorithm,
		Params:        params,
		Candidates:    len(candidates),
		Foods:         chosen,
		TotalKcal:     totalKcal,
		TotalProteinG: totalProtein,
	}

	selectionsTotal.WithLabelValues(string(algorithm)).Inc()
	selectionDuration.WithLabelValues(string(algorithm)).Observe(elapsed.Seconds())
	selectionCandidates.WithLabelValues(string(algorithm)).Observe(float64(len(candidates)))
	slog.Info("selection computed",
		"algorithm", algorithm,
		"candidates", len(candidates),
		"chosen", len(chosen),
		"kcal", totalKcal,
		"protein_g", totalProtein,
		"elapsed", elapsed,
	)

	if err := s.cache.Set(ctx, cacheKey, result, s.config.CacheTTL); err != nil {
		slog.Warn("failed to cache selection", "key", cacheKey, "error", err)
	}

	return result, nil
}

// run dispatches to the selection algorithm. Exhaustive search stops as soon as ctx is done.
func (s *SelectionService) run(
	ctx context.Context,
	algorithm domain.Algorithm,
	candidates []domain.Food,
	totalKcal int,
) ([]domain.Food, error) {
	switch algorithm {
	case domain.AlgorithmGreedy:
		return selection.Greedy(candidates, totalKcal), nil
	case domain.AlgorithmExhaustive:
		if s.config.Workers > 1 {
			return selection.ExhaustiveParallel(ctx, candidates, totalKcal, s.config.Workers)
		}
		return selection.ExhaustiveContext(ctx, candidates, totalKcal)
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", domain.ErrInvalidRequest, algorithm)
	}
}

// resolve fills unset request fields from defaults and validates the result
func (s *SelectionService) resolve(algorithm domain.Algorithm, request *domain.SelectionRequest) (domain.SelectionParams, error) {
	params := s.config.Defaults
	if request != nil {
		if request.MinKcal != nil {
			params.MinKcal = *request.MinKcal
		}
		if request.MaxKcal != nil {
			params.MaxKcal = *request.MaxKcal
		}
		if request.Limit != nil {
			params.Limit = *request.Limit
		}
		if request.TotalKcal != nil {
			params.TotalKcal = *request.TotalKcal
		}
	}

	switch {
	case algorithm != domain.AlgorithmGreedy && algorithm != domain.AlgorithmExhaustive:
		return params, fmt.Errorf("%w: unknown algorithm %q", domain.ErrInvalidRequest, algorithm)
	case params.MinKcal < 0:
		return params, fmt.Errorf("%w: minKcal must not be negative", domain.ErrInvalidRequest)
	case params.MinKcal >= params.MaxKcal:
		return params, fmt.Errorf("%w: minKcal must be less than maxKcal", domain.ErrInvalidRequest)
	case params.Limit <= 0:
		return params, fmt.Errorf("%w: limit must be positive", domain.ErrInvalidRequest)
	case params.TotalKcal < 0:
		return params, fmt.Errorf("%w: totalKcal must not be negative", domain.ErrInvalidRequest)
	case algorithm == domain.AlgorithmExhaustive && params.Limit > s.config.MaxExhaustiveCandidates:
		return params, fmt.Errorf("%w: exhaustive limit %d exceeds %d",
			domain.ErrInvalidRequest, params.Limit, s.config.MaxExhaustiveCandidates)
	}

	return params, nil
}

// generateCacheKey identifies a selection by catalog generation, algorithm and parameters.
// Format: "selection:{generation}:{algorithm}:{min}:{max}:{limit}:{total}"
func generateCacheKey(generation uint64, algorithm domain.Algorithm, p domain.SelectionParams) string {
	return fmt.Sprintf("selection:%d:%s:%d:%d:%d:%d",
		generation, algorithm, p.MinKcal, p.MaxKcal, p.Limit, p.TotalKcal)
}

// getFromCache retrieves a selection from cache
func (s *SelectionService) getFromCache(ctx context.Context, key string) (*domain.Selection, bool) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	cached, ok := value.(*domain.Selection)
	return cached, ok
}

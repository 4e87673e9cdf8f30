package selection

import (
	"context"
	"fmt"
	"math/bits"

	"golang.org/x/sync/errgroup"

	"github.com/macrolens/maxprotein/internal/domain"
)

// MaxCandidates is the exclusive upper bound on the number of candidates
// Exhaustive accepts. Subsets are indexed by a uint64 mask.
const MaxCandidates = 64

// cancelCheckInterval is how many masks are evaluated between context checks
const cancelCheckInterval = 1 << 12

// subset is the best feasible mask found in some range of masks
type subset struct {
	mask     uint64
	kcal     int
	proteinG int
	found    bool
}

// better reports whether s should replace cur. Only a strict protein
// improvement replaces an existing subset, so the earliest mask wins ties.
func (s subset) better(cur subset) bool {
	return s.found && (!cur.found || s.proteinG > cur.proteinG)
}

// Exhaustive returns the subset of candidates with the most protein among
// those whose calories do not exceed totalKcal.
//
// Masks are enumerated from 0 to 2^n-1 and a subset only replaces the best
// one on a strict protein improvement, so among ties the one with the lowest
// mask is returned. Cost is O(n * 2^n); callers should keep n well under 30.
// It fails with domain.ErrTooManyCandidates when len(candidates) >= 64.
func Exhaustive(candidates []domain.Food, totalKcal int) ([]domain.Food, error) {
	return ExhaustiveContext(context.Background(), candidates, totalKcal)
}

// ExhaustiveContext is Exhaustive on the calling goroutine, returning
// ctx.Err() as soon as ctx is done.
func ExhaustiveContext(ctx context.Context, candidates []domain.Food, totalKcal int) ([]domain.Food, error) {
	if err := checkCandidates(candidates); err != nil {
		return nil, err
	}

	best, err := scan(ctx, candidates, totalKcal, 0, uint64(1)<<len(candidates))
	if err != nil {
		return nil, err
	}
	return best.foods(candidates), nil
}

// ExhaustiveParallel computes the same result as Exhaustive, splitting the
// mask range into contiguous chunks searched by up to workers goroutines.
// Chunk winners are reduced in mask order with the same strict comparison,
// so ties resolve exactly as in Exhaustive. It stops early when ctx is done.
func ExhaustiveParallel(ctx context.Context, candidates []domain.Food, totalKcal, workers int) ([]domain.Food, error) {
	if err := checkCandidates(candidates); err != nil {
		return nil, err
	}

	total := uint64(1) << len(candidates)
	if workers < 1 {
		workers = 1
	}
	if uint64(workers) > total {
		workers = int(total)
	}
	chunk := (total + uint64(workers) - 1) / uint64(workers)

	results := make([]subset, workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := range workers {
		lo := uint64(i) * chunk
		if lo >= total {
			break
		}
		hi := min(lo+chunk, total)
		g.Go(func() error {
			best, err := scan(gctx, candidates, totalKcal, lo, hi)
			if err != nil {
				return err
			}
			results[i] = best
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var best subset
	for _, r := range results {
		if r.better(best) {
			best = r
		}
	}
	return best.foods(candidates), nil
}

func checkCandidates(candidates []domain.Food) error {
	if n := len(candidates); n >= MaxCandidates {
		return fmt.Errorf("%w: got %d, must be fewer than %d", domain.ErrTooManyCandidates, n, MaxCandidates)
	}
	return nil
}

// scan evaluates every mask in [lo, hi) and returns the best feasible one
func scan(ctx context.Context, candidates []domain.Food, totalKcal int, lo, hi uint64) (subset, error) {
	var best subset
	trial := make([]domain.Food, 0, len(candidates))

	for mask := lo; mask < hi; mask++ {
		if (mask-lo)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return subset{}, err
			}
		}

		trial = pick(trial[:0], candidates, mask)
		kcal, proteinG := Sum(trial)
		if kcal > totalKcal {
			continue
		}

		cand := subset{mask: mask, kcal: kcal, proteinG: proteinG, found: true}
		if cand.better(best) {
			best = cand
		}
	}
	return best, nil
}

// pick appends to dst the candidates whose bit is set in mask
func pick(dst, candidates []domain.Food, mask uint64) []domain.Food {
	for rest := mask; rest != 0; rest &= rest - 1 {
		dst = append(dst, candidates[bits.TrailingZeros64(rest)])
	}
	return dst
}

// foods materializes the subset; an unfound subset yields an empty slice
func (s subset) foods(candidates []domain.Food) []domain.Food {
	result := make([]domain.Food, 0, bits.OnesCount64(s.mask))
	if !s.found {
		return result
	}
	return pick(result, candidates, s.mask)
}

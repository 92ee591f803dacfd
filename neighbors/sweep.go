package neighbors

import (
	"github.com/YuminosukeSato/pointml/core/parallel"
	"github.com/YuminosukeSato/pointml/dataset"
	"github.com/YuminosukeSato/pointml/pkg/errors"
	"github.com/YuminosukeSato/pointml/pkg/log"
)

// ParallelThreshold is the number of k values above which Sweep fans the
// work out across goroutines. Below it the sweep runs on the caller.
const ParallelThreshold = 64

// SweepResult is the leave-one-out success count for one k.
type SweepResult struct {
	K         int
	Successes int
}

// Sweep runs LeaveOneOut for every k from 1 to n-1. Results are ordered by
// k and do not depend on whether the sweep ran in parallel.
func Sweep(points []dataset.LabeledPoint, dist Distance) ([]SweepResult, error) {
	n := len(points)
	if n == 0 {
		return nil, errors.NewModelError("neighbors.Sweep", "empty data", errors.ErrEmptyData)
	}
	if n < 2 {
		return nil, errors.NewValidationError("points", "leave-one-out needs at least two points", n)
	}
	if dist == nil {
		dist = Euclidean
	}

	results := make([]SweepResult, n-1)
	errs := make([]error, n-1)

	// Each chunk owns its mask and buffers; points are only read.
	parallel.ParallelizeWithThreshold(len(results), ParallelThreshold, func(start, end int) {
		excluded := make([]bool, n)
		s := newScratch(n)
		for slot := start; slot < end; slot++ {
			k := slot + 1
			successes, err := leaveOneOut(points, excluded, s, dist, k)
			results[slot] = SweepResult{K: k, Successes: successes}
			errs[slot] = err
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	if best, err := Best(results); err == nil {
		log.GetLoggerWithName("neighbors").Info("Leave-one-out sweep finished",
			log.OperationKey, log.OperationSweep,
			log.SamplesKey, n,
			log.NeighborsKey, best.K,
			log.SuccessesKey, best.Successes,
		)
	}
	return results, nil
}

// Best returns the result with the most successes, preferring the smallest k
// among ties.
func Best(results []SweepResult) (SweepResult, error) {
	if len(results) == 0 {
		return SweepResult{}, errors.NewModelError("neighbors.Best", "no results", errors.ErrEmptyData)
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Successes > best.Successes || (r.Successes == best.Successes && r.K < best.K) {
			best = r
		}
	}
	return best, nil
}

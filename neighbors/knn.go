// Package neighbors implements k-nearest-neighbors classification of
// labeled 2-D points and its leave-one-out evaluation.
//
// Points are never reordered or copied: every query sorts a parallel array
// of indices, and leave-one-out excludes a point by flagging it in a mask.
package neighbors

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/YuminosukeSato/pointml/dataset"
	"github.com/YuminosukeSato/pointml/pkg/errors"
)

// scratch holds the per-goroutine buffers reused across queries.
type scratch struct {
	idx    []int
	dist   []float64
	labels []int
}

func newScratch(n int) *scratch {
	return &scratch{
		idx:    make([]int, 0, n),
		dist:   make([]float64, n),
		labels: make([]int, 0, n),
	}
}

// classify votes among the k nearest points not flagged in excluded.
// excluded may be nil.
func (s *scratch) classify(points []dataset.LabeledPoint, excluded []bool, query dataset.Point, dist Distance, k int) (int, error) {
	s.idx = s.idx[:0]
	for i, p := range points {
		if excluded != nil && excluded[i] {
			continue
		}
		d := dist(p.Point, query)
		if math.IsNaN(d) {
			return 0, errors.NewNumericalInstabilityError(fmt.Sprintf("distance to point %d", i), []float64{d}, -1)
		}
		s.dist[i] = d
		s.idx = append(s.idx, i)
	}

	if len(s.idx) == 0 {
		return 0, errors.NewModelError("neighbors.Classify", "no candidate points", errors.ErrEmptyData)
	}
	if k < 1 || k > len(s.idx) {
		return 0, errors.NewValidationError("k", "must be between 1 and the number of candidate points", k)
	}

	// idx is ascending, so a stable sort breaks distance ties by index.
	slices.SortStableFunc(s.idx, func(a, b int) int {
		return cmp.Compare(s.dist[a], s.dist[b])
	})

	s.labels = s.labels[:0]
	for _, i := range s.idx[:k] {
		s.labels = append(s.labels, points[i].Cluster)
	}
	return majority(s.labels), nil
}

// majority returns the most frequent label. Among equally frequent labels
// the smallest wins. labels is sorted in place and must be non-empty.
func majority(labels []int) int {
	slices.Sort(labels)

	best, bestCount := labels[0], 0
	for start := 0; start < len(labels); {
		end := start + 1
		for end < len(labels) && labels[end] == labels[start] {
			end++
		}
		if end-start > bestCount {
			best, bestCount = labels[start], end-start
		}
		start = end
	}
	return best
}

// Classify returns the majority cluster label among the k points nearest to
// query. Distance ties are broken by position in points and vote ties by the
// smallest label, so the result is reproducible.
func Classify(points []dataset.LabeledPoint, query dataset.Point, dist Distance, k int) (int, error) {
	if len(points) == 0 {
		return 0, errors.NewModelError("neighbors.Classify", "no candidate points", errors.ErrEmptyData)
	}
	if dist == nil {
		dist = Euclidean
	}
	return newScratch(len(points)).classify(points, nil, query, dist, k)
}

// LeaveOneOut classifies every point against all the others and returns how
// many predictions match the true label. k must be in [1, n-1].
func LeaveOneOut(points []dataset.LabeledPoint, dist Distance, k int) (int, error) {
	n := len(points)
	if n == 0 {
		return 0, errors.NewModelError("neighbors.LeaveOneOut", "empty data", errors.ErrEmptyData)
	}
	if k < 1 || k > n-1 {
		return 0, errors.NewValidationError("k", "must be between 1 and n-1", k)
	}
	if dist == nil {
		dist = Euclidean
	}
	return leaveOneOut(points, make([]bool, n), newScratch(n), dist, k)
}

// leaveOneOut is the loop body shared with Sweep. excluded must be all false
// on entry and is all false again on return.
func leaveOneOut(points []dataset.LabeledPoint, excluded []bool, s *scratch, dist Distance, k int) (int, error) {
	successes := 0
	for i := range points {
		excluded[i] = true
		label, err := s.classify(points, excluded, points[i].Point, dist, k)
		excluded[i] = false
		if err != nil {
			return 0, err
		}
		if label == points[i].Cluster {
			successes++
		}
	}
	return successes, nil
}

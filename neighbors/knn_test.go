package neighbors

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/pointml/dataset"
	"github.com/YuminosukeSato/pointml/pkg/errors"
)

func line(clusters ...int) []dataset.LabeledPoint {
	points := make([]dataset.LabeledPoint, len(clusters))
	for i, c := range clusters {
		points[i] = dataset.LabeledPoint{Point: dataset.Point{X: float64(i)}, Cluster: c}
	}
	return points
}

func TestClassifyDeterministic(t *testing.T) {
	points := line(0, 1, 0, 1, 0)
	query := dataset.Point{X: 2}

	// Nearest three: index 2 (d=0), then 1 and 3 (d=1); clusters 0, 1, 1.
	for i := 0; i < 20; i++ {
		label, err := Classify(points, query, Euclidean, 3)
		require.NoError(t, err)
		assert.Equal(t, 1, label)
	}
}

func TestClassifyTieBreaks(t *testing.T) {
	// Equal vote counts: the smallest label wins regardless of order.
	label, err := Classify(line(7, 3), dataset.Point{X: 0.5}, Euclidean, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, label)

	// Equal distances: the earlier index is nearer.
	label, err = Classify(line(5, 9, 2), dataset.Point{X: 1}, Euclidean, 1)
	require.NoError(t, err)
	assert.Equal(t, 9, label)

	label, err = Classify(line(4, 9, 2), dataset.Point{X: 1}, Manhattan, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, label, "index 0 and 2 tie at distance 1; index 0 is kept")
}

func TestClassifyErrors(t *testing.T) {
	_, err := Classify(nil, dataset.Point{}, Euclidean, 1)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = Classify(line(0, 1), dataset.Point{}, Euclidean, 3)
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	_, err = Classify(line(0, 1), dataset.Point{}, Euclidean, 0)
	assert.True(t, errors.As(err, &valErr))

	_, err = Classify(line(0, 1), dataset.Point{X: math.NaN()}, Euclidean, 1)
	var numErr *errors.NumericalInstabilityError
	assert.True(t, errors.As(err, &numErr))
	assert.Equal(t, "distance to point 0", numErr.Operation)
	assert.Equal(t, -1, numErr.Iteration)
	assert.NotContains(t, err.Error(), "iteration")
}

func TestMajority(t *testing.T) {
	assert.Equal(t, 2, majority([]int{2}))
	assert.Equal(t, 1, majority([]int{3, 1, 3, 1}))
	assert.Equal(t, -4, majority([]int{0, -4, -4, 5}))
}

func TestLeaveOneOut(t *testing.T) {
	// Two well separated clusters: every held-out point is classified correctly.
	points := []dataset.LabeledPoint{
		{Point: dataset.Point{X: 0, Y: 0}, Cluster: 0},
		{Point: dataset.Point{X: 0.1, Y: 0}, Cluster: 0},
		{Point: dataset.Point{X: 0, Y: 0.1}, Cluster: 0},
		{Point: dataset.Point{X: 5, Y: 5}, Cluster: 1},
		{Point: dataset.Point{X: 5.1, Y: 5}, Cluster: 1},
		{Point: dataset.Point{X: 5, Y: 5.1}, Cluster: 1},
	}
	got, err := LeaveOneOut(points, Euclidean, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, got)

	// Alternating labels on a line: the nearest neighbor is always the other label.
	got, err = LeaveOneOut(line(0, 1, 0, 1, 0, 1), Euclidean, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestLeaveOneOutBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	points := make([]dataset.LabeledPoint, 15)
	for i := range points {
		points[i] = dataset.LabeledPoint{
			Point:   dataset.Point{X: rng.NormFloat64(), Y: rng.NormFloat64()},
			Cluster: rng.Intn(3),
		}
	}
	snapshot := append([]dataset.LabeledPoint(nil), points...)

	for k := 1; k < len(points); k++ {
		got, err := LeaveOneOut(points, Euclidean, k)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, len(points))
	}
	assert.Equal(t, snapshot, points, "points must be left untouched")
}

func TestLeaveOneOutErrors(t *testing.T) {
	var valErr *errors.ValidationError

	_, err := LeaveOneOut(line(0, 1, 0), Euclidean, 3)
	assert.True(t, errors.As(err, &valErr))
	_, err = LeaveOneOut(line(0, 1, 0), Euclidean, 0)
	assert.True(t, errors.As(err, &valErr))
	_, err = LeaveOneOut(nil, Euclidean, 1)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestDistances(t *testing.T) {
	a, b := dataset.Point{X: 0, Y: 0}, dataset.Point{X: 3, Y: -4}
	assert.Equal(t, 5.0, Euclidean(a, b))
	assert.Equal(t, 7.0, Manhattan(a, b))

	d, err := ParseDistance("manhattan")
	require.NoError(t, err)
	assert.Equal(t, 7.0, d(a, b))
	d, err = ParseDistance("")
	require.NoError(t, err)
	assert.Equal(t, 5.0, d(a, b))
	_, err = ParseDistance("cosine")
	assert.Error(t, err)
}

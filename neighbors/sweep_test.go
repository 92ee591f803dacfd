package neighbors

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/pointml/dataset"
	"github.com/YuminosukeSato/pointml/pkg/errors"
)

func blobs(rng *rand.Rand, n int) []dataset.LabeledPoint {
	points := make([]dataset.LabeledPoint, n)
	for i := range points {
		cluster := i % 2
		offset := float64(cluster) * 2
		points[i] = dataset.LabeledPoint{
			Point:   dataset.Point{X: offset + rng.NormFloat64(), Y: offset + rng.NormFloat64()},
			Cluster: cluster,
		}
	}
	return points
}

func TestSweep(t *testing.T) {
	points := blobs(rand.New(rand.NewSource(2)), 12)

	results, err := Sweep(points, Euclidean)
	require.NoError(t, err)
	require.Len(t, results, len(points)-1)

	for i, r := range results {
		assert.Equal(t, i+1, r.K)
		want, err := LeaveOneOut(points, Euclidean, r.K)
		require.NoError(t, err)
		assert.Equal(t, want, r.Successes, "k=%d", r.K)
	}
}

func TestSweepParallelMatchesSequential(t *testing.T) {
	points := blobs(rand.New(rand.NewSource(3)), ParallelThreshold+20)

	results, err := Sweep(points, Manhattan)
	require.NoError(t, err)
	require.Len(t, results, len(points)-1)

	for _, k := range []int{1, 2, 17, ParallelThreshold, len(points) - 1} {
		want, err := LeaveOneOut(points, Manhattan, k)
		require.NoError(t, err)
		assert.Equal(t, SweepResult{K: k, Successes: want}, results[k-1])
	}
}

func TestSweepErrors(t *testing.T) {
	_, err := Sweep(nil, Euclidean)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = Sweep(line(1), Euclidean)
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestBest(t *testing.T) {
	best, err := Best([]SweepResult{{1, 3}, {2, 5}, {3, 5}, {4, 4}})
	require.NoError(t, err)
	assert.Equal(t, SweepResult{K: 2, Successes: 5}, best)

	_, err = Best(nil)
	assert.Error(t, err)
}

func TestClassifier(t *testing.T) {
	train := blobs(rand.New(rand.NewSource(4)), 40)

	clf := NewClassifier(3, WithDistance(Euclidean))
	_, err := clf.Predict([]dataset.Point{{}})
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	require.NoError(t, clf.Fit(train))

	queries := []dataset.Point{{X: 2, Y: 2}, {X: 0, Y: 0}}
	pred, err := clf.Predict(queries)
	require.NoError(t, err)
	for i, q := range queries {
		want, err := Classify(train, q, Euclidean, 3)
		require.NoError(t, err)
		assert.Equal(t, want, pred[i])
	}

	acc, err := clf.Score(train)
	require.NoError(t, err)
	assert.Greater(t, acc, 0.5)

	assert.Error(t, NewClassifier(0).Fit(train))
	assert.Error(t, NewClassifier(1).Fit(nil))
}

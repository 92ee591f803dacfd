package visualize

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/pointml/dataset"
	"github.com/YuminosukeSato/pointml/linear"
	"github.com/YuminosukeSato/pointml/metrics"
	"github.com/YuminosukeSato/pointml/neighbors"
	"github.com/YuminosukeSato/pointml/pkg/errors"
	"github.com/YuminosukeSato/pointml/preprocessing"
)

func requireImage(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRegressionChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regression.png")
	residuals := []metrics.Residual{
		{Actual: 1, Predicted: 1.2},
		{Actual: 2, Predicted: 1.9},
		{Actual: 3, Predicted: 3.1},
	}
	require.NoError(t, RegressionChart(residuals, path))
	requireImage(t, path)

	err := RegressionChart(nil, path)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestSweepChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.svg")
	results := []neighbors.SweepResult{{K: 1, Successes: 4}, {K: 2, Successes: 6}, {K: 3, Successes: 5}}
	require.NoError(t, SweepChart(results, path))
	requireImage(t, path)
}

func TestClusterChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clusters.png")
	points := []dataset.LabeledPoint{
		{Point: dataset.Point{X: 0, Y: 0}, Cluster: 2},
		{Point: dataset.Point{X: 1, Y: 1}, Cluster: 0},
		{Point: dataset.Point{X: 0.5, Y: 0}, Cluster: 2},
	}
	require.NoError(t, ClusterChart(points, path))
	requireImage(t, path)
}

func TestDecisionChart(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ds := make(dataset.Dataset, 40)
	for i := range ds {
		x1, x2 := 2*rng.Float64()-1, 2*rng.Float64()-1
		label := 0.0
		if x1+x2 > 0 {
			label = 1
		}
		ds[i] = dataset.Sample{X1: x1, X2: x2, Y: label}
	}
	F, y, err := preprocessing.QuadraticDesign(ds)
	require.NoError(t, err)
	clf := linear.NewLogisticRegression(linear.WithMaxIter(5000))
	require.NoError(t, clf.Fit(F, y))

	path := filepath.Join(t.TempDir(), "decision.png")
	require.NoError(t, DecisionChart(ds, clf, path))
	requireImage(t, path)

	edge, err := boundaryPoints(ds, clf, 20)
	require.NoError(t, err)
	assert.NotEmpty(t, edge)
}

func TestSpan(t *testing.T) {
	got := span([]float64{0, 10}, 3)
	assert.InDeltaSlice(t, []float64{-0.5, 5, 10.5}, got, 1e-12)

	got = span([]float64{2, 2}, 2)
	assert.Equal(t, []float64{1, 3}, got)
}

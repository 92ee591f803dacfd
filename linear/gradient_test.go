package linear

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/pointml/dataset"
	"github.com/YuminosukeSato/pointml/pkg/errors"
	"github.com/YuminosukeSato/pointml/pkg/log"
	"github.com/YuminosukeSato/pointml/preprocessing"
)

func TestSquaredLossGradient(t *testing.T) {
	F, y := randomDesign(rand.New(rand.NewSource(4)), 8, 0.5)
	loss := squaredLoss{F: F, y: y}
	alpha := []float64{0.3, -0.2, 0.7}

	// 中心差分で勾配を確認する
	grad := loss.Gradient(alpha)
	const h = 1e-6
	for j := range alpha {
		plus := append([]float64(nil), alpha...)
		minus := append([]float64(nil), alpha...)
		plus[j] += h
		minus[j] -= h
		numeric := (loss.Loss(plus) - loss.Loss(minus)) / (2 * h)
		assert.InDelta(t, numeric, grad[j], 1e-5, "component %d", j)
	}
}

func TestGDRegressionConvergesToPinv(t *testing.T) {
	F, y := randomDesign(rand.New(rand.NewSource(5)), 20, 0)

	testLogger, _ := log.NewTestLogger(log.LevelInfo)
	gd := NewGDRegression(WithLogger(testLogger))
	require.NoError(t, gd.Fit(F, y))

	assert.True(t, gd.Converged())
	assert.Greater(t, gd.Iterations(), 0)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, gd.Coefficients(), 0.05)
	assert.Less(t, gd.Loss(), 1e-2)
	assert.True(t, testLogger.ContainsField(log.ModelNameKey, "GDRegression"))

	score, err := gd.Score(F, y)
	require.NoError(t, err)
	assert.Greater(t, score, 0.99)
}

func TestGDRegressionMaxIter(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(nil)

	F, y := randomDesign(rand.New(rand.NewSource(6)), 20, 0)
	gd := NewGDRegression(WithMaxIter(3))
	require.NoError(t, gd.Fit(F, y))

	assert.False(t, gd.Converged())
	assert.Equal(t, 3, gd.Iterations())
	assert.Len(t, warnings, 1)
}

func TestGDRegressionDiverges(t *testing.T) {
	F, y := randomDesign(rand.New(rand.NewSource(7)), 20, 0)
	err := NewGDRegression(WithLearningRate(10)).Fit(F, y)

	var numErr *errors.NumericalInstabilityError
	assert.True(t, errors.As(err, &numErr))
}

func TestValidateGD(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	ds := make(dataset.Dataset, 50)
	for i := range ds {
		x1, x2 := rng.Float64()*10, rng.Float64()*5
		ds[i] = dataset.Sample{X1: x1, X2: x2, Y: 1 + 2*x1 + 3*x2}
	}

	report, err := ValidateGD(ds, 42)
	require.NoError(t, err)

	assert.Len(t, report.Residuals, 10)
	assert.Equal(t, 10, report.Errors.N)
	assert.False(t, math.IsNaN(report.Errors.RMSE))
	assert.GreaterOrEqual(t, report.Errors.RMSE, report.Errors.MAE)
	assert.GreaterOrEqual(t, report.Errors.MaxAbs, report.Errors.RMSE)
	require.NotNil(t, report.Model)
	assert.True(t, report.Model.IsFitted())

	w, err := report.Model.Weights()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "norm(x1)", "norm(x2)"}, w.Columns)
	assert.Equal(t, "40", w.Metadata["n_samples"])
	assert.InDelta(t, 0.1/40, w.Hyperparameters["learning_rate"], 1e-15)
}

// 検証側は訓練側の最小値・最大値ではなく自分自身の範囲で正規化される
func TestValidateGDNormalizesValidationIndependently(t *testing.T) {
	ds := make(dataset.Dataset, 20)
	for i := range ds {
		x1, x2 := float64(i), float64((i*7)%20)
		ds[i] = dataset.Sample{X1: x1, X2: x2, Y: 2 + x1 - 0.5*x2}
	}
	const seed = 5

	report, err := ValidateGD(ds, seed)
	require.NoError(t, err)

	_, validation, err := dataset.Split(ds, TrainRatio, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	Fval, yval, err := preprocessing.LinearDesign(validation)
	require.NoError(t, err)

	for j := 1; j < 3; j++ {
		col := mat.Col(nil, j, Fval)
		assert.InDelta(t, 0, floats.Min(col), 1e-12, "column %d", j)
		assert.InDelta(t, 1, floats.Max(col), 1e-12, "column %d", j)
	}

	yPred, err := report.Model.Predict(Fval)
	require.NoError(t, err)
	require.Len(t, report.Residuals, yval.Len())
	for i, r := range report.Residuals {
		assert.Equal(t, yval.AtVec(i), r.Actual)
		assert.InDelta(t, yPred.AtVec(i), r.Predicted, 1e-12)
	}
}

func TestLinearDesignIgnoresOtherSplitRange(t *testing.T) {
	train := dataset.Dataset{{X1: 0, X2: 0, Y: 1}, {X1: 10, X2: 4, Y: 2}, {X1: 5, X2: 1, Y: 3}}
	validation := dataset.Dataset{{X1: 100, X2: -3, Y: 1}, {X1: 150, X2: 9, Y: 2}, {X1: 200, X2: 3, Y: 3}}

	_, _, err := preprocessing.LinearDesign(train)
	require.NoError(t, err)
	Fval, _, err := preprocessing.LinearDesign(validation)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0, 0.5, 1}, mat.Col(nil, 1, Fval), 1e-12)
	assert.InDeltaSlice(t, []float64{0, 1, 0.5}, mat.Col(nil, 2, Fval), 1e-12)
}

func TestValidateGDTooSmall(t *testing.T) {
	_, err := ValidateGD(dataset.Dataset{{X1: 1, X2: 2, Y: 3}}, 1)
	assert.Error(t, err)
}

func TestGDRegressionNotFitted(t *testing.T) {
	_, err := NewGDRegression().Predict(mat.NewDense(1, 3, nil))
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))
}

package linear

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/pointml/pkg/errors"
	"github.com/YuminosukeSato/pointml/pkg/log"
)

// randomDesign は [1, x1, x2] の計画行列と y = 1 + 2x1 + 3x2 + noise を作る
func randomDesign(rng *rand.Rand, n int, noise float64) (*mat.Dense, *mat.VecDense) {
	F := mat.NewDense(n, 3, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x1, x2 := rng.Float64(), rng.Float64()
		F.SetRow(i, []float64{1, x1, x2})
		y.SetVec(i, 1+2*x1+3*x2+noise*rng.NormFloat64())
	}
	return F, y
}

func TestRegressionExactFit(t *testing.T) {
	F, y := randomDesign(rand.New(rand.NewSource(1)), 20, 0)

	reg := NewRegression()
	require.NoError(t, reg.Fit(F, y))

	coef := reg.Coefficients()
	assert.InDeltaSlice(t, []float64{1, 2, 3}, coef, 1e-10)
	assert.Equal(t, 3, reg.Rank())
	assert.Len(t, reg.SingularValues(), 3)

	score, err := reg.Score(F, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-12)
}

func TestRegressionMatchesNormalEquations(t *testing.T) {
	F, y := randomDesign(rand.New(rand.NewSource(2)), 50, 0.3)

	reg := NewRegression()
	require.NoError(t, reg.Fit(F, y))

	// (FᵀF)α = Fᵀy
	var ata mat.Dense
	ata.Mul(F.T(), F)
	var aty, want mat.VecDense
	aty.MulVec(F.T(), y)
	require.NoError(t, want.SolveVec(&ata, &aty))

	assert.InDeltaSlice(t, want.RawVector().Data, reg.Coefficients(), 1e-9)
}

func TestRegressionRankDeficient(t *testing.T) {
	// 3列目は2列目の複製
	F := mat.NewDense(4, 3, []float64{
		1, 0, 0,
		1, 1, 1,
		1, 2, 2,
		1, 3, 3,
	})
	y := mat.NewVecDense(4, []float64{1, 3, 5, 7})

	testLogger, _ := log.NewTestLogger(log.LevelInfo)
	reg := NewRegression(WithLogger(testLogger))
	require.NoError(t, reg.Fit(F, y))
	assert.Equal(t, 2, reg.Rank())
	assert.True(t, testLogger.ContainsMessage("rank deficient"))

	// 最小ノルム解は重複列に係数を等分する
	coef := reg.Coefficients()
	assert.InDelta(t, 1, coef[0], 1e-10)
	assert.InDelta(t, 1, coef[1], 1e-10)
	assert.InDelta(t, 1, coef[2], 1e-10)

	yPred, err := reg.Predict(F)
	require.NoError(t, err)
	assert.InDeltaSlice(t, y.RawVector().Data, yPred.RawVector().Data, 1e-10)
}

func TestRegressionDegenerate(t *testing.T) {
	F := mat.NewDense(3, 3, nil)
	y := mat.NewVecDense(3, []float64{1, 2, 3})

	err := NewRegression().Fit(F, y)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDegenerateFit))

	var modelErr *errors.ModelError
	assert.True(t, errors.As(err, &modelErr))
}

func TestRegressionRcond(t *testing.T) {
	// 2列目はほぼ定数で、完全に解くと傾きが 1e9 になる
	F := mat.NewDense(3, 2, []float64{
		1, 0,
		1, 1e-9,
		1, 2e-9,
	})
	y := mat.NewVecDense(3, []float64{1, 2, 3})

	full := NewRegression()
	require.NoError(t, full.Fit(F, y))
	assert.Equal(t, 2, full.Rank())
	assert.Greater(t, math.Abs(full.Coefficients()[1]), 1e8)

	truncated := NewRegression(WithRcond(1e-6))
	require.NoError(t, truncated.Fit(F, y))
	assert.Equal(t, 1, truncated.Rank())
	assert.Less(t, math.Abs(truncated.Coefficients()[1]), 1.0)
	assert.InDelta(t, 2, truncated.Coefficients()[0], 1e-6)
}

func TestRegressionErrors(t *testing.T) {
	reg := NewRegression()

	_, err := reg.Predict(mat.NewDense(1, 3, nil))
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	_, err = reg.Weights()
	assert.True(t, errors.As(err, &notFitted))

	err = reg.Fit(mat.NewDense(3, 2, nil), mat.NewVecDense(2, nil))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	err = reg.Fit(&mat.Dense{}, &mat.VecDense{})
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	F, y := randomDesign(rand.New(rand.NewSource(3)), 10, 0)
	require.NoError(t, reg.Fit(F, y))
	_, err = reg.Predict(mat.NewDense(2, 4, nil))
	assert.True(t, errors.As(err, &dimErr))
}

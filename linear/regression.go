// Package linear は計画行列上の線形モデル（最小二乗回帰とロジスティック回帰）を提供する
package linear

import (
	"math"

	"github.com/YuminosukeSato/pointml/core/model"
	"github.com/YuminosukeSato/pointml/metrics"
	"github.com/YuminosukeSato/pointml/pkg/errors"
	"github.com/YuminosukeSato/pointml/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// Regression は擬似逆行列による閉形式の線形回帰
//
// α = pinv(F) y、pinv(F) = V Σ⁺ Uᵀ。Σ⁺ では相対しきい値以下の特異値を0として扱う。
type Regression struct {
	state *model.StateManager
	cfg   config

	coef   *mat.VecDense
	sv     []float64
	rank   int
	cutoff float64
}

var _ model.Model = (*Regression)(nil)

// NewRegression は新しい擬似逆行列回帰モデルを作成する
func NewRegression(opts ...Option) *Regression {
	return &Regression{
		state: model.NewStateManager(),
		cfg:   newConfig(opts),
	}
}

// Fit は計画行列 F と目的変数 y から α を求める
func (r *Regression) Fit(F *mat.Dense, y *mat.VecDense) (err error) {
	defer errors.Recover(&err, "Regression.Fit")

	n, d, err := checkFitInput("Regression.Fit", F, y)
	if err != nil {
		return err
	}
	if err := errors.CheckMatrix("Regression.Fit", F, n, d, 0); err != nil {
		return err
	}

	var svd mat.SVD
	if ok := svd.Factorize(F, mat.SVDThin); !ok {
		return errors.NewModelError("Regression.Fit", "SVD failed to converge", errors.ErrSingularMatrix)
	}
	sv := svd.Values(nil)

	rcond := r.cfg.rcond
	if rcond <= 0 {
		rcond = float64(max(n, d)) * machineEpsilon
	}
	cutoff := rcond * sv[0]

	// Uᵀy を Σ⁺ でスケーリングし、V を掛ける
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var uty mat.VecDense
	uty.MulVec(u.T(), y)

	rank := 0
	for i, s := range sv {
		if s > cutoff && s > 0 {
			uty.SetVec(i, uty.AtVec(i)/s)
			rank++
		} else {
			uty.SetVec(i, 0)
		}
	}
	if rank == 0 {
		return errors.NewModelError("Regression.Fit", "degenerate fit", errors.ErrDegenerateFit)
	}

	coef := mat.NewVecDense(d, nil)
	coef.MulVec(&v, &uty)

	r.coef, r.sv, r.rank, r.cutoff = coef, sv, rank, cutoff
	r.state.SetFitted(d, n)

	r.cfg.logger.Info("Model fitted",
		log.ModelNameKey, "Regression",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, d,
		log.RankKey, rank,
	)
	if rank < d {
		r.cfg.logger.Warn("Design matrix is rank deficient",
			log.RankKey, rank,
			log.FeaturesKey, d,
		)
	}
	return nil
}

// machineEpsilon は 1 付近の float64 の間隔
var machineEpsilon = math.Nextafter(1, 2) - 1

// Predict は ŷ = Fα を返す
func (r *Regression) Predict(F *mat.Dense) (*mat.VecDense, error) {
	if err := r.state.RequireFitted("Regression", "Predict"); err != nil {
		return nil, err
	}
	return predictLinear("Regression.Predict", F, r.coef)
}

// Score は決定係数 R² を返す
func (r *Regression) Score(F *mat.Dense, y *mat.VecDense) (float64, error) {
	yPred, err := r.Predict(F)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(y, yPred)
}

// Coefficients は α のコピーを返す
func (r *Regression) Coefficients() []float64 {
	return vecCopy(r.coef)
}

// SingularValues は F の特異値（降順）のコピーを返す
func (r *Regression) SingularValues() []float64 {
	return append([]float64(nil), r.sv...)
}

// Rank は擬似逆行列で使われた特異値の数を返す
func (r *Regression) Rank() int {
	return r.rank
}

// IsFitted はモデルが学習済みかどうかを返す
func (r *Regression) IsFitted() bool {
	return r.state.IsFitted()
}

// Weights は保存用の重みを返す
func (r *Regression) Weights() (*model.ModelWeights, error) {
	if err := r.state.RequireFitted("Regression", "Weights"); err != nil {
		return nil, err
	}
	_, n := r.state.Dimensions()
	return newWeights(modelTypeRegression, r.coef, r.cfg.columns,
		map[string]float64{"rcond": r.cfg.rcond, "cutoff": r.cutoff},
		n), nil
}

// checkFitInput は Fit の入力を検証し、行数と列数を返す
func checkFitInput(op string, F *mat.Dense, y *mat.VecDense) (n, d int, err error) {
	if F == nil || y == nil || F.IsEmpty() || y.Len() == 0 {
		return 0, 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	n, d = F.Dims()
	if y.Len() != n {
		return 0, 0, errors.NewDimensionError(op, n, y.Len(), 0)
	}
	return n, d, nil
}

// predictLinear は Fα を計算する
func predictLinear(op string, F *mat.Dense, coef *mat.VecDense) (*mat.VecDense, error) {
	if F == nil || F.IsEmpty() {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	n, d := F.Dims()
	if d != coef.Len() {
		return nil, errors.NewDimensionError(op, coef.Len(), d, 1)
	}
	yPred := mat.NewVecDense(n, nil)
	yPred.MulVec(F, coef)
	return yPred, nil
}

func vecCopy(v *mat.VecDense) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

package linear

import (
	"github.com/YuminosukeSato/pointml/core/model"
	"github.com/YuminosukeSato/pointml/metrics"
	"github.com/YuminosukeSato/pointml/optimize"
	"github.com/YuminosukeSato/pointml/pkg/errors"
	"github.com/YuminosukeSato/pointml/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// 最急降下法の既定値
const (
	// DefaultGDEpsilon は二乗誤差回帰の収束判定しきい値
	DefaultGDEpsilon = 1e-6

	// defaultGDStepScale を n で割った値が既定の学習率になる。
	// [0,1] に正規化した3列の計画行列では 2FᵀF の最大固有値が 6n 以下なので、
	// 0.1/n は安定条件 λ < 1/(3n) を満たす。
	defaultGDStepScale = 0.1
)

// squaredLoss は二乗誤差 ‖y − Fα‖² の目的関数と勾配を持つ
type squaredLoss struct {
	F *mat.Dense
	y *mat.VecDense
}

// residual は y − Fα を返す
func (l squaredLoss) residual(alpha []float64) *mat.VecDense {
	var r mat.VecDense
	r.MulVec(l.F, mat.NewVecDense(len(alpha), alpha))
	r.SubVec(l.y, &r)
	return &r
}

// Loss は ‖y − Fα‖²
func (l squaredLoss) Loss(alpha []float64) float64 {
	r := l.residual(alpha)
	return mat.Dot(r, r)
}

// Gradient は −2 Fᵀ(y − Fα) を列ごとに計算する
func (l squaredLoss) Gradient(alpha []float64) []float64 {
	r := l.residual(alpha)
	grad := make([]float64, len(alpha))
	for j := range grad {
		grad[j] = -2 * mat.Dot(l.F.ColView(j), r)
	}
	return grad
}

// GDRegression は固定ステップの最急降下法で二乗誤差を最小化する線形回帰
type GDRegression struct {
	state *model.StateManager
	cfg   config

	coef       *mat.VecDense
	lambda     float64
	epsilon    float64
	iterations int
	loss       float64
	converged  bool
}

var _ model.Model = (*GDRegression)(nil)

// NewGDRegression は新しい最急降下法回帰モデルを作成する
//
// 使用例:
//
//	reg := linear.NewGDRegression(linear.WithMaxIter(100000))
//	err := reg.Fit(F, y)
func NewGDRegression(opts ...Option) *GDRegression {
	return &GDRegression{
		state: model.NewStateManager(),
		cfg:   newConfig(opts),
	}
}

// Fit は α = 0 から最急降下法で学習する
func (g *GDRegression) Fit(F *mat.Dense, y *mat.VecDense) error {
	n, d, err := checkFitInput("GDRegression.Fit", F, y)
	if err != nil {
		return err
	}

	lambda := g.cfg.learningRate
	if lambda == 0 {
		lambda = defaultGDStepScale / float64(n)
	}
	eps := g.cfg.epsilon
	if eps == 0 {
		eps = DefaultGDEpsilon
	}

	loss := squaredLoss{F: F, y: y}
	res, err := optimize.Descend(make([]float64, d), lambda, loss.Loss, loss.Gradient, eps,
		optimize.WithMaxIter(g.cfg.maxIter),
		optimize.WithLogger(g.cfg.logger.With(log.ModelNameKey, "GDRegression")),
	)
	if err != nil {
		return errors.Wrap(err, "GDRegression.Fit")
	}

	g.coef = mat.NewVecDense(d, res.X)
	g.lambda, g.epsilon = lambda, eps
	g.iterations, g.loss, g.converged = res.Iterations, res.Loss, res.Converged
	g.state.SetFitted(d, n)

	g.cfg.logger.Info("Model fitted",
		log.ModelNameKey, "GDRegression",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.IterationKey, res.Iterations,
		log.LossKey, res.Loss,
		log.LearningRateKey, lambda,
	)
	return nil
}

// Predict は ŷ = Fα を返す
func (g *GDRegression) Predict(F *mat.Dense) (*mat.VecDense, error) {
	if err := g.state.RequireFitted("GDRegression", "Predict"); err != nil {
		return nil, err
	}
	return predictLinear("GDRegression.Predict", F, g.coef)
}

// Score は決定係数 R² を返す
func (g *GDRegression) Score(F *mat.Dense, y *mat.VecDense) (float64, error) {
	yPred, err := g.Predict(F)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(y, yPred)
}

// Coefficients は α のコピーを返す
func (g *GDRegression) Coefficients() []float64 {
	return vecCopy(g.coef)
}

// Iterations は学習に使った反復回数を返す
func (g *GDRegression) Iterations() int {
	return g.iterations
}

// Converged は反復上限に達せずに停止した場合に true を返す
func (g *GDRegression) Converged() bool {
	return g.converged
}

// Loss は学習終了時の ‖y − Fα‖² を返す
func (g *GDRegression) Loss() float64 {
	return g.loss
}

// IsFitted はモデルが学習済みかどうかを返す
func (g *GDRegression) IsFitted() bool {
	return g.state.IsFitted()
}

// Weights は保存用の重みを返す
func (g *GDRegression) Weights() (*model.ModelWeights, error) {
	if err := g.state.RequireFitted("GDRegression", "Weights"); err != nil {
		return nil, err
	}
	_, n := g.state.Dimensions()
	return newWeights(modelTypeGDRegression, g.coef, g.cfg.columns,
		map[string]float64{
			"learning_rate": g.lambda,
			"epsilon":       g.epsilon,
			"max_iter":      float64(g.cfg.maxIter),
		}, n), nil
}

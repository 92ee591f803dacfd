package linear

import (
	"github.com/YuminosukeSato/pointml/core/model"
	"github.com/YuminosukeSato/pointml/metrics"
	"github.com/YuminosukeSato/pointml/optimize"
	"github.com/YuminosukeSato/pointml/pkg/errors"
	"github.com/YuminosukeSato/pointml/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// LogisticRegression の最急降下法の既定値
const (
	DefaultLogisticLearningRate = 0.001
	DefaultLogisticEpsilon      = 0.0001
)

// logisticLoss は二値分類の計画行列と ±1 ラベルを保持する
type logisticLoss struct {
	F *mat.Dense
	y *mat.VecDense
}

// margins は各サンプルの y_i * (Fα)_i を返す
func (l logisticLoss) margins(alpha []float64) *mat.VecDense {
	var z mat.VecDense
	z.MulVec(l.F, mat.NewVecDense(len(alpha), alpha))
	z.MulElemVec(&z, l.y)
	return &z
}

// Loss は Σ ln(1 + exp(−y_i (Fα)_i))
func (l logisticLoss) Loss(alpha []float64) float64 {
	z := l.margins(alpha)
	var sum float64
	for i := 0; i < z.Len(); i++ {
		sum += errors.Softplus(-z.AtVec(i))
	}
	return sum
}

// Gradient は s_i = exp(−y_i (Fα)_i) として −y_i · s_i/(1+s_i) · F[i,:] を足し合わせる。
// s/(1+s) は sigmoid(−y_i (Fα)_i) で評価するため、大きなマージンでもオーバーフローしない
func (l logisticLoss) Gradient(alpha []float64) []float64 {
	z := l.margins(alpha)
	n, d := l.F.Dims()
	grad := make([]float64, d)
	for i := 0; i < n; i++ {
		scale := -l.y.AtVec(i) * errors.Sigmoid(-z.AtVec(i))
		for j := 0; j < d; j++ {
			grad[j] += scale * l.F.At(i, j)
		}
	}
	return grad
}

// LogisticRegression はロジスティック損失を固定ステップの最急降下法で
// 最小化する ±1 ラベルの二値分類器
type LogisticRegression struct {
	state *model.StateManager
	cfg   config

	coef       *mat.VecDense
	lambda     float64
	epsilon    float64
	iterations int
	loss       float64
	converged  bool
}

var _ model.Model = (*LogisticRegression)(nil)

// NewLogisticRegression は新しい分類器を作成する。
// オプションなしでは学習率 0.001、損失の変化が 0.0001 未満で停止する
func NewLogisticRegression(opts ...Option) *LogisticRegression {
	return &LogisticRegression{
		state: model.NewStateManager(),
		cfg:   newConfig(opts),
	}
}

// Fit は α = 0 から学習する。ラベルは +1 か -1 でなければならない
func (lr *LogisticRegression) Fit(F *mat.Dense, y *mat.VecDense) error {
	n, d, err := checkFitInput("LogisticRegression.Fit", F, y)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if v := y.AtVec(i); v != 1 && v != -1 {
			return errors.NewValidationError("y", "labels must be +1 or -1", v)
		}
	}

	lambda := lr.cfg.learningRate
	if lambda == 0 {
		lambda = DefaultLogisticLearningRate
	}
	eps := lr.cfg.epsilon
	if eps == 0 {
		eps = DefaultLogisticEpsilon
	}

	loss := logisticLoss{F: F, y: y}
	res, err := optimize.Descend(make([]float64, d), lambda, loss.Loss, loss.Gradient, eps,
		optimize.WithMaxIter(lr.cfg.maxIter),
		optimize.WithLogger(lr.cfg.logger.With(log.ModelNameKey, "LogisticRegression")),
	)
	if err != nil {
		return errors.Wrap(err, "LogisticRegression.Fit")
	}

	lr.coef = mat.NewVecDense(d, res.X)
	lr.lambda, lr.epsilon = lambda, eps
	lr.iterations, lr.loss, lr.converged = res.Iterations, res.Loss, res.Converged
	lr.state.SetFitted(d, n)

	lr.cfg.logger.Info("Model fitted",
		log.ModelNameKey, "LogisticRegression",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.IterationKey, res.Iterations,
		log.LossKey, res.Loss,
	)
	return nil
}

// DecisionFunction は生のスコア Fα を返す
func (lr *LogisticRegression) DecisionFunction(F *mat.Dense) (*mat.VecDense, error) {
	if err := lr.state.RequireFitted("LogisticRegression", "DecisionFunction"); err != nil {
		return nil, err
	}
	return predictLinear("LogisticRegression.DecisionFunction", F, lr.coef)
}

// Predict は Fα の符号で分類する。スコア0は +1 とする
func (lr *LogisticRegression) Predict(F *mat.Dense) (*mat.VecDense, error) {
	scores, err := lr.DecisionFunction(F)
	if err != nil {
		return nil, err
	}
	for i := 0; i < scores.Len(); i++ {
		if scores.AtVec(i) >= 0 {
			scores.SetVec(i, 1)
		} else {
			scores.SetVec(i, -1)
		}
	}
	return scores, nil
}

// PredictProba は各行の P(y = +1) を返す
func (lr *LogisticRegression) PredictProba(F *mat.Dense) (*mat.VecDense, error) {
	scores, err := lr.DecisionFunction(F)
	if err != nil {
		return nil, err
	}
	for i := 0; i < scores.Len(); i++ {
		scores.SetVec(i, errors.Sigmoid(scores.AtVec(i)))
	}
	return scores, nil
}

// Score は予測の符号が y と一致した行の割合を返す
func (lr *LogisticRegression) Score(F *mat.Dense, y *mat.VecDense) (float64, error) {
	scores, err := lr.DecisionFunction(F)
	if err != nil {
		return 0, err
	}
	return metrics.SignAccuracy(y, scores)
}

// Coefficients は α のコピーを返す
func (lr *LogisticRegression) Coefficients() []float64 {
	return vecCopy(lr.coef)
}

// Iterations は Fit が実行した降下ステップ数を返す
func (lr *LogisticRegression) Iterations() int {
	return lr.iterations
}

// Converged は反復上限に達する前に収束したかを返す
func (lr *LogisticRegression) Converged() bool {
	return lr.converged
}

// IsFitted はモデルが学習済みかどうかを返す
func (lr *LogisticRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// Weights は保存用の学習済みパラメータを返す
func (lr *LogisticRegression) Weights() (*model.ModelWeights, error) {
	if err := lr.state.RequireFitted("LogisticRegression", "Weights"); err != nil {
		return nil, err
	}
	_, n := lr.state.Dimensions()
	return newWeights(modelTypeLogistic, lr.coef, lr.cfg.columns,
		map[string]float64{
			"learning_rate": lr.lambda,
			"epsilon":       lr.epsilon,
			"max_iter":      float64(lr.cfg.maxIter),
		}, n), nil
}

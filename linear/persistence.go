package linear

import (
	"strconv"

	"github.com/YuminosukeSato/pointml/core/model"
	"github.com/YuminosukeSato/pointml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// 保存形式の ModelType
const (
	modelTypeRegression   = "Regression"
	modelTypeGDRegression = "GDRegression"
	modelTypeLogistic     = "LogisticRegression"
)

// newWeights は学習済みパラメータから ModelWeights を作る
func newWeights(modelType string, coef *mat.VecDense, columns []string, hyper map[string]float64, nSamples int) *model.ModelWeights {
	return &model.ModelWeights{
		ModelType:       modelType,
		Version:         model.WeightsVersion,
		Coefficients:    vecCopy(coef),
		Columns:         append([]string(nil), columns...),
		Hyperparameters: hyper,
		Metadata:        map[string]string{"n_samples": strconv.Itoa(nSamples)},
		IsFitted:        true,
	}
}

// restore は ModelWeights を検証し、係数ベクトルと学習サンプル数を返す
func restore(w *model.ModelWeights, modelType string) (*mat.VecDense, int, error) {
	if w == nil {
		return nil, 0, errors.NewValueError("linear.restore", "weights are nil")
	}
	if err := w.Validate(); err != nil {
		return nil, 0, err
	}
	if w.ModelType != modelType {
		return nil, 0, errors.NewValidationError("model_type", "expected "+modelType, w.ModelType)
	}
	if !w.IsFitted {
		return nil, 0, errors.NewNotFittedError(modelType, "restore")
	}
	n, _ := strconv.Atoi(w.Metadata["n_samples"])
	coef := mat.NewVecDense(len(w.Coefficients), append([]float64(nil), w.Coefficients...))
	return coef, n, nil
}

// RegressionFromWeights は保存された重みから Regression を復元する
func RegressionFromWeights(w *model.ModelWeights, opts ...Option) (*Regression, error) {
	coef, n, err := restore(w, modelTypeRegression)
	if err != nil {
		return nil, err
	}
	r := NewRegression(append([]Option{WithColumns(w.Columns)}, opts...)...)
	r.coef = coef
	r.cutoff = w.Hyperparameters["cutoff"]
	r.rank = coef.Len()
	r.state.SetFitted(coef.Len(), n)
	return r, nil
}

// GDRegressionFromWeights は保存された重みから GDRegression を復元する
func GDRegressionFromWeights(w *model.ModelWeights, opts ...Option) (*GDRegression, error) {
	coef, n, err := restore(w, modelTypeGDRegression)
	if err != nil {
		return nil, err
	}
	g := NewGDRegression(append([]Option{WithColumns(w.Columns)}, opts...)...)
	g.coef = coef
	g.lambda = w.Hyperparameters["learning_rate"]
	g.epsilon = w.Hyperparameters["epsilon"]
	g.converged = true
	g.state.SetFitted(coef.Len(), n)
	return g, nil
}

// LogisticFromWeights は保存された重みから LogisticRegression を復元する
func LogisticFromWeights(w *model.ModelWeights, opts ...Option) (*LogisticRegression, error) {
	coef, n, err := restore(w, modelTypeLogistic)
	if err != nil {
		return nil, err
	}
	lr := NewLogisticRegression(append([]Option{WithColumns(w.Columns)}, opts...)...)
	lr.coef = coef
	lr.lambda = w.Hyperparameters["learning_rate"]
	lr.epsilon = w.Hyperparameters["epsilon"]
	lr.converged = true
	lr.state.SetFitted(coef.Len(), n)
	return lr, nil
}

// FromWeights は ModelType に応じてモデルを復元する
func FromWeights(w *model.ModelWeights, opts ...Option) (model.Model, error) {
	if w == nil {
		return nil, errors.NewValueError("linear.FromWeights", "weights are nil")
	}
	switch w.ModelType {
	case modelTypeRegression:
		return RegressionFromWeights(w, opts...)
	case modelTypeGDRegression:
		return GDRegressionFromWeights(w, opts...)
	case modelTypeLogistic:
		return LogisticFromWeights(w, opts...)
	default:
		return nil, errors.NewValidationError("model_type", "unknown linear model", w.ModelType)
	}
}

package metrics

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/pointml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Residual は1サンプル分の予測誤差
type Residual struct {
	Actual    float64
	Predicted float64
	// Diff は Actual - Predicted
	Diff float64
	// Percent は 100 * Diff / Actual。Actual が0のときは NaN
	Percent float64
}

// Undefined はパーセント誤差が定義されない（Actual == 0）場合に true を返す
func (r Residual) Undefined() bool {
	return math.IsNaN(r.Percent)
}

// String は "<y> <ŷ> -> <diff> <pct>%" 形式の1行を返す
func (r Residual) String() string {
	return fmt.Sprintf("%g %g -> %g %g%%", r.Actual, r.Predicted, r.Diff, r.Percent)
}

// Residuals はサンプルごとの差とパーセント誤差を計算する。
// 実測値が0のサンプルはエラーにせず Percent を NaN とし、
// UndefinedMetricWarning を1回だけ発行する。
func Residuals(yTrue, yPred *mat.VecDense) ([]Residual, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewValueError("Residuals", "empty vector")
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError("Residuals", n, yPred.Len(), 0)
	}

	out := make([]Residual, n)
	undefined := 0
	for i := range out {
		actual, predicted := yTrue.AtVec(i), yPred.AtVec(i)
		diff := actual - predicted

		pct := math.NaN()
		if actual != 0 {
			pct = 100 * diff / actual
		} else {
			undefined++
		}
		out[i] = Residual{Actual: actual, Predicted: predicted, Diff: diff, Percent: pct}
	}

	if undefined > 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("percentage error",
			fmt.Sprintf("%d of %d actual values are zero", undefined, n), math.NaN()))
	}
	return out, nil
}

// Package metrics は回帰・分類モデルの評価指標を提供する
package metrics

import (
	"math"

	"github.com/YuminosukeSato/pointml/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrorSummary は検証データ上の予測誤差 y - ŷ の集計
type ErrorSummary struct {
	N      int
	MSE    float64
	RMSE   float64
	MAE    float64
	MaxAbs float64
}

// Summarize は差分ベクトルを一度だけ作り、各集計値をまとめて返す
func Summarize(yTrue, yPred *mat.VecDense) (ErrorSummary, error) {
	diff, err := difference("Summarize", yTrue, yPred)
	if err != nil {
		return ErrorSummary{}, err
	}

	n := diff.Len()
	raw := diff.RawVector().Data
	mse := mat.Dot(diff, diff) / float64(n)
	return ErrorSummary{
		N:      n,
		MSE:    mse,
		RMSE:   math.Sqrt(mse),
		MAE:    floats.Norm(raw, 1) / float64(n),
		MaxAbs: floats.Norm(raw, math.Inf(1)),
	}, nil
}

// RMSE は残差の二乗平均平方根
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	s, err := Summarize(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return s.RMSE, nil
}

// R2Score は決定係数 1 - RSS/TSS。目的変数が定数のときは定義されない
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := difference("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	n := yTrue.Len()
	mean := mat.Sum(yTrue) / float64(n)
	var tss float64
	for i := 0; i < n; i++ {
		d := yTrue.AtVec(i) - mean
		tss += d * d
	}
	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "target is constant, R² is undefined")
	}
	return 1 - mat.Dot(diff, diff)/tss, nil
}

// difference は長さを検証して yTrue - yPred を新しいベクトルで返す
func difference(op string, yTrue, yPred *mat.VecDense) (*mat.VecDense, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	diff := mat.NewVecDense(n, nil)
	diff.SubVec(yTrue, yPred)
	return diff, nil
}

package metrics

import (
	"github.com/YuminosukeSato/pointml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// sign は0以上を+1、負を-1とする
func sign(v float64) float64 {
	if v >= 0 {
		return 1
	}
	return -1
}

// CountSignMatches は予測値と正解ラベルの符号が一致したサンプル数を返す。
// 予測値0は+1側として扱う。
func CountSignMatches(yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("CountSignMatches", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("CountSignMatches", n, yPred.Len(), 0)
	}

	matches := 0
	for i := 0; i < n; i++ {
		if sign(yTrue.AtVec(i)) == sign(yPred.AtVec(i)) {
			matches++
		}
	}
	return matches, nil
}

// SignAccuracy は符号が一致したサンプルの割合を返す
func SignAccuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	matches, err := CountSignMatches(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return float64(matches) / float64(yTrue.Len()), nil
}

package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/pointml/core/model"
	"github.com/YuminosukeSato/pointml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Normalize は列を [0,1] に線形変換する。
// 最小値を引いてから、シフト後の最大値の逆数を掛ける。
// 値がすべて等しい列は正規化できないため ValueError を返す。
//
//	Normalize([]float64{2, 4, 6}) // [0, 0.5, 1]
func Normalize(column []float64) ([]float64, error) {
	if len(column) == 0 {
		return nil, errors.NewModelError("Normalize", "empty data", errors.ErrEmptyData)
	}

	lo, hi, err := columnRange("Normalize", column)
	if err != nil {
		return nil, err
	}

	scale := 1.0 / (hi - lo)
	out := make([]float64, len(column))
	for i, v := range column {
		out[i] = (v - lo) * scale
	}
	return out, nil
}

// columnRange は列の最小値と最大値を返す。範囲が0または非有限の場合はエラー。
func columnRange(op string, column []float64) (lo, hi float64, err error) {
	lo, hi = column[0], column[0]
	for _, v := range column[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if err := errors.CheckNumericalStability(op, []float64{lo, hi}, 0); err != nil {
		return 0, 0, err
	}
	if hi-lo == 0 {
		return 0, 0, errors.NewValueError(op,
			fmt.Sprintf("degenerate normalization: column is constant (%g)", lo))
	}
	return lo, hi, nil
}

// MinMaxScaler は列ごとに最小値・範囲を記録し、データを [0,1] に変換する。
// Normalize と同じ計算を行列の各列に適用する。
type MinMaxScaler struct {
	state *model.StateManager

	// DataMin は学習データの各列の最小値
	DataMin []float64

	// DataMax は学習データの各列の最大値
	DataMax []float64
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewMinMaxScaler()
//	err := scaler.Fit(X)
//	XScaled, err := scaler.Transform(X)
func NewMinMaxScaler() *MinMaxScaler {
	return &MinMaxScaler{state: model.NewStateManager()}
}

// Fit は訓練データから各列の最小値・最大値を計算する。
// 定数列があればエラーを返し、スケーラーは未学習のまま残る。
func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("MinMaxScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	dataMin := make([]float64, c)
	dataMax := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		lo, hi, err := columnRange("MinMaxScaler.Fit", col)
		if err != nil {
			return errors.Wrapf(err, "column %d", j)
		}
		dataMin[j], dataMax[j] = lo, hi
	}

	m.DataMin, m.DataMax = dataMin, dataMax
	m.state.SetFitted(c, r)
	return nil
}

// Transform は学習済みの統計情報を使ってデータをスケーリングする
func (m *MinMaxScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if err := m.state.RequireFitted("MinMaxScaler", "Transform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	nFeatures, _ := m.state.Dimensions()
	if c != nFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.Transform", nFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		scale := 1.0 / (m.DataMax[j] - m.DataMin[j])
		for i := 0; i < r; i++ {
			result.Set(i, j, (X.At(i, j)-m.DataMin[j])*scale)
		}
	}
	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform はスケーリングされたデータを元の範囲に戻す
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := m.state.RequireFitted("MinMaxScaler", "InverseTransform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	nFeatures, _ := m.state.Dimensions()
	if c != nFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.InverseTransform", nFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*(m.DataMax[j]-m.DataMin[j])+m.DataMin[j])
		}
	}
	return result, nil
}

// IsFitted はスケーラーが学習済みかどうかを返す
func (m *MinMaxScaler) IsFitted() bool {
	return m.state.IsFitted()
}

// String はスケーラーの文字列表現を返す
func (m *MinMaxScaler) String() string {
	if !m.state.IsFitted() {
		return "MinMaxScaler()"
	}
	nFeatures, _ := m.state.Dimensions()
	return fmt.Sprintf("MinMaxScaler(n_features=%d)", nFeatures)
}

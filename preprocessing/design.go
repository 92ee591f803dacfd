// Package preprocessing turns raw samples into design matrices.
//
// Column 0 of every design matrix is the constant 1. The column order is
// part of the model contract: coefficients fitted against one order are
// meaningless against another, which is why the orders are exported.
package preprocessing

import (
	"github.com/YuminosukeSato/pointml/dataset"
	"github.com/YuminosukeSato/pointml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LinearColumns names the columns produced by LinearDesign.
var LinearColumns = []string{"1", "norm(x1)", "norm(x2)"}

// QuadraticColumns names the columns produced by QuadraticDesign.
var QuadraticColumns = []string{"1", "x1", "x2", "x1^2", "x1*x2", "x2^2"}

// LinearDesign builds [1, norm(x1), norm(x2)] and the target vector.
//
// The features are min-max normalized over ds itself. Two datasets (for
// example a training and a validation split) are normalized independently.
func LinearDesign(ds dataset.Dataset) (*mat.Dense, *mat.VecDense, error) {
	n := len(ds)
	if n == 0 {
		return nil, nil, errors.NewModelError("LinearDesign", "empty data", errors.ErrEmptyData)
	}

	raw := mat.NewDense(n, 2, nil)
	y := mat.NewVecDense(n, nil)
	for i, s := range ds {
		raw.Set(i, 0, s.X1)
		raw.Set(i, 1, s.X2)
		y.SetVec(i, s.Y)
	}

	scaled, err := NewMinMaxScaler().FitTransform(raw)
	if err != nil {
		return nil, nil, errors.Wrap(err, "normalize features")
	}

	F := mat.NewDense(n, len(LinearColumns), nil)
	for i := 0; i < n; i++ {
		F.Set(i, 0, 1)
		F.Set(i, 1, scaled.At(i, 0))
		F.Set(i, 2, scaled.At(i, 1))
	}
	return F, y, nil
}

// QuadraticDesign builds [1, x1, x2, x1², x1·x2, x2²] on the raw features and
// maps labels to ±1: label 1 becomes +1, every other label becomes -1.
func QuadraticDesign(ds dataset.Dataset) (*mat.Dense, *mat.VecDense, error) {
	n := len(ds)
	if n == 0 {
		return nil, nil, errors.NewModelError("QuadraticDesign", "empty data", errors.ErrEmptyData)
	}

	F := mat.NewDense(n, len(QuadraticColumns), nil)
	y := mat.NewVecDense(n, nil)
	for i, s := range ds {
		F.SetRow(i, QuadraticRow(s.X1, s.X2))
		y.SetVec(i, SignLabel(s.Y))
	}
	return F, y, nil
}

// QuadraticRow expands one point into the QuadraticColumns order.
func QuadraticRow(x1, x2 float64) []float64 {
	return []float64{1, x1, x2, x1 * x1, x1 * x2, x2 * x2}
}

// SignLabel maps class 1 to +1 and anything else to -1.
func SignLabel(label float64) float64 {
	if label == 1 {
		return 1
	}
	return -1
}

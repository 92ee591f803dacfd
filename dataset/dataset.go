// Package dataset holds the raw sample types shared by the estimators and
// the loaders that read them from comma separated text.
package dataset

import (
	"math/rand"

	"github.com/YuminosukeSato/pointml/pkg/errors"
)

// Point is a 2-D coordinate.
type Point struct {
	X, Y float64
}

// LabeledPoint is a point with an integer cluster label.
type LabeledPoint struct {
	Point
	Cluster int
}

// Sample is one raw input row: two features and a target or label.
type Sample struct {
	X1, X2, Y float64
}

// Dataset is an ordered sequence of samples.
type Dataset []Sample

// Columns returns the three columns of the dataset as separate slices.
func (ds Dataset) Columns() (x1, x2, y []float64) {
	x1 = make([]float64, len(ds))
	x2 = make([]float64, len(ds))
	y = make([]float64, len(ds))
	for i, s := range ds {
		x1[i], x2[i], y[i] = s.X1, s.X2, s.Y
	}
	return x1, x2, y
}

// Split shuffles a copy of ds with rng and returns the first
// floor(ratio*n) samples as the training split and the rest as the
// validation split. Both splits must be non-empty.
func Split(ds Dataset, ratio float64, rng *rand.Rand) (train, validation Dataset, err error) {
	if len(ds) == 0 {
		return nil, nil, errors.NewModelError("dataset.Split", "empty data", errors.ErrEmptyData)
	}
	if !(ratio > 0 && ratio < 1) {
		return nil, nil, errors.NewValidationError("ratio", "must be in (0, 1)", ratio)
	}
	if rng == nil {
		return nil, nil, errors.NewValueError("dataset.Split", "random source is required")
	}

	nTrain := int(ratio * float64(len(ds)))
	if nTrain == 0 || nTrain == len(ds) {
		return nil, nil, errors.NewValidationError("ratio",
			"leaves one of the splits empty", len(ds))
	}

	shuffled := make(Dataset, len(ds))
	for i, idx := range rng.Perm(len(ds)) {
		shuffled[i] = ds[idx]
	}
	return shuffled[:nTrain:nTrain], shuffled[nTrain:], nil
}

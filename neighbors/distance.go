package neighbors

import (
	"math"

	"github.com/YuminosukeSato/pointml/dataset"
	"github.com/YuminosukeSato/pointml/pkg/errors"
)

// Distance measures how far apart two points are.
type Distance func(a, b dataset.Point) float64

// Euclidean is the straight-line distance.
func Euclidean(a, b dataset.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Manhattan is the sum of the absolute coordinate differences.
func Manhattan(a, b dataset.Point) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

// ParseDistance maps a metric name to its Distance.
func ParseDistance(name string) (Distance, error) {
	switch name {
	case "", "euclidean":
		return Euclidean, nil
	case "manhattan":
		return Manhattan, nil
	default:
		return nil, errors.NewValidationError("metric", "must be euclidean or manhattan", name)
	}
}

package neighbors

import (
	"github.com/YuminosukeSato/pointml/core/model"
	"github.com/YuminosukeSato/pointml/core/parallel"
	"github.com/YuminosukeSato/pointml/dataset"
	"github.com/YuminosukeSato/pointml/pkg/errors"
)

// Classifier is a fitted k-nearest-neighbors model: it keeps the training
// points and classifies queries with Classify.
type Classifier struct {
	state  *model.StateManager
	k      int
	dist   Distance
	points []dataset.LabeledPoint
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithDistance sets the metric. The default is Euclidean.
func WithDistance(d Distance) Option {
	return func(c *Classifier) {
		c.dist = d
	}
}

// NewClassifier creates a classifier that votes among k neighbors.
func NewClassifier(k int, opts ...Option) *Classifier {
	c := &Classifier{
		state: model.NewStateManager(),
		k:     k,
		dist:  Euclidean,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fit stores a copy of the training points.
func (c *Classifier) Fit(points []dataset.LabeledPoint) error {
	if len(points) == 0 {
		return errors.NewModelError("Classifier.Fit", "empty data", errors.ErrEmptyData)
	}
	if c.k < 1 || c.k > len(points) {
		return errors.NewValidationError("k", "must be between 1 and the number of points", c.k)
	}
	c.points = append([]dataset.LabeledPoint(nil), points...)
	c.state.SetFitted(2, len(points))
	return nil
}

// Predict classifies each query. Large batches are split across goroutines.
func (c *Classifier) Predict(queries []dataset.Point) ([]int, error) {
	if err := c.state.RequireFitted("Classifier", "Predict"); err != nil {
		return nil, err
	}

	out := make([]int, len(queries))
	errs := make([]error, len(queries))
	parallel.ParallelizeWithThreshold(len(queries), ParallelThreshold, func(start, end int) {
		s := newScratch(len(c.points))
		for i := start; i < end; i++ {
			out[i], errs[i] = s.classify(c.points, nil, queries[i], c.dist, c.k)
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Score returns the fraction of points whose predicted label is correct.
func (c *Classifier) Score(points []dataset.LabeledPoint) (float64, error) {
	if len(points) == 0 {
		return 0, errors.NewValueError("Classifier.Score", "empty data")
	}
	queries := make([]dataset.Point, len(points))
	for i, p := range points {
		queries[i] = p.Point
	}
	pred, err := c.Predict(queries)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i, label := range pred {
		if label == points[i].Cluster {
			correct++
		}
	}
	return float64(correct) / float64(len(points)), nil
}

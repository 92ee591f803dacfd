package optimize

import (
	"context"
	"math"

	"github.com/YuminosukeSato/pointml/pkg/errors"
	"github.com/YuminosukeSato/pointml/pkg/log"
)

// Objective evaluates the function being minimized.
type Objective func(x []float64) float64

// Gradient evaluates the gradient of the objective at x.
// The returned slice must have the same length as x.
type Gradient func(x []float64) []float64

// Result is the outcome of a descent run.
type Result struct {
	// X is the final iterate.
	X []float64
	// Loss is the objective at X.
	Loss float64
	// Iterations is the number of steps taken.
	Iterations int
	// Converged is false only when the iteration ceiling was reached.
	Converged bool
}

type config struct {
	maxIter  int
	logger   log.Logger
	logEvery int
}

// Option configures Descend.
type Option func(*config)

// WithMaxIter caps the number of steps. Zero or negative keeps the loop
// uncapped. When the cap is hit the last iterate is returned with
// Converged=false and a ConvergenceWarning is emitted.
func WithMaxIter(n int) Option {
	return func(c *config) {
		c.maxIter = n
	}
}

// WithLogger sets the logger used for progress records.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithLogEvery sets how often (in steps) a debug progress record is written.
func WithLogEvery(n int) Option {
	return func(c *config) {
		c.logEvery = n
	}
}

// Descend minimizes f by fixed-step gradient descent starting at x0.
//
// The callables receive a fresh slice on every call and may keep it; x0 is
// never modified. Panics raised by f or g are returned as *errors.PanicError.
func Descend(x0 []float64, lambda float64, f Objective, g Gradient, eps float64, opts ...Option) (res Result, err error) {
	defer errors.Recover(&err, "optimize.Descend")

	cfg := config{logEvery: 1000}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName("optimize")
	}

	switch {
	case len(x0) == 0:
		return Result{}, errors.NewModelError("optimize.Descend", "empty starting point", errors.ErrEmptyData)
	case !(lambda > 0) || math.IsInf(lambda, 0):
		return Result{}, errors.NewValidationError("lambda", "must be a positive finite step size", lambda)
	case !(eps > 0):
		return Result{}, errors.NewValidationError("eps", "must be positive", eps)
	case f == nil || g == nil:
		return Result{}, errors.NewValueError("optimize.Descend", "objective and gradient are required")
	}

	debug := cfg.logger.Enabled(context.Background(), log.LevelDebug)
	d := len(x0)

	x := append([]float64(nil), x0...)
	fx := f(clone(x))
	if err := errors.CheckScalar("optimize.Descend objective", fx, 0); err != nil {
		return Result{}, err
	}

	for iter := 1; ; iter++ {
		grad := g(clone(x))
		if len(grad) != d {
			return Result{}, errors.NewDimensionError("optimize.Descend gradient", d, len(grad), 1)
		}

		next := make([]float64, d)
		for j := range next {
			next[j] = x[j] - lambda*grad[j]
		}
		fnext := f(clone(next))

		if err := errors.CheckScalar("optimize.Descend objective", fnext, iter); err != nil {
			return Result{X: x, Loss: fx, Iterations: iter - 1}, err
		}

		if debug && cfg.logEvery > 0 && iter%cfg.logEvery == 0 {
			cfg.logger.Debug("Descent step",
				log.IterationKey, iter,
				log.LossKey, fnext,
			)
		}

		if math.Abs(fnext-fx) < eps {
			return Result{X: next, Loss: fnext, Iterations: iter, Converged: true}, nil
		}

		x, fx = next, fnext

		if cfg.maxIter > 0 && iter >= cfg.maxIter {
			errors.Warn(errors.NewConvergenceWarning("GradientDescent", iter,
				"objective change stayed above epsilon"))
			cfg.logger.Warn("Iteration ceiling reached",
				log.IterationKey, iter,
				log.LossKey, fx,
				log.ErrorCodeKey, log.ErrorConvergence,
			)
			return Result{X: x, Loss: fx, Iterations: iter}, nil
		}
	}
}

func clone(x []float64) []float64 {
	return append([]float64(nil), x...)
}

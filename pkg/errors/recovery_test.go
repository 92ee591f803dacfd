package errors_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/pointml/optimize"
	"github.com/YuminosukeSato/pointml/pkg/errors"
)

func square(x []float64) float64       { return x[0] * x[0] }
func squareGrad(x []float64) []float64 { return []float64{2 * x[0]} }

var errGradient = errors.New("gradient unavailable")

func TestDescendPanicBecomesPanicError(t *testing.T) {
	tests := []struct {
		name      string
		f         optimize.Objective
		g         optimize.Gradient
		wantValue interface{}
	}{
		{
			name:      "objective",
			f:         func(x []float64) float64 { panic("objective exploded") },
			g:         squareGrad,
			wantValue: "objective exploded",
		},
		{
			name: "gradient after some steps",
			f:    square,
			g: func(x []float64) []float64 {
				if math.Abs(x[0]) < 1 {
					panic(errGradient)
				}
				return squareGrad(x)
			},
			wantValue: errGradient,
		},
		{
			name: "index out of range",
			f:    square,
			g: func(x []float64) []float64 {
				return []float64{x[1]}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := optimize.Descend([]float64{4}, 0.1, tt.f, tt.g, 1e-9)
			require.Error(t, err)
			assert.Nil(t, res.X)

			var panicErr *errors.PanicError
			require.True(t, errors.As(err, &panicErr), "got %T: %v", err, err)
			assert.Equal(t, "optimize.Descend", panicErr.Operation)
			assert.Contains(t, panicErr.Error(), "panic in optimize.Descend")
			assert.Contains(t, panicErr.StackTrace, "optimize")
			assert.Contains(t, panicErr.String(), "Stack trace:")
			if tt.wantValue != nil {
				assert.Equal(t, tt.wantValue, panicErr.PanicValue)
			}
		})
	}
}

func TestDescendPanicUnwrapsErrorValue(t *testing.T) {
	g := func(x []float64) []float64 { panic(errGradient) }
	_, err := optimize.Descend([]float64{1}, 0.1, square, g, 1e-6)

	assert.True(t, errors.Is(err, errGradient))
}

func TestRecoverKeepsEarlierError(t *testing.T) {
	earlier := errors.NewValueError("Fit", "bad input")
	fn := func() (err error) {
		defer errors.Recover(&err, "Fit")
		err = earlier
		panic("late failure")
	}

	err := fn()
	var panicErr *errors.PanicError
	require.True(t, errors.As(err, &panicErr))
	assert.Equal(t, "late failure", panicErr.PanicValue)
	assert.Equal(t, "panic in Fit: late failure", err.Error())
}

func TestSafeExecute(t *testing.T) {
	var loss float64
	err := errors.SafeExecute("objective", func() error {
		loss = square([]float64{3})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 9.0, loss)

	err = errors.SafeExecute("objective", func() error { return errGradient })
	assert.Equal(t, errGradient, err)

	err = errors.SafeExecute("objective", func() error {
		var grad []float64
		loss = grad[0]
		return nil
	})
	var panicErr *errors.PanicError
	require.True(t, errors.As(err, &panicErr))
	assert.Equal(t, "objective", panicErr.Operation)
}

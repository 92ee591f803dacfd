package linear

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/pointml/core/model"
	"github.com/YuminosukeSato/pointml/pkg/errors"
	"github.com/YuminosukeSato/pointml/preprocessing"
)

func TestRegressionPersistence(t *testing.T) {
	F, y := randomDesign(rand.New(rand.NewSource(9)), 15, 0.1)
	reg := NewRegression(WithColumns(preprocessing.LinearColumns))
	require.NoError(t, reg.Fit(F, y))

	w, err := reg.Weights()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, model.SaveModelToWriter(w, &buf, model.CodecZstd))
	loaded, err := model.LoadModelFromReader(&buf)
	require.NoError(t, err)

	restored, err := FromWeights(loaded)
	require.NoError(t, err)
	got, ok := restored.(*Regression)
	require.True(t, ok)

	want, err := reg.Predict(F)
	require.NoError(t, err)
	pred, err := got.Predict(F)
	require.NoError(t, err)
	assert.Equal(t, want.RawVector().Data, pred.RawVector().Data)
	assert.Equal(t, reg.Coefficients(), got.Coefficients())
}

func TestLogisticPersistenceFile(t *testing.T) {
	F, y, err := preprocessing.QuadraticDesign(separable(rand.New(rand.NewSource(10)), 30))
	require.NoError(t, err)
	clf := NewLogisticRegression(WithMaxIter(2000), WithColumns(preprocessing.QuadraticColumns))
	require.NoError(t, clf.Fit(F, y))

	w, err := clf.Weights()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "logreg.bin")
	require.NoError(t, model.SaveModel(w, path, model.CodecS2))

	loaded, err := model.LoadModel(path)
	require.NoError(t, err)
	restored, err := LogisticFromWeights(loaded)
	require.NoError(t, err)

	assert.Equal(t, clf.Coefficients(), restored.Coefficients())
	accWant, _ := clf.Score(F, y)
	accGot, err := restored.Score(F, y)
	require.NoError(t, err)
	assert.Equal(t, accWant, accGot)
}

func TestGDRegressionFromWeights(t *testing.T) {
	F, y := randomDesign(rand.New(rand.NewSource(11)), 20, 0)
	gd := NewGDRegression(WithColumns(preprocessing.LinearColumns))
	require.NoError(t, gd.Fit(F, y))

	w, err := gd.Weights()
	require.NoError(t, err)
	restored, err := GDRegressionFromWeights(w)
	require.NoError(t, err)
	assert.Equal(t, gd.Coefficients(), restored.Coefficients())
	assert.True(t, restored.IsFitted())
}

func TestFromWeightsErrors(t *testing.T) {
	_, err := FromWeights(nil)
	assert.Error(t, err)

	F, y := randomDesign(rand.New(rand.NewSource(12)), 10, 0)
	reg := NewRegression()
	require.NoError(t, reg.Fit(F, y))
	w, err := reg.Weights()
	require.NoError(t, err)

	_, err = LogisticFromWeights(w)
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	w.ModelType = "Perceptron"
	_, err = FromWeights(w)
	assert.True(t, errors.As(err, &valErr))
}

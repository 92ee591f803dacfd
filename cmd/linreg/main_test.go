package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/pointml/core/model"
	"github.com/YuminosukeSato/pointml/internal/cli"
)

// planeCSV writes n samples of y = 3 + 2·x1 - x2. Every x1 and x2 value is
// distinct so any split normalizes cleanly.
func planeCSV(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i < n; i++ {
		x1 := float64(i)
		x2 := x1 * x1 / 4
		fmt.Fprintf(&b, "%g,%g,%g\n", x1, x2, 3+2*x1-x2)
	}
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func TestRunPinv(t *testing.T) {
	path := planeCSV(t, 8)

	var stdout, stderr bytes.Buffer
	code := run([]string{path}, &stdout, &stderr)
	require.Equal(t, cli.ExitOK, code, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 8)
	for _, line := range lines {
		assert.Contains(t, line, " -> ")
		assert.True(t, strings.HasSuffix(line, "%"), line)
	}
	assert.True(t, strings.HasPrefix(lines[0], "3 "), lines[0])
}

func TestRunPinvSaveAndPlot(t *testing.T) {
	path := planeCSV(t, 6)
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.bin")
	chart := filepath.Join(dir, "fit.png")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-save", modelPath, "-codec", "lz4", "-plot", chart, path}, &stdout, &stderr)
	require.Equal(t, cli.ExitOK, code, stderr.String())
	assert.FileExists(t, chart)

	w, err := model.LoadModel(modelPath)
	require.NoError(t, err)
	assert.Equal(t, "Regression", w.ModelType)
	assert.Len(t, w.Coefficients, 3)
}

func TestRunGD(t *testing.T) {
	path := planeCSV(t, 10)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-method", "gd", "-seed", "7", "-max-iter", "200000", path}, &stdout, &stderr)
	require.Equal(t, cli.ExitOK, code, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], " -> ")
	assert.True(t, strings.HasPrefix(lines[2], "rmse: "), lines[2])
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, cli.ExitUsage, run([]string{"a.csv", "b.csv"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage: linreg")

	stderr.Reset()
	assert.Equal(t, cli.ExitUsage, run([]string{"-bogus", "a.csv"}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()
	twoFields := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(twoFields, []byte("1,2,3\n4,5\n"), 0o600))
	constant := filepath.Join(dir, "constant.csv")
	require.NoError(t, os.WriteFile(constant, []byte("1,2,3\n1,5,4\n1,7,6\n"), 0o600))

	tests := []struct {
		name string
		args []string
	}{
		{"two fields", []string{twoFields}},
		{"constant column", []string{constant}},
		{"unknown method", []string{"-method", "qr", planeCSV(t, 4)}},
		{"unknown codec", []string{"-save", filepath.Join(dir, "m.bin"), "-codec", "brotli", planeCSV(t, 4)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, cli.ExitFailure, run(tt.args, &stdout, &stderr))
			assert.Contains(t, stderr.String(), "Command failed")
		})
	}
}

// Command logreg trains a logistic classifier on quadratic features of
// (x1, x2) and reports its accuracy on a held-out 20% of the samples.
//
// Usage:
//
//	logreg [-lambda λ] [-eps ε] [-max-iter n] [-save model.bin -codec zstd]
//	       [-plot boundary.png] [-seed s] data.csv
//
// Label 1 is the positive class; every other label is negative. The output
// is "ok: <successes>, total: <n>".
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/YuminosukeSato/pointml/core/model"
	"github.com/YuminosukeSato/pointml/dataset"
	"github.com/YuminosukeSato/pointml/internal/cli"
	"github.com/YuminosukeSato/pointml/linear"
	"github.com/YuminosukeSato/pointml/visualize"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs, common := cli.NewFlagSet("logreg", stderr)
	lambda := fs.Float64("lambda", linear.DefaultLogisticLearningRate, "gradient descent step")
	eps := fs.Float64("eps", linear.DefaultLogisticEpsilon, "gradient descent stopping threshold")
	maxIter := fs.Int("max-iter", 0, "gradient descent iteration ceiling (0 is uncapped)")
	save := fs.String("save", "", "write the fitted model to this file")
	codec := fs.String("codec", model.CodecZstd.String(), "model compression: none, zstd, s2 or lz4")

	path, err := cli.Parse(fs, args)
	if err != nil {
		return cli.ExitUsage
	}
	if err := common.Setup(stderr); err != nil {
		return cli.Fail("logreg", stderr, err)
	}

	ds, err := dataset.Load(path)
	if err != nil {
		return cli.Fail("logreg", stderr, err)
	}

	report, err := linear.ValidateLogistic(ds, common.Seed,
		linear.WithLearningRate(*lambda),
		linear.WithEpsilon(*eps),
		linear.WithMaxIter(*maxIter),
	)
	if err != nil {
		return cli.Fail("logreg", stderr, err)
	}
	fmt.Fprintf(stdout, "ok: %d, total: %d\n", report.Successes, report.Total)

	if err := cli.SaveWeights(report.Model, *save, *codec); err != nil {
		return cli.Fail("logreg", stderr, err)
	}
	if common.Plot != "" {
		if err := visualize.DecisionChart(ds, report.Model, common.Plot); err != nil {
			return cli.Fail("logreg", stderr, err)
		}
	}
	return cli.ExitOK
}

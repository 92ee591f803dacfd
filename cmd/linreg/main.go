// Command linreg fits a linear model y ≈ α0 + α1·norm(x1) + α2·norm(x2).
//
// Usage:
//
//	linreg [-method pinv|gd] [-lambda λ] [-eps ε] [-max-iter n]
//	       [-save model.bin -codec zstd] [-plot fit.png] [-seed s] data.csv
//
// With -method pinv (the default) the model is fit on every sample by the
// SVD pseudo-inverse and one "<y> <ŷ> -> <diff> <pct>%" line is printed per
// sample. With -method gd the samples are shuffled and split 80/20, the model
// is fit by gradient descent on the first part, and the residual lines of the
// held-out part are followed by "rmse: <v>".
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/YuminosukeSato/pointml/core/model"
	"github.com/YuminosukeSato/pointml/dataset"
	"github.com/YuminosukeSato/pointml/internal/cli"
	"github.com/YuminosukeSato/pointml/linear"
	"github.com/YuminosukeSato/pointml/metrics"
	"github.com/YuminosukeSato/pointml/pkg/errors"
	"github.com/YuminosukeSato/pointml/preprocessing"
	"github.com/YuminosukeSato/pointml/visualize"
)

type options struct {
	method  string
	lambda  float64
	eps     float64
	maxIter int
	save    string
	codec   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs, common := cli.NewFlagSet("linreg", stderr)
	var opts options
	fs.StringVar(&opts.method, "method", "pinv", "fit method: pinv or gd")
	fs.Float64Var(&opts.lambda, "lambda", 0, "gradient descent step (0 uses 0.1/n)")
	fs.Float64Var(&opts.eps, "eps", linear.DefaultGDEpsilon, "gradient descent stopping threshold")
	fs.IntVar(&opts.maxIter, "max-iter", 0, "gradient descent iteration ceiling (0 is uncapped)")
	fs.StringVar(&opts.save, "save", "", "write the fitted model to this file")
	fs.StringVar(&opts.codec, "codec", model.CodecZstd.String(), "model compression: none, zstd, s2 or lz4")

	path, err := cli.Parse(fs, args)
	if err != nil {
		return cli.ExitUsage
	}
	if err := common.Setup(stderr); err != nil {
		return cli.Fail("linreg", stderr, err)
	}

	ds, err := dataset.Load(path)
	if err == nil {
		switch opts.method {
		case "pinv":
			err = fitPinv(ds, opts, common.Plot, stdout)
		case "gd":
			err = fitGD(ds, opts, common, stdout)
		default:
			err = errors.NewValidationError("method", "must be pinv or gd", opts.method)
		}
	}
	if err != nil {
		return cli.Fail("linreg", stderr, err)
	}
	return cli.ExitOK
}

func fitPinv(ds dataset.Dataset, opts options, plotPath string, stdout io.Writer) error {
	F, y, err := preprocessing.LinearDesign(ds)
	if err != nil {
		return err
	}
	reg := linear.NewRegression(linear.WithColumns(preprocessing.LinearColumns))
	if err := reg.Fit(F, y); err != nil {
		return err
	}
	yPred, err := reg.Predict(F)
	if err != nil {
		return err
	}
	residuals, err := metrics.Residuals(y, yPred)
	if err != nil {
		return err
	}
	printResiduals(stdout, residuals)

	if err := cli.SaveWeights(reg, opts.save, opts.codec); err != nil {
		return err
	}
	if plotPath != "" {
		return visualize.RegressionChart(residuals, plotPath)
	}
	return nil
}

func fitGD(ds dataset.Dataset, opts options, common *cli.Common, stdout io.Writer) error {
	report, err := linear.ValidateGD(ds, common.Seed,
		linear.WithLearningRate(opts.lambda),
		linear.WithEpsilon(opts.eps),
		linear.WithMaxIter(opts.maxIter),
	)
	if err != nil {
		return err
	}
	printResiduals(stdout, report.Residuals)
	fmt.Fprintf(stdout, "rmse: %v\n", report.Errors.RMSE)

	if err := cli.SaveWeights(report.Model, opts.save, opts.codec); err != nil {
		return err
	}
	if common.Plot != "" {
		return visualize.RegressionChart(report.Residuals, common.Plot)
	}
	return nil
}

func printResiduals(w io.Writer, residuals []metrics.Residual) {
	for _, r := range residuals {
		fmt.Fprintln(w, r.String())
	}
}

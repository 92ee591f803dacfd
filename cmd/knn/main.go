// Command knn evaluates k-nearest-neighbors classification of labeled 2-D
// points by leave-one-out for every k from 1 to n-1.
//
// Usage:
//
//	knn [-metric euclidean|manhattan] [-plot sweep.png] points.csv
//
// Each input line is "x,y,cluster". The output is "<n> points" followed by
// one "<k> <successes>" line per k.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/YuminosukeSato/pointml/dataset"
	"github.com/YuminosukeSato/pointml/internal/cli"
	"github.com/YuminosukeSato/pointml/neighbors"
	"github.com/YuminosukeSato/pointml/pkg/log"
	"github.com/YuminosukeSato/pointml/visualize"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs, common := cli.NewFlagSet("knn", stderr)
	metric := fs.String("metric", "euclidean", "distance: euclidean or manhattan")

	path, err := cli.Parse(fs, args)
	if err != nil {
		return cli.ExitUsage
	}
	if err := common.Setup(stderr); err != nil {
		return cli.Fail("knn", stderr, err)
	}

	if err := evaluate(path, *metric, common.Plot, stdout); err != nil {
		return cli.Fail("knn", stderr, err)
	}
	return cli.ExitOK
}

func evaluate(path, metric, plotPath string, stdout io.Writer) error {
	dist, err := neighbors.ParseDistance(metric)
	if err != nil {
		return err
	}
	points, err := dataset.LoadLabeled(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%d points\n", len(points))

	results, err := neighbors.Sweep(points, dist)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintf(stdout, "%d %d\n", r.K, r.Successes)
	}

	if plotPath != "" {
		if err := visualize.SweepChart(results, plotPath); err != nil {
			return err
		}
		log.GetLoggerWithName("knn").Info("Chart written", log.PathKey, plotPath)
	}
	return nil
}

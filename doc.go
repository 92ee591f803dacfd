// Package pointml provides small supervised-learning models for 2-D point
// data: k-nearest-neighbors classification evaluated by leave-one-out,
// linear regression fit by SVD pseudo-inverse or gradient descent, and
// logistic regression fit by gradient descent.
//
// # Installation
//
//	go get github.com/YuminosukeSato/pointml
//
// # Quick Start
//
// Fit y ≈ α0 + α1·norm(x1) + α2·norm(x2) on a CSV of "x1,x2,y" lines:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/pointml/dataset"
//	    "github.com/YuminosukeSato/pointml/linear"
//	    "github.com/YuminosukeSato/pointml/preprocessing"
//	)
//
//	func main() {
//	    ds, err := dataset.Load("data.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    F, y, err := preprocessing.LinearDesign(ds)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    reg := linear.NewRegression(linear.WithColumns(preprocessing.LinearColumns))
//	    if err := reg.Fit(F, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println("Coefficients:", reg.Coefficients())
//	}
//
// # Packages
//
//   - dataset: CSV loading and seeded train/validation splits
//   - preprocessing: min-max normalization and design matrices
//   - optimize: fixed-step gradient descent
//   - linear: Regression, GDRegression, LogisticRegression and validation runs
//   - neighbors: k-nearest-neighbors voting, leave-one-out and k sweeps
//   - metrics: RMSE, R², residuals and sign accuracy
//   - visualize: gonum/plot charts of fits, sweeps and decision boundaries
//   - core/model: fitted state, weights and compressed persistence
//   - core/parallel: chunked parallel loops
//   - pkg/errors, pkg/log: error types, warnings and zerolog logging
//
// # Commands
//
// cmd/knn, cmd/linreg and cmd/logreg run the models on a single CSV file
// given as the only positional argument.
//
// # License
//
// pointml is released under the MIT License.
package pointml

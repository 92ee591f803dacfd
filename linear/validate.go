package linear

import (
	"math/rand"

	"github.com/YuminosukeSato/pointml/dataset"
	"github.com/YuminosukeSato/pointml/metrics"
	"github.com/YuminosukeSato/pointml/pkg/errors"
	"github.com/YuminosukeSato/pointml/pkg/log"
	"github.com/YuminosukeSato/pointml/preprocessing"
)

// TrainRatio は検証ヘルパーがシャッフル後に訓練に使うサンプルの割合
const TrainRatio = 0.8

// ValidationReport は回帰の検証結果
type ValidationReport struct {
	// Errors は検証データ上の誤差の集計（RMSE, MAE など）
	Errors metrics.ErrorSummary
	// Residuals は検証データの各サンプルの残差
	Residuals []metrics.Residual
	Model     *GDRegression
}

// ClassificationReport は分類の検証結果
type ClassificationReport struct {
	Successes int
	Total     int
	Accuracy  float64
	Model     *LogisticRegression
}

// ValidateGD はデータを 80/20 に分割し、訓練側で GDRegression を学習して
// 検証側の残差を返す。
//
// 計画行列は分割ごとに独立して作られるため、検証側の正規化は検証側自身の
// 最小値・最大値で行われる（訓練側の統計は使わない）。
func ValidateGD(ds dataset.Dataset, seed int64, opts ...Option) (*ValidationReport, error) {
	train, validation, err := dataset.Split(ds, TrainRatio, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, errors.Wrap(err, "split")
	}

	Ftrain, ytrain, err := preprocessing.LinearDesign(train)
	if err != nil {
		return nil, errors.Wrap(err, "training design")
	}
	Fval, yval, err := preprocessing.LinearDesign(validation)
	if err != nil {
		return nil, errors.Wrap(err, "validation design")
	}

	reg := NewGDRegression(append([]Option{WithColumns(preprocessing.LinearColumns)}, opts...)...)
	if err := reg.Fit(Ftrain, ytrain); err != nil {
		return nil, err
	}

	yPred, err := reg.Predict(Fval)
	if err != nil {
		return nil, err
	}
	summary, err := metrics.Summarize(yval, yPred)
	if err != nil {
		return nil, err
	}
	residuals, err := metrics.Residuals(yval, yPred)
	if err != nil {
		return nil, err
	}

	reg.cfg.logger.Info("Validation finished",
		log.ModelNameKey, "GDRegression",
		log.PhaseKey, log.PhaseValidation,
		log.SamplesKey, len(validation),
		log.RMSEKey, summary.RMSE,
		log.MAEKey, summary.MAE,
	)
	return &ValidationReport{Errors: summary, Residuals: residuals, Model: reg}, nil
}

// ValidateLogistic はデータを 80/20 に分割し、二次特徴で LogisticRegression を
// 学習して検証側の符号一致数を返す。
func ValidateLogistic(ds dataset.Dataset, seed int64, opts ...Option) (*ClassificationReport, error) {
	train, validation, err := dataset.Split(ds, TrainRatio, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, errors.Wrap(err, "split")
	}

	Ftrain, ytrain, err := preprocessing.QuadraticDesign(train)
	if err != nil {
		return nil, errors.Wrap(err, "training design")
	}
	Fval, yval, err := preprocessing.QuadraticDesign(validation)
	if err != nil {
		return nil, errors.Wrap(err, "validation design")
	}

	clf := NewLogisticRegression(append([]Option{WithColumns(preprocessing.QuadraticColumns)}, opts...)...)
	if err := clf.Fit(Ftrain, ytrain); err != nil {
		return nil, err
	}

	scores, err := clf.DecisionFunction(Fval)
	if err != nil {
		return nil, err
	}
	successes, err := metrics.CountSignMatches(yval, scores)
	if err != nil {
		return nil, err
	}

	total := len(validation)
	report := &ClassificationReport{
		Successes: successes,
		Total:     total,
		Accuracy:  float64(successes) / float64(total),
		Model:     clf,
	}
	clf.cfg.logger.Info("Validation finished",
		log.ModelNameKey, "LogisticRegression",
		log.PhaseKey, log.PhaseValidation,
		log.SuccessesKey, successes,
		log.AccuracyKey, report.Accuracy,
	)
	return report, nil
}

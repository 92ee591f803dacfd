package model

import (
	"github.com/YuminosukeSato/pointml/pkg/errors"
)

// WeightsVersion は現在の保存形式のバージョン
const WeightsVersion = "1"

// ModelWeights はモデルの重みを表す構造体（シリアライゼーション用）
type ModelWeights struct {
	// ModelType はモデルの種類（Regression, GDRegression, LogisticRegression）
	ModelType string

	// Version はモデルのバージョン（互換性チェック用）
	Version string

	// Coefficients はパラメータベクトル α（切片は Coefficients[0]）
	Coefficients []float64

	// Columns は計画行列の列名。予測時に同じ列順であることを確認するために使う
	Columns []string

	// Hyperparameters はモデルのハイパーパラメータ
	Hyperparameters map[string]float64

	// Metadata は追加のメタデータ（学習サンプル数等）
	Metadata map[string]string

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return errors.NewValidationError("model_type", "is required", mw.ModelType)
	}

	if mw.Version != WeightsVersion {
		return errors.NewValidationError("version", "unsupported weights version", mw.Version)
	}

	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return errors.NewValidationError("coefficients", "unfitted model should not have coefficients", len(mw.Coefficients))
	}

	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return errors.NewValidationError("coefficients", "fitted model must have coefficients", 0)
	}

	if len(mw.Columns) != 0 && len(mw.Columns) != len(mw.Coefficients) {
		return errors.NewDimensionError("ModelWeights.Validate", len(mw.Columns), len(mw.Coefficients), 1)
	}

	return nil
}

// Clone はModelWeightsのディープコピーを作成
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := &ModelWeights{
		ModelType:       mw.ModelType,
		Version:         mw.Version,
		IsFitted:        mw.IsFitted,
		Coefficients:    append([]float64(nil), mw.Coefficients...),
		Columns:         append([]string(nil), mw.Columns...),
		Hyperparameters: make(map[string]float64, len(mw.Hyperparameters)),
		Metadata:        make(map[string]string, len(mw.Metadata)),
	}

	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}

	for k, v := range mw.Metadata {
		clone.Metadata[k] = v
	}

	return clone
}

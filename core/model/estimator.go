package model

import "gonum.org/v1/gonum/mat"

// Fitter は計画行列と目的変数から学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(F *mat.Dense, y *mat.VecDense) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は計画行列の各行に対する予測を返す
	Predict(F *mat.Dense) (*mat.VecDense, error)
}

// Scorer はモデルの評価値を計算するインターフェース
type Scorer interface {
	Score(F *mat.Dense, y *mat.VecDense) (float64, error)
}

// Persistable は重みとして保存・復元できるモデルのインターフェース
type Persistable interface {
	// Weights は学習済みパラメータを保存用の形式で返す
	Weights() (*ModelWeights, error)
}

// Model は教師あり学習モデルの基本インターフェース
type Model interface {
	Fitter
	Predictor
	Persistable
}

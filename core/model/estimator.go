package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる。y は1列の行列。
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を n×1 の行列で返す
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer はモデルの評価値を計算するインターフェース
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}

// Regressor は回帰モデルのインターフェース。Score は決定係数（R²）を返す。
type Regressor interface {
	Fitter
	Predictor
	Scorer
}

// Classifier は分類モデルのインターフェース。
// ラベルは浮動小数点数で学習し、予測はテキスト形式のラベルで返す。
// Score は正解率を返す。
type Classifier interface {
	Fitter
	Scorer
	Predict(X mat.Matrix) ([]string, error)
}

// LinearModel は線形モデルのインターフェース
type LinearModel interface {
	// Weights は学習された重み（係数）を返す
	Weights() []float64
	// Intercept は学習された切片を返す
	Intercept() float64
}

package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goregress/pkg/errors"
)

// Update は1ステップ分のパラメータ更新量です。現在の係数とバイアスに加算して使います。
type Update struct {
	Weights []float64
	Bias    float64
}

// residuals は y - yHat を返します。
func residuals(op string, x mat.Matrix, y, yHat []float64) ([]float64, error) {
	n, _ := x.Dims()
	if len(y) != n {
		return nil, errors.NewDimensionError(op, n, len(y), 0)
	}
	if len(yHat) != n {
		return nil, errors.NewDimensionError(op, n, len(yHat), 0)
	}
	if n == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	r := make([]float64, n)
	floats.SubTo(r, y, yHat)
	return r, nil
}

// columnDots は各列 j について dot(x[:,j], r) を計算します。
func columnDots(x mat.Matrix, r []float64) []float64 {
	_, p := x.Dims()
	col := make([]float64, len(r))
	dots := make([]float64, p)
	for j := 0; j < p; j++ {
		mat.Col(col, j, x)
		dots[j] = floats.Dot(col, r)
	}
	return dots
}

// UpdateWeightsMSE は二乗誤差の更新量を返します。
//
//	Δw_j = lr/(2n) · dot(x[:,j], y-ŷ)
//	Δb   = lr/(2n) · Σ(y-ŷ)
func UpdateWeightsMSE(x mat.Matrix, y, yHat []float64, lr float64) (Update, error) {
	r, err := residuals("UpdateWeightsMSE", x, y, yHat)
	if err != nil {
		return Update{}, err
	}
	return mseUpdate(x, r, lr), nil
}

func mseUpdate(x mat.Matrix, r []float64, lr float64) Update {
	scale := lr / (2 * float64(len(r)))
	dw := columnDots(x, r)
	floats.Scale(scale, dw)
	return Update{Weights: dw, Bias: scale * floats.Sum(r)}
}

// UpdateWeightsMAE は絶対誤差の更新量を返します。1/n の代わりに 1/Σ|y-ŷ| で正規化し、
// バイアスは残差の総和の符号を反転させたものを使います。
//
//	Δw_j = lr · dot(x[:,j], y-ŷ) / Σ|y-ŷ|
//	Δb   = -lr · Σ(y-ŷ) / Σ|y-ŷ|
//
// 残差がすべて0の場合、更新量は0です。
func UpdateWeightsMAE(x mat.Matrix, y, yHat []float64, lr float64) (Update, error) {
	r, err := residuals("UpdateWeightsMAE", x, y, yHat)
	if err != nil {
		return Update{}, err
	}
	return maeUpdate(x, r, lr), nil
}

func maeUpdate(x mat.Matrix, r []float64, lr float64) Update {
	absSum := absSum(r)
	dw := columnDots(x, r)
	if absSum == 0 {
		return Update{Weights: make([]float64, len(dw))}
	}
	floats.Scale(lr/absSum, dw)
	return Update{Weights: dw, Bias: -lr * floats.Sum(r) / absSum}
}

// UpdateWeightsHuber は Huber 損失の近似です。残差ごとの区分関数ではなく、
// 残差の絶対値の総和が delta 以下なら MAE の更新、それ以外は MSE の更新を選びます。
func UpdateWeightsHuber(x mat.Matrix, y, yHat []float64, lr, delta float64) (Update, error) {
	r, err := residuals("UpdateWeightsHuber", x, y, yHat)
	if err != nil {
		return Update{}, err
	}
	if absSum(r) <= delta {
		return maeUpdate(x, r, lr), nil
	}
	return mseUpdate(x, r, lr), nil
}

func absSum(r []float64) float64 {
	var s float64
	for _, v := range r {
		s += math.Abs(v)
	}
	return s
}

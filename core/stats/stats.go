// Package stats は基本統計量と、勾配降下法で使う損失関数ごとの重み更新量を提供します。
package stats

import (
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/goregress/pkg/errors"
)

// Mean は算術平均を返します。空の入力では0です。
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// Variance は母分散 (n で割る) を返します。空の入力では0です。
func Variance(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.PopVariance(x, nil)
}

// Covariance は母共分散 (n で割る) を返します。
// 長さが異なる場合はエラー、要素数が1以下なら0です。
func Covariance(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.NewDimensionError("Covariance", len(x), len(y), 0)
	}
	n := len(x)
	if n <= 1 {
		return 0, nil
	}
	// stat.Covariance は不偏推定量なので (n-1)/n を掛けて母共分散に直す
	return stat.Covariance(x, y, nil) * float64(n-1) / float64(n), nil
}

// Package preprocessing は特徴量の前処理を提供します。
package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goregress/core/matrix"
	"github.com/YuminosukeSato/goregress/core/model"
	"github.com/YuminosukeSato/goregress/core/parallel"
	"github.com/YuminosukeSato/goregress/core/stats"
	"github.com/YuminosukeSato/goregress/pkg/errors"
)

// StandardScaler は各列を平均0、標準偏差1 (母分散) に変換する
//
// k 近傍のような距離ベースのモデルでは、スケールの大きい列が距離を支配するため
// 学習前に標準化しておくと良い。
type StandardScaler struct {
	model.BaseEstimator

	// Mean は各特徴量の平均値
	Mean []float64
	// Scale は各特徴量の標準偏差。分散がほぼ0の列は1
	Scale []float64
}

// NewStandardScaler は未学習の StandardScaler を作成する
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit は列ごとの平均と標準偏差を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)
	for j := 0; j < c; j++ {
		col := matrix.Column(X, j)
		s.Mean[j] = stats.Mean(col)
		s.Scale[j] = math.Sqrt(stats.Variance(col))
		if s.Scale[j] < 1e-8 {
			s.Scale[j] = 1
		}
	}

	s.SetFitted(r, c)
	return nil
}

// Transform は学習済みの統計量で X を標準化した新しい行列を返す
func (s *StandardScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}
	r, c := X.Dims()
	if c != len(s.Mean) {
		return nil, errors.NewDimensionError("StandardScaler.Transform", len(s.Mean), c, 1)
	}

	out := mat.NewDense(r, c, nil)
	parallel.ForEachRow(r, func(i int) {
		for j := 0; j < c; j++ {
			out.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	})
	return out, nil
}

// FitTransform は Fit と Transform を続けて行う
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化を元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}
	r, c := X.Dims()
	if c != len(s.Mean) {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", len(s.Mean), c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(i, j)*s.Scale[j]+s.Mean[j])
		}
	}
	return out, nil
}

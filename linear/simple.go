package linear

import (
	"github.com/YuminosukeSato/goregress/core/stats"
	"github.com/YuminosukeSato/goregress/pkg/errors"
	"github.com/YuminosukeSato/goregress/pkg/log"
)

// SimpleLinearRegression は1変数の線形回帰 y = b0 + b1·x
//
//	b1 = cov(x, y) / var(x)
//	b0 = mean(y) - b1·mean(x)
type SimpleLinearRegression struct {
	b0, b1 float64
	fitted bool
	logger log.Logger
}

// NewSimpleLinearRegression は新しい単回帰モデルを作成する
func NewSimpleLinearRegression(opts ...Option) *SimpleLinearRegression {
	cfg := newConfig(opts)
	return &SimpleLinearRegression{
		logger: cfg.logger.With(log.ModelNameKey, "SimpleLinearRegression"),
	}
}

// Fit は係数を計算する
func (s *SimpleLinearRegression) Fit(x, y []float64) error {
	const op = "SimpleLinearRegression.Fit"
	if len(x) == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	cov, err := stats.Covariance(x, y)
	if err != nil {
		return err
	}
	v := stats.Variance(x)
	if v == 0 {
		return errors.NewValueError(op, "x has zero variance")
	}

	s.b1 = cov / v
	s.b0 = stats.Mean(y) - s.b1*stats.Mean(x)
	s.fitted = true

	s.logger.Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(x),
		"b0", s.b0,
		"b1", s.b1,
	)
	return nil
}

// Predict は1点に対する予測を返す
func (s *SimpleLinearRegression) Predict(x float64) (float64, error) {
	if !s.fitted {
		return 0, errors.NewNotFittedError("SimpleLinearRegression", "Predict")
	}
	return s.b0 + s.b1*x, nil
}

// PredictList は各点に対する予測を返す
func (s *SimpleLinearRegression) PredictList(xs []float64) ([]float64, error) {
	if !s.fitted {
		return nil, errors.NewNotFittedError("SimpleLinearRegression", "PredictList")
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = s.b0 + s.b1*x
	}
	return out, nil
}

// Coefficients は (b0, b1) を返す
func (s *SimpleLinearRegression) Coefficients() (b0, b1 float64) {
	return s.b0, s.b1
}

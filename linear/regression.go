package linear

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goregress/core/model"
	"github.com/YuminosukeSato/goregress/core/parallel"
	"github.com/YuminosukeSato/goregress/metrics"
	"github.com/YuminosukeSato/goregress/pkg/errors"
	"github.com/YuminosukeSato/goregress/pkg/log"
)

// LinearRegression は最小二乗法による重回帰モデル
//
// X に定数1の列を追加した A について A·r ≈ y を特異値分解で解き、
// r の最後の要素をバイアス、残りを各特徴量の係数とする。
type LinearRegression struct {
	model.BaseEstimator

	coefficients []float64
	bias         float64
	rank         int
	singular     []float64

	tolerance float64
	logger    log.Logger
}

var (
	_ model.Regressor   = (*LinearRegression)(nil)
	_ model.LinearModel = (*LinearRegression)(nil)
)

// NewLinearRegression は新しい線形回帰モデルを作成する
func NewLinearRegression(opts ...Option) *LinearRegression {
	cfg := newConfig(opts)
	return &LinearRegression{
		tolerance: cfg.tolerance,
		logger:    cfg.logger.With(log.ModelNameKey, "LinearRegression"),
	}
}

// Fit はモデルを訓練データで学習させる。再学習すると以前のパラメータは上書きされる。
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	const op = "LinearRegression.Fit"
	start := time.Now()

	r, c := X.Dims()
	ry, cy := y.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError(op, "y must be a column vector")
	}

	lr.logger.Debug("fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.ToleranceKey, lr.tolerance,
	)

	// A = [X | 1]
	A := mat.NewDense(r, c+1, nil)
	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				A.Set(i, j, X.At(i, j))
			}
			A.Set(i, c, 1)
		}
	})

	solution, rank, singular, err := solveSVD(op, A, y, lr.tolerance)
	if err != nil {
		lr.logger.Error("fit failed", err, log.OperationKey, log.OperationFit)
		return err
	}

	lr.coefficients = solution[:c]
	lr.bias = solution[c]
	lr.rank = rank
	lr.singular = singular
	lr.SetFitted(r, c)

	lr.logger.Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.DurationMsKey, time.Since(start).Milliseconds(),
		"rank", rank,
	)
	return nil
}

// solveSVD は A·x ≈ b を薄い特異値分解で解く。tol 以下の特異値は切り捨てる。
func solveSVD(op string, A, b mat.Matrix, tol float64) ([]float64, int, []float64, error) {
	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDThin); !ok {
		return nil, 0, nil, errors.NewSolveError(op, "SVD", errors.New("factorization did not converge"))
	}

	singular := svd.Values(nil)
	rank := 0
	for _, s := range singular {
		if s > tol {
			rank++
		}
	}
	if rank == 0 {
		return nil, 0, singular, errors.NewSolveError(op, "SVD",
			errors.Newf("all %d singular values are below tolerance %g", len(singular), tol))
	}

	var x mat.Dense
	err := errors.SafeExecute(op, func() error {
		svd.SolveTo(&x, b, rank)
		return nil
	})
	if err != nil {
		return nil, 0, singular, errors.NewSolveError(op, "SVD", err)
	}

	solution := mat.Col(nil, 0, &x)
	if err := errors.CheckNumericalStability(op, solution, 0); err != nil {
		return nil, 0, singular, errors.NewSolveError(op, "SVD", err)
	}
	return solution, rank, singular, nil
}

// Predict は入力データに対する予測を行う: ŷ = X·coefficients + bias
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}

	r, c := X.Dims()
	if c != len(lr.coefficients) {
		return nil, errors.NewDimensionError("LinearRegression.Predict", len(lr.coefficients), c, 1)
	}
	if r == 0 {
		return nil, errors.NewModelError("LinearRegression.Predict", "empty data", errors.ErrEmptyData)
	}

	w := mat.NewVecDense(c, lr.coefficients)
	var pred mat.VecDense
	pred.MulVec(X, w)

	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, pred.AtVec(i)+lr.bias)
	}
	return out, nil
}

// Score はモデルの決定係数（R²）を計算する
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("LinearRegression", "Score")
	}
	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, yPred)
}

// Weights は学習された係数のコピーを返す。未学習なら nil。
func (lr *LinearRegression) Weights() []float64 {
	if lr.coefficients == nil {
		return nil
	}
	return append([]float64(nil), lr.coefficients...)
}

// Intercept は学習されたバイアスを返す
func (lr *LinearRegression) Intercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.bias
}

// Rank は直近の Fit で tolerance を超えた特異値の数を返す
func (lr *LinearRegression) Rank() int {
	return lr.rank
}

// SingularValues は [X | 1] の特異値を降順で返す
func (lr *LinearRegression) SingularValues() []float64 {
	return append([]float64(nil), lr.singular...)
}

// ConditionNumber は最大特異値と最小特異値の比を返す
func (lr *LinearRegression) ConditionNumber() float64 {
	if len(lr.singular) == 0 {
		return math.NaN()
	}
	smallest := lr.singular[len(lr.singular)-1]
	if smallest == 0 {
		return math.Inf(1)
	}
	return lr.singular[0] / smallest
}

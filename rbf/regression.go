// Package rbf は放射基底関数（RBF）回帰を提供します。
//
// 学習データからランダムに選んだ行を中心とし、ガウスカーネルで作った計画行列 G について
// 正規方程式 (GᵀG)·w = Gᵀy を SVD / QR / LU のいずれかで解きます。
package rbf

import (
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goregress/core/matrix"
	"github.com/YuminosukeSato/goregress/core/model"
	"github.com/YuminosukeSato/goregress/metrics"
	"github.com/YuminosukeSato/goregress/pkg/errors"
	"github.com/YuminosukeSato/goregress/pkg/log"
)

// RBFRegression はガウスカーネルによる RBF 回帰モデル
//
// centers (numCenter × numCols) と weights (numCenter × 1) は作成時にすべて1で初期化される。
// Fit のたびに中心を選び直し、重みを解き直す。
type RBFRegression struct {
	model.BaseEstimator

	beta      float64
	numCenter int
	numCols   int
	centers   *mat.Dense
	weights   *mat.Dense

	factorization Factorization
	tolerance     float64
	rng           *rand.Rand
	logger        log.Logger
}

var _ model.Regressor = (*RBFRegression)(nil)

// NewRBFRegression は新しい RBF 回帰モデルを作成する。
// numCols は入力を展開した後の列数で、1列の入力は matrix.Expand で numCols 列に展開される。
func NewRBFRegression(beta float64, numCenter, numCols int, opts ...Option) (*RBFRegression, error) {
	if numCenter < 1 {
		return nil, errors.NewValidationError("num_center", "must be at least 1", numCenter)
	}
	if numCols < 1 {
		return nil, errors.NewValidationError("num_cols", "must be at least 1", numCols)
	}
	cfg := newConfig(opts)

	return &RBFRegression{
		beta:          beta,
		numCenter:     numCenter,
		numCols:       numCols,
		centers:       filled(numCenter, numCols, 1),
		weights:       filled(numCenter, 1, 1),
		factorization: cfg.factorization,
		tolerance:     cfg.tolerance,
		rng:           cfg.rng(),
		logger: cfg.logger.With(
			log.ModelNameKey, "RBFRegression",
			log.FactorizationKey, cfg.factorization.String(),
		),
	}, nil
}

func filled(r, c int, v float64) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = v
	}
	return mat.NewDense(r, c, data)
}

// Fit は中心をサンプリングし、正規方程式を解いて重みを求める
func (m *RBFRegression) Fit(X, y mat.Matrix) error {
	const op = "RBFRegression.Fit"
	start := time.Now()

	n, _ := X.Dims()
	ry, cy := y.Dims()
	if n == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if ry != n {
		return errors.NewDimensionError(op, n, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError(op, "y must be a column vector")
	}

	x, err := matrix.EnsureExpanded(X, m.numCols)
	if err != nil {
		return err
	}

	m.logger.Debug("fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, m.numCols,
		log.BetaKey, m.beta,
	)

	// 失敗時にモデルを部分的に更新しないよう、コピーに対して中心を選ぶ
	centers := mat.DenseCopyOf(m.centers)
	sampled := m.sampleCenters(centers, x)
	if sampled < m.numCenter {
		errors.Warn(errors.Newf("%s: only %d rows available for %d centers; remaining centers keep their previous values",
			op, sampled, m.numCenter))
	}

	g, err := DesignMatrix(x, centers, m.beta)
	if err != nil {
		return err
	}
	gtg, err := matrix.MatMul(g.T(), g)
	if err != nil {
		return err
	}
	gty, err := matrix.MatMul(g.T(), y)
	if err != nil {
		return err
	}

	res, err := solveNormal(op, m.factorization, gtg, gty, m.tolerance)
	if err != nil {
		m.logger.Error("fit failed", err, log.OperationKey, log.OperationFit)
		return err
	}
	if res.warning != nil {
		errors.Warn(res.warning)
	}

	m.centers = centers
	m.weights = res.weights
	m.SetFitted(n, m.numCols)
	m.logger.Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.CentersKey, sampled,
		"rank", res.rank,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// sampleCenters は行をシャッフルして先頭 numCenter 行を dst にコピーし、コピーした行数を返す
func (m *RBFRegression) sampleCenters(dst, x *mat.Dense) int {
	n, _ := x.Dims()
	count := 0
	for _, i := range m.rng.Perm(n) {
		if count >= m.numCenter {
			break
		}
		dst.SetRow(count, x.RawRowView(i))
		count++
	}
	return count
}

// Predict は G·w を n×1 の行列で返す。X は中心の列数に合わせて展開される。
func (m *RBFRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	const op = "RBFRegression.Predict"
	if r, _ := X.Dims(); r == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	x, err := matrix.EnsureExpanded(X, m.numCols)
	if err != nil {
		return nil, err
	}
	g, err := DesignMatrix(x, m.centers, m.beta)
	if err != nil {
		return nil, err
	}
	return matrix.MatMul(g, m.weights)
}

// Score は決定係数（R²）を計算する
func (m *RBFRegression) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, yPred)
}

// Centers は中心のコピーを返す
func (m *RBFRegression) Centers() *mat.Dense {
	return mat.DenseCopyOf(m.centers)
}

// Weights は重みのコピーを返す
func (m *RBFRegression) Weights() []float64 {
	return mat.Col(nil, 0, m.weights)
}

// Factorization は使用する分解の種類を返す
func (m *RBFRegression) Factorization() Factorization {
	return m.factorization
}

func (m *RBFRegression) String() string {
	return fmt.Sprintf("RBFRegression(beta=%g, centers=%d, cols=%d, factorization=%s)",
		m.beta, m.numCenter, m.numCols, m.factorization)
}

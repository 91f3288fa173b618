package linear

import (
	"context"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goregress/core/matrix"
	"github.com/YuminosukeSato/goregress/core/model"
	"github.com/YuminosukeSato/goregress/metrics"
	"github.com/YuminosukeSato/goregress/pkg/errors"
	"github.com/YuminosukeSato/goregress/pkg/log"
)

// PolynomialRegression は1変数の入力を degree 列に展開し、勾配降下法で学習する回帰モデル
//
// 係数は作成時に [0, 1) の一様乱数で初期化され、バイアスは0。
// Fit は現在のパラメータから学習を続けるため、繰り返し呼ぶと追加で学習が進む。
// 収束判定や早期終了は行わず、常に epochs 回だけ更新する。
type PolynomialRegression struct {
	model.BaseEstimator

	degree       int
	kind         LossKind
	loss         Loss
	coefficients []float64
	bias         float64

	epochs       int
	learningRate float64
	logger       log.Logger
}

var _ model.Regressor = (*PolynomialRegression)(nil)

// NewPolynomialRegression は新しい多項式回帰モデルを作成する
func NewPolynomialRegression(degree int, kind LossKind, opts ...Option) (*PolynomialRegression, error) {
	if degree < 1 {
		return nil, errors.NewValidationError("degree", "must be at least 1", degree)
	}
	cfg := newConfig(opts)
	if cfg.epochs < 0 {
		return nil, errors.NewValidationError("epochs", "must not be negative", cfg.epochs)
	}
	loss, err := newLoss(kind, cfg.huberDelta)
	if err != nil {
		return nil, err
	}

	rng := cfg.rng()
	coefficients := make([]float64, degree)
	for i := range coefficients {
		coefficients[i] = rng.Float64()
	}

	return &PolynomialRegression{
		degree:       degree,
		kind:         kind,
		loss:         loss,
		coefficients: coefficients,
		epochs:       cfg.epochs,
		learningRate: cfg.learningRate,
		logger: cfg.logger.With(
			log.ModelNameKey, "PolynomialRegression",
			"loss", kind.String(),
		),
	}, nil
}

// Fit は設定された epochs と学習率で学習する
func (p *PolynomialRegression) Fit(X, y mat.Matrix) error {
	return p.Train(X, y, p.epochs, p.learningRate)
}

// Train は epochs 回の勾配降下を行う。X は1列の生データか、既に degree 列に展開済みの行列 (degree >= 2)。
func (p *PolynomialRegression) Train(X, y mat.Matrix, epochs int, lr float64) error {
	const op = "PolynomialRegression.Fit"
	start := time.Now()

	r, _ := X.Dims()
	ry, cy := y.Dims()
	if r == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError(op, "y must be a column vector")
	}

	expanded, err := p.expand(X)
	if err != nil {
		return err
	}
	target := mat.Col(nil, 0, y)

	p.logger.Debug("fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, r,
		log.DegreeKey, p.degree,
		log.LearningRateKey, lr,
		log.EpochKey, epochs,
	)

	debug := p.logger.Enabled(context.Background(), log.LevelDebug)
	yHat := make([]float64, r)
	for epoch := 0; epoch < epochs; epoch++ {
		p.predictInto(yHat, expanded)
		u, err := p.loss.Update(expanded, target, yHat, lr)
		if err != nil {
			return err
		}
		for j := range p.coefficients {
			p.coefficients[j] += u.Weights[j]
		}
		p.bias += u.Bias

		if debug && epoch%100 == 0 {
			if mse, err := metrics.MSE(target, yHat); err == nil {
				p.logger.Debug("epoch", log.EpochKey, epoch, log.MSEKey, mse)
			}
		}
	}

	if err := errors.CheckNumericalStability(op, p.coefficients, epochs); err != nil {
		errors.Warn(errors.NewConvergenceWarning("PolynomialRegression", epochs, err.Error()))
	} else if err := errors.CheckScalar(op, p.bias, epochs); err != nil {
		errors.Warn(errors.NewConvergenceWarning("PolynomialRegression", epochs, err.Error()))
	}

	p.SetFitted(r, p.degree)
	p.logger.Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// expand は1列の入力を常に degree 列へ展開する。degree == 1 では定数列1本だけになる。
// 2列以上の入力は展開済みとみなし、列数が degree と一致する場合だけ受け付ける。
func (p *PolynomialRegression) expand(X mat.Matrix) (*mat.Dense, error) {
	if _, c := X.Dims(); c == 1 {
		return matrix.Expand(X, p.degree)
	}
	return matrix.EnsureExpanded(X, p.degree)
}

// predictInto は展開済みの行列に対して ŷ_i = Σ_j e[i,j]·w_j + b を dst に書き込む
func (p *PolynomialRegression) predictInto(dst []float64, expanded *mat.Dense) {
	w := mat.NewVecDense(len(p.coefficients), p.coefficients)
	out := mat.NewVecDense(len(dst), dst)
	out.MulVec(expanded, w)
	for i := range dst {
		dst[i] += p.bias
	}
}

// Predict は予測値を n×1 の行列で返す。1列の入力は Train と同じく展開される。
func (p *PolynomialRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	r, _ := X.Dims()
	if r == 0 {
		return nil, errors.NewModelError("PolynomialRegression.Predict", "empty data", errors.ErrEmptyData)
	}
	expanded, err := p.expand(X)
	if err != nil {
		return nil, err
	}
	yHat := make([]float64, r)
	p.predictInto(yHat, expanded)
	return mat.NewDense(r, 1, yHat), nil
}

// Score は決定係数（R²）を計算する
func (p *PolynomialRegression) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := p.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, yPred)
}

// Weights は現在の係数のコピーを返す
func (p *PolynomialRegression) Weights() []float64 {
	return append([]float64(nil), p.coefficients...)
}

// Intercept は現在のバイアスを返す
func (p *PolynomialRegression) Intercept() float64 {
	return p.bias
}

// Degree は展開後の列数を返す
func (p *PolynomialRegression) Degree() int {
	return p.degree
}

// Loss は損失関数の種類を返す
func (p *PolynomialRegression) Loss() LossKind {
	return p.kind
}

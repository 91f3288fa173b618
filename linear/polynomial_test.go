package linear

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goregress/metrics"
	"github.com/YuminosukeSato/goregress/pkg/errors"
)

// quadratic は [-1, 1] 上の y = x² を n 点サンプリングする
func quadratic(n int) (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x := -1 + 2*float64(i)/float64(n-1)
		X.Set(i, 0, x)
		y.Set(i, 0, x*x)
	}
	return X, y
}

func mseOf(t *testing.T, p *PolynomialRegression, X, y mat.Matrix) float64 {
	t.Helper()
	pred, err := p.Predict(X)
	require.NoError(t, err)
	mse, err := metrics.MSEMatrix(y, pred)
	require.NoError(t, err)
	return mse
}

func TestPolynomialRegression_Initialisation(t *testing.T) {
	p, err := NewPolynomialRegression(4, MSE, WithRandomState(1))
	require.NoError(t, err)
	assert.Len(t, p.Weights(), 4)
	for _, w := range p.Weights() {
		assert.GreaterOrEqual(t, w, 0.0)
		assert.Less(t, w, 1.0)
	}
	assert.Equal(t, 0.0, p.Intercept())
	assert.False(t, p.IsFitted())

	q, err := NewPolynomialRegression(4, MSE, WithRandomState(1))
	require.NoError(t, err)
	assert.Equal(t, p.Weights(), q.Weights())

	_, err = NewPolynomialRegression(0, MSE)
	assert.Error(t, err)
	_, err = NewPolynomialRegression(2, LossKind(9))
	assert.Error(t, err)
}

func TestPolynomialRegression_MSEConverges(t *testing.T) {
	X, y := quadratic(21)
	p, err := NewPolynomialRegression(3, MSE,
		WithRandomState(42),
		WithEpochs(2000),
		WithLearningRate(0.5),
	)
	require.NoError(t, err)

	initial := mseOf(t, p, X, y)
	require.NoError(t, p.Fit(X, y))
	final := mseOf(t, p, X, y)

	assert.True(t, p.IsFitted())
	assert.Less(t, final, initial/10, "initial=%g final=%g", initial, final)
}

func TestPolynomialRegression_FitContinuesTraining(t *testing.T) {
	X, y := quadratic(11)

	twice, err := NewPolynomialRegression(3, MSE, WithRandomState(5), WithEpochs(50), WithLearningRate(0.3))
	require.NoError(t, err)
	require.NoError(t, twice.Fit(X, y))
	require.NoError(t, twice.Fit(X, y))

	once, err := NewPolynomialRegression(3, MSE, WithRandomState(5), WithEpochs(100), WithLearningRate(0.3))
	require.NoError(t, err)
	require.NoError(t, once.Fit(X, y))

	assert.InDeltaSlice(t, once.Weights(), twice.Weights(), 1e-12)
	assert.InDelta(t, once.Intercept(), twice.Intercept(), 1e-12)
}

func TestPolynomialRegression_HuberWithZeroDeltaMatchesMSE(t *testing.T) {
	X, y := quadratic(15)

	huber, err := NewPolynomialRegression(3, Huber, WithRandomState(9), WithHuberDelta(0), WithEpochs(200))
	require.NoError(t, err)
	mse, err := NewPolynomialRegression(3, MSE, WithRandomState(9), WithEpochs(200))
	require.NoError(t, err)

	require.NoError(t, huber.Fit(X, y))
	require.NoError(t, mse.Fit(X, y))
	assert.InDeltaSlice(t, mse.Weights(), huber.Weights(), 1e-12)
	assert.Equal(t, Huber, huber.Loss())
}

func TestPolynomialRegression_MAE(t *testing.T) {
	// y = 4x² + 3x は初期係数 [0, 1) から十分遠い
	X, _ := quadratic(15)
	y := mat.NewDense(15, 1, nil)
	for i := 0; i < 15; i++ {
		x := X.At(i, 0)
		y.Set(i, 0, 4*x*x+3*x)
	}
	p, err := NewPolynomialRegression(3, MAE, WithRandomState(3), WithEpochs(300), WithLearningRate(0.05))
	require.NoError(t, err)
	initial := mseOf(t, p, X, y)
	require.NoError(t, p.Fit(X, y))

	pred, err := p.Predict(X)
	require.NoError(t, err)
	r, c := pred.Dims()
	assert.Equal(t, 15, r)
	assert.Equal(t, 1, c)
	for i := 0; i < r; i++ {
		assert.False(t, math.IsNaN(pred.At(i, 0)))
	}
	assert.Less(t, mseOf(t, p, X, y), initial)
}

func TestPolynomialRegression_DegreeOneIsConstant(t *testing.T) {
	X, y := quadratic(9)
	p, err := NewPolynomialRegression(1, MSE, WithRandomState(4), WithEpochs(500), WithLearningRate(0.5))
	require.NoError(t, err)
	require.NoError(t, p.Fit(X, y))

	// 展開後は定数列だけなので、予測は入力によらず y の平均に近づく
	pred, err := p.Predict(X)
	require.NoError(t, err)
	var mean float64
	for i := 0; i < 9; i++ {
		mean += y.At(i, 0) / 9
	}
	for i := 1; i < 9; i++ {
		assert.InDelta(t, pred.At(0, 0), pred.At(i, 0), 1e-12)
	}
	assert.InDelta(t, mean, pred.At(0, 0), 1e-6)
}

func TestPolynomialRegression_PredictAcceptsExpandedInput(t *testing.T) {
	X, _ := quadratic(5)
	p, err := NewPolynomialRegression(4, MSE, WithRandomState(2))
	require.NoError(t, err)

	raw, err := p.Predict(X)
	require.NoError(t, err)

	expanded := mat.NewDense(5, 4, nil)
	for i := 0; i < 5; i++ {
		x := X.At(i, 0)
		expanded.SetRow(i, []float64{x, x * x, x * x * x, 1})
	}
	pre, err := p.Predict(expanded)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(raw, pre, 1e-12))

	_, err = p.Predict(mat.NewDense(2, 2, nil))
	var shapeErr *errors.ShapeError
	assert.True(t, errors.As(err, &shapeErr))
}

func TestPolynomialRegression_DivergenceWarns(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(nil)

	X := mat.NewDense(3, 1, []float64{10, 20, 30})
	y := mat.NewDense(3, 1, []float64{1, 2, 3})
	p, err := NewPolynomialRegression(4, MSE, WithRandomState(1), WithEpochs(500), WithLearningRate(10))
	require.NoError(t, err)
	require.NoError(t, p.Fit(X, y))

	require.NotEmpty(t, warnings)
	var cw *errors.ConvergenceWarning
	assert.True(t, errors.As(warnings[0], &cw))
}

func TestParseLossKind(t *testing.T) {
	for in, want := range map[string]LossKind{"mse": MSE, "MAE": MAE, "Huber": Huber} {
		got, err := ParseLossKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NotEqual(t, "UNKNOWN", got.String())
	}
	_, err := ParseLossKind("hinge")
	assert.Error(t, err)
}

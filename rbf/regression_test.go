package rbf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goregress/pkg/errors"
)

// grid は x = 0, 1, ..., n-1 と y = sin(x) を返す
func grid(n int) (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		y.Set(i, 0, math.Sin(float64(i)))
	}
	return X, y
}

func TestDesignMatrix(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{
		0, 1,
		1, 1,
	})
	centers := mat.NewDense(3, 2, []float64{
		0, 1,
		1, 1,
		3, 1,
	})
	g, err := DesignMatrix(x, centers, 0.5)
	require.NoError(t, err)

	want := mat.NewDense(2, 3, []float64{
		1, math.Exp(-0.5), math.Exp(-4.5),
		math.Exp(-0.5), 1, math.Exp(-2),
	})
	assert.True(t, mat.EqualApprox(want, g, 1e-12))

	_, err = DesignMatrix(x, mat.NewDense(1, 3, nil), 1)
	var shapeErr *errors.ShapeError
	assert.True(t, errors.As(err, &shapeErr))
}

func TestNewRBFRegression_Placeholders(t *testing.T) {
	m, err := NewRBFRegression(4, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, Default, m.Factorization())
	assert.True(t, mat.Equal(mat.NewDense(3, 2, []float64{1, 1, 1, 1, 1, 1}), m.Centers()))
	assert.Equal(t, []float64{1, 1, 1}, m.Weights())

	// 学習前でも仮のパラメータで予測できる
	pred, err := m.Predict(mat.NewDense(2, 1, []float64{1, 5}))
	require.NoError(t, err)
	r, _ := pred.Dims()
	assert.Equal(t, 2, r)

	_, err = NewRBFRegression(1, 0, 2)
	assert.Error(t, err)
	_, err = NewRBFRegression(1, 2, 0)
	assert.Error(t, err)
}

func TestRBFRegression_FactorizationsAgree(t *testing.T) {
	X, y := grid(8)

	weights := map[Factorization][]float64{}
	for _, kind := range []Factorization{SVD, QR, LU} {
		m, err := NewRBFRegression(4, 8, 2,
			WithFactorization(kind),
			WithTolerance(1e-10),
			WithRandomState(11),
		)
		require.NoError(t, err)
		require.NoError(t, m.Fit(X, y), kind.String())
		assert.True(t, m.IsFitted())
		weights[kind] = m.Weights()

		// 中心が全学習点なので補間は厳密になる
		pred, err := m.Predict(X)
		require.NoError(t, err)
		assert.True(t, mat.EqualApprox(y, pred, 1e-6), kind.String())
	}

	for i := range weights[SVD] {
		assert.InDelta(t, weights[SVD][i], weights[QR][i], 1e-2)
		assert.InDelta(t, weights[SVD][i], weights[LU][i], 1e-2)
	}
}

func TestRBFRegression_SameSeedSameCenters(t *testing.T) {
	X, y := grid(20)
	a, err := NewRBFRegression(2, 5, 3, WithRandomState(7), WithTolerance(1e-8))
	require.NoError(t, err)
	b, err := NewRBFRegression(2, 5, 3, WithRandomState(7), WithTolerance(1e-8))
	require.NoError(t, err)

	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))
	assert.True(t, mat.Equal(a.Centers(), b.Centers()))
	assert.Equal(t, a.Weights(), b.Weights())

	// 中心は展開後の学習データの行
	c := a.Centers()
	for i := 0; i < 5; i++ {
		v := c.At(i, 0)
		assert.Equal(t, v*v, c.At(i, 1))
		assert.Equal(t, 1.0, c.At(i, 2))
	}
}

func TestRBFRegression_MoreCentersThanRows(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(nil)

	X := mat.NewDense(3, 1, []float64{0, 2, 4})
	y := mat.NewDense(3, 1, []float64{1, 0, 1})
	m, err := NewRBFRegression(1, 4, 2, WithRandomState(1))
	require.NoError(t, err)
	require.NoError(t, m.Fit(X, y))

	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0].Error(), "only 3 rows available for 4 centers")
	c := m.Centers()
	assert.Equal(t, []float64{1, 1}, mat.Row(nil, 3, c))
}

func TestRBFRegression_SingularLU(t *testing.T) {
	// 全ての点が同じなので GᵀG の全要素が等しく、LU は厳密に特異になる
	X := mat.NewDense(3, 1, []float64{2, 2, 2})
	y := mat.NewDense(3, 1, []float64{1, 1, 1})
	m, err := NewRBFRegression(1, 3, 2, WithFactorization(LU), WithRandomState(1))
	require.NoError(t, err)

	err = m.Fit(X, y)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSingularMatrix))
	var modelErr *errors.ModelError
	require.True(t, errors.As(err, &modelErr))
	assert.Equal(t, errors.SolveFailureKind, modelErr.Kind)
	assert.False(t, m.IsFitted())
}

func TestRBFRegression_FailedRefitKeepsPreviousModel(t *testing.T) {
	X := mat.NewDense(6, 1, []float64{0, 0.2, 0.4, 0.6, 0.8, 1})
	y := mat.NewDense(6, 1, nil)
	for i := 0; i < 6; i++ {
		v := X.At(i, 0)
		y.Set(i, 0, v*v)
	}
	m, err := NewRBFRegression(1, 3, 2, WithFactorization(LU), WithRandomState(5))
	require.NoError(t, err)
	require.NoError(t, m.Fit(X, y))

	centers := m.Centers()
	weights := m.Weights()
	before, err := m.Predict(X)
	require.NoError(t, err)

	err = m.Fit(mat.NewDense(3, 1, []float64{2, 2, 2}), mat.NewDense(3, 1, []float64{1, 1, 1}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSingularMatrix))

	assert.True(t, m.IsFitted())
	assert.True(t, mat.Equal(centers, m.Centers()))
	assert.Equal(t, weights, m.Weights())
	after, err := m.Predict(X)
	require.NoError(t, err)
	assert.True(t, mat.Equal(before, after))
}

func TestRBFRegression_InputErrors(t *testing.T) {
	m, err := NewRBFRegression(1, 2, 3)
	require.NoError(t, err)

	var dimErr *errors.DimensionError
	assert.True(t, errors.As(m.Fit(mat.NewDense(3, 1, nil), mat.NewDense(2, 1, nil)), &dimErr))
	assert.Error(t, m.Fit(mat.NewDense(2, 1, nil), mat.NewDense(2, 2, nil)))

	// 2列の入力は3列に展開できない
	var shapeErr *errors.ShapeError
	assert.True(t, errors.As(m.Fit(mat.NewDense(2, 2, nil), mat.NewDense(2, 1, nil)), &shapeErr))
}

func TestParseFactorization(t *testing.T) {
	for in, want := range map[string]Factorization{"": Default, "svd": SVD, "QR": QR, "lu": LU} {
		got, err := ParseFactorization(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFactorization("cholesky")
	assert.Error(t, err)
}

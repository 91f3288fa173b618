package matrix

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goregress/pkg/errors"
)

func TestSliceByRow(t *testing.T) {
	a := mat.NewDense(4, 2, []float64{
		0, 1,
		10, 11,
		20, 21,
		30, 31,
	})

	tests := []struct {
		name    string
		indices []int
	}{
		{"subset", []int{2, 0}},
		{"duplicates", []int{1, 1, 3}},
		{"all", []int{0, 1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SliceByRow(a, tt.indices)
			require.NoError(t, err)
			r, c := got.Dims()
			assert.Equal(t, len(tt.indices), r)
			assert.Equal(t, 2, c)
			for i, idx := range tt.indices {
				assert.Equal(t, mat.Row(nil, idx, a), mat.Row(nil, i, got))
			}
		})
	}

	t.Run("result does not alias input", func(t *testing.T) {
		got, err := SliceByRow(a, []int{0})
		require.NoError(t, err)
		got.Set(0, 0, 99)
		assert.Equal(t, 0.0, a.At(0, 0))
	})

	t.Run("empty indices", func(t *testing.T) {
		got, err := SliceByRow(a, nil)
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := SliceByRow(a, []int{4})
		var valErr *errors.ValidationError
		assert.True(t, errors.As(err, &valErr))
	})
}

func TestAppendColumn(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	got, err := AppendColumn(a, []float64{5, 6})
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(2, 3, []float64{1, 2, 5, 3, 4, 6}), got))

	_, err = AppendColumn(a, []float64{1})
	var shapeErr *errors.ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, []int{2, 2}, shapeErr.Left)
	assert.Equal(t, []int{1, 1}, shapeErr.Right)
}

func TestExpand(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{2, -1, 0})
	got, err := Expand(x, 4)
	require.NoError(t, err)

	want := mat.NewDense(3, 4, []float64{
		2, 4, 8, 1,
		-1, 1, -1, 1,
		0, 0, 0, 1,
	})
	assert.True(t, mat.EqualApprox(want, got, 1e-12))

	t.Run("degree one is the bias column", func(t *testing.T) {
		got, err := Expand(x, 1)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 1, 1}, Column(got, 0))
	})

	t.Run("multi feature input is rejected", func(t *testing.T) {
		_, err := Expand(mat.NewDense(2, 2, nil), 3)
		var shapeErr *errors.ShapeError
		assert.True(t, errors.As(err, &shapeErr))
	})

	t.Run("invalid degree", func(t *testing.T) {
		_, err := Expand(x, 0)
		assert.Error(t, err)
	})
}

func TestEnsureExpanded(t *testing.T) {
	already := mat.NewDense(2, 3, []float64{1, 1, 1, 2, 4, 1})
	got, err := EnsureExpanded(already, 3)
	require.NoError(t, err)
	assert.True(t, mat.Equal(already, got))
	got.Set(0, 0, 42)
	assert.Equal(t, 1.0, already.At(0, 0))

	raw := mat.NewDense(2, 1, []float64{1, 2})
	got, err = EnsureExpanded(raw, 3)
	require.NoError(t, err)
	assert.True(t, mat.Equal(already, got))
}

func TestMatMul(t *testing.T) {
	a := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := mat.NewDense(3, 1, []float64{1, 0, -1})
	got, err := MatMul(a, b)
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(2, 1, []float64{-2, -2}), got))

	_, err = MatMul(b, b)
	var shapeErr *errors.ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, []int{3, 1}, shapeErr.Left)
}

func TestCopy(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	c := Copy(a)
	assert.True(t, mat.Equal(a, c))
	c.Set(1, 1, 0)
	assert.Equal(t, 4.0, a.At(1, 1))
	assert.True(t, Copy(&mat.Dense{}).IsEmpty())
}

func TestTrainTestSplit(t *testing.T) {
	n := 10
	x := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, float64(i))
		x.Set(i, 1, float64(100+i))
		y.Set(i, 0, float64(i))
	}

	t.Run("completeness and disjointness", func(t *testing.T) {
		for _, testSize := range []float64{0.1, 0.3, 0.5, 0.75, 1} {
			s, err := TrainTestSplit(x, y, testSize, true, rand.New(rand.NewSource(7)))
			require.NoError(t, err)
			assert.Equal(t, n, Rows(s.XTrain)+Rows(s.XTest))
			assert.Equal(t, n, Rows(s.YTrain)+Rows(s.YTest))

			seen := map[float64]int{}
			for _, m := range []*mat.Dense{s.YTrain, s.YTest} {
				for i := 0; i < Rows(m); i++ {
					seen[m.At(i, 0)]++
				}
			}
			assert.Len(t, seen, n)
			for _, count := range seen {
				assert.Equal(t, 1, count)
			}
			// x と y の行の対応は保たれる
			for i := 0; i < Rows(s.XTest); i++ {
				assert.Equal(t, s.XTest.At(i, 0), s.YTest.At(i, 0))
			}
		}
	})

	t.Run("without shuffle test rows come first", func(t *testing.T) {
		s, err := TrainTestSplit(x, y, 0.3, false, nil)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1, 2}, Column(s.YTest, 0))
		assert.Equal(t, 7, Rows(s.XTrain))
	})

	t.Run("same seed gives the same split", func(t *testing.T) {
		a, err := TrainTestSplit(x, y, 0.5, true, rand.New(rand.NewSource(3)))
		require.NoError(t, err)
		b, err := TrainTestSplit(x, y, 0.5, true, rand.New(rand.NewSource(3)))
		require.NoError(t, err)
		assert.True(t, mat.Equal(a.XTest, b.XTest))
	})

	t.Run("errors", func(t *testing.T) {
		_, err := TrainTestSplit(x, mat.NewDense(n-1, 1, nil), 0.5, false, nil)
		var dimErr *errors.DimensionError
		assert.True(t, errors.As(err, &dimErr))

		for _, bad := range []float64{0, -0.1, 1.5} {
			_, err = TrainTestSplit(x, y, bad, false, nil)
			var valErr *errors.ValidationError
			assert.True(t, errors.As(err, &valErr), "test_size=%v", bad)
		}

		_, err = TrainTestSplit(x, y, 0.01, false, nil)
		assert.Error(t, err)
	})
}

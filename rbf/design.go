package rbf

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goregress/core/matrix"
	"github.com/YuminosukeSato/goregress/core/parallel"
	"github.com/YuminosukeSato/goregress/pkg/errors"
)

// DesignMatrix はガウスカーネルの計画行列 G を作る。
//
//	G[i, k] = exp(-beta · ||centers[k] - x[i]||²)
//
// x は n×d、centers は m×d で、結果は n×m。
func DesignMatrix(x, centers mat.Matrix, beta float64) (*mat.Dense, error) {
	n, d := x.Dims()
	m, dc := centers.Dims()
	if d != dc {
		return nil, errors.NewShapeError("DesignMatrix", matrix.Shape(x), matrix.Shape(centers))
	}
	if n == 0 || m == 0 {
		return nil, errors.NewModelError("DesignMatrix", "empty data", errors.ErrEmptyData)
	}

	c := mat.DenseCopyOf(centers)
	g := mat.NewDense(n, m, nil)
	parallel.ForEachRow(n, func(i int) {
		row := mat.Row(nil, i, x)
		for k := 0; k < m; k++ {
			dist := floats.Distance(c.RawRowView(k), row, 2)
			g.Set(i, k, errors.StabilizeExp(-beta*dist*dist))
		}
	})
	return g, nil
}

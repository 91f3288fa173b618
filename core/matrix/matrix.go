// Package matrix は全モデルが共有する密行列のユーティリティを提供します。
//
// すべての関数は入力を変更せず、新しく確保した *mat.Dense を返します。
// 返り値が入力のメモリを共有することはありません。
package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goregress/pkg/errors"
)

// Shape は行列の形状を (rows, cols) のスライスで返します。エラー報告用。
func Shape(m mat.Matrix) []int {
	r, c := m.Dims()
	return []int{r, c}
}

// Copy は m の値をそのまま持つ独立した行列を返します。
func Copy(m mat.Matrix) *mat.Dense {
	if isEmpty(m) {
		return &mat.Dense{}
	}
	return mat.DenseCopyOf(m)
}

// Column は j 列目の値を新しいスライスにコピーして返します。
func Column(m mat.Matrix, j int) []float64 {
	r, _ := m.Dims()
	col := make([]float64, r)
	mat.Col(col, j, m)
	return col
}

// SliceByRow は indices で指定した行だけからなる行列を返します。
// 重複したインデックスは重複した行になり、結果の行数は len(indices) に等しい。
// indices が空の場合は空の行列を返します。
func SliceByRow(m mat.Matrix, indices []int) (*mat.Dense, error) {
	r, c := m.Dims()
	for _, idx := range indices {
		if idx < 0 || idx >= r {
			return nil, errors.NewValidationError("indices", "row index out of range", idx)
		}
	}
	if len(indices) == 0 || c == 0 {
		return &mat.Dense{}, nil
	}

	out := mat.NewDense(len(indices), c, nil)
	for i, idx := range indices {
		for j := 0; j < c; j++ {
			out.Set(i, j, m.At(idx, j))
		}
	}
	return out, nil
}

// AppendColumn は column を最後の列として追加した行列を返します。
func AppendColumn(m mat.Matrix, column []float64) (*mat.Dense, error) {
	r, c := m.Dims()
	if len(column) != r {
		return nil, errors.NewShapeError("AppendColumn", []int{r, c}, []int{len(column), 1})
	}
	if r == 0 {
		return nil, errors.NewValueError("AppendColumn", "matrix has no rows")
	}

	out := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, m.At(i, j))
		}
		out.Set(i, c, column[i])
	}
	return out, nil
}

// Expand は1列の入力を degree 列の多項式特徴量に展開します。
// 列 0..degree-2 は x^(col+1)、最後の列はバイアス項 x^0 = 1 を持ちます。
//
//	x = [2]  degree = 4  →  [2 4 8 1]
//
// 複数列の入力は扱わず、ShapeError を返します。
func Expand(x mat.Matrix, degree int) (*mat.Dense, error) {
	r, c := x.Dims()
	if degree < 1 {
		return nil, errors.NewValidationError("degree", "must be at least 1", degree)
	}
	if c != 1 {
		return nil, errors.NewShapeError("Expand", []int{r, c}, []int{r, 1})
	}
	if r == 0 {
		return nil, errors.NewValueError("Expand", "matrix has no rows")
	}

	out := mat.NewDense(r, degree, nil)
	for i := 0; i < r; i++ {
		v := x.At(i, 0)
		for col := 0; col < degree-1; col++ {
			out.Set(i, col, math.Pow(v, float64(col+1)))
		}
		out.Set(i, degree-1, 1)
	}
	return out, nil
}

// EnsureExpanded は x が既に width 列ならコピーを返し、そうでなければ Expand します。
func EnsureExpanded(x mat.Matrix, width int) (*mat.Dense, error) {
	if _, c := x.Dims(); c == width {
		return Copy(x), nil
	}
	return Expand(x, width)
}

// MatMul は a·b を計算します。a の列数と b の行数が異なる場合は ShapeError です。
func MatMul(a, b mat.Matrix) (*mat.Dense, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		return nil, errors.NewShapeError("MatMul", []int{ar, ac}, []int{br, bc})
	}
	if ar == 0 || bc == 0 {
		return nil, errors.NewValueError("MatMul", "empty operand")
	}

	var out mat.Dense
	out.Mul(a, b)
	return &out, nil
}

func isEmpty(m mat.Matrix) bool {
	if d, ok := m.(*mat.Dense); ok && d.IsEmpty() {
		return true
	}
	r, c := m.Dims()
	return r == 0 || c == 0
}

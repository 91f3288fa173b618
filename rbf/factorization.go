package rbf

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goregress/pkg/errors"
)

// solveResult は正規方程式の解と、解は得られたが条件数が悪かった場合の警告
type solveResult struct {
	weights *mat.Dense
	warning error
	rank    int
}

// solveNormal は a·w = b を指定された分解で解く。a は正方行列 GᵀG。
// 別の分解への自動的なフォールバックは行わない。
func solveNormal(op string, kind Factorization, a, b mat.Matrix, tol float64) (solveResult, error) {
	var (
		res solveResult
		err error
	)
	// gonum の分解は不正な入力で panic するため境界で error に変換する
	perr := errors.SafeExecute(op, func() error {
		switch kind {
		case QR:
			res, err = solveQR(op, a, b)
		case LU:
			res, err = solveLU(op, a, b)
		default:
			res, err = solveSVD(op, a, b, tol)
		}
		return nil
	})
	if perr != nil {
		return solveResult{}, errors.NewSolveError(op, kind.String(), perr)
	}
	if err != nil {
		return solveResult{}, err
	}

	r, c := res.weights.Dims()
	if err := errors.CheckMatrix(op, res.weights, r, c, 0); err != nil {
		return solveResult{}, errors.NewSolveError(op, kind.String(), err)
	}
	return res, nil
}

func solveSVD(op string, a, b mat.Matrix, tol float64) (solveResult, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return solveResult{}, errors.NewSolveError(op, "SVD", errors.New("factorization did not converge"))
	}
	rank := 0
	for _, s := range svd.Values(nil) {
		if s > tol {
			rank++
		}
	}
	if rank == 0 {
		return solveResult{}, errors.NewSolveError(op, "SVD", errors.Newf("no singular value above tolerance %g", tol))
	}

	var w mat.Dense
	svd.SolveTo(&w, b, rank)
	_, n := a.Dims()
	res := solveResult{weights: &w, rank: rank}
	if rank < n {
		res.warning = errors.Newf("%s: SVD truncated to rank %d of %d", op, rank, n)
	}
	return res, nil
}

func solveQR(op string, a, b mat.Matrix) (solveResult, error) {
	var qr mat.QR
	qr.Factorize(a)
	var w mat.Dense
	return conditionResult(op, "QR", &w, qr.SolveTo(&w, false, b))
}

func solveLU(op string, a, b mat.Matrix) (solveResult, error) {
	var lu mat.LU
	lu.Factorize(a)
	var w mat.Dense
	return conditionResult(op, "LU", &w, lu.SolveTo(&w, false, b))
}

// conditionResult は gonum の Condition エラーを振り分ける。
// 無限大は厳密に特異で解が得られていないため失敗、有限値は解を保持して警告にする。
func conditionResult(op, kind string, w *mat.Dense, err error) (solveResult, error) {
	n, _ := w.Dims()
	if err == nil {
		return solveResult{weights: w, rank: n}, nil
	}
	var cond mat.Condition
	if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
		return solveResult{}, errors.NewSolveError(op, kind, err)
	}
	return solveResult{
		weights: w,
		rank:    n,
		warning: errors.Wrapf(err, "%s: %s solve is ill-conditioned", op, kind),
	}, nil
}

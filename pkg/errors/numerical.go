package errors

import (
	"math"
)

// maxReported は NumericalInstabilityError に記録する値の上限
const maxReported = 10

func nonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// CheckNumericalStability は values に NaN または Inf が含まれていれば
// NumericalInstabilityError を返します。
func CheckNumericalStability(operation string, values []float64, iteration int) error {
	for _, v := range values {
		if nonFinite(v) {
			return NewNumericalInstabilityError(operation, values, iteration)
		}
	}
	return nil
}

// CheckScalar は1つの値について CheckNumericalStability と同じ判定を行います。
func CheckScalar(operation string, value float64, iteration int) error {
	if nonFinite(value) {
		return NewNumericalInstabilityError(operation, []float64{value}, iteration)
	}
	return nil
}

// CheckMatrix は rows × cols の範囲を走査し、最初に不正な値を含んだ行の値を最大10個まで報告します。
func CheckMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols, iteration int) error {
	for i := 0; i < rows; i++ {
		var bad []float64
		for j := 0; j < cols && len(bad) < maxReported; j++ {
			if v := matrix.At(i, j); nonFinite(v) {
				bad = append(bad, v)
			}
		}
		if len(bad) > 0 {
			return NewNumericalInstabilityError(operation, bad, iteration)
		}
	}
	return nil
}

// StabilizeExp は引数を [-700, 700] に収めてから exp を計算します。
// -700 未満は0を返します。
func StabilizeExp(value float64) float64 {
	const limit = 700.0
	switch {
	case value > limit:
		return math.Exp(limit)
	case value < -limit:
		return 0
	}
	return math.Exp(value)
}

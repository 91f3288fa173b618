package metrics

import "github.com/YuminosukeSato/goregress/pkg/errors"

// Accuracy は yHat と yTrue の要素が完全に一致する割合を返す。値は [0, 1]。
func Accuracy(yHat, yTrue []float64) (float64, error) {
	if err := checkPair("Accuracy", yTrue, yHat); err != nil {
		return 0, err
	}
	var correct int
	for i, v := range yHat {
		if v == yTrue[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// AccuracyLabels はテキスト形式のラベル同士の正解率を返す
func AccuracyLabels(yHat, yTrue []string) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.NewValueError("AccuracyLabels", "empty vector")
	}
	if len(yHat) != len(yTrue) {
		return 0, errors.NewDimensionError("AccuracyLabels", len(yTrue), len(yHat), 0)
	}
	var correct int
	for i, v := range yHat {
		if v == yTrue[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

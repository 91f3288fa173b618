package matrix

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goregress/pkg/errors"
	"github.com/YuminosukeSato/goregress/pkg/log"
)

// Split は TrainTestSplit の結果です。各行列は入力から独立したコピーです。
type Split struct {
	XTrain, XTest *mat.Dense
	YTrain, YTest *mat.Dense
}

// TrainTestSplit は行を訓練用とテスト用に分割します。
//
// テスト行数は round(n * testSize) で、(シャッフル後の) 先頭の行がテスト側になります。
// testSize が (0, 1] の外、またはテスト行数が0の場合はエラーです。
// rng が nil の場合は時刻をシードにした乱数源を使います。
func TrainTestSplit(x, y mat.Matrix, testSize float64, shuffle bool, rng *rand.Rand) (*Split, error) {
	n, _ := x.Dims()
	ny, _ := y.Dims()
	if n != ny {
		return nil, errors.NewDimensionError("TrainTestSplit", n, ny, 0)
	}
	if !(testSize > 0 && testSize <= 1) {
		return nil, errors.NewValidationError("test_size", "must be in (0, 1]", testSize)
	}

	nTest := int(math.Round(float64(n) * testSize))
	if nTest < 1 {
		return nil, errors.NewValidationError("test_size", "too few samples for a non-empty test set", n)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if shuffle {
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		rng.Shuffle(n, func(i, j int) { indices[i], indices[j] = indices[j], indices[i] })
	}

	testIdx, trainIdx := indices[:nTest], indices[nTest:]

	var (
		s   Split
		err error
	)
	if s.XTrain, err = SliceByRow(x, trainIdx); err != nil {
		return nil, err
	}
	if s.XTest, err = SliceByRow(x, testIdx); err != nil {
		return nil, err
	}
	if s.YTrain, err = SliceByRow(y, trainIdx); err != nil {
		return nil, err
	}
	if s.YTest, err = SliceByRow(y, testIdx); err != nil {
		return nil, err
	}

	log.GetLogger().Debug("train/test split",
		log.OperationKey, log.OperationSplit,
		log.SamplesKey, n,
		log.TestSizeKey, testSize,
		"test_rows", nTest,
	)
	return &s, nil
}

// Rows は行列の行数を返します。空の行列は0行です。
func Rows(m *mat.Dense) int {
	if m == nil || m.IsEmpty() {
		return 0
	}
	r, _ := m.Dims()
	return r
}

// Package neighbors は総当たりの k 近傍分類器を提供します。
package neighbors

import (
	"cmp"
	"slices"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goregress/core/matrix"
	"github.com/YuminosukeSato/goregress/core/model"
	"github.com/YuminosukeSato/goregress/core/parallel"
	"github.com/YuminosukeSato/goregress/metrics"
	"github.com/YuminosukeSato/goregress/pkg/errors"
	"github.com/YuminosukeSato/goregress/pkg/log"
)

// neighbor は1回の予測の間だけ使う (距離, ラベル) の組
type neighbor struct {
	dist  float64
	label float64
}

// KNeighborsClassifier は多数決による k 近傍分類器
//
// ラベルは浮動小数点数で学習し、予測はテキスト形式で返す。
// 同数の場合は、距離順に並べた近傍の中で最初に現れたラベルを選ぶ。
// 距離が等しい学習点は学習データの順序を保つ。
type KNeighborsClassifier struct {
	model.BaseEstimator

	k      int
	x      *mat.Dense
	y      []float64
	logger log.Logger
}

var _ model.Classifier = (*KNeighborsClassifier)(nil)

// Option is a function that configures KNeighborsClassifier
type Option func(*KNeighborsClassifier)

// WithLogger sets the logger. The global logger is used when unset.
func WithLogger(l log.Logger) Option {
	return func(c *KNeighborsClassifier) {
		c.logger = l
	}
}

// NewKNeighborsClassifier は近傍数 k の分類器を作成する
func NewKNeighborsClassifier(k int, opts ...Option) (*KNeighborsClassifier, error) {
	if k < 1 {
		return nil, errors.NewValidationError("k", "must be at least 1", k)
	}
	c := &KNeighborsClassifier{k: k}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.GetLogger()
	}
	c.logger = c.logger.With(log.ModelNameKey, "KNeighborsClassifier", log.NeighborsKey, k)
	return c, nil
}

// Fit は学習データのコピーを保持する。k が学習データの行数を超える場合はエラー。
func (c *KNeighborsClassifier) Fit(X, y mat.Matrix) error {
	const op = "KNeighborsClassifier.Fit"
	n, p := X.Dims()
	ry, cy := y.Dims()
	if n == 0 || p == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if ry != n {
		return errors.NewDimensionError(op, n, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError(op, "y must be a column vector")
	}
	if c.k > n {
		return errors.NewValidationError("k", "must not exceed the number of training rows", c.k)
	}

	c.x = matrix.Copy(X)
	c.y = mat.Col(nil, 0, y)
	c.SetFitted(n, p)
	return nil
}

// Predict は各クエリ行について多数決のラベルを返す
func (c *KNeighborsClassifier) Predict(X mat.Matrix) ([]string, error) {
	const op = "KNeighborsClassifier.Predict"
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("KNeighborsClassifier", "Predict")
	}
	q, p := X.Dims()
	if _, want := c.x.Dims(); p != want {
		return nil, errors.NewDimensionError(op, want, p, 1)
	}
	start := time.Now()

	out := make([]string, q)
	parallel.ForEachRow(q, func(i int) {
		out[i] = FormatLabel(c.vote(mat.Row(nil, i, X)))
	})

	c.logger.Debug("predict completed",
		log.OperationKey, log.OperationPredict,
		log.SamplesKey, q,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return out, nil
}

// vote は query に最も近い k 個の学習点の多数決を行う
func (c *KNeighborsClassifier) vote(query []float64) float64 {
	n, _ := c.x.Dims()
	items := make([]neighbor, n)
	for i := 0; i < n; i++ {
		d := floats.Distance(c.x.RawRowView(i), query, 2)
		items[i] = neighbor{dist: d * d, label: c.y[i]}
	}
	slices.SortStableFunc(items, func(a, b neighbor) int {
		return cmp.Compare(a.dist, b.dist)
	})

	counts := make(map[float64]int, c.k)
	var best float64
	bestCount := 0
	for _, it := range items[:c.k] {
		counts[it.label]++
	}
	// 距離順に走査し、最初に最大票数に達したラベルを採用する
	for _, it := range items[:c.k] {
		if cnt := counts[it.label]; cnt > bestCount {
			best, bestCount = it.label, cnt
		}
	}
	return best
}

// Score は正解率を返す
func (c *KNeighborsClassifier) Score(X, y mat.Matrix) (float64, error) {
	pred, err := c.Predict(X)
	if err != nil {
		return 0, err
	}
	r, _ := y.Dims()
	truth := make([]string, r)
	for i := range truth {
		truth[i] = FormatLabel(y.At(i, 0))
	}
	return metrics.AccuracyLabels(pred, truth)
}

// FormatLabel はラベルを予測結果と同じテキスト形式に変換する
func FormatLabel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseLabels は予測されたテキストラベルを数値に戻す
func ParseLabels(labels []string) ([]float64, error) {
	out := make([]float64, len(labels))
	for i, s := range labels {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "label %d", i)
		}
		out[i] = v
	}
	return out, nil
}

package linear

import (
	"math/rand"
	"time"

	"github.com/YuminosukeSato/goregress/pkg/log"
)

const (
	// DefaultTolerance は SVD で0とみなす特異値の閾値です。
	DefaultTolerance = 1.0

	DefaultEpochs       = 1000
	DefaultLearningRate = 0.7
	DefaultHuberDelta   = 1.0
)

// config は線形モデル共通の設定です。各モデルは使う項目だけを参照します。
type config struct {
	tolerance    float64
	epochs       int
	learningRate float64
	huberDelta   float64
	randomState  *int64
	logger       log.Logger
}

func defaultConfig() config {
	return config{
		tolerance:    DefaultTolerance,
		epochs:       DefaultEpochs,
		learningRate: DefaultLearningRate,
		huberDelta:   DefaultHuberDelta,
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLogger()
	}
	return cfg
}

func (c config) rng() *rand.Rand {
	seed := time.Now().UnixNano()
	if c.randomState != nil {
		seed = *c.randomState
	}
	return rand.New(rand.NewSource(seed))
}

// Option is a function that configures a linear model
type Option func(*config)

// WithTolerance sets the singular value cutoff used by LinearRegression.
// Singular values at or below tol are treated as zero.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		c.tolerance = tol
	}
}

// WithEpochs sets the number of gradient descent iterations run by each Fit call.
func WithEpochs(epochs int) Option {
	return func(c *config) {
		c.epochs = epochs
	}
}

// WithLearningRate sets the gradient descent step size.
func WithLearningRate(lr float64) Option {
	return func(c *config) {
		c.learningRate = lr
	}
}

// WithHuberDelta sets the threshold that switches the Huber update between MAE and MSE.
func WithHuberDelta(delta float64) Option {
	return func(c *config) {
		c.huberDelta = delta
	}
}

// WithRandomState fixes the seed for coefficient initialisation.
func WithRandomState(seed int64) Option {
	return func(c *config) {
		c.randomState = &seed
	}
}

// WithLogger sets the logger. The global logger is used when unset.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

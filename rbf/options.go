package rbf

import (
	"math/rand"
	"strings"
	"time"

	"github.com/YuminosukeSato/goregress/pkg/errors"
	"github.com/YuminosukeSato/goregress/pkg/log"
)

// Factorization は正規方程式を解く行列分解の種類
type Factorization int

const (
	// Default は未指定を表し、SVD として扱われる
	Default Factorization = iota
	SVD
	QR
	LU
)

func (f Factorization) String() string {
	switch f {
	case Default:
		return "DEFAULT"
	case SVD:
		return "SVD"
	case QR:
		return "QR"
	case LU:
		return "LU"
	default:
		return "UNKNOWN"
	}
}

// ParseFactorization は "svd" / "qr" / "lu" / "" を Factorization に変換する
func ParseFactorization(s string) (Factorization, error) {
	switch strings.ToUpper(s) {
	case "", "NONE", "DEFAULT":
		return Default, nil
	case "SVD":
		return SVD, nil
	case "QR":
		return QR, nil
	case "LU":
		return LU, nil
	}
	return Default, errors.NewValidationError("factorization", "must be one of SVD, QR, LU", s)
}

// DefaultTolerance は SVD で0とみなす特異値の閾値
const DefaultTolerance = 1.0

type config struct {
	factorization Factorization
	tolerance     float64
	randomState   *int64
	logger        log.Logger
}

// Option is a function that configures RBFRegression
type Option func(*config)

// WithFactorization selects the decomposition used to solve the normal equations.
func WithFactorization(f Factorization) Option {
	return func(c *config) {
		c.factorization = f
	}
}

// WithTolerance sets the singular value cutoff for the SVD solve.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		c.tolerance = tol
	}
}

// WithRandomState fixes the seed used for center sampling.
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

func newConfig(opts []Option) config {
	cfg := config{tolerance: DefaultTolerance}
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

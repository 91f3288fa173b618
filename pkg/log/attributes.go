package log

// モデルと操作のコンテキスト
const (
	// ModelNameKey identifies the type of model.
	// Examples: "LinearRegression", "KNeighborsClassifier"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"
)

// データの形状
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"

	// CentersKey is the number of RBF centers actually sampled.
	CentersKey = "data.centers"

	// TestSizeKey is the fraction of rows held out by a train/test split.
	TestSizeKey = "data.test_size"
)

// 性能と学習の指標
const (
	DurationMsKey = "perf.duration_ms"
	AccuracyKey   = "metrics.accuracy"
	LossKey       = "metrics.loss"
	MSEKey        = "metrics.mse"
	R2ScoreKey    = "metrics.r2_score"
	EpochKey      = "training.epoch"
)

// ハイパーパラメータ
const (
	LearningRateKey  = "hyperparams.learning_rate"
	DegreeKey        = "hyperparams.degree"
	BetaKey          = "hyperparams.beta"
	NeighborsKey     = "hyperparams.k"
	FactorizationKey = "hyperparams.factorization"
	ToleranceKey     = "hyperparams.tolerance"
	RandomSeedKey    = "config.random_seed"
)

// エラー
const (
	ErrorCodeKey = "error.code"
	// StacktraceKey は ErrorStackMarshaler が出力するフィールド名です。
	StacktraceKey = "error.stacktrace"
)

// 標準的な属性値
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationSplit   = "train_test_split"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
)

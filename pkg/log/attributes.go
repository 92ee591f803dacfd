// Package log defines standard attribute keys for machine learning operations.
//
// Using these keys keeps log records from the optimizer, the estimators and
// the command-line tools consistent. Keys follow a hierarchical naming
// convention (e.g. "model.name", "data.samples").

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "Regression", "GDRegression", "LogisticRegression", "KNN"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score", "sweep"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "optimize", "neighbors", "linear"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of design-matrix columns.
	FeaturesKey = "data.features"

	// PathKey records the input or output file path.
	PathKey = "data.path"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy in [0.0, 1.0].
	AccuracyKey = "metrics.accuracy"

	// LossKey records the objective value during training or evaluation.
	LossKey = "metrics.loss"

	// RMSEKey records the root-mean-square residual of a regression.
	RMSEKey = "metrics.rmse"

	// MAEKey records the mean absolute residual of a regression.
	MAEKey = "metrics.mae"

	// SuccessesKey records a count of correct predictions.
	SuccessesKey = "metrics.successes"

	// IterationKey records the current iteration number of an iterative process.
	IterationKey = "training.iteration"

	// RankKey records the numerical rank found by a decomposition.
	RankKey = "training.rank"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"
)

// Hyperparameters and Configuration
const (
	// LearningRateKey records the fixed step size of gradient descent.
	LearningRateKey = "hyperparams.learning_rate"

	// EpsilonKey records the convergence threshold on the objective change.
	EpsilonKey = "hyperparams.epsilon"

	// MaxIterKey records the optional iteration ceiling (0 means uncapped).
	MaxIterKey = "hyperparams.max_iter"

	// NeighborsKey records the k of a nearest-neighbors vote.
	NeighborsKey = "hyperparams.k"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationSweep   = "sweep"
	OperationLoad    = "load"
	OperationSave    = "save"

	PhaseTraining   = "training"
	PhaseValidation = "validation"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
	ErrorDegenerateFit     = "DEGENERATE_FIT"
)

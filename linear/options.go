package linear

import "github.com/YuminosukeSato/pointml/pkg/log"

// Option はこのパッケージのモデルを設定する関数型オプション。
// 対象外のオプションは無視される（WithRcond は Regression のみ、
// 学習率などは最急降下法のモデルのみに効く）
type Option func(*config)

type config struct {
	learningRate float64 // 0 ならモデルごとの既定値
	epsilon      float64 // 0 ならモデルごとの既定値
	maxIter      int     // 0 なら上限なし
	rcond        float64 // 0 なら max(n,d) * マシンイプシロン
	columns      []string
	logger       log.Logger
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = log.GetLoggerWithName("linear")
	}
	return c
}

// WithLearningRate は最急降下法の固定ステップ幅を設定する
func WithLearningRate(lambda float64) Option {
	return func(c *config) {
		c.learningRate = lambda
	}
}

// WithEpsilon は目的関数の変化量に対する停止しきい値を設定する
func WithEpsilon(eps float64) Option {
	return func(c *config) {
		c.epsilon = eps
	}
}

// WithMaxIter は反復回数の上限を設定する。0 なら上限なし
func WithMaxIter(n int) Option {
	return func(c *config) {
		c.maxIter = n
	}
}

// WithRcond は擬似逆行列で0とみなす特異値の相対しきい値を設定する
func WithRcond(rcond float64) Option {
	return func(c *config) {
		c.rcond = rcond
	}
}

// WithColumns は計画行列の列名を記録する。保存した重みに列順が残る
func WithColumns(names []string) Option {
	return func(c *config) {
		c.columns = append([]string(nil), names...)
	}
}

// WithLogger は学習結果と降下の進捗を出力するロガーを設定する
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

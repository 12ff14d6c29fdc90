package appconfig

import (
	"time"

	"exusiai.dev/chartengine/internal/app/appcontext"
)

type ConfigSpec struct {
	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFile is where logs are additionally appended to. Leaving this empty disables file logging.
	LogFile string `split_words:"true" default:"logs/app.log"`

	// DevMode to indicate development mode. When true, the logger runs at trace level and
	// every unresolved token and rejected expression is logged.
	DevMode bool `split_words:"true"`

	// Locale is the BCP 47 tag used for thousands and decimal separators when formatting values.
	Locale string `required:"true" split_words:"true" default:"en"`

	// CurrencyPrefix is the prefix synthesized for elements still using the legacy `currency` type hint.
	CurrencyPrefix string `split_words:"true" default:"€"`

	// ProgramCacheTTL is how long a compiled arithmetic expression is kept. Zero keeps programs forever.
	ProgramCacheTTL time.Duration `split_words:"true" default:"10m"`

	// AliasesFile is an optional YAML file declaring derived fields in addition to the built-in ones.
	AliasesFile string `split_words:"true"`

	// DefaultParameters are parameters available to every formula, as `key=value` pairs separated by commas.
	// Parameters of a configuration and parameters given at calculation time take precedence.
	DefaultParameters ParameterMap `split_words:"true"`

	// BatchConcurrency limits how many calculations of a batch run at once.
	BatchConcurrency int `required:"true" split_words:"true" default:"8"`

	// BatchTimeout describes the timeout for a single batch to run
	BatchTimeout time.Duration `required:"true" split_words:"true" default:"30s"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// WorkerInterval describes the interval in-between different batches of the watch worker
	WorkerInterval time.Duration `required:"true" split_words:"true" default:"1m"`

	// WorkerMetricsTextfile is where the watch worker writes Prometheus metrics after each batch,
	// in the textfile collector format. Leaving this empty disables the export.
	WorkerMetricsTextfile string `split_words:"true"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}

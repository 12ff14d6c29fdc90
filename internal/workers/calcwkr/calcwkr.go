package calcwkr

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/xxh3"
	"go.uber.org/fx"

	"exusiai.dev/chartengine/internal/app/appconfig"
	"exusiai.dev/chartengine/internal/service"
)

func Module() fx.Option {
	return fx.Module("calcwkr", fx.Provide(New))
}

const (
	LoadAttempts   = 3
	LoadRetryDelay = 200 * time.Millisecond
)

// LoadFunc reads the batch inputs afresh. It is called once per round so
// edits to the input files are picked up without a restart.
type LoadFunc func(ctx context.Context) (service.BatchRequest, error)

// SinkFunc receives a batch result whose content differs from the last one
// delivered.
type SinkFunc func(result *service.BatchResult) error

type WorkerDeps struct {
	fx.In
	BatchService *service.Batch
}

type Worker struct {
	// count counts batches worker has completed so far
	count int

	// interval describes the interval in-between different batches of job running
	interval time.Duration

	// metricsTextfile is where metrics are written after each batch, if set
	metricsTextfile string

	// fingerprint of the last delivered result
	fingerprint uint64

	deps WorkerDeps
}

func New(conf *appconfig.Config, deps WorkerDeps) *Worker {
	return &Worker{
		interval:        conf.WorkerInterval,
		metricsTextfile: conf.WorkerMetricsTextfile,
		deps:            deps,
	}
}

// Run calculates a batch every interval until ctx is cancelled. A round that
// fails to load or calculate is logged and retried on the next tick.
func (w *Worker) Run(ctx context.Context, load LoadFunc, sink SinkFunc) error {
	for {
		log.Info().
			Str("evt.name", "worker.calc.started").
			Int("count", w.count).
			Msg("worker batch started")

		changed, err := w.round(ctx, load, sink)
		if err != nil {
			log.Error().
				Str("evt.name", "worker.calc.failed").
				Err(err).
				Int("count", w.count).
				Msg("worker batch failed")
		} else {
			log.Info().
				Str("evt.name", "worker.calc.finished").
				Int("count", w.count).
				Bool("changed", changed).
				Msg("worker batch finished")
		}

		w.count++
		w.exportMetrics()

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(w.interval):
		}
	}
}

func (w *Worker) round(ctx context.Context, load LoadFunc, sink SinkFunc) (bool, error) {
	// producers may still be writing the inputs
	var req service.BatchRequest
	err := retry.Do(
		func() error {
			var err error
			req, err = load(ctx)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(LoadAttempts),
		retry.Delay(LoadRetryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().
				Err(err).
				Uint("attempt", n+1).
				Msg("retrying to load batch inputs")
		}),
	)
	if err != nil {
		return false, errors.Wrap(err, "failed to load batch inputs")
	}

	var result *service.BatchResult
	err = observeCalcDuration(func() error {
		var err error
		result, err = w.deps.BatchService.Run(ctx, req)
		return err
	})
	if err != nil && result == nil {
		return false, err
	}
	if err != nil {
		log.Warn().
			Err(err).
			Str("runId", result.RunID).
			Msg("worker batch returned partial results")
	}

	fingerprint, err := Fingerprint(result)
	if err != nil {
		return false, err
	}
	if fingerprint == w.fingerprint {
		return false, nil
	}

	if err := sink(result); err != nil {
		return false, errors.Wrap(err, "failed to deliver batch result")
	}
	w.fingerprint = fingerprint

	return true, nil
}

func (w *Worker) exportMetrics() {
	if w.metricsTextfile == "" {
		return
	}
	if err := prometheus.WriteToTextfile(w.metricsTextfile, prometheus.DefaultGatherer); err != nil {
		log.Warn().
			Err(err).
			Str("path", w.metricsTextfile).
			Msg("failed to write metrics textfile")
	}
}

// Fingerprint hashes the calculated content of a batch result, ignoring run
// id and timing.
func Fingerprint(result *service.BatchResult) (uint64, error) {
	b, err := json.Marshal(struct {
		Rejected []service.ViolationEntry `json:"rejected"`
		Items    []service.BatchItem      `json:"items"`
	}{
		Rejected: result.Rejected,
		Items:    result.Items,
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to encode batch result")
	}
	return xxh3.Hash(b), nil
}

func (w *Worker) Count() int {
	return w.count
}

package service

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"exusiai.dev/chartengine/internal/app/appconfig"
	"exusiai.dev/chartengine/internal/model"
	"exusiai.dev/chartengine/internal/pkg/observability"
)

var ErrBatchTimeout = errors.New("batch did not finish before its deadline")

// NamedRecord is a stats record together with a name identifying it in the
// output, usually the file it was read from.
type NamedRecord struct {
	Name  string
	Stats model.StatsRecord
}

type BatchRequest struct {
	Configs []*model.ChartConfiguration
	Records []NamedRecord
	Params  model.ParameterSet
	Manual  model.ManualDataSet
}

type ChartFailure struct {
	ChartID string `json:"chartId"`
	Error   string `json:"error"`
}

type BatchItem struct {
	Record   string               `json:"record"`
	Charts   []*model.ChartResult `json:"charts"`
	Failures []ChartFailure       `json:"failures,omitempty"`
}

type BatchResult struct {
	RunID     string           `json:"runId"`
	StartedAt time.Time        `json:"startedAt"`
	Duration  time.Duration    `json:"duration"`
	Rejected  []ViolationEntry `json:"rejected,omitempty"`
	Items     []BatchItem      `json:"items"`
}

type Batch struct {
	Calculator *Calculator
	Validation *Validation
	Config     *appconfig.Config
}

func NewBatch(calculator *Calculator, validation *Validation, conf *appconfig.Config) *Batch {
	return &Batch{
		Calculator: calculator,
		Validation: validation,
		Config:     conf,
	}
}

// Run calculates every accepted active configuration against every record.
// Rejected configurations are reported and skipped. A chart that panics is
// reported as a failure of its record without affecting the others. When the
// batch deadline passes, the charts finished so far are returned together with
// ErrBatchTimeout.
func (s *Batch) Run(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	result := &BatchResult{
		RunID:     ulid.Make().String(),
		StartedAt: time.Now(),
	}

	violations := s.Validation.ValidateConfigurations(ctx, req.Configs)
	accepted := make([]*model.ChartConfiguration, 0, len(req.Configs))
	for i, config := range req.Configs {
		if violation, ok := violations[i]; ok {
			entry := ViolationEntry{Index: i, Violation: violation}
			if config != nil {
				entry.ChartID = config.ChartID
			}
			result.Rejected = append(result.Rejected, entry)
			continue
		}
		accepted = append(accepted, config)
	}
	configs := ActiveInOrder(accepted)

	if s.Config.BatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Config.BatchTimeout)
		defer cancel()
	}

	// one slot per record and chart so results keep input order
	slots := make([][]*model.ChartResult, len(req.Records))
	failures := make([][]error, len(req.Records))
	for i := range req.Records {
		slots[i] = make([]*model.ChartResult, len(configs))
		failures[i] = make([]error, len(configs))
	}

	eg := errgroup.Group{}
	if s.Config.BatchConcurrency > 0 {
		eg.SetLimit(s.Config.BatchConcurrency)
	}

	for ri, record := range req.Records {
		for ci, config := range configs {
			ri, ci, record, config := ri, ci, record, config
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					failures[ri][ci] = err
					return err
				}
				slots[ri][ci], failures[ri][ci] = s.calculateContained(ctx, config, record, req)
				return nil
			})
		}
	}

	waitErr := eg.Wait()

	result.Items = lo.Map(req.Records, func(record NamedRecord, ri int) BatchItem {
		item := BatchItem{
			Record: record.Name,
			Charts: lo.Compact(slots[ri]),
		}
		for ci, err := range failures[ri] {
			if err != nil {
				item.Failures = append(item.Failures, ChartFailure{
					ChartID: configs[ci].ChartID,
					Error:   err.Error(),
				})
			}
		}
		return item
	})
	result.Duration = time.Since(result.StartedAt)

	log.Info().
		Str("evt.name", "service.batch.finished").
		Str("runId", result.RunID).
		Int("records", len(req.Records)).
		Int("charts", len(configs)).
		Int("rejected", len(result.Rejected)).
		Dur("duration", result.Duration).
		Msg("batch finished")

	if waitErr != nil {
		return result, errors.Wrap(ErrBatchTimeout, waitErr.Error())
	}

	return result, nil
}

func (s *Batch) calculateContained(ctx context.Context, config *model.ChartConfiguration, record NamedRecord, req BatchRequest) (result *model.ChartResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("chart calculation panicked: %v", r)
			result = nil

			observability.BatchItemFailures.Inc()
			log.Error().
				Str("evt.name", "service.batch.panic").
				Str("chartId", config.ChartID).
				Str("record", record.Name).
				Interface("panic", r).
				Msg("recovered from a panic while calculating a chart")

			sentry.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("chartId", config.ChartID)
				scope.SetTag("record", record.Name)
				sentry.CaptureException(err)
			})
		}
	}()

	return s.Calculator.Calculate(ctx, config, record.Stats, req.Params, req.Manual), nil
}

package service

import (
	"context"
	"strconv"
	"time"

	"github.com/ahmetb/go-linq/v3"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"

	"exusiai.dev/chartengine/internal/app/appconfig"
	"exusiai.dev/chartengine/internal/model"
	"exusiai.dev/chartengine/internal/pkg/arith"
	"exusiai.dev/chartengine/internal/pkg/formula"
	"exusiai.dev/chartengine/internal/pkg/numfmt"
	"exusiai.dev/chartengine/internal/pkg/observability"
)

const DefaultTotalLabel = "Total"

var tracer = otel.Tracer("service")

// Calculator turns a chart configuration and a stats record into a chart
// result. It keeps no state between calls and may be used concurrently.
type Calculator struct {
	Resolver  *formula.Resolver
	Evaluator *arith.Evaluator
	Formatter *numfmt.Formatter

	// defaults are parameters every formula can see, overridden by a
	// configuration's own parameters and then by the caller's.
	defaults model.ParameterSet
}

func NewCalculator(resolver *formula.Resolver, evaluator *arith.Evaluator, formatter *numfmt.Formatter, conf *appconfig.Config) *Calculator {
	return &Calculator{
		Resolver:  resolver,
		Evaluator: evaluator,
		Formatter: formatter,
		defaults:  model.ParameterSet(conf.DefaultParameters),
	}
}

// Calculate resolves, evaluates and formats every element of config. Element
// failures become NA and never abort the chart. Inputs are not modified.
func (s *Calculator) Calculate(ctx context.Context, config *model.ChartConfiguration, stats model.StatsRecord, params model.ParameterSet, manual model.ManualDataSet) *model.ChartResult {
	_, span := tracer.Start(ctx, "service.calculator.calculate")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.ChartCalculateDuration.
			WithLabelValues(string(config.Type)).
			Observe(time.Since(start).Seconds())
	}()

	normalized := s.normalize(config)
	src := formula.Sources{
		Stats:  stats,
		Params: formula.MergeParams(formula.MergeParams(s.defaults, normalized.Parameters), params),
		Manual: manual,
	}

	var result *model.ChartResult
	if normalized.Type.IsPassthrough() {
		result = s.calculatePassthrough(normalized, src)
	} else {
		result = s.calculateNumeric(normalized, src)
	}

	observability.ChartVisibility.
		WithLabelValues(string(config.Type), strconv.FormatBool(result.Valid)).
		Inc()

	if l := log.Trace(); l.Enabled() {
		l.Str("chartId", config.ChartID).
			Str("type", string(config.Type)).
			Bool("valid", result.Valid).
			Dur("duration", time.Since(start)).
			Msg("chart calculated")
	}

	return result
}

// CalculateReport calculates every active configuration against one stats
// record, ordered by order then chart id.
func (s *Calculator) CalculateReport(ctx context.Context, configs []*model.ChartConfiguration, stats model.StatsRecord, params model.ParameterSet, manual model.ManualDataSet) []*model.ChartResult {
	return lo.Map(ActiveInOrder(configs), func(config *model.ChartConfiguration, _ int) *model.ChartResult {
		return s.Calculate(ctx, config, stats, params, manual)
	})
}

// ActiveInOrder returns the active configurations sorted for display. The
// input slice is left untouched.
func ActiveInOrder(configs []*model.ChartConfiguration) []*model.ChartConfiguration {
	active := []*model.ChartConfiguration{}
	linq.From(configs).
		WhereT(func(config *model.ChartConfiguration) bool {
			return config != nil && config.Active
		}).
		OrderByT(func(config *model.ChartConfiguration) int {
			return config.Order
		}).
		ThenByT(func(config *model.ChartConfiguration) string {
			return config.ChartID
		}).
		ToSlice(&active)
	return active
}

// normalize returns a deep copy of config in which every element carries a
// formatting block, synthesized from its legacy hint when absent.
func (s *Calculator) normalize(config *model.ChartConfiguration) *model.ChartConfiguration {
	var normalized model.ChartConfiguration
	if err := copier.CopyWithOption(&normalized, config, copier.Option{DeepCopy: true}); err != nil {
		log.Error().
			Err(err).
			Str("chartId", config.ChartID).
			Msg("failed to copy chart configuration, falling back to a shallow copy")
		normalized = *config
		normalized.Elements = append([]model.ChartElement(nil), config.Elements...)
	}

	for i := range normalized.Elements {
		el := &normalized.Elements[i]
		if el.Formatting == nil {
			fm := s.Formatter.Effective(*el)
			el.Formatting = &fm
		}
	}

	return &normalized
}

func (s *Calculator) calculatePassthrough(config *model.ChartConfiguration, src formula.Sources) *model.ChartResult {
	result := newResult(config)

	for _, el := range config.Elements {
		content := s.Resolver.ResolveText(el.Formula, src)
		result.Elements = append(result.Elements, model.ElementResult{
			Label:          el.Label,
			Value:          model.NA,
			FormattedValue: content,
			Color:          el.Color,
			Content:        content,
		})
		if content != "" {
			result.Valid = true
		}
	}

	return result
}

func (s *Calculator) calculateNumeric(config *model.ChartConfiguration, src formula.Sources) *model.ChartResult {
	result := newResult(config)

	values := make([]model.Value, len(config.Elements))
	for i, el := range config.Elements {
		values[i] = s.Evaluator.Eval(s.Resolver.Resolve(el.Formula, src))
		if values[i].IsNA() {
			observability.ChartElementsNA.WithLabelValues(string(config.Type)).Inc()
		}
	}

	// shares are only meaningful between siblings, a lone kpi keeps its value
	shares := numfmt.Percentages(values)
	withShares := config.Type != model.ChartTypeKPI

	for i, el := range config.Elements {
		fm := elementFormatting(config, el)
		er := model.ElementResult{
			Label: el.Label,
			Value: values[i],
			Color: el.Color,
		}

		display := values[i]
		if withShares && fm.IsPercentage() {
			display = shares[i]
			if share, ok := display.Float(); ok {
				er.Percent = &share
			}
		}
		er.FormattedValue = s.Formatter.Format(display, fm)

		result.Elements = append(result.Elements, er)
	}

	if config.Type == model.ChartTypeValue || config.ShowTotal {
		result.Total = s.total(config, values)
	}

	result.Valid = lo.SomeBy(values, model.Value.IsVisible)

	return result
}

func (s *Calculator) total(config *model.ChartConfiguration, values []model.Value) *model.TotalResult {
	sum := numfmt.Sum(values)
	fm := totalFormatting(config)

	display := sum
	if fm.IsPercentage() && config.Type != model.ChartTypeValue && config.Type != model.ChartTypeKPI {
		display = 0
		if sum != 0 {
			display = 100
		}
	}

	label := config.TotalLabel
	if label == "" {
		label = DefaultTotalLabel
	}

	return &model.TotalResult{
		Label:          label,
		Value:          model.Number(sum),
		FormattedValue: s.Formatter.Format(model.Number(display), fm),
	}
}

func newResult(config *model.ChartConfiguration) *model.ChartResult {
	result := &model.ChartResult{
		ChartID:  config.ChartID,
		Type:     config.Type,
		Title:    config.Title,
		Order:    config.Order,
		Elements: make([]model.ElementResult, 0, len(config.Elements)),
	}
	if config.Type == model.ChartTypeImage {
		result.AspectRatio = config.AspectRatio
	}
	return result
}

// elementFormatting expects a normalized configuration.
func elementFormatting(config *model.ChartConfiguration, el model.ChartElement) model.Formatting {
	if config.Type == model.ChartTypeValue && config.BarFormatting != nil {
		return *config.BarFormatting
	}
	if el.Formatting != nil {
		return *el.Formatting
	}
	return model.Formatting{Rounded: true}
}

func totalFormatting(config *model.ChartConfiguration) model.Formatting {
	switch {
	case config.Type == model.ChartTypeValue && config.KPIFormatting != nil:
		return *config.KPIFormatting
	case config.TotalFormatting != nil:
		return *config.TotalFormatting
	case len(config.Elements) > 0 && config.Elements[0].Formatting != nil:
		return *config.Elements[0].Formatting
	default:
		return model.Formatting{Rounded: true}
	}
}

package chartverifs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"

	"exusiai.dev/chartengine/internal/model"
	"exusiai.dev/chartengine/internal/pkg/observability"
)

var tracer = otel.Tracer("chartverifs")

type Verifier interface {
	Name() string
	Verify(ctx context.Context, config *model.ChartConfiguration) *Rejection
}

type ChartVerifiers []Verifier

func NewChartVerifiers(structVerifier *StructVerifier, shapeVerifier *ShapeVerifier, formulaVerifier *FormulaVerifier, parameterVerifier *ParameterVerifier) *ChartVerifiers {
	return &ChartVerifiers{
		structVerifier,
		shapeVerifier,
		formulaVerifier,
		parameterVerifier,
	}
}

// Verify runs every verifier in order and returns the first violation, or
// nil when the configuration is accepted. The configuration is never changed.
func (verifiers ChartVerifiers) Verify(ctx context.Context, config *model.ChartConfiguration) *Violation {
	if config == nil {
		return &Violation{
			Name:      "struct",
			Rejection: *reject("required", "chart configuration is missing"),
		}
	}

	for _, pipe := range verifiers {
		start := time.Now()

		name := pipe.Name()

		ctx, span := tracer.
			Start(ctx, "chartverifs.verifier."+name)

		rejection := pipe.Verify(ctx, config)
		span.End()

		observability.ChartVerifyDuration.
			WithLabelValues(name).
			Observe(time.Since(start).Seconds())

		if rejection != nil {
			observability.ChartRejections.
				WithLabelValues(name, string(config.Type)).
				Inc()

			log.Debug().
				Str("evt.name", "chartverifs.rejected").
				Str("chartId", config.ChartID).
				Str("verifier", name).
				Str("rule", rejection.Rule).
				Msg(rejection.Message)

			return &Violation{
				Name:      name,
				Rejection: *rejection,
			}
		}
	}

	return nil
}

// VerifyAll verifies each configuration independently.
func (verifiers ChartVerifiers) VerifyAll(ctx context.Context, configs []*model.ChartConfiguration) Violations {
	violations := Violations{}
	for i, config := range configs {
		if violation := verifiers.Verify(ctx, config); violation != nil {
			violations[i] = violation
		}
	}
	return violations
}

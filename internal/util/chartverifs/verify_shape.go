package chartverifs

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"exusiai.dev/chartengine/internal/model"
)

const (
	RuleElementCount = "element_count"
	RuleFormatting   = "formatting"
	RuleAspectRatio  = "aspect_ratio"
)

type elementBounds struct {
	min, max int
}

var shapeBounds = map[model.ChartType]elementBounds{
	model.ChartTypeKPI:   {1, 1},
	model.ChartTypePie:   {2, 2},
	model.ChartTypeBar:   {1, -1}, // conventionally 5
	model.ChartTypeValue: {5, 5},
	model.ChartTypeText:  {1, 1},
	model.ChartTypeImage: {1, 1},
}

// ShapeVerifier enforces the per-type structure of a configuration: element
// counts, the value chart's formatting blocks and the image aspect ratio.
type ShapeVerifier struct{}

// ensure ShapeVerifier conforms to Verifier
var _ Verifier = (*ShapeVerifier)(nil)

func NewShapeVerifier() *ShapeVerifier {
	return &ShapeVerifier{}
}

func (v *ShapeVerifier) Name() string {
	return "shape"
}

func (v *ShapeVerifier) Verify(ctx context.Context, config *model.ChartConfiguration) *Rejection {
	bounds, ok := shapeBounds[config.Type]
	if !ok {
		return reject(RuleElementCount, "unknown chart type %q", config.Type)
	}

	count := len(config.Elements)
	switch {
	case bounds.max < 0 && count < bounds.min:
		return reject(RuleElementCount, "%s chart requires at least %d %s, got %d", config.Type, bounds.min, plural(bounds.min), count)
	case bounds.max >= 0 && (count < bounds.min || count > bounds.max):
		return reject(RuleElementCount, "%s chart requires exactly %d %s, got %d", config.Type, bounds.min, plural(bounds.min), count)
	}

	if config.Type == model.ChartTypeValue {
		if config.KPIFormatting == nil {
			return reject(RuleFormatting, "value chart requires kpiFormatting")
		}
		if config.BarFormatting == nil {
			return reject(RuleFormatting, "value chart requires barFormatting")
		}
	}

	if config.Type == model.ChartTypeImage && !lo.Contains(model.AspectRatios, config.AspectRatio) {
		ratios := lo.Map(model.AspectRatios, func(r model.AspectRatio, _ int) string {
			return string(r)
		})
		return reject(RuleAspectRatio, "image chart aspectRatio must be one of %s, got %q", strings.Join(ratios, ", "), config.AspectRatio)
	}

	return nil
}

func plural(n int) string {
	if n == 1 {
		return "element"
	}
	return "elements"
}

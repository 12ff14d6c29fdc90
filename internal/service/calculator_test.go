package service_test

import (
	"context"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/chartengine/internal/model"
	"exusiai.dev/chartengine/internal/pkg/testentry"
	"exusiai.dev/chartengine/internal/service"
)

func newCalculator(t *testing.T) *service.Calculator {
	var calculator *service.Calculator
	testentry.Populate(t, &calculator)
	return calculator
}

func numericElements(formulas ...string) []model.ChartElement {
	els := make([]model.ChartElement, len(formulas))
	for i, f := range formulas {
		els[i] = model.ChartElement{Label: f, Formula: f}
	}
	return els
}

func formattedValues(result *model.ChartResult) []string {
	out := make([]string, len(result.Elements))
	for i, el := range result.Elements {
		out[i] = el.FormattedValue
	}
	return out
}

func TestCalculateKPI(t *testing.T) {
	calculator := newCalculator(t)

	config := &model.ChartConfiguration{
		ChartID: "gender",
		Type:    model.ChartTypeKPI,
		Title:   "Attendees",
		Active:  true,
		Elements: []model.ChartElement{
			{Label: "Attendees", Formula: "[stats.female] + [stats.male]", Type: model.LegacyHintNumber},
		},
	}
	stats := model.StatsRecord{"female": 700, "male": 612}

	result := calculator.Calculate(context.Background(), config, stats, nil, nil)

	require.Len(t, result.Elements, 1)
	assert.Equal(t, model.Number(1312), result.Elements[0].Value)
	assert.Equal(t, "1,312", result.Elements[0].FormattedValue)
	assert.True(t, result.Valid)
	assert.Nil(t, result.Total)
	assert.Equal(t, "gender", result.ChartID)
	assert.Equal(t, "Attendees", result.Title)
}

func TestCalculateValueChart(t *testing.T) {
	calculator := newCalculator(t)

	config := &model.ChartConfiguration{
		ChartID:       "revenue",
		Type:          model.ChartTypeValue,
		Active:        true,
		Elements:      numericElements("stats.a", "stats.b", "stats.c", "stats.d", "stats.e"),
		KPIFormatting: &model.Formatting{Prefix: null.StringFrom("€")},
		BarFormatting: &model.Formatting{Suffix: null.StringFrom("%")},
	}
	stats := model.StatsRecord{"a": 100, "b": 200, "c": 300, "d": 150, "e": 250}

	result := calculator.Calculate(context.Background(), config, stats, nil, nil)

	assert.Equal(t, []string{"10%", "20%", "30%", "15%", "25%"}, formattedValues(result), spew.Sdump(result))
	assert.Equal(t, model.Number(100), result.Elements[0].Value, "value keeps the raw number")
	if assert.NotNil(t, result.Elements[0].Percent) {
		assert.InDelta(t, 10.0, *result.Elements[0].Percent, 1e-9)
	}

	require.NotNil(t, result.Total)
	assert.Equal(t, "Total", result.Total.Label)
	assert.Equal(t, model.Number(1000), result.Total.Value)
	assert.Equal(t, "€1,000", result.Total.FormattedValue)
	assert.True(t, result.Valid)
}

func TestCalculatePiePercentages(t *testing.T) {
	calculator := newCalculator(t)

	config := &model.ChartConfiguration{
		ChartID: "split",
		Type:    model.ChartTypePie,
		Elements: []model.ChartElement{
			{Label: "Female", Formula: "stats.female", Type: model.LegacyHintPercentage},
			{Label: "Male", Formula: "stats.male", Type: model.LegacyHintPercentage},
		},
	}

	result := calculator.Calculate(context.Background(), config, model.StatsRecord{"female": 1, "male": 2}, nil, nil)
	assert.Equal(t, []string{"33.33%", "66.67%"}, formattedValues(result))

	zero := calculator.Calculate(context.Background(), config, model.StatsRecord{}, nil, nil)
	assert.Equal(t, []string{"0%", "0%"}, formattedValues(zero))
	assert.False(t, zero.Valid)
}

func TestCalculateBarVisibility(t *testing.T) {
	calculator := newCalculator(t)

	config := &model.ChartConfiguration{
		ChartID:  "ages",
		Type:     model.ChartTypeBar,
		Elements: numericElements("stats.genAlpha", "stats.genYZ", "stats.genX", "stats.boomer", "stats.unknown"),
	}

	allZero := calculator.Calculate(context.Background(), config, model.StatsRecord{"genAlpha": 0, "genYZ": 0}, nil, nil)
	assert.False(t, allZero.Valid)
	assert.Len(t, allZero.Elements, 5)

	oneVisible := calculator.Calculate(context.Background(), config, model.StatsRecord{"boomer": -3}, nil, nil)
	assert.True(t, oneVisible.Valid)
}

func TestCalculateDivisionByZero(t *testing.T) {
	calculator := newCalculator(t)

	config := &model.ChartConfiguration{
		ChartID:  "ratios",
		Type:     model.ChartTypeBar,
		Elements: numericElements("stats.a / stats.zero", "stats.a"),
	}

	result := calculator.Calculate(context.Background(), config, model.StatsRecord{"a": 4, "zero": 0}, nil, nil)

	assert.True(t, result.Elements[0].Value.IsNA())
	assert.Equal(t, "NA", result.Elements[0].FormattedValue)
	assert.Equal(t, "4", result.Elements[1].FormattedValue)
	assert.True(t, result.Valid)

	onlyNA := calculator.Calculate(context.Background(), &model.ChartConfiguration{
		ChartID:  "broken",
		Type:     model.ChartTypeKPI,
		Elements: numericElements("stats.a +* 2"),
	}, model.StatsRecord{"a": 4}, nil, nil)
	assert.False(t, onlyNA.Valid)
	assert.Equal(t, "NA", onlyNA.Elements[0].FormattedValue)
}

func TestCalculateShowTotal(t *testing.T) {
	calculator := newCalculator(t)

	config := &model.ChartConfiguration{
		ChartID:   "fans",
		Type:      model.ChartTypeBar,
		ShowTotal: true,
		Elements: []model.ChartElement{
			{Label: "Remote", Formula: "[REMOTE_FANS]", Formatting: &model.Formatting{Suffix: null.StringFrom("%")}},
			{Label: "Stadium", Formula: "[STADIUM]", Formatting: &model.Formatting{Suffix: null.StringFrom("%")}},
		},
	}
	stats := model.StatsRecord{"remoteFans": 30, "stadium": 90}

	result := calculator.Calculate(context.Background(), config, stats, nil, nil)
	assert.Equal(t, []string{"25%", "75%"}, formattedValues(result))
	require.NotNil(t, result.Total)
	assert.Equal(t, "100%", result.Total.FormattedValue)
	assert.Equal(t, model.Number(120), result.Total.Value)

	config.TotalLabel = "All fans"
	config.TotalFormatting = &model.Formatting{Rounded: true, Suffix: null.StringFrom(" fans")}
	result = calculator.Calculate(context.Background(), config, stats, nil, nil)
	assert.Equal(t, "All fans", result.Total.Label)
	assert.Equal(t, "120 fans", result.Total.FormattedValue)
}

func TestCalculateLegacyCurrency(t *testing.T) {
	calculator := newCalculator(t)

	config := &model.ChartConfiguration{
		ChartID: "spend",
		Type:    model.ChartTypeKPI,
		Elements: []model.ChartElement{
			{Label: "Spend", Formula: "stats.spend * [PARAM:rate]", Type: model.LegacyHintCurrency},
		},
		Parameters: model.ParameterSet{"rate": 1},
	}

	result := calculator.Calculate(context.Background(), config, model.StatsRecord{"spend": 1234.5678}, nil, nil)
	assert.Equal(t, "€1,234.57", result.Elements[0].FormattedValue)

	overridden := calculator.Calculate(context.Background(), config, model.StatsRecord{"spend": 1234.5678}, model.ParameterSet{"rate": 2}, nil)
	assert.Equal(t, "€2,469.14", overridden.Elements[0].FormattedValue)
}

func TestCalculateManualData(t *testing.T) {
	calculator := newCalculator(t)

	config := &model.ChartConfiguration{
		ChartID:  "seats",
		Type:     model.ChartTypeKPI,
		Elements: numericElements("stats.seats + [MANUAL:extra]"),
	}

	result := calculator.Calculate(context.Background(), config, model.StatsRecord{"seats": 100}, nil, model.ManualDataSet{"extra": 20})
	assert.Equal(t, "120", result.Elements[0].FormattedValue)
}

func TestCalculatePassthrough(t *testing.T) {
	calculator := newCalculator(t)
	stats := model.StatsRecord{"headline": "Sold out!", "poster": "https://example.com/poster.png"}

	text := calculator.Calculate(context.Background(), &model.ChartConfiguration{
		ChartID:  "headline",
		Type:     model.ChartTypeText,
		Elements: numericElements("stats.headline"),
	}, stats, nil, nil)
	assert.True(t, text.Valid)
	assert.Equal(t, "Sold out!", text.Elements[0].Content)
	assert.Equal(t, "Sold out!", text.Elements[0].FormattedValue)
	assert.True(t, text.Elements[0].Value.IsNA())

	image := calculator.Calculate(context.Background(), &model.ChartConfiguration{
		ChartID:     "poster",
		Type:        model.ChartTypeImage,
		AspectRatio: model.AspectRatioPortrait,
		Elements:    numericElements("[POSTER]"),
	}, stats, nil, nil)
	assert.True(t, image.Valid)
	assert.Equal(t, model.AspectRatioPortrait, image.AspectRatio)
	assert.Equal(t, "https://example.com/poster.png", image.Elements[0].Content)

	empty := calculator.Calculate(context.Background(), &model.ChartConfiguration{
		ChartID:  "missing",
		Type:     model.ChartTypeText,
		Elements: numericElements("stats.missing"),
	}, stats, nil, nil)
	assert.False(t, empty.Valid)
}

func TestCalculateIsIdempotentAndPure(t *testing.T) {
	calculator := newCalculator(t)

	config := &model.ChartConfiguration{
		ChartID:   "fans",
		Type:      model.ChartTypeBar,
		ShowTotal: true,
		Elements: []model.ChartElement{
			{Label: "Remote", Formula: "stats.remoteFans", Type: model.LegacyHintPercentage},
			{Label: "Total", Formula: "stats.totalFans", Type: model.LegacyHintCurrency},
		},
		Parameters: model.ParameterSet{"weight": 2},
	}
	stats := model.StatsRecord{"remoteFans": 40, "stadium": 60}
	params := model.ParameterSet{"weight": 3}

	configBefore, statsBefore, paramsBefore := spew.Sdump(config), spew.Sdump(stats), spew.Sdump(params)

	first := calculator.Calculate(context.Background(), config, stats, params, nil)
	second := calculator.Calculate(context.Background(), config, stats, params, nil)

	assert.Equal(t, first, second)
	assert.Equal(t, configBefore, spew.Sdump(config))
	assert.Equal(t, statsBefore, spew.Sdump(stats))
	assert.Equal(t, paramsBefore, spew.Sdump(params))
	assert.Nil(t, config.Elements[0].Formatting)
}

func TestCalculateReport(t *testing.T) {
	calculator := newCalculator(t)

	configs := []*model.ChartConfiguration{
		{ChartID: "b", Type: model.ChartTypeKPI, Order: 2, Active: true, Elements: numericElements("stats.a")},
		{ChartID: "hidden", Type: model.ChartTypeKPI, Order: 0, Active: false, Elements: numericElements("stats.a")},
		{ChartID: "c", Type: model.ChartTypeKPI, Order: 1, Active: true, Elements: numericElements("stats.a")},
		nil,
		{ChartID: "a", Type: model.ChartTypeKPI, Order: 2, Active: true, Elements: numericElements("stats.a")},
	}

	results := calculator.CalculateReport(context.Background(), configs, model.StatsRecord{"a": 1}, nil, nil)

	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ChartID
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
	assert.Equal(t, "b", configs[0].ChartID, "input order is untouched")
}

func TestEndToEndKPI(t *testing.T) {
	calculator := newCalculator(t)

	config := &model.ChartConfiguration{
		ChartID:  "attendees",
		Type:     model.ChartTypeKPI,
		Elements: numericElements("[stats.female] + [stats.male]"),
	}

	result := calculator.Calculate(context.Background(), config, model.StatsRecord{"female": 462, "male": 850}, nil, nil)

	assert.Equal(t, model.Number(1312), result.Elements[0].Value)
	assert.Equal(t, "1,312", result.Elements[0].FormattedValue)
}

func TestEndToEndValueTotal(t *testing.T) {
	calculator := newCalculator(t)

	euro := &model.Formatting{Rounded: true, Prefix: null.StringFrom("€")}
	config := &model.ChartConfiguration{
		ChartID:       "revenue",
		Type:          model.ChartTypeValue,
		Elements:      numericElements("stats.x_1", "stats.x_2", "stats.x_3", "stats.x_4", "stats.x_5"),
		KPIFormatting: euro,
		BarFormatting: euro,
	}
	stats := model.StatsRecord{"x_1": 100, "x_2": 150, "x_3": 200, "x_4": 250, "x_5": 300}

	result := calculator.Calculate(context.Background(), config, stats, nil, nil)

	require.NotNil(t, result.Total)
	assert.Equal(t, "€1,000", result.Total.FormattedValue)
	assert.Equal(t, []string{"€100", "€150", "€200", "€250", "€300"}, formattedValues(result))
}

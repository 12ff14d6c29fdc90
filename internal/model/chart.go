package model

import (
	"gopkg.in/guregu/null.v3"
)

type ChartType string

const (
	ChartTypeKPI   ChartType = "kpi"
	ChartTypePie   ChartType = "pie"
	ChartTypeBar   ChartType = "bar"
	ChartTypeValue ChartType = "value"
	ChartTypeText  ChartType = "text"
	ChartTypeImage ChartType = "image"
)

var ChartTypes = []ChartType{
	ChartTypeKPI,
	ChartTypePie,
	ChartTypeBar,
	ChartTypeValue,
	ChartTypeText,
	ChartTypeImage,
}

// IsPassthrough reports whether elements of this type carry opaque strings
// instead of numbers.
func (t ChartType) IsPassthrough() bool {
	return t == ChartTypeText || t == ChartTypeImage
}

type AspectRatio string

const (
	AspectRatioLandscape AspectRatio = "16:9"
	AspectRatioPortrait  AspectRatio = "9:16"
	AspectRatioSquare    AspectRatio = "1:1"
)

var AspectRatios = []AspectRatio{
	AspectRatioLandscape,
	AspectRatioPortrait,
	AspectRatioSquare,
}

// LegacyHint is the pre-formatting-block element type. It is only read by the
// formatting adapter.
type LegacyHint string

const (
	LegacyHintCurrency   LegacyHint = "currency"
	LegacyHintPercentage LegacyHint = "percentage"
	LegacyHintNumber     LegacyHint = "number"
)

const PercentSuffix = "%"

type Formatting struct {
	Rounded bool        `json:"rounded"`
	Prefix  null.String `json:"prefix" validate:"affix"`
	Suffix  null.String `json:"suffix" validate:"affix"`
}

// IsPercentage reports whether values formatted with f are shares of the
// sibling total.
func (f Formatting) IsPercentage() bool {
	return f.Suffix.Valid && f.Suffix.String == PercentSuffix
}

type ChartElement struct {
	Label      string      `json:"label"`
	Formula    string      `json:"formula" validate:"required"`
	Color      string      `json:"color,omitempty"`
	Formatting *Formatting `json:"formatting,omitempty"`
	Type       LegacyHint  `json:"type,omitempty" validate:"omitempty,oneof=currency percentage number"`
}

// ChartConfiguration is owned by the administrative collaborator and must be
// treated as read-only.
type ChartConfiguration struct {
	ChartID  string         `json:"chartId" validate:"required"`
	Type     ChartType      `json:"type" validate:"required,oneof=kpi pie bar value text image"`
	Title    string         `json:"title"`
	Order    int            `json:"order" validate:"gte=0"`
	Active   bool           `json:"active"`
	Elements []ChartElement `json:"elements" validate:"dive"`

	// KPIFormatting and BarFormatting are only meaningful for value charts.
	KPIFormatting *Formatting `json:"kpiFormatting,omitempty"`
	BarFormatting *Formatting `json:"barFormatting,omitempty"`

	ShowTotal       bool        `json:"showTotal,omitempty"`
	TotalLabel      string      `json:"totalLabel,omitempty"`
	TotalFormatting *Formatting `json:"totalFormatting,omitempty"`

	// AspectRatio is only meaningful for image charts.
	AspectRatio AspectRatio `json:"aspectRatio,omitempty"`

	Parameters ParameterSet `json:"parameters,omitempty"`
}

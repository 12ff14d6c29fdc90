package model

type ElementResult struct {
	Label          string `json:"label"`
	Value          Value  `json:"value"`
	FormattedValue string `json:"formattedValue"`
	Color          string `json:"color,omitempty"`

	// Percent is set when the element was converted into a share of its
	// siblings' total.
	Percent *float64 `json:"percent,omitempty"`

	// Content carries the raw string of text and image elements.
	Content string `json:"content,omitempty"`
}

type TotalResult struct {
	Label          string `json:"label"`
	Value          Value  `json:"value"`
	FormattedValue string `json:"formattedValue"`
}

type ChartResult struct {
	ChartID     string          `json:"chartId"`
	Type        ChartType       `json:"type"`
	Title       string          `json:"title"`
	Order       int             `json:"order"`
	Elements    []ElementResult `json:"elements"`
	Total       *TotalResult    `json:"total,omitempty"`
	AspectRatio AspectRatio     `json:"aspectRatio,omitempty"`

	// Valid is false when the chart has nothing worth rendering.
	Valid bool `json:"valid"`
}

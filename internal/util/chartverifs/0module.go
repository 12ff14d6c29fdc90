package chartverifs

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module("chartverifs", fx.Provide(
		NewStructVerifier,
		NewShapeVerifier,
		NewFormulaVerifier,
		NewParameterVerifier,
		NewChartVerifiers,
	))
}

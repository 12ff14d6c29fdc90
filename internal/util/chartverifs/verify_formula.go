package chartverifs

import (
	"context"

	"exusiai.dev/chartengine/internal/model"
	"exusiai.dev/chartengine/internal/pkg/arith"
	"exusiai.dev/chartengine/internal/pkg/formula"
)

const (
	RuleFieldReference = "field_reference"
	RuleFormulaSyntax  = "formula_syntax"
)

// FormulaVerifier checks formulas at write time: passthrough charts must
// point at a single field, numeric charts must be arithmetic once their
// tokens are substituted.
type FormulaVerifier struct {
	Resolver  *formula.Resolver
	Evaluator *arith.Evaluator
}

// ensure FormulaVerifier conforms to Verifier
var _ Verifier = (*FormulaVerifier)(nil)

func NewFormulaVerifier(resolver *formula.Resolver, evaluator *arith.Evaluator) *FormulaVerifier {
	return &FormulaVerifier{
		Resolver:  resolver,
		Evaluator: evaluator,
	}
}

func (v *FormulaVerifier) Name() string {
	return "formula"
}

func (v *FormulaVerifier) Verify(ctx context.Context, config *model.ChartConfiguration) *Rejection {
	for i, el := range config.Elements {
		if config.Type.IsPassthrough() {
			if !formula.IsSingleFieldRef(el.Formula) {
				return reject(RuleFieldReference, "%s chart formula must reference a single string field, got %q", config.Type, el.Formula)
			}
			continue
		}

		if err := v.Evaluator.Check(v.Resolver.Placeholder(el.Formula)); err != nil {
			return reject(RuleFormulaSyntax, "element %d formula %q is not valid arithmetic: %s", i, el.Formula, err)
		}
	}

	return nil
}

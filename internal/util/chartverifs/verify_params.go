package chartverifs

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/samber/lo"

	"exusiai.dev/chartengine/internal/model"
)

const RuleParameter = "parameter"

type ParameterVerifier struct{}

// ensure ParameterVerifier conforms to Verifier
var _ Verifier = (*ParameterVerifier)(nil)

func NewParameterVerifier() *ParameterVerifier {
	return &ParameterVerifier{}
}

func (v *ParameterVerifier) Name() string {
	return "parameter"
}

func (v *ParameterVerifier) Verify(ctx context.Context, config *model.ChartConfiguration) *Rejection {
	keys := lo.Keys(config.Parameters)
	sort.Strings(keys)

	for _, key := range keys {
		if strings.TrimSpace(key) == "" || strings.ContainsAny(key, "[] \t\n") {
			return reject(RuleParameter, "parameter key %q is not usable in [PARAM:key] tokens", key)
		}
		if value := config.Parameters[key]; math.IsNaN(value) || math.IsInf(value, 0) {
			return reject(RuleParameter, "parameter %q must be a finite number", key)
		}
	}

	return nil
}

package service

import (
	"context"

	"github.com/samber/lo"

	"exusiai.dev/chartengine/internal/model"
	"exusiai.dev/chartengine/internal/pkg/pgerr"
	"exusiai.dev/chartengine/internal/util/chartverifs"
)

type Validation struct {
	Verifiers *chartverifs.ChartVerifiers
}

func NewValidation(verifiers *chartverifs.ChartVerifiers) *Validation {
	return &Validation{
		Verifiers: verifiers,
	}
}

// ValidateConfiguration returns nil when config is accepted, or the first rule
// it breaks.
func (s *Validation) ValidateConfiguration(ctx context.Context, config *model.ChartConfiguration) *chartverifs.Violation {
	return s.Verifiers.Verify(ctx, config)
}

func (s *Validation) ValidateConfigurations(ctx context.Context, configs []*model.ChartConfiguration) chartverifs.Violations {
	return s.Verifiers.VerifyAll(ctx, configs)
}

type ViolationEntry struct {
	Index   int    `json:"index"`
	ChartID string `json:"chartId"`
	*chartverifs.Violation
}

// Check validates configs and folds every violation into a single
// invalid-configuration error, or returns nil when all are accepted.
func (s *Validation) Check(ctx context.Context, configs []*model.ChartConfiguration) error {
	violations := s.ValidateConfigurations(ctx, configs)
	if len(violations) == 0 {
		return nil
	}

	entries := lo.FilterMap(configs, func(config *model.ChartConfiguration, i int) (ViolationEntry, bool) {
		violation, ok := violations[i]
		if !ok {
			return ViolationEntry{}, false
		}
		entry := ViolationEntry{Index: i, Violation: violation}
		if config != nil {
			entry.ChartID = config.ChartID
		}
		return entry, true
	})

	return pgerr.NewInvalidViolations(entries)
}

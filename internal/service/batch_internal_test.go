package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/chartengine/internal/model"
)

func TestCalculateContainedRecoversPanic(t *testing.T) {
	// without a calculator every chart calculation panics
	s := &Batch{}
	config := &model.ChartConfiguration{ChartID: "gender", Type: model.ChartTypeKPI, Active: true}

	result, err := s.calculateContained(context.Background(), config, NamedRecord{Name: "night1"}, BatchRequest{})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "chart calculation panicked")

	_, hasStack := err.(interface{ StackTrace() errors.StackTrace })
	assert.True(t, hasStack, "recovered panic should carry a stack trace")
}

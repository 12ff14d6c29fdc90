package appconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParameterMapDecode(t *testing.T) {
	var m ParameterMap
	assert.NoError(t, m.Decode("price=12.5, seats = 100,,"))
	assert.Equal(t, ParameterMap{"price": 12.5, "seats": 100}, m)

	assert.NoError(t, m.Decode(""))
	assert.Empty(t, m)

	assert.Error(t, m.Decode("price"))
	assert.Error(t, m.Decode("price=cheap"))
}

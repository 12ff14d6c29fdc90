package chartio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"exusiai.dev/chartengine/internal/model"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("msgpack")
	require.NoError(t, err)
	assert.Equal(t, FormatMsgpack, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &model.TotalResult{Label: "Total", Value: model.NA, FormattedValue: "NA"}, FormatJSON))

	assert.JSONEq(t, `{"label":"Total","value":"NA","formattedValue":"NA"}`, buf.String())
}

func TestEncodeMsgpackUsesJSONNames(t *testing.T) {
	b, err := Encode(&model.TotalResult{Label: "Total", Value: model.Number(1000), FormattedValue: "€1,000"}, FormatMsgpack)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, msgpack.Unmarshal(b, &decoded))
	assert.Equal(t, "Total", decoded["label"])
	assert.Equal(t, "€1,000", decoded["formattedValue"])
	assert.EqualValues(t, 1000, decoded["value"])
}

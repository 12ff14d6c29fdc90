package chartio

import (
	"bytes"
	"io"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

var ErrUnknownFormat = errors.New("unknown output format")

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatMsgpack:
		return Format(s), nil
	default:
		return "", errors.Wrap(ErrUnknownFormat, s)
	}
}

// Encode renders v in the given format. msgpack output uses the json field
// names so both formats carry the same keys.
func Encode(v any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode json")
		}
		return append(b, '\n'), nil
	case FormatMsgpack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(v); err != nil {
			return nil, errors.Wrap(err, "failed to encode msgpack")
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.Wrap(ErrUnknownFormat, string(format))
	}
}

func Write(w io.Writer, v any, format Format) error {
	b, err := Encode(v, format)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

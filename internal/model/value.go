package model

import (
	"math"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

const NALiteral = "NA"

var ErrInvalidValue = errors.New("value must be a number or \"NA\"")

// Value is either a finite number or NA. The zero value is NA.
type Value struct {
	n  float64
	ok bool
}

var NA = Value{}

// Number wraps f. Non-finite input collapses to NA so that NaN and Inf never
// travel further than the place they were produced.
func Number(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NA
	}
	return Value{n: f, ok: true}
}

func (v Value) IsNA() bool {
	return !v.ok
}

// Float returns the number and whether it is available.
func (v Value) Float() (float64, bool) {
	return v.n, v.ok
}

// OrZero returns the number, or 0 for NA.
func (v Value) OrZero() float64 {
	if !v.ok {
		return 0
	}
	return v.n
}

// IsVisible reports whether v carries a usable, non-zero magnitude.
func (v Value) IsVisible() bool {
	return v.ok && v.n != 0
}

func (v Value) String() string {
	if !v.ok {
		return NALiteral
	}
	return strconv.FormatFloat(v.n, 'f', -1, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte(`"` + NALiteral + `"`), nil
	}
	return []byte(strconv.FormatFloat(v.n, 'f', -1, 64)), nil
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch r := raw.(type) {
	case float64:
		*v = Number(r)
	case string:
		if r != NALiteral {
			return errors.Wrap(ErrInvalidValue, r)
		}
		*v = NA
	case nil:
		*v = NA
	default:
		return ErrInvalidValue
	}
	return nil
}

var (
	_ msgpack.CustomEncoder = (*Value)(nil)
	_ msgpack.CustomDecoder = (*Value)(nil)
)

// EncodeMsgpack keeps msgpack output aligned with the JSON shape.
func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	if !v.ok {
		return enc.EncodeString(NALiteral)
	}
	return enc.EncodeFloat64(v.n)
}

func (v *Value) DecodeMsgpack(dec *msgpack.Decoder) error {
	raw, err := dec.DecodeInterface()
	if err != nil {
		return err
	}
	switch r := raw.(type) {
	case string:
		if r != NALiteral {
			return errors.Wrap(ErrInvalidValue, r)
		}
		*v = NA
	case nil:
		*v = NA
	default:
		f, ok := toFloat(r)
		if !ok {
			return ErrInvalidValue
		}
		*v = Number(f)
	}
	return nil
}

package numfmt

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/chartengine/internal/model"
)

const (
	DefaultCurrencyPrefix = "€"

	// MaxDecimals is the precision used for values that are not rounded.
	MaxDecimals = 2
)

var ErrInvalidLocale = errors.New("invalid locale")

// Formatter renders numbers for display. It is immutable after construction
// and safe for concurrent use.
type Formatter struct {
	printer        *message.Printer
	currencyPrefix string
}

func New(tag language.Tag, currencyPrefix string) *Formatter {
	return &Formatter{
		printer:        message.NewPrinter(tag),
		currencyPrefix: currencyPrefix,
	}
}

// NewForLocale parses locale as a BCP 47 tag.
func NewForLocale(locale string, currencyPrefix string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidLocale, err.Error())
	}
	return New(tag, currencyPrefix), nil
}

// Default formats with English separators and the euro prefix.
func Default() *Formatter {
	return New(language.English, DefaultCurrencyPrefix)
}

// FromLegacyHint synthesizes the formatting block equivalent to a legacy
// element type hint.
func FromLegacyHint(hint model.LegacyHint, currencyPrefix string) model.Formatting {
	switch hint {
	case model.LegacyHintCurrency:
		return model.Formatting{Rounded: false, Prefix: null.StringFrom(currencyPrefix)}
	case model.LegacyHintPercentage:
		return model.Formatting{Rounded: false, Suffix: null.StringFrom(model.PercentSuffix)}
	default:
		return model.Formatting{Rounded: true}
	}
}

// Effective returns the canonical formatting for el: its own block when
// present, otherwise the block derived from its legacy hint.
func (f *Formatter) Effective(el model.ChartElement) model.Formatting {
	if el.Formatting != nil {
		return *el.Formatting
	}
	return FromLegacyHint(el.Type, f.currencyPrefix)
}

// Number renders v with thousands separators, either as an integer or with at
// most MaxDecimals decimals.
func (f *Formatter) Number(v float64, rounded bool) string {
	decimals := MaxDecimals
	if rounded {
		decimals = 0
	}
	r := RoundTo(v, decimals)
	if r == 0 {
		// avoids rendering "-0"
		r = 0
	}
	return f.printer.Sprint(number.Decimal(r, number.MaxFractionDigits(decimals)))
}

// Format renders v decorated with fm's prefix and suffix. NA renders as "NA".
func (f *Formatter) Format(v model.Value, fm model.Formatting) string {
	n, ok := v.Float()
	if !ok {
		return model.NALiteral
	}
	return fm.Prefix.String + f.Number(n, fm.Rounded) + fm.Suffix.String
}

// Percentages converts values into shares of their non-NA total. NA stays
// NA; a zero total turns every available value into 0.
func Percentages(values []model.Value) []model.Value {
	total := Sum(values)
	out := make([]model.Value, len(values))
	for i, v := range values {
		n, ok := v.Float()
		switch {
		case !ok:
			out[i] = model.NA
		case total == 0:
			out[i] = model.Number(0)
		default:
			out[i] = model.Number(n / total * 100)
		}
	}
	return out
}

// Sum adds every available value.
func Sum(values []model.Value) float64 {
	var total float64
	for _, v := range values {
		total += v.OrZero()
	}
	return total
}

// RoundTo rounds half away from zero to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	pow := math.Pow10(decimals)
	return math.Round(v*pow) / pow
}

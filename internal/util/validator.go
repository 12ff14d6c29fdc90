package util

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"gopkg.in/guregu/null.v3"
)

// MaxAffixLength is the longest prefix or suffix a formatting block may carry.
const MaxAffixLength = 10

func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("affix", affix)
	validate.RegisterCustomTypeFunc(nullStringValuer, null.String{})
	validate.RegisterTagNameFunc(jsonTagName)

	return validate
}

// affix accepts short decorations without digits or line breaks, so that a
// prefix or suffix can never be mistaken for part of the number.
func affix(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if utf8.RuneCountInString(val) > MaxAffixLength {
		return false
	}
	return strings.IndexFunc(val, func(r rune) bool {
		return unicode.IsDigit(r) || unicode.IsControl(r)
	}) < 0
}

func nullStringValuer(field reflect.Value) interface{} {
	if valuer, ok := field.Interface().(null.String); ok {
		return valuer.String
	}

	return nil
}

func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

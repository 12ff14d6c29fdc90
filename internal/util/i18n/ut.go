package i18n

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
)

// UT only carries English: rejection messages are read by administrators in
// logs and CLI output.
var UT = ut.New(en.New(), en.New())

package chartverifs

import (
	"context"
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/rs/zerolog/log"

	"exusiai.dev/chartengine/internal/model"
	"exusiai.dev/chartengine/internal/util"
	"exusiai.dev/chartengine/internal/util/i18n"
)

const RuleField = "field"

// StructVerifier checks field-level constraints declared with validate tags
// on the configuration model.
type StructVerifier struct {
	validate   *validator.Validate
	translator ut.Translator
}

// ensure StructVerifier conforms to Verifier
var _ Verifier = (*StructVerifier)(nil)

func NewStructVerifier() *StructVerifier {
	validate := util.NewValidator()
	translator, _ := i18n.UT.GetTranslator("en")

	if err := enTranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		log.Warn().Err(err).Str("locale", "en").Msg("could not register translation")
	}

	err := validate.RegisterTranslation("affix", translator, func(ut ut.Translator) error {
		return ut.Add("affix", fmt.Sprintf("{0} must be at most %d characters without digits or line breaks", util.MaxAffixLength), true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("affix", fe.Field())
		return t
	})
	if err != nil {
		log.Warn().Err(err).Str("locale", "en").Msg("could not register translation for function affix")
	}

	return &StructVerifier{
		validate:   validate,
		translator: translator,
	}
}

func (v *StructVerifier) Name() string {
	return "struct"
}

func (v *StructVerifier) Verify(ctx context.Context, config *model.ChartConfiguration) *Rejection {
	err := v.validate.StructCtx(ctx, config)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return reject(RuleField, "invalid configuration: %s", err)
	}

	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		messages = append(messages, fmt.Sprintf("%s: %s", trimNamespace(fe.Namespace()), fe.Translate(v.translator)))
	}

	return reject(RuleField, "%s", strings.Join(messages, ", "))
}

// trimNamespace drops the root struct name from a validator namespace.
func trimNamespace(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

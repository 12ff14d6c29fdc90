package infra

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"exusiai.dev/chartengine/internal/app/appconfig"
	"exusiai.dev/chartengine/internal/pkg/arith"
	"exusiai.dev/chartengine/internal/pkg/formula"
	"exusiai.dev/chartengine/internal/pkg/numfmt"
	"exusiai.dev/chartengine/internal/util/chartio"
)

// Resolver builds the token resolver with the built-in aliases plus the ones
// declared in AliasesFile. Declared aliases replace built-ins of the same name.
func Resolver(conf *appconfig.Config) (*formula.Resolver, error) {
	aliases := append([]formula.Alias(nil), formula.DefaultAliases...)

	if conf.AliasesFile != "" {
		extra, err := chartio.LoadAliases(conf.AliasesFile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load aliases")
		}
		aliases = append(aliases, extra...)

		log.Info().
			Str("evt.name", "infra.resolver.aliases_loaded").
			Str("file", conf.AliasesFile).
			Int("count", len(extra)).
			Msg("derived field aliases loaded")
	}

	return formula.NewResolver(aliases), nil
}

func Evaluator(conf *appconfig.Config) *arith.Evaluator {
	return arith.NewEvaluator(conf.ProgramCacheTTL)
}

func Formatter(conf *appconfig.Config) (*numfmt.Formatter, error) {
	return numfmt.NewForLocale(conf.Locale, conf.CurrencyPrefix)
}

package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"exusiai.dev/chartengine/internal/app"
	"exusiai.dev/chartengine/internal/app/appcontext"
)

func Start(env appcontext.Env, module fx.Option) {
	if err := app.New(appcontext.Declare(env), module).Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to start app")
	}
}

// DepsFn defers building the dependency graph until a command actually runs,
// so that `--help` never parses configuration.
func DepsFn[T any](env appcontext.Env) func() T {
	return func() T {
		var deps T
		Start(env, fx.Populate(&deps))
		return deps
	}
}

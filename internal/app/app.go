package app

import (
	"time"

	"go.uber.org/fx"

	"exusiai.dev/chartengine/internal/app/appconfig"
	"exusiai.dev/chartengine/internal/app/appcontext"
	"exusiai.dev/chartengine/internal/infra"
	"exusiai.dev/chartengine/internal/pkg/logger"
	"exusiai.dev/chartengine/internal/service"
	"exusiai.dev/chartengine/internal/util/chartverifs"
	"exusiai.dev/chartengine/internal/workers/calcwkr"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),

		// Verifiers
		chartverifs.Module(),

		// Services
		service.Module(),

		// Workers
		calcwkr.Module(),

		// Global Singleton Inits
		fx.Invoke(infra.SentryInit),

		// fx Extra Options
		fx.StartTimeout(1 * time.Second),
		fx.StopTimeout(5 * time.Second),
	}

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}

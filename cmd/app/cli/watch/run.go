package watch

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"exusiai.dev/chartengine/cmd/app/cli/clinput"
	"exusiai.dev/chartengine/internal/service"
)

func run(c *cli.Context, deps CommandDeps) error {
	in, err := clinput.FromContext(c)
	if err != nil {
		return clinput.Exit(err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("evt.name", "cli.watch.started").
		Str("config", in.ConfigPath).
		Strs("stats", in.StatsPaths).
		Msg("watching inputs")

	return clinput.Exit(deps.Worker.Run(ctx, in.Load, func(result *service.BatchResult) error {
		return in.Write(result)
	}))
}

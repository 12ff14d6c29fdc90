package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	cliapp "exusiai.dev/chartengine/cmd/app/cli"
	"exusiai.dev/chartengine/cmd/app/cli/calculate"
	"exusiai.dev/chartengine/cmd/app/cli/validate"
	"exusiai.dev/chartengine/cmd/app/cli/watch"
	"exusiai.dev/chartengine/internal/app/appcontext"
	"exusiai.dev/chartengine/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "chartengine",
		Usage:       "validate chart configurations and calculate chart results",
		Description: "Turns flat stats records into ready-to-render chart results: KPI numbers, pie segments, bar series, combined value displays and text or image passthroughs.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			validate.Command(cliapp.DepsFn[validate.CommandDeps](appcontext.EnvCLI)),
			calculate.Command(cliapp.DepsFn[calculate.CommandDeps](appcontext.EnvCLI)),
			watch.Command(cliapp.DepsFn[watch.CommandDeps](appcontext.EnvWorker)),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}

package watch

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"exusiai.dev/chartengine/cmd/app/cli/clinput"
	"exusiai.dev/chartengine/internal/workers/calcwkr"
)

type CommandDeps struct {
	fx.In

	Worker *calcwkr.Worker
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "watch",
		Usage:       "recalculate chart results periodically",
		Description: "re-reads the inputs every CHARTENGINE_WORKER_INTERVAL and rewrites the output whenever the results change",
		Flags:       clinput.CalculationFlags(),
		Action: func(c *cli.Context) error {
			return run(c, depsFn())
		},
	}
}

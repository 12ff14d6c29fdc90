package calculate

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"exusiai.dev/chartengine/cmd/app/cli/clinput"
	"exusiai.dev/chartengine/internal/service"
)

type CommandDeps struct {
	fx.In

	BatchService *service.Batch
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "calculate",
		Usage:       "calculate chart results for one or more stats records",
		Description: "calculates every active, accepted chart of the configuration file against each stats record and writes the results",
		Flags:       clinput.CalculationFlags(),
		Action: func(c *cli.Context) error {
			return run(c, depsFn())
		},
	}
}

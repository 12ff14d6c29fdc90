package validate

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"exusiai.dev/chartengine/cmd/app/cli/clinput"
	"exusiai.dev/chartengine/internal/service"
)

type CommandDeps struct {
	fx.In

	ValidationService *service.Validation
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "validate",
		Usage:       "validate a chart configuration file",
		Description: "checks every chart against the rules of its type and reports the first broken rule of each rejected chart",
		Flags: []cli.Flag{
			clinput.ConfigFlag(),
		},
		Action: func(c *cli.Context) error {
			return run(c, depsFn())
		},
	}
}

package validate

import (
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"exusiai.dev/chartengine/cmd/app/cli/clinput"
	"exusiai.dev/chartengine/internal/pkg/pgerr"
	"exusiai.dev/chartengine/internal/util/chartio"
)

func run(c *cli.Context, deps CommandDeps) error {
	in := &clinput.Inputs{
		ConfigPath: c.String(clinput.FlagConfig),
	}

	configs, err := in.LoadConfigurations()
	if err != nil {
		return clinput.Exit(err)
	}

	if err := deps.ValidationService.Check(c.Context, configs); err != nil {
		if e, ok := err.(*pgerr.ChartError); ok {
			writeViolations(os.Stdout, e)
		}
		return clinput.Exit(err)
	}

	log.Info().
		Str("evt.name", "cli.validate.accepted").
		Int("charts", len(configs)).
		Str("path", in.ConfigPath).
		Msg("all chart configurations accepted")

	return nil
}

func writeViolations(w io.Writer, e *pgerr.ChartError) {
	if err := chartio.Write(w, e, chartio.FormatJSON); err != nil {
		log.Warn().
			Str("evt.name", "cli.validate.write_failed").
			Err(err).
			Msg("failed to write violations")
	}
}

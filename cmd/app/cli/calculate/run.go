package calculate

import (
	"github.com/pkg/errors"
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

	req, err := in.Load(c.Context)
	if err != nil {
		return clinput.Exit(err)
	}

	result, err := deps.BatchService.Run(c.Context, req)
	if err != nil && !errors.Is(err, service.ErrBatchTimeout) {
		return clinput.Exit(errors.Wrap(err, "failed to calculate charts"))
	}
	if err != nil {
		log.Warn().
			Err(err).
			Str("runId", result.RunID).
			Msg("writing partial results")
	}

	if len(result.Rejected) > 0 {
		log.Warn().
			Str("evt.name", "cli.calculate.rejected").
			Int("rejected", len(result.Rejected)).
			Msg("some chart configurations were rejected and skipped")
	}

	return clinput.Exit(in.Write(result))
}

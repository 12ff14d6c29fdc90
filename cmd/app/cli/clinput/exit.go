package clinput

import (
	"io/fs"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"exusiai.dev/chartengine/internal/pkg/pgerr"
)

// Exit turns err into a cli exit error carrying the exit code of its
// pgerr.ChartError. Errors that are not a ChartError are reported as
// internal errors.
func Exit(err error) error {
	if err == nil {
		return nil
	}

	var e *pgerr.ChartError
	if !errors.As(err, &e) {
		log.Error().
			Str("evt.name", "cli.internal_error").
			Err(err).
			Msg("command failed")
		e = pgerr.ErrInternalError.Msg("%s", err.Error())
	}

	return cli.Exit(e.Error(), e.ExitCode)
}

func inputError(path string, err error) *pgerr.ChartError {
	if errors.Is(err, fs.ErrNotExist) {
		return pgerr.ErrNotFound.Msg("%s: %s", path, err.Error())
	}
	return pgerr.ErrInvalidInput.Msg("%s: %s", path, err.Error())
}

package calcwkr

import (
	"time"

	"exusiai.dev/chartengine/internal/pkg/observability"
)

func observeCalcDuration(f func() error) error {
	start := time.Now()
	defer func() {
		dur := time.Since(start)
		observability.WorkerCalcDuration.Set(dur.Seconds())
	}()
	return f()
}

package repo

import "time"

// Every Postgres query runs under this deadline; a timeout surfaces like any
// other infrastructure failure.
var queryTimeout = 3 * time.Second

// SetQueryTimeout overrides the per-query deadline from configuration.
// Non-positive values keep the default.
func SetQueryTimeout(d time.Duration) {
	if d > 0 {
		queryTimeout = d
	}
}

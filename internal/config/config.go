package config

import "time"

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultStaleAfter is how long a clocked-in user may go without a new
	// event before the stale scan flags a forgotten clock-out.
	DefaultStaleAfter = 12 * time.Hour
)

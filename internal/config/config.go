package config

import "time"

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultClaimWindow is the informational deadline applied to a claim
	// when the task itself carries no deadline. The check-deadlines
	// command releases claims that outlive it.
	DefaultClaimWindow = 24 * time.Hour
)

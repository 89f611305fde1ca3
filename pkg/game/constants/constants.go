package constants

import "time"

const (
	// HighScoreKey is the durable key holding the cross-session high score
	HighScoreKey string = "highScore"
	// SaveGameKey is the durable key holding the last saved session snapshot
	SaveGameKey string = "lastGame"
	// PreviousGameKey is the durable key holding the "resumable game exists" flag
	PreviousGameKey string = "previousGameExists"

	// MismatchDelay is how long a mismatched pair stays face-up
	MismatchDelay time.Duration = 1 * time.Second

	// DefaultRows is the grid height used when none is requested
	DefaultRows int = 4
	// DefaultColumns is the grid width used when none is requested
	DefaultColumns int = 4
	// DefaultCatalogSize is the number of tokens in the built-in catalogue
	DefaultCatalogSize int = 18
)

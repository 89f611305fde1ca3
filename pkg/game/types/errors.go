package types

import "errors"

var (
	// ErrInvalidConfiguration is returned for odd card counts, empty token pools
	// and non-positive grid dimensions.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrPersistenceUnavailable is returned when no repository is configured.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	// ErrNoActiveGame is returned by operations that need an active session.
	ErrNoActiveGame = errors.New("no active game")
	// ErrUnknownCard is returned when a card ID does not belong to the current session.
	ErrUnknownCard = errors.New("unknown card")
	// ErrCardNotSelectable is returned for face-up, matched or deactivated cards.
	ErrCardNotSelectable = errors.New("card is not selectable")
)

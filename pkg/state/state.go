package state

import (
	"context"

	gametypes "github.com/cbodonnell/flipmatch/pkg/game/types"
)

// View is the read model the game loop publishes after each command.
type View struct {
	Status gametypes.Status `json:"status"`
	Cards  []gametypes.Card `json:"cards"`
}

// Copy returns a deep copy of the view.
func (v *View) Copy() *View {
	if v == nil {
		return nil
	}
	return &View{
		Status: v.Status,
		Cards:  append([]gametypes.Card(nil), v.Cards...),
	}
}

// StateManager provides shared access to the published view.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the current view.
	Get(ctx context.Context) (*View, error)
	// Set sets the current view.
	Set(ctx context.Context, view *View) error
}

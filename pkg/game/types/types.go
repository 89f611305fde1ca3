package types

import (
	"fmt"

	"github.com/google/uuid"
)

// Token is a distinct pairable identity a card can display.
type Token struct {
	ID        int    `json:"id" yaml:"id"`
	VisualKey string `json:"visualKey" yaml:"visualKey"`
}

func (t Token) String() string {
	return fmt.Sprintf("%d(%s)", t.ID, t.VisualKey)
}

// Outcome is the result of resolving a pair of selections.
type Outcome uint8

const (
	OutcomeMismatched Outcome = iota
	OutcomeMatched
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeMismatched:
		return "mismatched"
	default:
		return "unknown"
	}
}

// Card is a session-scoped card instance.
// ID is the card's position in the grid and is stable across save/restore.
// SessionID identifies the session that created the card.
type Card struct {
	ID           int       `json:"id"`
	SessionID    uuid.UUID `json:"sessionID"`
	Token        Token     `json:"token"`
	FaceUp       bool      `json:"faceUp"`
	Matched      bool      `json:"matched"`
	Interactable bool      `json:"interactable"`
}

// NewCard returns a face-down, interactable card.
func NewCard(id int, sessionID uuid.UUID, token Token) *Card {
	return &Card{
		ID:           id,
		SessionID:    sessionID,
		Token:        token,
		Interactable: true,
	}
}

// Selectable reports whether the card may be submitted for evaluation.
func (c *Card) Selectable() bool {
	return !c.FaceUp && c.Interactable && !c.Matched
}

func (c *Card) Show() {
	c.FaceUp = true
}

func (c *Card) Hide() {
	c.FaceUp = false
}

// MarkMatched pins the card face-up and takes it out of play.
func (c *Card) MarkMatched() {
	c.Matched = true
	c.FaceUp = true
	c.Interactable = false
}

// Status summarizes the session for readers outside the event loop.
type Status struct {
	Active       bool   `json:"active"`
	Paused       bool   `json:"paused"`
	SessionID    string `json:"sessionID,omitempty"`
	Rows         int    `json:"rows"`
	Columns      int    `json:"columns"`
	Score        int    `json:"score"`
	Streak       int    `json:"streak"`
	HighScore    int    `json:"highScore"`
	MatchedCount int    `json:"matchedCount"`
	TotalCards   int    `json:"totalCards"`
}

package ports

import (
	"context"
	"errors"

	"fivedraw/internal/domain"
)

var (
	// ErrDeckUnavailable indicates the remote deck resource could not be
	// reached or returned an unusable response.
	ErrDeckUnavailable = errors.New("deck resource unavailable")
	// ErrDeckExhausted indicates a draw requested more cards than remain.
	// No cards are consumed.
	ErrDeckExhausted = errors.New("deck exhausted")
)

// DeckPort abstracts the remote shuffled-deck provider the session draws from.
// The deck identified by a deck id is shared by every player in one game;
// draws consume cards in the deck's shuffle order, so any remaining count is
// a snapshot that may be stale by the time a later draw executes.
type DeckPort interface {
	// NewDeck acquires a fresh, shuffled 52-card deck and returns its id.
	NewDeck(ctx context.Context) (string, error)

	// Draw takes the next count cards from the deck and reports how many
	// remain afterwards.
	Draw(ctx context.Context, deckID string, count int) ([]domain.Card, int, error)

	// Remaining reports the number of undrawn cards without drawing.
	Remaining(ctx context.Context, deckID string) (int, error)
}

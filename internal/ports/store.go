package ports

import (
	"context"
	"fmt"

	"fivedraw/internal/domain"
)

// PersistenceError wraps a failure from the game store collaborator. The
// session surfaces it verbatim to the caller; it never retries or compensates.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// GameStorePort persists game and player documents, keyed the way the
// rendering layer reads them: games/{gameID} and games/{gameID}/players/{playerID}.
// Writes are whole-document upserts; the per-game match loop is the single
// writer, which is what makes last-write-wins safe here.
type GameStorePort interface {
	WriteGame(ctx context.Context, gameID string, game *domain.Game) error
	ReadGame(ctx context.Context, gameID string) (*domain.Game, error)
	DeleteGame(ctx context.Context, gameID string) error

	WritePlayer(ctx context.Context, gameID string, player *domain.Player) error
	DeletePlayer(ctx context.Context, gameID, playerID string) error
}

package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fivedraw/internal/domain"
	"fivedraw/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	gameCollection   = "games"
	playerCollection = "game_players"
)

// NakamaGameStore implements ports.GameStorePort over Nakama storage.
// Game documents are keyed by game id; player documents by the hierarchical
// "gameID/playerID" key. Objects are system-owned and publicly readable so
// render-only clients can observe them.
type NakamaGameStore struct {
	nk runtime.NakamaModule
}

var _ ports.GameStorePort = (*NakamaGameStore)(nil)

// NewNakamaGameStore creates a game store over the Nakama storage engine.
func NewNakamaGameStore(nk runtime.NakamaModule) *NakamaGameStore {
	return &NakamaGameStore{nk: nk}
}

func (s *NakamaGameStore) WriteGame(ctx context.Context, gameID string, game *domain.Game) error {
	return s.write(ctx, gameCollection, gameID, game)
}

func (s *NakamaGameStore) ReadGame(ctx context.Context, gameID string) (*domain.Game, error) {
	objects, err := s.nk.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: gameCollection,
		Key:        gameID,
	}})
	if err != nil {
		return nil, &ports.PersistenceError{Op: "read " + gameCollection + "/" + gameID, Err: err}
	}
	if len(objects) == 0 {
		return nil, &ports.PersistenceError{Op: "read " + gameCollection + "/" + gameID, Err: errors.New("not found")}
	}

	var game domain.Game
	if err := json.Unmarshal([]byte(objects[0].Value), &game); err != nil {
		return nil, &ports.PersistenceError{Op: "decode " + gameCollection + "/" + gameID, Err: err}
	}
	return &game, nil
}

func (s *NakamaGameStore) DeleteGame(ctx context.Context, gameID string) error {
	return s.delete(ctx, gameCollection, gameID)
}

func (s *NakamaGameStore) WritePlayer(ctx context.Context, gameID string, player *domain.Player) error {
	return s.write(ctx, playerCollection, playerKey(gameID, player.ID), player)
}

func (s *NakamaGameStore) DeletePlayer(ctx context.Context, gameID, playerID string) error {
	return s.delete(ctx, playerCollection, playerKey(gameID, playerID))
}

func (s *NakamaGameStore) write(ctx context.Context, collection, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &ports.PersistenceError{Op: "encode " + collection + "/" + key, Err: err}
	}

	_, err = s.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      collection,
		Key:             key,
		Value:           string(data),
		PermissionRead:  2, // public read for render-only observers
		PermissionWrite: 0, // runtime-only writes
	}})
	if err != nil {
		return &ports.PersistenceError{Op: "write " + collection + "/" + key, Err: err}
	}
	return nil
}

func (s *NakamaGameStore) delete(ctx context.Context, collection, key string) error {
	err := s.nk.StorageDelete(ctx, []*runtime.StorageDelete{{
		Collection: collection,
		Key:        key,
	}})
	if err != nil {
		return &ports.PersistenceError{Op: "delete " + collection + "/" + key, Err: err}
	}
	return nil
}

func playerKey(gameID, playerID string) string {
	return fmt.Sprintf("%s/%s", gameID, playerID)
}

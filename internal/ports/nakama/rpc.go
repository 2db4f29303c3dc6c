package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"fivedraw/internal/app"
	"fivedraw/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// CreateGameRequest names the game to create. The deck is acquired here, at
// creation time, so a game that exists always has a deck behind it.
type CreateGameRequest struct {
	Name string `json:"name"`
}

type CreateGameResponse struct {
	MatchID string `json:"match_id"`
	DeckID  string `json:"deck_id"`
}

// FindGamesResponse lists games still accepting players.
type FindGamesResponse struct {
	Games []GameListing `json:"games"`
}

type GameListing struct {
	MatchID   string `json:"match_id"`
	Name      string `json:"name"`
	OpenSeats int    `json:"open_seats"`
	Size      int    `json:"size"`
}

type GameStatusRequest struct {
	GameID string `json:"game_id"`
}

// RegisterRPCs registers the game session RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer, deck ports.DeckPort) error {
	if err := initializer.RegisterRpc(RpcCreateGame, makeRpcCreateGame(deck)); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcFindGames, rpcFindGames); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcGameStatus, rpcGameStatus)
}

func makeRpcCreateGame(deck ports.DeckPort) func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		userId, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

		var request CreateGameRequest
		if payload != "" {
			if err := json.Unmarshal([]byte(payload), &request); err != nil {
				return "", runtime.NewError("invalid request payload", 3) // INVALID_ARGUMENT
			}
		}
		if request.Name == "" {
			return "", runtime.NewError("game name is required", 3)
		}

		deckID, err := deck.NewDeck(ctx)
		if err != nil {
			logger.Error("RpcCreateGame [User:%s]: Failed to acquire deck: %v", userId, err)
			return "", runtime.NewError("deck resource unavailable", 14) // UNAVAILABLE
		}

		matchID, err := nk.MatchCreate(ctx, MatchNameFiveDraw, map[string]interface{}{
			"name":    request.Name,
			"deck_id": deckID,
		})
		if err != nil {
			logger.Error("RpcCreateGame [User:%s]: Failed to create match: %v", userId, err)
			return "", runtime.NewError("failed to create game", 13) // INTERNAL
		}

		logger.Info("RpcCreateGame [User:%s]: Created game %q as match %s", userId, request.Name, matchID)

		b, _ := json.Marshal(CreateGameResponse{MatchID: matchID, DeckID: deckID})
		return string(b), nil
	}
}

func rpcFindGames(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	// Filter on the JSON label: our game, still waiting, with a free seat.
	query := "+label.game:fivedraw +label.phase:waiting +label.open:>=1"

	limit := 20
	authoritative := true
	minSize := 0
	maxSize := app.MaxPlayers

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("RpcFindGames: Failed to list matches: %v", err)
		return "", runtime.NewError("failed to list games", 13)
	}

	response := FindGamesResponse{Games: []GameListing{}}
	for _, m := range matches {
		var label matchLabel
		if err := json.Unmarshal([]byte(m.Label.GetValue()), &label); err != nil {
			logger.Warn("RpcFindGames: Skipping match %s with bad label: %v", m.MatchId, err)
			continue
		}
		response.Games = append(response.Games, GameListing{
			MatchID:   m.MatchId,
			Name:      label.Name,
			OpenSeats: label.Open,
			Size:      int(m.Size),
		})
	}

	b, _ := json.Marshal(response)
	return string(b), nil
}

// rpcGameStatus returns the persisted game document so render-only callers
// can observe a session without attaching to the match.
func rpcGameStatus(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var request GameStatusRequest
	if err := json.Unmarshal([]byte(payload), &request); err != nil || request.GameID == "" {
		return "", runtime.NewError("game_id is required", 3)
	}

	game, err := NewNakamaGameStore(nk).ReadGame(ctx, request.GameID)
	if err != nil {
		logger.Warn("RpcGameStatus: Failed to read game %s: %v", request.GameID, err)
		return "", runtime.NewError(fmt.Sprintf("game %s not found", request.GameID), 5) // NOT_FOUND
	}

	b, err := json.Marshal(game)
	if err != nil {
		return "", runtime.NewError("failed to encode game", 13)
	}
	return string(b), nil
}

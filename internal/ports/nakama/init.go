package nakama

import (
	"context"
	"database/sql"
	"time"

	"fivedraw/internal/config"
	"fivedraw/internal/deck"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and the match handler for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig("data/fivedraw_config.json"); err != nil {
		logger.Warn("InitModule: game config not loaded, using defaults: %v", err)
	}
	cfg := config.GetGameConfig()

	baseURL := cfg.DeckBaseURL
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if v, ok := env["fivedraw_deck_base_url"]; ok && v != "" {
			baseURL = v
		}
	}

	deckClient := deck.NewClient(baseURL, time.Duration(cfg.DeckTimeoutSeconds)*time.Second)

	if err := RegisterRPCs(initializer, deckClient); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameFiveDraw, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return &matchHandler{deck: deckClient}, nil
	}); err != nil {
		return err
	}

	logger.Info("FiveDraw Go module loaded.")
	return nil
}

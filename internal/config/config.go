package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig holds tunables for the session engine and its collaborators.
type GameConfig struct {
	// DeckBaseURL overrides the deck resource endpoint (tests, self-hosted mirrors).
	DeckBaseURL string `json:"deck_base_url"`
	// DeckTimeoutSeconds bounds every call to the deck resource.
	DeckTimeoutSeconds int `json:"deck_timeout_seconds"`

	BotsEnabled bool `json:"bots_enabled"`
	// BotMinDelaySeconds / BotMaxDelaySeconds bound how long a bot waits
	// before acting on its turn.
	BotMinDelaySeconds int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds int `json:"bot_max_delay_seconds"`
	// BotAutoFillDelaySeconds is how long a solo human waits before the
	// lobby is topped up with a bot opponent.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or defaults when no
// config file was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return GameConfig{
			DeckTimeoutSeconds:      10,
			BotMinDelaySeconds:      1,
			BotMaxDelaySeconds:      3,
			BotAutoFillDelaySeconds: 5,
		}
	}
	return *cfg
}

package nakama

import "fivedraw/internal/domain"

// Wire payloads are plain JSON keyed by the op codes in constants.go.

// SwapCardsRequest asks to replace the cards at the given hand positions.
// An empty index list is a legal pass-style swap.
type SwapCardsRequest struct {
	Indices []int `json:"indices"`
}

// RosterPlayer is the public view of one attached player. Hands are never
// included here; they travel only in targeted HandDealtEvent messages.
type RosterPlayer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	HasSwapped bool   `json:"has_swapped"`
	CardCount  int    `json:"card_count"`
	Rank       int    `json:"rank,omitempty"`
	RankName   string `json:"rank_name,omitempty"`
}

// RosterSnapshot is the read-only live view broadcast whenever the roster or
// game state changes. Remaining is -1 when the deck resource could not be
// queried.
type RosterSnapshot struct {
	Name      string              `json:"name"`
	Phase     string              `json:"phase"`
	Turn      int                 `json:"turn"`
	Order     []domain.OrderEntry `json:"order,omitempty"`
	Players   []RosterPlayer      `json:"players"`
	Remaining int                 `json:"remaining"`
	Results   *domain.Results     `json:"results,omitempty"`
}

type GameStartedEvent struct {
	Phase string              `json:"phase"`
	Order []domain.OrderEntry `json:"order"`
	Turn  int                 `json:"turn"`
}

type HandDealtEvent struct {
	Hand      []domain.Card `json:"hand"`
	Remaining int           `json:"remaining"`
}

type CardsSwappedEvent struct {
	PlayerID  string `json:"player_id"`
	Count     int    `json:"count"`
	Remaining int    `json:"remaining"`
}

type TurnEndedEvent struct {
	PlayerID string `json:"player_id"`
	Turn     int    `json:"turn"`
	NextID   string `json:"next_id,omitempty"`
}

type GameEndedEvent struct {
	Message  string         `json:"message"`
	Winner   string         `json:"winner"`
	Rankings []RosterPlayer `json:"rankings"`
}

// GameErrorEvent reports a rejected action to the acting player only.
type GameErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// matchLabel is advertised for listing queries (find_games).
type matchLabel struct {
	Game  string `json:"game"`
	Name  string `json:"name"`
	Phase string `json:"phase"`
	Open  int    `json:"open"`
}

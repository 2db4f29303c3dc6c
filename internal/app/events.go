package app

import "fivedraw/internal/domain"

// EventKind identifies emitted session events for dispatch to clients.
type EventKind string

const (
	EventGameStarted  EventKind = "game_started"
	EventHandDealt    EventKind = "hand_dealt"
	EventCardsSwapped EventKind = "cards_swapped"
	EventTurnEnded    EventKind = "turn_ended"
	EventGameEnded    EventKind = "game_ended"
)

// Event is a session event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // player ids; empty means broadcast
}

type GameStartedPayload struct {
	Order []domain.OrderEntry
	Turn  int
}

// HandDealtPayload carries a player's full hand and is always targeted at
// that player only.
type HandDealtPayload struct {
	PlayerID  string
	Hand      []domain.Card
	Remaining int
}

// CardsSwappedPayload announces a completed swap. The replacement cards
// themselves travel in a targeted HandDealt event, not here.
type CardsSwappedPayload struct {
	PlayerID  string
	Count     int
	Remaining int
}

type TurnEndedPayload struct {
	PlayerID string
	Turn     int
	NextID   string // "" when the game ended with this turn
}

type GameEndedPayload struct {
	Results  domain.Results
	Rankings []PlayerRanking
}

// PlayerRanking is one scored player in the end-of-game summary.
type PlayerRanking struct {
	PlayerID string
	Name     string
	Rank     int
	RankName string
}

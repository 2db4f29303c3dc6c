package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fivedraw/internal/domain"
	"fivedraw/internal/ports"
)

var (
	ErrNotWaiting     = errors.New("game is not in the waiting phase")
	ErrNotStarted     = errors.New("game is not in the started phase")
	ErrNotYourTurn    = errors.New("it is not this player's turn")
	ErrAlreadySwapped = errors.New("player has already swapped this game")
	ErrBadSwapIndices = errors.New("swap indices must be unique hand positions")
	ErrHandNotDealt   = errors.New("player holds no dealt hand")
)

// Service contains the five-card-draw session use-cases. Every action is
// dispatched through the per-game match loop, so calls for one game never
// run concurrently; the Service itself holds no locks.
type Service struct {
	deck  ports.DeckPort
	store ports.GameStorePort
}

// NewService constructs a Service over the deck and persistence collaborators.
func NewService(deck ports.DeckPort, store ports.GameStorePort) *Service {
	return &Service{deck: deck, store: store}
}

// StartGame moves a waiting game to started: it snapshots the roster into the
// turn order, flips the phase, then deals HandSize cards to each ordered
// player with one draw per player.
//
// The deal is not atomic across players. A draw or write failure surfaces to
// the caller with the phase already flipped and earlier players already
// holding hands; there is no rollback.
func (s *Service) StartGame(ctx context.Context, gameID string, game *domain.Game, roster *Roster) ([]Event, error) {
	if game.Phase != domain.PhaseWaiting {
		return nil, ErrNotWaiting
	}

	players := roster.InJoinOrder()
	order := make([]domain.OrderEntry, len(players))
	for i, p := range players {
		order[i] = domain.OrderEntry{ID: p.ID, Name: p.Name}
	}

	game.Order = order
	game.Turn = 0
	game.Phase = domain.PhaseStarted

	events := []Event{{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{Order: order, Turn: 0},
	}}

	if err := s.store.WriteGame(ctx, gameID, game); err != nil {
		return events, fmt.Errorf("persisting started game: %w", err)
	}

	for _, p := range players {
		cards, remaining, err := s.deck.Draw(ctx, game.DeckID, domain.HandSize)
		if err != nil {
			return events, fmt.Errorf("dealing to %s: %w", p.ID, err)
		}
		p.Hand = cards

		if err := s.store.WritePlayer(ctx, gameID, p); err != nil {
			return events, fmt.Errorf("persisting hand for %s: %w", p.ID, err)
		}

		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{PlayerID: p.ID, Hand: p.Hand, Remaining: remaining},
			Recipients: []string{p.ID},
		})
	}

	return events, nil
}

// SwapCards replaces the cards at the requested hand positions with freshly
// drawn ones. Each player may swap once per game; an empty index set is a
// legal zero-card draw that still spends the swap.
//
// A failed draw leaves the hand untouched, but cards may or may not have been
// consumed from the deck; retrying is the caller's decision.
func (s *Service) SwapCards(ctx context.Context, gameID string, game *domain.Game, roster *Roster, playerID string, indices []int) ([]Event, error) {
	if game.Phase != domain.PhaseStarted {
		return nil, ErrNotStarted
	}
	player, ok := roster.Get(playerID)
	if !ok {
		return nil, ErrNotAMember
	}
	if game.CurrentTurnID() != playerID {
		return nil, ErrNotYourTurn
	}
	if player.HasSwapped {
		return nil, ErrAlreadySwapped
	}
	// A failed deal can leave a player handless in a started game.
	if len(player.Hand) != domain.HandSize {
		return nil, ErrHandNotDealt
	}
	if err := validateSwapIndices(indices); err != nil {
		return nil, err
	}

	cards, remaining, err := s.deck.Draw(ctx, game.DeckID, len(indices))
	if err != nil {
		return nil, err
	}

	// i-th requested position receives the i-th drawn card.
	for i, idx := range indices {
		player.Hand[idx] = cards[i]
	}
	player.HasSwapped = true

	if err := s.store.WritePlayer(ctx, gameID, player); err != nil {
		return nil, fmt.Errorf("persisting swapped hand for %s: %w", playerID, err)
	}

	return []Event{
		{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{PlayerID: playerID, Hand: player.Hand, Remaining: remaining},
			Recipients: []string{playerID},
		},
		{
			Kind:    EventCardsSwapped,
			Payload: CardsSwappedPayload{PlayerID: playerID, Count: len(indices), Remaining: remaining},
		},
	}, nil
}

// EndTurn advances the turn pointer past the acting player. Order entries
// whose player has since left are skipped. When the pointer wraps past the
// last entry the game is scored and ended as part of the same step.
func (s *Service) EndTurn(ctx context.Context, gameID string, game *domain.Game, roster *Roster, playerID string) ([]Event, error) {
	if game.Phase != domain.PhaseStarted {
		return nil, ErrNotStarted
	}
	if game.CurrentTurnID() != playerID {
		return nil, ErrNotYourTurn
	}

	return s.advanceTurn(ctx, gameID, game, roster, playerID)
}

// HandleLeave detaches a player mid-session. The order snapshot is left
// untouched; if the departing player held the turn, the pointer advances on
// their behalf so the game cannot stall. It reports whether the roster is
// now empty, in which case the game document has been deleted and the match
// should terminate.
func (s *Service) HandleLeave(ctx context.Context, gameID string, game *domain.Game, roster *Roster, playerID string) ([]Event, bool, error) {
	heldTurn := game.Phase == domain.PhaseStarted && game.CurrentTurnID() == playerID

	removed, empty := roster.Leave(playerID)
	if !removed {
		return nil, false, nil
	}

	if err := s.store.DeletePlayer(ctx, gameID, playerID); err != nil {
		return nil, false, fmt.Errorf("removing player %s: %w", playerID, err)
	}

	if empty {
		if err := s.store.DeleteGame(ctx, gameID); err != nil {
			return nil, true, fmt.Errorf("deleting empty game: %w", err)
		}
		return nil, true, nil
	}

	if heldTurn {
		events, err := s.advanceTurn(ctx, gameID, game, roster, playerID)
		return events, false, err
	}
	return nil, false, nil
}

// advanceTurn increments the turn pointer, skipping departed players, and
// ends the game when the pointer reaches the end of the order.
func (s *Service) advanceTurn(ctx context.Context, gameID string, game *domain.Game, roster *Roster, actorID string) ([]Event, error) {
	game.Turn++
	for game.Turn < len(game.Order) && !roster.IsMember(game.Order[game.Turn].ID) {
		game.Turn++
	}

	if game.Turn >= len(game.Order) {
		return s.endGame(ctx, gameID, game, roster, actorID)
	}

	if err := s.store.WriteGame(ctx, gameID, game); err != nil {
		return nil, fmt.Errorf("persisting turn: %w", err)
	}

	return []Event{{
		Kind:    EventTurnEnded,
		Payload: TurnEndedPayload{PlayerID: actorID, Turn: game.Turn, NextID: game.Order[game.Turn].ID},
	}}, nil
}

// endGame scores every ordered player still on the roster and ends the game.
// The winner is tracked with a linear scan: a strictly higher rank takes the
// lead, and a later player matching the leading rank downgrades the winner to
// "Tie". A full tie set is deliberately not computed.
func (s *Service) endGame(ctx context.Context, gameID string, game *domain.Game, roster *Roster, actorID string) ([]Event, error) {
	var (
		message     strings.Builder
		winningRank int
		results     domain.Results
		rankings    []PlayerRanking
	)

	for _, entry := range game.Order {
		player, ok := roster.Get(entry.ID)
		if !ok {
			continue // left mid-game, nothing to score
		}
		if len(player.Hand) != domain.HandSize {
			continue // never dealt, a partial deal failure left them handless
		}

		ranking := domain.EvaluateHand(player.Hand)
		player.Rank = ranking.Rank
		player.RankName = ranking.RankName

		if err := s.store.WritePlayer(ctx, gameID, player); err != nil {
			return nil, fmt.Errorf("persisting rank for %s: %w", player.ID, err)
		}

		fmt.Fprintf(&message, "%s: %s\n", player.Name, ranking.RankName)
		if ranking.Rank > winningRank {
			winningRank = ranking.Rank
			results.Winner = player.Name
		} else if ranking.Rank == winningRank {
			results.Winner = "Tie"
		}

		rankings = append(rankings, PlayerRanking{
			PlayerID: player.ID,
			Name:     player.Name,
			Rank:     ranking.Rank,
			RankName: ranking.RankName,
		})
	}

	message.WriteString("Winner: " + results.Winner)
	results.Message = message.String()

	game.Phase = domain.PhaseEnded
	game.Results = &results

	if err := s.store.WriteGame(ctx, gameID, game); err != nil {
		return nil, fmt.Errorf("persisting ended game: %w", err)
	}

	return []Event{
		{
			Kind:    EventTurnEnded,
			Payload: TurnEndedPayload{PlayerID: actorID, Turn: game.Turn, NextID: ""},
		},
		{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{Results: results, Rankings: rankings},
		},
	}, nil
}

func validateSwapIndices(indices []int) error {
	var seen [domain.HandSize]bool
	for _, idx := range indices {
		if idx < 0 || idx >= domain.HandSize || seen[idx] {
			return ErrBadSwapIndices
		}
		seen[idx] = true
	}
	return nil
}

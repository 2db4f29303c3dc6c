package nakama

import (
	"context"
	"encoding/json"
	"errors"

	"fivedraw/internal/app"
	"fivedraw/internal/domain"
	"fivedraw/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// broadcastEvent converts an application event to its wire form and sends it
// to the event's recipients, or to everyone when no recipients are named.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, event app.Event) {
	opCode, wire := eventToWire(event)
	if wire == nil {
		logger.Warn("broadcastEvent: unhandled event kind %q", event.Kind)
		return
	}

	data, err := json.Marshal(wire)
	if err != nil {
		logger.Error("broadcastEvent: failed to marshal %q: %v", event.Kind, err)
		return
	}

	var targets []runtime.Presence
	if len(event.Recipients) > 0 {
		for _, id := range event.Recipients {
			if presence, ok := state.Presences[id]; ok {
				targets = append(targets, presence)
			}
		}
		// Every intended recipient is a bot or disconnected; the payload may
		// be private, so it must not fall back to a broadcast.
		if len(targets) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, data, targets, nil, true); err != nil {
		logger.Error("broadcastEvent: failed to dispatch %q: %v", event.Kind, err)
	}
}

func eventToWire(event app.Event) (int64, any) {
	switch payload := event.Payload.(type) {
	case app.GameStartedPayload:
		return OpGameStarted, GameStartedEvent{
			Phase: string(domain.PhaseStarted),
			Order: payload.Order,
			Turn:  payload.Turn,
		}
	case app.HandDealtPayload:
		return OpHandDealt, HandDealtEvent{
			Hand:      payload.Hand,
			Remaining: payload.Remaining,
		}
	case app.CardsSwappedPayload:
		return OpCardsSwapped, CardsSwappedEvent{
			PlayerID:  payload.PlayerID,
			Count:     payload.Count,
			Remaining: payload.Remaining,
		}
	case app.TurnEndedPayload:
		return OpTurnEnded, TurnEndedEvent{
			PlayerID: payload.PlayerID,
			Turn:     payload.Turn,
			NextID:   payload.NextID,
		}
	case app.GameEndedPayload:
		rankings := make([]RosterPlayer, 0, len(payload.Rankings))
		for _, r := range payload.Rankings {
			rankings = append(rankings, RosterPlayer{
				ID:         r.PlayerID,
				Name:       r.Name,
				HasSwapped: true,
				CardCount:  domain.HandSize,
				Rank:       r.Rank,
				RankName:   r.RankName,
			})
		}
		return OpGameEnded, GameEndedEvent{
			Message:  payload.Results.Message,
			Winner:   payload.Results.Winner,
			Rankings: rankings,
		}
	default:
		return 0, nil
	}
}

// sendError reports a rejected action to the acting player only.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, playerID string, actionErr error) {
	presence, ok := state.Presences[playerID]
	if !ok {
		return // bots and departed players get no error reports
	}

	wire := GameErrorEvent{Code: errorCode(actionErr), Message: actionErr.Error()}
	data, err := json.Marshal(wire)
	if err != nil {
		logger.Error("sendError: failed to marshal: %v", err)
		return
	}

	if err := dispatcher.BroadcastMessage(OpGameError, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("sendError: failed to dispatch to %s: %v", playerID, err)
	}
}

// errorCode maps action failures onto HTTP-flavored codes clients can switch on.
func errorCode(err error) int {
	var persistence *ports.PersistenceError
	switch {
	case errors.Is(err, app.ErrNotYourTurn), errors.Is(err, app.ErrNotAMember):
		return 403
	case errors.Is(err, app.ErrNotWaiting), errors.Is(err, app.ErrNotStarted),
		errors.Is(err, app.ErrAlreadySwapped), errors.Is(err, app.ErrAlreadyJoined),
		errors.Is(err, app.ErrGameFull), errors.Is(err, app.ErrAlreadyStarted),
		errors.Is(err, app.ErrHandNotDealt), errors.Is(err, ports.ErrDeckExhausted):
		return 409
	case errors.Is(err, app.ErrBadSwapIndices):
		return 400
	case errors.Is(err, ports.ErrDeckUnavailable):
		return 502
	case errors.As(err, &persistence):
		return 500
	default:
		return 500
	}
}

// updateLabel refreshes the advertised match label after phase or seat changes.
func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label := matchLabel{
		Game:  "fivedraw",
		Name:  state.Game.Name,
		Phase: string(state.Game.Phase),
		Open:  state.openSeats(),
	}
	data, err := json.Marshal(label)
	if err != nil {
		logger.Error("updateLabel: failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(data)); err != nil {
		logger.Error("updateLabel: failed to update: %v", err)
	}
}

// broadcastSnapshot sends the public roster view to everyone. Hands never
// appear here; only per-player card counts and end-of-game ranks do.
func (mh *matchHandler) broadcastSnapshot(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	remaining := -1
	if r, err := state.Deck.Remaining(ctx, state.Game.DeckID); err == nil {
		remaining = r
	}

	snapshot := RosterSnapshot{
		Name:      state.Game.Name,
		Phase:     string(state.Game.Phase),
		Turn:      state.Game.Turn,
		Order:     state.Game.Order,
		Remaining: remaining,
		Results:   state.Game.Results,
	}
	for _, p := range state.Roster.InJoinOrder() {
		snapshot.Players = append(snapshot.Players, RosterPlayer{
			ID:         p.ID,
			Name:       p.Name,
			HasSwapped: p.HasSwapped,
			CardCount:  len(p.Hand),
			Rank:       p.Rank,
			RankName:   p.RankName,
		})
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastSnapshot: failed to marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpRosterUpdated, data, nil, nil, true); err != nil {
		logger.Error("broadcastSnapshot: failed to dispatch: %v", err)
	}
}

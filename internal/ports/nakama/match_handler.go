package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"time"

	"fivedraw/internal/app"
	"fivedraw/internal/bot"
	"fivedraw/internal/config"
	"fivedraw/internal/domain"
	"fivedraw/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for one game session.
// The match loop is the only writer, which serializes all player actions for
// a game and keeps phase/turn updates race-free.
type MatchState struct {
	GameID    string
	Game      *domain.Game
	Roster    *app.Roster
	Presences map[string]runtime.Presence // playerID -> presence for targeted messaging

	App   *app.Service
	Deck  ports.DeckPort
	Store ports.GameStorePort

	Tick int64

	BotsEnabled      bool
	BotMinDelay      int // min seconds a bot waits before acting
	BotMaxDelay      int
	BotAutoFillDelay int   // seconds a solo human waits before a bot joins
	BotWaitUntil     int64 // tick when the current bot should act
	SoloHumanSince   int64 // tick when a lone human started waiting
	Bots             map[string]*bot.Agent

	rng *rand.Rand
}

// HumanCount returns the number of attached players that are not bots.
func (ms *MatchState) HumanCount() int {
	count := 0
	for _, p := range ms.Roster.InJoinOrder() {
		if !bot.IsBot(p.ID) {
			count++
		}
	}
	return count
}

func (ms *MatchState) openSeats() int {
	if ms.Game.Phase != domain.PhaseWaiting {
		return 0
	}
	return app.MaxPlayers - ms.Roster.Count()
}

type matchHandler struct {
	deck ports.DeckPort
}

// MatchInit is called when the match is created. Params carry the game name
// and the deck id the create_game RPC already acquired.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	name, _ := params["name"].(string)
	deckID, _ := params["deck_id"].(string)
	if deckID == "" {
		logger.Error("MatchInit: missing deck_id param, refusing to create game")
		return nil, 0, ""
	}

	gameID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	store := NewNakamaGameStore(nk)

	state := &MatchState{
		GameID:    gameID,
		Game:      &domain.Game{Name: name, DeckID: deckID, Phase: domain.PhaseWaiting},
		Roster:    app.NewRoster(),
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(mh.deck, store),
		Deck:      mh.deck,
		Store:     store,
		Bots:      make(map[string]*bot.Agent),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	cfg := config.GetGameConfig()
	state.BotsEnabled = cfg.BotsEnabled
	state.BotMinDelay = cfg.BotMinDelaySeconds
	state.BotMaxDelay = cfg.BotMaxDelaySeconds
	state.BotAutoFillDelay = cfg.BotAutoFillDelaySeconds

	// Environment variables override file config.
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if val, ok := env["fivedraw_bots_enabled"]; ok {
			state.BotsEnabled = val == "true"
		}
	}

	if state.BotMinDelay <= 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay < state.BotMinDelay {
		state.BotMaxDelay = state.BotMinDelay + 2
	}
	if state.BotAutoFillDelay <= 0 {
		state.BotAutoFillDelay = 5
	}

	if err := store.WriteGame(ctx, gameID, state.Game); err != nil {
		logger.Error("MatchInit: failed to persist new game: %v", err)
	}

	labelBytes, err := json.Marshal(matchLabel{Game: "fivedraw", Name: name, Phase: string(domain.PhaseWaiting), Open: app.MaxPlayers})
	if err != nil {
		logger.Error("MatchInit: failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.Game.Phase != domain.PhaseWaiting {
		return state, false, "game already started"
	}
	if matchState.Roster.IsMember(presence.GetUserId()) {
		return state, false, "already joined"
	}

	// A full lobby can still admit a human if a bot seat can be reclaimed.
	if matchState.openSeats() <= 0 && len(matchState.Bots) == 0 {
		return state, false, "game is full"
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		if matchState.openSeats() <= 0 {
			if !mh.reclaimBotSeat(ctx, matchState, logger) {
				logger.Warn("MatchJoin: no seat available for %s", p.GetUserId())
				continue
			}
		}

		player, err := matchState.Roster.Join(matchState.Game.Phase, p.GetUserId(), p.GetUsername())
		if err != nil {
			logger.Warn("MatchJoin: %s could not join: %v", p.GetUserId(), err)
			continue
		}

		if err := matchState.Store.WritePlayer(ctx, matchState.GameID, player); err != nil {
			logger.Error("MatchJoin: failed to persist player %s: %v", player.ID, err)
		}
		logger.Debug("MatchJoin: %s joined as %q", player.ID, player.Name)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(ctx, matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match. Leaving
// never rewrites a started game's order snapshot; a departed turn-holder's
// turn is advanced on their behalf.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		events, empty, err := matchState.App.HandleLeave(ctx, matchState.GameID, matchState.Game, matchState.Roster, p.GetUserId())
		if err != nil {
			logger.Error("MatchLeave: leave handling for %s failed: %v", p.GetUserId(), err)
		}
		for _, ev := range events {
			mh.broadcastEvent(matchState, dispatcher, logger, ev)
		}
		if empty {
			logger.Info("MatchLeave: last player left, game deleted.")
			return nil
		}
	}

	if matchState.HumanCount() == 0 {
		logger.Info("MatchLeave: terminating match with no humans.")
		if err := matchState.Store.DeleteGame(ctx, matchState.GameID); err != nil {
			logger.Error("MatchLeave: failed to delete game: %v", err)
		}
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(ctx, matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg.GetUserId())
		case OpSwapCards:
			mh.handleSwapCards(ctx, matchState, dispatcher, logger, msg.GetUserId(), msg.GetData())
		case OpEndTurn:
			mh.handleEndTurn(ctx, matchState, dispatcher, logger, msg.GetUserId())
		default:
			logger.Warn("MatchLoop: unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	if !state.Roster.IsMember(senderID) {
		mh.sendError(state, dispatcher, logger, senderID, app.ErrNotAMember)
		return
	}

	logger.Info("StartGame: request from %s with %d players", senderID, state.Roster.Count())

	events, err := state.App.StartGame(ctx, state.GameID, state.Game, state.Roster)
	// A partial deal still produced events; dispatch what happened before
	// reporting the failure.
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	if err != nil {
		logger.Error("StartGame: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastSnapshot(ctx, state, dispatcher, logger)
}

func (mh *matchHandler) handleSwapCards(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	var request SwapCardsRequest
	if err := json.Unmarshal(data, &request); err != nil {
		logger.Warn("SwapCards: invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, app.ErrBadSwapIndices)
		return
	}

	events, err := state.App.SwapCards(ctx, state.GameID, state.Game, state.Roster, senderID, request.Indices)
	if err != nil {
		logger.Warn("SwapCards: %s rejected: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleEndTurn(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	events, err := state.App.EndTurn(ctx, state.GameID, state.Game, state.Roster, senderID)
	if err != nil {
		logger.Warn("EndTurn: %s rejected: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}

	if state.Game.Phase == domain.PhaseEnded {
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastSnapshot(ctx, state, dispatcher, logger)
	}
}

// reclaimBotSeat removes one bot from a waiting game to make room for a
// human. Reports whether a seat was freed.
func (mh *matchHandler) reclaimBotSeat(ctx context.Context, state *MatchState, logger runtime.Logger) bool {
	if state.Game.Phase != domain.PhaseWaiting {
		return false
	}
	for botID := range state.Bots {
		logger.Info("MatchJoin: reclaiming bot seat %s for a human", botID)
		delete(state.Bots, botID)
		if _, _, err := state.App.HandleLeave(ctx, state.GameID, state.Game, state.Roster, botID); err != nil {
			logger.Error("MatchJoin: failed to remove bot %s: %v", botID, err)
		}
		return true
	}
	return false
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// Top up a lonely waiting lobby with one bot opponent after a delay.
	if state.Game.Phase == domain.PhaseWaiting {
		if state.HumanCount() == 1 && state.Roster.Count() == 1 {
			if state.SoloHumanSince == 0 {
				state.SoloHumanSince = state.Tick
			}
			if state.Tick-state.SoloHumanSince >= int64(state.BotAutoFillDelay) {
				mh.addBot(ctx, state, dispatcher, logger)
				state.SoloHumanSince = 0
			}
		} else {
			state.SoloHumanSince = 0
		}
		return
	}

	// Drive bot turns in a started game, one action per scheduled tick.
	if state.Game.Phase != domain.PhaseStarted {
		return
	}
	currentID := state.Game.CurrentTurnID()
	if !bot.IsBot(currentID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := state.rng.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, ok := state.Bots[currentID]
	if !ok {
		// Should not happen for bots we added ourselves; recover with a bare agent.
		agent = bot.NewAgent(bot.Identity{PlayerID: currentID})
		state.Bots[currentID] = agent
	}

	player, ok := state.Roster.Get(currentID)
	if !ok {
		return
	}

	if !player.HasSwapped {
		indices := agent.ChooseSwap(player.Hand)
		events, err := state.App.SwapCards(ctx, state.GameID, state.Game, state.Roster, currentID, indices)
		if err != nil {
			logger.Error("processBots: bot %s swap failed: %v", currentID, err)
			return
		}
		for _, ev := range events {
			mh.broadcastEvent(state, dispatcher, logger, ev)
		}
		return // end turn on the next scheduled action
	}

	events, err := state.App.EndTurn(ctx, state.GameID, state.Game, state.Roster, currentID)
	if err != nil {
		logger.Error("processBots: bot %s end turn failed: %v", currentID, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	if state.Game.Phase == domain.PhaseEnded {
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastSnapshot(ctx, state, dispatcher, logger)
	}
}

func (mh *matchHandler) addBot(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	identity := bot.NewIdentity(state.rng)
	player, err := state.Roster.Join(state.Game.Phase, identity.PlayerID, identity.DisplayName)
	if err != nil {
		logger.Error("processBots: failed to add bot: %v", err)
		return
	}
	state.Bots[identity.PlayerID] = bot.NewAgent(identity)

	if err := state.Store.WritePlayer(ctx, state.GameID, player); err != nil {
		logger.Error("processBots: failed to persist bot %s: %v", player.ID, err)
	}

	logger.Info("processBots: added bot %s (%s)", identity.DisplayName, identity.PlayerID)
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastSnapshot(ctx, state, dispatcher, logger)
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

package nakama

const (
	// RpcCreateGame acquires a fresh deck and creates a match around it.
	RpcCreateGame = "create_game"
	// RpcFindGames lists joinable games still in the waiting phase.
	RpcFindGames = "find_games"
	// RpcGameStatus returns the persisted game document for render-only callers.
	RpcGameStatus = "game_status"

	// MatchNameFiveDraw is the authoritative match handler name registered with Nakama.
	MatchNameFiveDraw = "fivedraw_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpSwapCards int64 = 2
	OpEndTurn   int64 = 3

	// Server -> Client events
	OpRosterUpdated int64 = 101
	OpGameStarted   int64 = 102
	OpHandDealt     int64 = 103 // sent privately
	OpCardsSwapped  int64 = 104
	OpTurnEnded     int64 = 105
	OpGameEnded     int64 = 106
	OpGameError     int64 = 107
)

package domain

// Phase represents the lifecycle stage of a five-card-draw game session.
type Phase string

const (
	// PhaseWaiting is the pre-deal state where players can join.
	PhaseWaiting Phase = "waiting"
	// PhaseStarted is the active state where players take turns.
	PhaseStarted Phase = "started"
	// PhaseEnded is the terminal state after hands have been scored.
	PhaseEnded Phase = "ended"
)

// HandSize is the number of cards in a five-card-draw hand.
const HandSize = 5

// Card is a single playing card exactly as the deck resource returned it.
// Code is rank+suit ("AS", "0H" for the ten of hearts); Image is the
// provider's card face URL. Cards are immutable once drawn.
type Card struct {
	Code  string `json:"code"`
	Image string `json:"image"`
}

// Player holds the session state for one participant.
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Hand       []Card `json:"hand,omitempty"` // nil before the deal, exactly HandSize cards after
	HasSwapped bool   `json:"has_swapped"`
	Rank       int    `json:"rank,omitempty"`      // set only at evaluation
	RankName   string `json:"rank_name,omitempty"` // set only at evaluation
}

// OrderEntry is a {player id, display name} pair snapshotted into the turn
// order when the game starts. The snapshot is immutable afterwards even if
// the roster changes.
type OrderEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Results summarizes hand evaluation once a game has ended.
type Results struct {
	Message string `json:"message"`
	Winner  string `json:"winner"`
}

// Game holds the authoritative session state for one game instance.
type Game struct {
	Name    string       `json:"name"`
	DeckID  string       `json:"deck_id"`
	Phase   Phase        `json:"phase"`
	Turn    int          `json:"turn"`
	Order   []OrderEntry `json:"order,omitempty"`
	Results *Results     `json:"results,omitempty"`
}

// CurrentTurnID returns the player id whose action is currently valid, or ""
// when the game is not in the started phase or the turn pointer has wrapped.
func (g *Game) CurrentTurnID() string {
	if g.Phase != PhaseStarted || g.Turn < 0 || g.Turn >= len(g.Order) {
		return ""
	}
	return g.Order[g.Turn].ID
}

package app

import (
	"errors"

	"fivedraw/internal/domain"
)

var (
	ErrGameFull       = errors.New("game is full")
	ErrAlreadyJoined  = errors.New("player already joined")
	ErrAlreadyStarted = errors.New("game already started")
	ErrNotAMember     = errors.New("player is not a member of this game")
)

// Roster tracks the set of players attached to a game before and during play.
// Join order is preserved because it becomes the turn order snapshot when the
// game starts.
type Roster struct {
	players map[string]*domain.Player
	joined  []string // player ids in join order
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{players: make(map[string]*domain.Player)}
}

// Join attaches a player to the game. It fails with ErrGameFull at capacity,
// ErrAlreadyStarted once the game has left the waiting phase, and
// ErrAlreadyJoined for a duplicate id. New players start with no hand and
// HasSwapped false.
func (r *Roster) Join(phase domain.Phase, id, name string) (*domain.Player, error) {
	if phase != domain.PhaseWaiting {
		return nil, ErrAlreadyStarted
	}
	if _, ok := r.players[id]; ok {
		return nil, ErrAlreadyJoined
	}
	if len(r.players) >= MaxPlayers {
		return nil, ErrGameFull
	}

	player := &domain.Player{ID: id, Name: name}
	r.players[id] = player
	r.joined = append(r.joined, id)
	return player, nil
}

// Leave detaches a player. It reports whether a removal happened and whether
// that removal emptied the roster, which signals game deletion to the
// persistence collaborator; empty is never true without removed. Leaving
// never rewrites a started game's order snapshot.
func (r *Roster) Leave(id string) (removed, empty bool) {
	if _, ok := r.players[id]; !ok {
		return false, false
	}
	delete(r.players, id)
	for i, joinedID := range r.joined {
		if joinedID == id {
			r.joined = append(r.joined[:i], r.joined[i+1:]...)
			break
		}
	}
	return true, len(r.players) == 0
}

// Count returns the number of attached players.
func (r *Roster) Count() int {
	return len(r.players)
}

// IsMember reports whether the player id is attached.
func (r *Roster) IsMember(id string) bool {
	_, ok := r.players[id]
	return ok
}

// Get returns the player for an id.
func (r *Roster) Get(id string) (*domain.Player, bool) {
	p, ok := r.players[id]
	return p, ok
}

// InJoinOrder returns the attached players in the order they joined.
func (r *Roster) InJoinOrder() []*domain.Player {
	out := make([]*domain.Player, 0, len(r.joined))
	for _, id := range r.joined {
		out = append(out, r.players[id])
	}
	return out
}

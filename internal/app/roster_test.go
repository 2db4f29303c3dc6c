package app

import (
	"errors"
	"fmt"
	"testing"

	"fivedraw/internal/domain"
)

func TestRosterJoin(t *testing.T) {
	roster := NewRoster()

	player, err := roster.Join(domain.PhaseWaiting, "p1", "Alice")
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if player.ID != "p1" || player.Name != "Alice" {
		t.Errorf("unexpected player: %+v", player)
	}
	if player.HasSwapped || player.Hand != nil {
		t.Errorf("new player should have no hand and no swap: %+v", player)
	}

	if _, err := roster.Join(domain.PhaseWaiting, "p1", "Alice again"); !errors.Is(err, ErrAlreadyJoined) {
		t.Errorf("duplicate join: got %v, want ErrAlreadyJoined", err)
	}

	if _, err := roster.Join(domain.PhaseStarted, "p2", "Bob"); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("join after start: got %v, want ErrAlreadyStarted", err)
	}
}

func TestRosterCapacity(t *testing.T) {
	roster := NewRoster()

	for i := 0; i < MaxPlayers; i++ {
		id := fmt.Sprintf("p%d", i)
		if _, err := roster.Join(domain.PhaseWaiting, id, id); err != nil {
			t.Fatalf("Join %s failed: %v", id, err)
		}
	}

	if _, err := roster.Join(domain.PhaseWaiting, "overflow", "overflow"); !errors.Is(err, ErrGameFull) {
		t.Errorf("overflow join: got %v, want ErrGameFull", err)
	}
	if roster.Count() != MaxPlayers {
		t.Errorf("Count() = %d, want %d", roster.Count(), MaxPlayers)
	}
}

func TestRosterLeave(t *testing.T) {
	roster := NewRoster()
	roster.Join(domain.PhaseWaiting, "p1", "Alice")
	roster.Join(domain.PhaseWaiting, "p2", "Bob")

	removed, empty := roster.Leave("p1")
	if !removed || empty {
		t.Errorf("Leave(p1) = (%v, %v), want (true, false)", removed, empty)
	}

	removed, empty = roster.Leave("p1")
	if removed || empty {
		t.Errorf("second Leave(p1) = (%v, %v), want (false, false)", removed, empty)
	}

	removed, empty = roster.Leave("p2")
	if !removed || !empty {
		t.Errorf("Leave(p2) = (%v, %v), want (true, true)", removed, empty)
	}

	// A stranger leaving an empty roster is not a removal and must not
	// re-signal emptiness.
	removed, empty = roster.Leave("ghost")
	if removed || empty {
		t.Errorf("Leave(ghost) on empty roster = (%v, %v), want (false, false)", removed, empty)
	}
}

func TestRosterJoinOrderPreserved(t *testing.T) {
	roster := NewRoster()
	ids := []string{"c", "a", "b"}
	for _, id := range ids {
		roster.Join(domain.PhaseWaiting, id, id)
	}
	roster.Leave("a")

	got := roster.InJoinOrder()
	want := []string{"c", "b"}
	if len(got) != len(want) {
		t.Fatalf("InJoinOrder() returned %d players, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.ID != want[i] {
			t.Errorf("InJoinOrder()[%d] = %s, want %s", i, p.ID, want[i])
		}
	}
}

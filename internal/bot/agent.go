package bot

import (
	"fivedraw/internal/domain"
)

// Agent is an autonomous fill-in player. It uses the same public actions a
// human does: one optional swap, then end turn.
type Agent struct {
	Identity Identity
}

// NewAgent wraps an identity in an agent.
func NewAgent(identity Identity) *Agent {
	return &Agent{Identity: identity}
}

// ChooseSwap picks which hand positions to discard. Made hands of straight
// or better are stood pat; otherwise cards that pair up or belong to a
// four-card flush draw are kept and the rest go back.
func (a *Agent) ChooseSwap(hand []domain.Card) []int {
	if len(hand) != domain.HandSize {
		return nil
	}
	if domain.EvaluateHand(hand).Rank >= 5 {
		return nil
	}

	valueCounts := make(map[byte]int, len(hand))
	suitCounts := make(map[byte]int, len(hand))
	for _, c := range hand {
		valueCounts[c.Code[0]]++
		suitCounts[c.Code[len(c.Code)-1]]++
	}

	var flushSuit byte
	for suit, n := range suitCounts {
		if n >= 4 {
			flushSuit = suit
		}
	}

	var indices []int
	for i, c := range hand {
		if valueCounts[c.Code[0]] >= 2 {
			continue
		}
		if flushSuit != 0 && c.Code[len(c.Code)-1] == flushSuit {
			continue
		}
		indices = append(indices, i)
	}
	return indices
}

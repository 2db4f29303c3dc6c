package domain

import (
	"testing"
)

func hand(codes ...string) []Card {
	cards := make([]Card, len(codes))
	for i, code := range codes {
		cards[i] = Card{Code: code}
	}
	return cards
}

func TestEvaluateHand(t *testing.T) {
	tests := []struct {
		name     string
		cards    []Card
		expected HandRanking
	}{
		{
			name:     "Royal Flush",
			cards:    hand("0S", "JS", "QS", "KS", "AS"),
			expected: HandRanking{Rank: 10, RankName: "Royal Flush"},
		},
		{
			name:     "Straight Flush",
			cards:    hand("5H", "6H", "7H", "8H", "9H"),
			expected: HandRanking{Rank: 9, RankName: "Straight Flush"},
		},
		{
			name:     "Four of a Kind low",
			cards:    hand("7S", "7H", "7D", "7C", "KS"),
			expected: HandRanking{Rank: 8, RankName: "Four of a Kind"},
		},
		{
			name:     "Four of a Kind high",
			cards:    hand("2S", "9S", "9H", "9D", "9C"),
			expected: HandRanking{Rank: 8, RankName: "Four of a Kind"},
		},
		{
			name:     "Full House triple low",
			cards:    hand("4S", "4H", "4D", "QS", "QH"),
			expected: HandRanking{Rank: 7, RankName: "Full House"},
		},
		{
			name:     "Full House triple high",
			cards:    hand("4S", "4H", "QD", "QS", "QH"),
			expected: HandRanking{Rank: 7, RankName: "Full House"},
		},
		{
			name:     "Flush",
			cards:    hand("2D", "5D", "9D", "JD", "KD"),
			expected: HandRanking{Rank: 6, RankName: "Flush"},
		},
		{
			name:     "Straight mixed suits",
			cards:    hand("6S", "7H", "8D", "9C", "0S"),
			expected: HandRanking{Rank: 5, RankName: "Straight"},
		},
		{
			name:     "Ace-high straight",
			cards:    hand("0S", "JH", "QD", "KC", "AS"),
			expected: HandRanking{Rank: 5, RankName: "Straight"},
		},
		{
			name:     "Wheel is not a straight",
			cards:    hand("AS", "2H", "3D", "4C", "5S"),
			expected: HandRanking{Rank: 1, RankName: "No rank"},
		},
		{
			name:     "Three of a Kind",
			cards:    hand("8S", "8H", "8D", "2C", "KS"),
			expected: HandRanking{Rank: 4, RankName: "Three of a Kind"},
		},
		{
			name:     "Two Pair",
			cards:    hand("8S", "8H", "KD", "KC", "2S"),
			expected: HandRanking{Rank: 3, RankName: "Two Pair"},
		},
		{
			name:     "One Pair",
			cards:    hand("8S", "8H", "3D", "KC", "2S"),
			expected: HandRanking{Rank: 2, RankName: "One Pair"},
		},
		{
			name:     "No rank",
			cards:    hand("2S", "5H", "8D", "JC", "KS"),
			expected: HandRanking{Rank: 1, RankName: "No rank"},
		},
		{
			name:     "Ten as T spelling",
			cards:    hand("TS", "JS", "QS", "KS", "AS"),
			expected: HandRanking{Rank: 10, RankName: "Royal Flush"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateHand(tt.cards)
			if got != tt.expected {
				t.Errorf("EvaluateHand(%v) = %+v, want %+v", tt.cards, got, tt.expected)
			}
		})
	}
}

func TestEvaluateHandOrderInvariant(t *testing.T) {
	sorted := hand("4S", "4H", "4D", "QS", "QH")
	shuffled := hand("QH", "4D", "QS", "4H", "4S")

	a := EvaluateHand(sorted)
	b := EvaluateHand(shuffled)
	if a != b {
		t.Errorf("ranking depends on card order: %+v vs %+v", a, b)
	}
}

func TestCurrentTurnID(t *testing.T) {
	game := &Game{
		Phase: PhaseStarted,
		Order: []OrderEntry{{ID: "a"}, {ID: "b"}},
	}

	if got := game.CurrentTurnID(); got != "a" {
		t.Errorf("CurrentTurnID() = %q, want %q", got, "a")
	}

	game.Turn = 2
	if got := game.CurrentTurnID(); got != "" {
		t.Errorf("CurrentTurnID() after wrap = %q, want empty", got)
	}

	game.Turn = 0
	game.Phase = PhaseWaiting
	if got := game.CurrentTurnID(); got != "" {
		t.Errorf("CurrentTurnID() while waiting = %q, want empty", got)
	}
}

package bot

import (
	"math/rand"
	"testing"

	"fivedraw/internal/domain"
)

func hand(codes ...string) []domain.Card {
	cards := make([]domain.Card, len(codes))
	for i, code := range codes {
		cards[i] = domain.Card{Code: code}
	}
	return cards
}

func TestChooseSwapStandsPatOnMadeHands(t *testing.T) {
	agent := NewAgent(Identity{PlayerID: "bot-test"})

	tests := []struct {
		name  string
		cards []domain.Card
	}{
		{"Straight", hand("6S", "7H", "8D", "9C", "0S")},
		{"Flush", hand("2D", "5D", "9D", "JD", "KD")},
		{"Full House", hand("4S", "4H", "4D", "QS", "QH")},
		{"Royal Flush", hand("0S", "JS", "QS", "KS", "AS")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if indices := agent.ChooseSwap(tt.cards); len(indices) != 0 {
				t.Errorf("ChooseSwap(%s) = %v, want stand pat", tt.name, indices)
			}
		})
	}
}

func TestChooseSwapKeepsPairs(t *testing.T) {
	agent := NewAgent(Identity{PlayerID: "bot-test"})

	// A pair of eights: the other three cards go back.
	indices := agent.ChooseSwap(hand("8S", "8H", "3D", "KC", "2S"))
	want := []int{2, 3, 4}
	if len(indices) != len(want) {
		t.Fatalf("ChooseSwap = %v, want %v", indices, want)
	}
	for i := range want {
		if indices[i] != want[i] {
			t.Errorf("ChooseSwap = %v, want %v", indices, want)
		}
	}
}

func TestChooseSwapChasesFourCardFlush(t *testing.T) {
	agent := NewAgent(Identity{PlayerID: "bot-test"})

	indices := agent.ChooseSwap(hand("2D", "5D", "9D", "JD", "KS"))
	if len(indices) != 1 || indices[0] != 4 {
		t.Errorf("ChooseSwap = %v, want [4] (keep the diamond draw)", indices)
	}
}

func TestChooseSwapIgnoresShortHands(t *testing.T) {
	agent := NewAgent(Identity{PlayerID: "bot-test"})
	if indices := agent.ChooseSwap(hand("2D", "5D")); indices != nil {
		t.Errorf("ChooseSwap on short hand = %v, want nil", indices)
	}
}

func TestNewIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	a := NewIdentity(rng)
	b := NewIdentity(rng)

	if !IsBot(a.PlayerID) || !IsBot(b.PlayerID) {
		t.Errorf("generated ids not flagged as bots: %s, %s", a.PlayerID, b.PlayerID)
	}
	if a.PlayerID == b.PlayerID {
		t.Errorf("duplicate bot ids: %s", a.PlayerID)
	}
	if a.DisplayName == "" {
		t.Error("empty display name")
	}
	if IsBot("normal-user-id") {
		t.Error("IsBot misflagged a regular id")
	}
}

package bot

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// botIDPrefix marks generated bot player ids so they are never confused with
// Nakama user ids.
const botIDPrefix = "bot-"

var (
	adjectives = []string{"Happy", "Shiny", "Brave", "Clever", "Swift", "Calm", "Mighty", "Witty", "Sly", "Wild"}
	nouns      = []string{"Panda", "Tiger", "Eagle", "Dolphin", "Wolf", "Otter", "Falcon", "Bear", "Fox", "Lion"}
)

// Identity is a generated bot persona for one game.
type Identity struct {
	PlayerID    string
	DisplayName string
}

// NewIdentity mints a fresh bot persona with a unique player id and a
// friendly display name.
func NewIdentity(rng *rand.Rand) Identity {
	adj := adjectives[rng.Intn(len(adjectives))]
	noun := nouns[rng.Intn(len(nouns))]
	num := rng.Intn(9000) + 1000

	return Identity{
		PlayerID:    botIDPrefix + uuid.NewString(),
		DisplayName: fmt.Sprintf("%s%s%d", adj, noun, num),
	}
}

// IsBot reports whether the given player id belongs to a generated bot.
func IsBot(playerID string) bool {
	return strings.HasPrefix(playerID, botIDPrefix)
}

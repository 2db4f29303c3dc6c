package deck

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fivedraw/internal/ports"

	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/new/shuffle/", r.URL.Path)
		require.Equal(t, "1", r.URL.Query().Get("deck_count"))
		fmt.Fprint(w, `{"success": true, "deck_id": "3p40paa87x90", "remaining": 52, "shuffled": true}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	deckID, err := client.NewDeck(context.Background())
	require.NoError(t, err)
	require.Equal(t, "3p40paa87x90", deckID)
}

func TestNewDeckRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": false, "error": "no decks left"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.NewDeck(context.Background())
	require.ErrorIs(t, err, ports.ErrDeckUnavailable)
}

func TestDraw(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/3p40paa87x90/draw/", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("count"))
		fmt.Fprint(w, `{
			"success": true,
			"deck_id": "3p40paa87x90",
			"cards": [
				{"code": "AS", "image": "https://example.test/AS.png", "value": "ACE", "suit": "SPADES"},
				{"code": "0H", "image": "https://example.test/0H.png", "value": "10", "suit": "HEARTS"}
			],
			"remaining": 50
		}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	cards, remaining, err := client.Draw(context.Background(), "3p40paa87x90", 2)
	require.NoError(t, err)
	require.Equal(t, 50, remaining)
	require.Len(t, cards, 2)
	require.Equal(t, "AS", cards[0].Code)
	require.Equal(t, "https://example.test/AS.png", cards[0].Image)
	require.Equal(t, "0H", cards[1].Code)
}

func TestDrawExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": false, "deck_id": "3p40paa87x90", "cards": [], "remaining": 1, "error": "Not enough cards remaining to draw 5 additional"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, remaining, err := client.Draw(context.Background(), "3p40paa87x90", 5)
	require.ErrorIs(t, err, ports.ErrDeckExhausted)
	require.Equal(t, 1, remaining)
}

func TestDrawRejectedWithCardsRemaining(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": false, "deck_id": "3p40paa87x90", "cards": [], "remaining": 52, "error": "Deck expired"}`)
	}))
	defer server.Close()

	// Enough cards remain, so the failure is the provider's, not exhaustion.
	client := NewClient(server.URL, 0)
	_, _, err := client.Draw(context.Background(), "3p40paa87x90", 5)
	require.ErrorIs(t, err, ports.ErrDeckUnavailable)
}

func TestDrawServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, _, err := client.Draw(context.Background(), "3p40paa87x90", 5)
	require.ErrorIs(t, err, ports.ErrDeckUnavailable)
}

func TestDrawTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient(server.URL, 0)
	_, _, err := client.Draw(context.Background(), "deck", 1)
	require.ErrorIs(t, err, ports.ErrDeckUnavailable)
}

func TestRemaining(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "0", r.URL.Query().Get("count"))
		fmt.Fprint(w, `{"success": true, "deck_id": "3p40paa87x90", "cards": [], "remaining": 47}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	remaining, err := client.Remaining(context.Background(), "3p40paa87x90")
	require.NoError(t, err)
	require.Equal(t, 47, remaining)
}

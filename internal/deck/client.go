package deck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"fivedraw/internal/domain"
	"fivedraw/internal/ports"
)

// DefaultBaseURL points at the public Deck of Cards API.
const DefaultBaseURL = "https://deckofcardsapi.com/api/deck"

const defaultTimeout = 10 * time.Second

// Client implements ports.DeckPort against a Deck of Cards API compatible
// provider. All endpoints are GET requests returning JSON with a success
// flag, a deck_id, a remaining count and, for draws, the drawn cards.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.DeckPort = (*Client)(nil)

// NewClient returns a deck client for the given base URL. An empty baseURL
// selects the public API; a zero timeout selects a 10s default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// deckResponse is the provider's wire shape, shared by all endpoints.
type deckResponse struct {
	Success   bool          `json:"success"`
	DeckID    string        `json:"deck_id"`
	Cards     []domain.Card `json:"cards"`
	Remaining int           `json:"remaining"`
	Error     string        `json:"error"`
}

// NewDeck acquires a fresh, shuffled single deck and returns its id.
func (c *Client) NewDeck(ctx context.Context) (string, error) {
	res, err := c.get(ctx, c.baseURL+"/new/shuffle/?deck_count=1")
	if err != nil {
		return "", err
	}
	if !res.Success || res.DeckID == "" {
		return "", fmt.Errorf("%w: new deck rejected: %s", ports.ErrDeckUnavailable, res.Error)
	}
	return res.DeckID, nil
}

// Draw takes the next count cards from the deck. Asking for more cards than
// remain yields ErrDeckExhausted and consumes nothing.
func (c *Client) Draw(ctx context.Context, deckID string, count int) ([]domain.Card, int, error) {
	endpoint := fmt.Sprintf("%s/%s/draw/?count=%d", c.baseURL, url.PathEscape(deckID), count)
	res, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, 0, err
	}
	if res.Success && len(res.Cards) >= count {
		return res.Cards, res.Remaining, nil
	}
	// A rejection is only exhaustion when the deck genuinely holds fewer
	// cards; anything else (unknown deck id, provider fault) is unavailability.
	if count > res.Remaining {
		return nil, res.Remaining, fmt.Errorf("%w: requested %d with %d remaining", ports.ErrDeckExhausted, count, res.Remaining)
	}
	return nil, res.Remaining, fmt.Errorf("%w: draw rejected: %s", ports.ErrDeckUnavailable, res.Error)
}

// Remaining reports the undrawn card count via a zero-card draw.
func (c *Client) Remaining(ctx context.Context, deckID string) (int, error) {
	_, remaining, err := c.Draw(ctx, deckID, 0)
	return remaining, err
}

func (c *Client) get(ctx context.Context, endpoint string) (*deckResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrDeckUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrDeckUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ports.ErrDeckUnavailable, resp.StatusCode)
	}

	var res deckResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ports.ErrDeckUnavailable, err)
	}
	return &res, nil
}

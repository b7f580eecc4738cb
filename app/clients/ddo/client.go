package ddo

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL points at the production DDO web service.
const DefaultBaseURL = "https://ws.dsl.dk/ddo"

// Client implements integration with the Den Danske Ordbog query endpoint,
// which answers a word query with an HTML fragment describing the matches.
type Client struct {
	baseURL string
	client  *http.Client
	context context.Context
}

// Query fetches the raw markup document for word. The caller owns parsing;
// transport failures and non-200 statuses come back as errors.
func (c Client) Query(word string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/query", nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if c.context != nil {
		req = req.WithContext(c.context)
	}
	query := req.URL.Query()
	query.Add("q", word)
	req.URL.RawQuery = query.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch dictionary data: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Error().
			Str("status", resp.Status).
			Str("word", word).
			Msg("unsuccessful response from DDO query endpoint")
		return "", fmt.Errorf("unsuccessful API response %v", resp.StatusCode)
	}
	return string(body), nil
}

// NewClient creates a Client with the default HTTP client. An empty baseURL
// selects the production service.
func NewClient(ctx context.Context, baseURL string) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Client{baseURL: baseURL, client: http.DefaultClient, context: ctx}
}

package livesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL points at the production DDO web service.
const DefaultBaseURL = "https://ws.dsl.dk/ddo"

// Size caps how many suggestions the endpoint is asked for.
const Size = 30

// Client implements integration with the DDO livesearch endpoint, which
// serves incremental-completion suggestions as a JSON string array.
type Client struct {
	baseURL string
	client  *http.Client
	context context.Context
}

// Suggest returns the endpoint's suggestions for prefix, keeping only those
// that actually start with it (case-insensitive).
func (c Client) Suggest(prefix string) ([]string, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/livesearch", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.context != nil {
		req = req.WithContext(c.context)
	}
	query := req.URL.Query()
	query.Add("text", prefix)
	query.Add("format", "json")
	query.Add("app", "ios")
	query.Add("size", strconv.Itoa(Size))
	req.URL.RawQuery = query.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch suggestions: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Error().
			Str("status", resp.Status).
			Str("prefix", prefix).
			Msg("unsuccessful response from DDO livesearch endpoint")
		return nil, fmt.Errorf("unsuccessful API response %v", resp.StatusCode)
	}
	var suggestions []string
	if err := json.Unmarshal(body, &suggestions); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	lower := strings.ToLower(prefix)
	matches := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		if strings.HasPrefix(strings.ToLower(s), lower) {
			matches = append(matches, s)
		}
	}
	return matches, nil
}

// NewClient creates a Client with the default HTTP client. An empty baseURL
// selects the production service.
func NewClient(ctx context.Context, baseURL string) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Client{baseURL: baseURL, client: http.DefaultClient, context: ctx}
}

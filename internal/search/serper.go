package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const serperURL = "https://google.serper.dev/search"

// Client queries the Serper web-search API. The analyst uses it to ground
// compliance thresholds, forms and deadlines in official MCA sources.
type Client struct {
	apiKey string
	client *http.Client
}

// Result is one organic search result.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type searchRequest struct {
	Query string `json:"q"`
}

type searchResponse struct {
	Organic []Result `json:"organic"`
}

// NewClient creates a Serper client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Search runs one query and returns the organic results.
func (c *Client) Search(query string) ([]Result, error) {
	jsonBody, err := json.Marshal(searchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("error marshaling search request: %w", err)
	}

	req, err := http.NewRequest("POST", serperURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating search request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Serper API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("error unmarshaling search response: %w", err)
	}

	return searchResp.Organic, nil
}

package enrichment

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const DefaultWikiURL = "https://en.wikipedia.org/api/rest_v1"

// WikiClient resolves names against the Wikipedia REST page summary endpoint.
type WikiClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewWikiClient(baseURL string) *WikiClient {
	if baseURL == "" {
		baseURL = DefaultWikiURL
	}
	return &WikiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup returns the page summary for name. Missing pages and disambiguation
// pages both report ErrNotFound.
func (c *WikiClient) Lookup(ctx context.Context, name string) (Summary, error) {
	title := url.PathEscape(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/page/summary/"+title, http.NoBody)
	if err != nil {
		return Summary{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "go-pulse/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Summary{}, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return Summary{}, fmt.Errorf("wiki service returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Summary{}, fmt.Errorf("read response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return Summary{}, fmt.Errorf("malformed summary payload")
	}

	page := gjson.ParseBytes(body)
	if page.Get("type").String() == "disambiguation" {
		return Summary{}, ErrNotFound
	}
	sum := Summary{
		Title:       page.Get("title").String(),
		Description: page.Get("description").String(),
		Extract:     page.Get("extract").String(),
	}
	if sum.Title == "" {
		return Summary{}, ErrNotFound
	}
	return sum, nil
}

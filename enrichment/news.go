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

	"go-pulse/types"
)

const (
	DefaultNewsURL = "https://newsapi.org/v2"
	newsPageSize   = 10
	removedTitle   = "[Removed]"
)

// NewsClient searches headlines through a NewsAPI compatible endpoint.
type NewsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewNewsClient(baseURL, apiKey string) *NewsClient {
	if baseURL == "" {
		baseURL = DefaultNewsURL
	}
	return &NewsClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *NewsClient) Search(ctx context.Context, query string) ([]types.NewsItem, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("pageSize", fmt.Sprint(newsPageSize))
	q.Set("language", "en")
	q.Set("sortBy", "relevancy")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/everything?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news service returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("malformed news payload")
	}
	if status := gjson.GetBytes(body, "status").String(); status != "ok" {
		return nil, fmt.Errorf("news service status %q: %s", status, gjson.GetBytes(body, "message").String())
	}

	var items []types.NewsItem
	for _, article := range gjson.GetBytes(body, "articles").Array() {
		title := strings.TrimSpace(article.Get("title").String())
		if title == "" || title == removedTitle {
			continue
		}
		items = append(items, types.NewsItem{
			Headline: title,
			URL:      article.Get("url").String(),
		})
	}
	return items, nil
}

package translit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const DefaultGoogleURL = "https://translate.googleapis.com/translate_a/single"

// ErrUnavailable indicates the translation service is unreachable.
var ErrUnavailable = errors.New("translation service unavailable")

// GoogleClient calls the public Google translate endpoint.
type GoogleClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGoogleClient(baseURL string) *GoogleClient {
	if baseURL == "" {
		baseURL = DefaultGoogleURL
	}
	return &GoogleClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Translate returns the translation of text from source to target.
// The endpoint answers with nested arrays: [[["translated","original",...],...],...].
func (c *GoogleClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", source)
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate service returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("malformed translate payload")
	}

	var b strings.Builder
	for _, seg := range gjson.GetBytes(body, "0.#.0").Array() {
		b.WriteString(seg.String())
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("translate payload has no segments")
	}
	return b.String(), nil
}

package mlmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-pulse/types"
)

// DefaultConfidence is assigned to model entities that come back without a score.
const DefaultConfidence = 0.85

// ErrUnavailable indicates the NER model service is unreachable.
var ErrUnavailable = errors.New("ner model service unavailable")

type NERRequest struct {
	Text string `json:"text"`
}

type NEREntity struct {
	Text  string   `json:"text"`
	Label string   `json:"label"`
	Score *float64 `json:"score,omitempty"`
}

type NERResponse struct {
	Entities []NEREntity `json:"entities"`
}

// Client calls the remote NER model service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for baseURL. An empty baseURL yields a disabled
// client whose Detect always returns no entities.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Detect sends text to the model and maps its answer onto types.Entity.
func (c *Client) Detect(ctx context.Context, text string) ([]types.Entity, error) {
	if !c.Enabled() || strings.TrimSpace(text) == "" {
		return nil, nil
	}

	payload, err := json.Marshal(NERRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("NER model returned status: " + resp.Status)
	}

	var out NERResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	entities := make([]types.Entity, 0, len(out.Entities))
	for _, e := range out.Entities {
		if strings.TrimSpace(e.Text) == "" {
			continue
		}
		conf := DefaultConfidence
		if e.Score != nil {
			conf = *e.Score
		}
		entities = append(entities, types.Entity{
			Text:       e.Text,
			Label:      types.ParseLabel(e.Label),
			Confidence: conf,
			Source:     types.SourceModel,
		})
	}
	return entities, nil
}

// Health issues GET on the service root and reports how long it took.
func (c *Client) Health(ctx context.Context) (time.Duration, error) {
	if !c.Enabled() {
		return 0, errors.New("ner model service not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	elapsed := time.Since(start)

	if resp.StatusCode >= http.StatusInternalServerError {
		return elapsed, errors.New("NER model returned status: " + resp.Status)
	}
	return elapsed, nil
}

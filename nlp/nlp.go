package nlp

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	language "cloud.google.com/go/language/apiv2"
	"cloud.google.com/go/language/apiv2/languagepb"
	"google.golang.org/api/option"

	"go-pulse/types"
)

const defaultConfidence = 0.85

// languageClient a singleton languageClient instance.
var (
	languageClient *language.Client
	clientErr      error
	clientOnce     sync.Once
)

// skipped entity types carry values rather than names.
var skipped = map[languagepb.Entity_Type]bool{
	languagepb.Entity_PHONE_NUMBER: true,
	languagepb.Entity_DATE:         true,
	languagepb.Entity_NUMBER:       true,
	languagepb.Entity_PRICE:        true,
}

// GoogleDetector finds entities with the Cloud Natural Language API.
type GoogleDetector struct {
	client *language.Client
}

func NewGoogleDetector(client *language.Client) *GoogleDetector {
	return &GoogleDetector{client: client}
}

// sends text to the Cloud Natural Language API to extract named entities
func (d *GoogleDetector) Detect(ctx context.Context, text string) ([]types.Entity, error) {
	req := &languagepb.AnalyzeEntitiesRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{
				Content: text,
			},
			Type: languagepb.Document_PLAIN_TEXT,
		},
		EncodingType: languagepb.EncodingType_UTF8,
	}

	resp, err := d.client.AnalyzeEntities(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("AnalyzeEntities error: %w", err)
	}

	return toEntities(resp), nil
}

// toEntities keeps named entities only. The surface text is the first mention
// and the confidence the highest mention probability.
func toEntities(resp *languagepb.AnalyzeEntitiesResponse) []types.Entity {
	var entities []types.Entity
	for _, e := range resp.GetEntities() {
		if skipped[e.Type] {
			continue
		}
		surface := e.Name
		conf := float32(0)
		for _, m := range e.Mentions {
			if m.Text != nil && surface == e.Name && m.Text.Content != "" {
				surface = m.Text.Content
			}
			if m.Probability > conf {
				conf = m.Probability
			}
		}
		confidence := float64(conf)
		if confidence == 0 {
			confidence = defaultConfidence
		}
		entities = append(entities, types.Entity{
			Text:       surface,
			Label:      types.ParseLabel(e.Type.String()),
			Confidence: confidence,
			Source:     types.SourceModel,
		})
	}
	return entities
}

// initializes and returns a language client from base64 encoded credentials.
func InitLanguageClient(encodedCreds string) (*language.Client, error) {
	clientOnce.Do(func() {
		// Decode credentials
		creds, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			clientErr = fmt.Errorf("decode natural language credentials: %w", err)
			return
		}

		// Create the Natural Language API client using the decoded credentials
		opt := option.WithCredentialsJSON(creds)
		languageClient, clientErr = language.NewClient(context.Background(), opt)
		if clientErr != nil {
			clientErr = fmt.Errorf("create natural language client: %w", clientErr)
		}
	})

	return languageClient, clientErr
}

func CloseLanguageClient() {
	if languageClient != nil {
		languageClient.Close()
	}
}

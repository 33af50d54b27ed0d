package nlp

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"go-pulse/types"
)

// ProseDetector runs the bundled prose NER model in process.
type ProseDetector struct{}

func NewProseDetector() *ProseDetector {
	return &ProseDetector{}
}

func (ProseDetector) Detect(ctx context.Context, text string) ([]types.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("prose document: %w", err)
	}

	var entities []types.Entity
	for _, e := range doc.Entities() {
		entities = append(entities, types.Entity{
			Text:       e.Text,
			Label:      types.ParseLabel(e.Label),
			Confidence: defaultConfidence,
			Source:     types.SourceModel,
		})
	}
	return entities, nil
}

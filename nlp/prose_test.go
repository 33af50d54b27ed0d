package nlp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pulse/types"
)

func TestProseDetector_Empty(t *testing.T) {
	got, err := NewProseDetector().Detect(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProseDetector_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProseDetector().Detect(ctx, "Barack Obama visited Paris")
	assert.Error(t, err)
}

func TestProseDetector_EntitiesAreModelSourced(t *testing.T) {
	got, err := NewProseDetector().Detect(context.Background(), "Barack Obama met Angela Merkel in Washington last week.")
	require.NoError(t, err)

	for _, e := range got {
		assert.Equal(t, types.SourceModel, e.Source)
		assert.Equal(t, defaultConfidence, e.Confidence)
		assert.NotEmpty(t, e.Text)
	}
}

package handlers

import (
	"context"
	"time"

	"go-pulse/enrichment"
	"go-pulse/types"
)

type Analyzer interface {
	Analyze(ctx context.Context, text string) types.AnalysisResult
}

type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// AnalysisStore persists analyses of identified posts. GetAnalysis returns
// db.ErrNotFound for unknown posts.
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, postID, text string, result types.AnalysisResult) error
	GetAnalysis(ctx context.Context, postID string) (types.AnalysisResult, error)
}

// MentionStore reads stored entity mentions.
type MentionStore interface {
	MentionsSince(ctx context.Context, from time.Time) ([]types.EntityMention, error)
	CountMentions(ctx context.Context, text string) (int64, error)
	CountPosts(ctx context.Context) (int64, error)
}

// Disambiguator is the page summary lookup used by entity profiles.
type Disambiguator = enrichment.Disambiguator

package processor

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"go-pulse/types"
)

// Store persists analyses for ingested posts.
type Store interface {
	Exists(ctx context.Context, postID string) (bool, error)
	SaveAnalysis(ctx context.Context, postID, text string, result types.AnalysisResult) error
}

// IngestResult summarizes what happened to one feed post.
type IngestResult struct {
	PostID       string  `json:"postId"`
	EntityCount  int     `json:"entityCount"`
	RiskScore    float64 `json:"riskScore"`
	AlreadyExist bool    `json:"alreadyExist"`
	ErrorSaving  bool    `json:"errorSaving"`
}

// ProcessFeed analyzes and stores every post of a feed page concurrently.
// Posts without a URI or text are skipped.
func ProcessFeed(ctx context.Context, a *Analyzer, store Store, out types.FeedResponse, log logrus.FieldLogger) []IngestResult {
	resultsChan := make(chan IngestResult, len(out.Feed))
	var wg sync.WaitGroup

	for _, v := range out.Feed {
		if v.Post.URI == "" || strings.TrimSpace(v.Post.Record.Text) == "" {
			continue
		}
		wg.Add(1)
		go func(post types.Post) {
			defer wg.Done()
			resultsChan <- ingestPost(ctx, a, store, post, log)
		}(v.Post)
	}

	wg.Wait()
	close(resultsChan)

	resultsList := make([]IngestResult, 0, len(out.Feed))
	for result := range resultsChan {
		resultsList = append(resultsList, result)
	}
	return resultsList
}

func ingestPost(ctx context.Context, a *Analyzer, store Store, post types.Post, log logrus.FieldLogger) IngestResult {
	result := IngestResult{PostID: post.URI}
	entry := log.WithField("post", post.URI)

	exists, err := store.Exists(ctx, post.URI)
	if err != nil {
		entry.WithError(err).Warn("could not check post")
		result.ErrorSaving = true
		return result
	}
	if exists {
		result.AlreadyExist = true
		return result
	}

	analysis := a.Analyze(ctx, post.Record.Text)
	result.EntityCount = len(analysis.Entities)
	result.RiskScore = analysis.RiskScore

	if err := store.SaveAnalysis(ctx, post.URI, post.Record.Text, analysis); err != nil {
		entry.WithError(err).Warn("could not save analysis")
		result.ErrorSaving = true
	}
	return result
}

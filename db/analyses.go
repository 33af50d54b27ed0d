package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-pulse/types"
)

const (
	postsCollection    = "posts"
	mentionsCollection = "entityMentions"
)

// ErrNotFound is returned when a post has no stored analysis.
var ErrNotFound = errors.New("analysis not found")

// Store persists analyses in Firestore.
type Store struct {
	client *firestore.Client
	now    func() time.Time
}

func NewStore(client *firestore.Client) *Store {
	return &Store{client: client, now: time.Now}
}

// postDoc is the stored form of posts/{hash(postID)}.
type postDoc struct {
	PostID    string               `firestore:"postId"`
	Content   string               `firestore:"content"`
	Analysis  types.AnalysisResult `firestore:"analysis"`
	UpdatedAt time.Time            `firestore:"updatedAt"`
}

// Exists reports whether postID already has a stored analysis.
func (s *Store) Exists(ctx context.Context, postID string) (bool, error) {
	_, err := s.client.Collection(postsCollection).Doc(HashString(postID)).Get(ctx)
	if err == nil {
		return true, nil
	}
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	return false, fmt.Errorf("get post %s: %w", postID, err)
}

// SaveAnalysis merges the post document and replaces its mention records in
// a single transaction. Mentions of entities no longer in the result are deleted.
func (s *Store) SaveAnalysis(ctx context.Context, postID, text string, result types.AnalysisResult) error {
	hashedPostID := HashString(postID)
	now := s.now().UTC()
	mentions := MentionRecords(postID, result.Entities, now)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// reads must come before writes in a transaction
		existing, err := tx.Documents(s.client.Collection(mentionsCollection).Where("postId", "==", postID)).GetAll()
		if err != nil {
			return fmt.Errorf("failed to read existing mentions: %w", err)
		}
		existingIDs := make([]string, 0, len(existing))
		for _, doc := range existing {
			existingIDs = append(existingIDs, doc.Ref.ID)
		}

		postRef := s.client.Collection(postsCollection).Doc(hashedPostID)
		if err := tx.Set(postRef, postData(postID, text, result, now), firestore.MergeAll); err != nil {
			return fmt.Errorf("failed to set post document: %w", err)
		}

		for _, m := range mentions {
			ref := s.client.Collection(mentionsCollection).Doc(mentionID(postID, m.Key))
			if err := tx.Set(ref, m); err != nil {
				return fmt.Errorf("failed to set mention %s: %w", m.Text, err)
			}
		}
		for _, id := range StaleMentionIDs(existingIDs, postID, mentions) {
			if err := tx.Delete(s.client.Collection(mentionsCollection).Doc(id)); err != nil {
				return fmt.Errorf("failed to delete stale mention %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save analysis for %s: %w", postID, err)
	}
	return nil
}

// postData converts the post to a map so it can be written with MergeAll.
func postData(postID, text string, result types.AnalysisResult, at time.Time) map[string]interface{} {
	return map[string]interface{}{
		"postId":    postID,
		"content":   text,
		"analysis":  result,
		"updatedAt": at,
	}
}

func mentionID(postID, key string) string {
	return HashString(postID + "|" + key)
}

// StaleMentionIDs returns the stored mention document IDs of postID that the
// new mention set no longer covers.
func StaleMentionIDs(existingIDs []string, postID string, mentions []types.EntityMention) []string {
	keep := make(map[string]bool, len(mentions))
	for _, m := range mentions {
		keep[mentionID(postID, m.Key)] = true
	}
	var stale []string
	for _, id := range existingIDs {
		if !keep[id] {
			stale = append(stale, id)
		}
	}
	return stale
}

// GetAnalysis returns the stored analysis for postID.
func (s *Store) GetAnalysis(ctx context.Context, postID string) (types.AnalysisResult, error) {
	snap, err := s.client.Collection(postsCollection).Doc(HashString(postID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.AnalysisResult{}, ErrNotFound
		}
		return types.AnalysisResult{}, fmt.Errorf("get post %s: %w", postID, err)
	}

	var doc postDoc
	if err := snap.DataTo(&doc); err != nil {
		return types.AnalysisResult{}, fmt.Errorf("decode post %s: %w", postID, err)
	}
	return doc.Analysis, nil
}

// MentionsSince returns every mention recorded at or after from.
func (s *Store) MentionsSince(ctx context.Context, from time.Time) ([]types.EntityMention, error) {
	docs, err := s.client.Collection(mentionsCollection).
		Where("createdAt", ">=", from).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("query mentions: %w", err)
	}

	mentions := make([]types.EntityMention, 0, len(docs))
	for _, doc := range docs {
		var m types.EntityMention
		if err := doc.DataTo(&m); err != nil {
			return nil, fmt.Errorf("decode mention %s: %w", doc.Ref.ID, err)
		}
		mentions = append(mentions, m)
	}
	return mentions, nil
}

// CountMentions counts stored mentions of text, matched by entity key.
func (s *Store) CountMentions(ctx context.Context, text string) (int64, error) {
	q := s.client.Collection(mentionsCollection).Where("key", "==", types.Key(text))
	res, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count mentions: %w", err)
	}

	return countValue(res)
}

func countValue(res firestore.AggregationResult) (int64, error) {
	v, ok := res["all"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected aggregation result %T", res["all"])
	}
	return v.GetIntegerValue(), nil
}

// CountPosts counts every stored post.
func (s *Store) CountPosts(ctx context.Context) (int64, error) {
	res, err := s.client.Collection(postsCollection).NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return countValue(res)
}

// MentionRecords builds one mention per entity with a non-empty key.
func MentionRecords(postID string, entities []types.Entity, at time.Time) []types.EntityMention {
	out := make([]types.EntityMention, 0, len(entities))
	for _, e := range entities {
		key := types.Key(e.Text)
		if key == "" {
			continue
		}
		out = append(out, types.EntityMention{
			Text:         e.Text,
			Key:          key,
			Label:        e.Label,
			IdentifiedAs: e.IdentifiedAs,
			PostID:       postID,
			CreatedAt:    at,
		})
	}
	return out
}

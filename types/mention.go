package types

import "time"

// EntityMention is one entity occurrence attached to a stored post.
// The trending and entity-profile views are computed from these records.
type EntityMention struct {
	Text         string    `firestore:"text" json:"text"`
	Key          string    `firestore:"key" json:"key"`
	Label        Label     `firestore:"label" json:"label"`
	IdentifiedAs string    `firestore:"identifiedAs,omitempty" json:"identified_as,omitempty"`
	PostID       string    `firestore:"postId" json:"post_id"`
	CreatedAt    time.Time `firestore:"createdAt" json:"created_at"`
}

package types

// FeedResponse represents the root structure of the app.bsky.feed.getFeed response.
type FeedResponse struct {
	Cursor string      `json:"cursor"`
	Feed   []FeedEntry `json:"feed"`
}

// FeedEntry represents each post in the feed.
type FeedEntry struct {
	Post Post `json:"post"`
}

// Post is the subset of a Bluesky post the ingester needs.
type Post struct {
	Author    Author `json:"author"`
	CID       string `json:"cid"`
	IndexedAt string `json:"indexedAt"`
	Record    Record `json:"record"`
	URI       string `json:"uri"`
}

// Author represents the author of a post.
type Author struct {
	DID         string `json:"did"`
	DisplayName string `json:"displayName"`
	Handle      string `json:"handle"`
}

// Record represents the content of a post.
type Record struct {
	Type      string   `json:"$type"`
	CreatedAt string   `json:"createdAt"`
	Langs     []string `json:"langs"`
	Text      string   `json:"text"`
}

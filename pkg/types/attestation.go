package types

// Post is the subset of a social-media post the verifier needs
type Post struct {
	ID           string `json:"id"`
	AuthorHandle string `json:"author_handle"`
	Text         string `json:"text"`
}

// AttestationRecord binds a checksummed address to a verified handle.
// Stored under the address key; Timestamp is unix seconds.
type AttestationRecord struct {
	Handle    string `json:"handle"`
	Timestamp int64  `json:"timestamp"`
	PostID    string `json:"tweetID"`
}

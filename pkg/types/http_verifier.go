package types

// VerifyRequest is bound from the /api/verify query string.
// Account is optional; without it the endpoint reports who signed the post.
type VerifyRequest struct {
	PostID  string `form:"id" binding:"required,numeric,max=32"`
	Account string `form:"account"`
}

// VerifyResponse is returned when the post signature checks out
type VerifyResponse struct {
	Handle    string `json:"handle"`
	Address   string `json:"address"`
	PostID    string `json:"tweetID"`
	Persisted bool   `json:"persisted"`
}

// AccountRequest is bound from the /api/accounts query string
type AccountRequest struct {
	Address string `form:"address" binding:"required"`
}

// AccountResponse is the stored attestation for an address
type AccountResponse struct {
	Address   string `json:"address"`
	Handle    string `json:"handle"`
	Timestamp int64  `json:"timestamp"`
	PostID    string `json:"tweetID"`
}

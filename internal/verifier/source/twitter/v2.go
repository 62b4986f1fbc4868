package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/interfaces"
	httppkg "github.com/trigg3rX/sybil-verifier/pkg/http"
	"github.com/trigg3rX/sybil-verifier/pkg/logging"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

const DefaultAPIURL = "https://api.twitter.com"

type v2User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type v2Tweet struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	AuthorID string `json:"author_id"`
}

type v2LookupResponse struct {
	Data     []v2Tweet `json:"data"`
	Includes *struct {
		Users []v2User `json:"users"`
	} `json:"includes"`
}

// V2Client looks posts up through the v2 tweets endpoint with an app bearer
// token, expanding the author to get the handle.
type V2Client struct {
	baseURL string
	bearer  string
	client  httppkg.HTTPClientInterface
	logger  logging.Logger
}

func NewV2Client(baseURL, bearer string, client httppkg.HTTPClientInterface, logger logging.Logger) *V2Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &V2Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		bearer:  bearer,
		client:  client,
		logger:  logger,
	}
}

func (c *V2Client) lookupURL(postID string) string {
	query := url.Values{}
	query.Set("ids", postID)
	query.Set("expansions", "author_id")
	query.Set("user.fields", "username")
	return c.baseURL + "/2/tweets?" + query.Encode()
}

func (c *V2Client) FetchPost(ctx context.Context, postID string) (types.Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.lookupURL(postID), nil)
	if err != nil {
		return types.Post{}, fmt.Errorf("failed to create tweet lookup request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearer)

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return types.Post{}, fmt.Errorf("tweet lookup: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusBadRequest:
		// Twitter answers 400 for ids it cannot parse.
		_ = resp.Body.Close()
		return types.Post{}, interfaces.ErrPostNotFound
	default:
		return types.Post{}, fmt.Errorf("tweet lookup: %w", c.client.ErrorFromResponse(resp))
	}
	defer func() { _ = resp.Body.Close() }()

	var body v2LookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return types.Post{}, fmt.Errorf("tweet lookup: decode response: %w", err)
	}

	if len(body.Data) == 0 || body.Includes == nil || len(body.Includes.Users) == 0 {
		c.logger.Debugf("Tweet %s not found or has no author", postID)
		return types.Post{}, interfaces.ErrPostNotFound
	}

	tweet := body.Data[0]
	author := body.Includes.Users[0]
	for _, user := range body.Includes.Users {
		if user.ID == tweet.AuthorID {
			author = user
			break
		}
	}

	id := tweet.ID
	if id == "" {
		id = postID
	}
	return types.Post{ID: id, AuthorHandle: author.Username, Text: tweet.Text}, nil
}

package twitter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dghubble/go-twitter/twitter"
	"github.com/dghubble/oauth1"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/interfaces"
	"github.com/trigg3rX/sybil-verifier/pkg/logging"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

// OAuth holds user-context credentials for the v1.1 API
type OAuth struct {
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
}

// Twitter v1.1 error codes meaning the status or its author is gone
var notFoundCodes = map[int]bool{
	8:   true, // no data available
	34:  true, // page does not exist
	63:  true, // user suspended
	144: true, // no status found with that id
	179: true, // not authorized to see status
}

// V1Client looks posts up through statuses/show with OAuth1 user credentials.
type V1Client struct {
	client *twitter.Client
	logger logging.Logger
}

// NewV1Client signs requests made through base with auth. A nil base uses
// http.DefaultTransport.
func NewV1Client(auth OAuth, base *http.Client, logger logging.Logger) *V1Client {
	config := oauth1.NewConfig(auth.ConsumerKey, auth.ConsumerSecret)
	token := oauth1.NewToken(auth.AccessToken, auth.AccessSecret)

	ctx := oauth1.NoContext
	if base != nil {
		ctx = context.WithValue(ctx, oauth1.HTTPClient, base)
	}
	return &V1Client{
		client: twitter.NewClient(config.Client(ctx, token)),
		logger: logger,
	}
}

func (c *V1Client) FetchPost(ctx context.Context, postID string) (types.Post, error) {
	if err := ctx.Err(); err != nil {
		return types.Post{}, err
	}

	id, err := strconv.ParseInt(postID, 10, 64)
	if err != nil {
		return types.Post{}, interfaces.ErrPostNotFound
	}

	tweet, resp, err := c.client.Statuses.Show(id, &twitter.StatusShowParams{TweetMode: "extended"})
	if err != nil {
		if isNotFound(resp, err) {
			return types.Post{}, interfaces.ErrPostNotFound
		}
		return types.Post{}, fmt.Errorf("statuses/show %s: %w", postID, err)
	}
	if tweet == nil || tweet.User == nil {
		c.logger.Debugf("Status %s has no author", postID)
		return types.Post{}, interfaces.ErrPostNotFound
	}

	text := tweet.FullText
	if text == "" {
		text = tweet.Text
	}
	return types.Post{ID: tweet.IDStr, AuthorHandle: tweet.User.ScreenName, Text: text}, nil
}

func isNotFound(resp *http.Response, err error) bool {
	var apiErr twitter.APIError
	if errors.As(err, &apiErr) {
		for _, detail := range apiErr.Errors {
			if notFoundCodes[detail.Code] {
				return true
			}
		}
	}
	return resp != nil && resp.StatusCode == http.StatusNotFound
}

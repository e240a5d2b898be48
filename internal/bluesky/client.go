// Package bluesky provides a client for the Bluesky XRPC API.
package bluesky

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"bskytldr/internal/feed"
)

const defaultBaseURL = "https://bsky.social"

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom service URL (useful for testing or self-hosted
// PDS instances).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// Client is a Bluesky XRPC API client. It implements feed.FollowSource and
// feed.FeedSource.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	session    *Session
}

// NewClient creates an unauthenticated client; call Login or SetSession
// before fetching.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session holds the credentials returned by createSession.
type Session struct {
	AccessJwt  string `json:"accessJwt"`
	RefreshJwt string `json:"refreshJwt"`
	Handle     string `json:"handle"`
	DID        string `json:"did"`
}

// SetSession installs a previously obtained session, skipping Login.
func (c *Client) SetSession(session *Session) {
	c.session = session
}

// Session returns the active session, or nil when not logged in.
func (c *Client) Session() *Session {
	return c.session
}

// Login authenticates with an identifier (handle or DID) and an app password
// via com.atproto.server.createSession and retains the resulting session.
func (c *Client) Login(ctx context.Context, identifier, appPassword string) error {
	payload, err := json.Marshal(map[string]string{
		"identifier": identifier,
		"password":   appPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	endpoint := c.baseURL + "/xrpc/com.atproto.server.createSession"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return c.handleAPIError(resp.StatusCode)
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return fmt.Errorf("failed to parse session response: %w", err)
	}
	c.session = &session
	return nil
}

// FetchFollowsPage retrieves one page of the actor's follows via
// app.bsky.graph.getFollows.
func (c *Client) FetchFollowsPage(ctx context.Context, actor string, limit int, cursor string) (feed.FollowsPage, error) {
	body, err := c.doRequest(ctx, c.queryURL("app.bsky.graph.getFollows", actor, limit, cursor))
	if err != nil {
		return feed.FollowsPage{}, err
	}

	var response followsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return feed.FollowsPage{}, fmt.Errorf("failed to parse follows response: %w", err)
	}

	page := feed.FollowsPage{
		Follows: make([]feed.Follow, 0, len(response.Follows)),
		Cursor:  response.Cursor,
		Success: true,
	}
	for _, follow := range response.Follows {
		page.Follows = append(page.Follows, feed.Follow{
			DID:    follow.DID,
			Handle: follow.Handle,
		})
	}
	return page, nil
}

// FetchFeedPage retrieves one page of an author's feed, newest first, via
// app.bsky.feed.getAuthorFeed.
func (c *Client) FetchFeedPage(ctx context.Context, actor string, limit int, cursor string) (feed.FeedPage, error) {
	body, err := c.doRequest(ctx, c.queryURL("app.bsky.feed.getAuthorFeed", actor, limit, cursor))
	if err != nil {
		return feed.FeedPage{}, err
	}

	var response authorFeedResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return feed.FeedPage{}, fmt.Errorf("failed to parse author feed response: %w", err)
	}

	page := feed.FeedPage{
		Items:  make([]feed.RawItem, 0, len(response.Feed)),
		Cursor: response.Cursor,
	}
	for _, viewPost := range response.Feed {
		page.Items = append(page.Items, feed.RawItem{
			URI:       viewPost.Post.URI,
			Text:      viewPost.Post.Record.Text,
			CreatedAt: viewPost.Post.Record.CreatedAt,
			Reason:    viewPost.Reason.Type,
			Facets:    convertFacets(viewPost.Post.Record.Facets),
		})
	}
	return page, nil
}

func (c *Client) queryURL(method, actor string, limit int, cursor string) string {
	params := url.Values{}
	params.Set("actor", actor)
	params.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	return fmt.Sprintf("%s/xrpc/%s?%s", c.baseURL, method, params.Encode())
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.session != nil {
		req.Header.Set("Authorization", "Bearer "+c.session.AccessJwt)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleAPIError(resp.StatusCode)
	}

	return body, nil
}

func convertFacets(facets []facet) []feed.Facet {
	if len(facets) == 0 {
		return nil
	}
	converted := make([]feed.Facet, 0, len(facets))
	for _, f := range facets {
		features := make([]feed.Feature, 0, len(f.Features))
		for _, feature := range f.Features {
			features = append(features, feed.Feature{
				Type: feature.Type,
				URI:  feature.URI,
			})
		}
		converted = append(converted, feed.Facet{Features: features})
	}
	return converted
}

func (c *Client) handleAPIError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("Bluesky authentication failed - check your handle and app password, or delete the cached session")
	case http.StatusBadRequest:
		return fmt.Errorf("Bluesky rejected the request - the actor may not exist")
	case http.StatusTooManyRequests:
		return fmt.Errorf("Bluesky rate limit exceeded - please try again later")
	case http.StatusServiceUnavailable:
		return fmt.Errorf("Bluesky temporarily unavailable - please try again in a few minutes")
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusGatewayTimeout:
		return fmt.Errorf("Bluesky server error - please try again later")
	default:
		return fmt.Errorf("Bluesky API error (status %d) - please try again", statusCode)
	}
}

// API response types (private - implementation detail)

type followsResponse struct {
	Follows []struct {
		DID    string `json:"did"`
		Handle string `json:"handle"`
	} `json:"follows"`
	Cursor string `json:"cursor"`
}

type authorFeedResponse struct {
	Feed []struct {
		Post struct {
			URI    string `json:"uri"`
			Record struct {
				Text      string  `json:"text"`
				CreatedAt string  `json:"createdAt"`
				Facets    []facet `json:"facets"`
			} `json:"record"`
		} `json:"post"`
		Reason struct {
			Type string `json:"$type"`
		} `json:"reason"`
	} `json:"feed"`
	Cursor string `json:"cursor"`
}

type facet struct {
	Features []struct {
		Type string `json:"$type"`
		URI  string `json:"uri"`
	} `json:"features"`
}

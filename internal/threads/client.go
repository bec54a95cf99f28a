package threads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"threadgems/internal/config"
	"threadgems/internal/metrics"
	"time"

	"github.com/google/go-querystring/query"
)

// MediaFields is the field list requested for every media object.
const MediaFields = "id,media_product_type,media_type,media_url,permalink,username,text,topic_tag,timestamp,shortcode,thumbnail_url,children,is_quote_post"

const ProfileFields = "id,username,name,threads_profile_picture_url,threads_biography"

var ErrNoAccessToken = errors.New("threads access token not configured")

// Client is a thin Threads Graph API client.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	version      string
	clientSecret string
	appToken     string
}

func NewClient(cfg config.ThreadsConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      strings.TrimSuffix(cfg.GraphBaseURL, "/"),
		version:      cfg.APIVersion,
		clientSecret: cfg.ClientSecret,
		appToken:     cfg.AccessToken,
	}
}

type PostsOptions struct {
	Limit int
	Since time.Time
	Until time.Time
}

type profilePostsQuery struct {
	AccessToken string `url:"access_token"`
	Username    string `url:"username"`
	Fields      string `url:"fields"`
	Limit       int    `url:"limit,omitempty"`
	Since       int64  `url:"since,omitempty"`
	Until       int64  `url:"until,omitempty"`
}

type fieldsQuery struct {
	AccessToken string `url:"access_token"`
	Fields      string `url:"fields"`
}

type tokenQuery struct {
	GrantType    string `url:"grant_type"`
	ClientSecret string `url:"client_secret,omitempty"`
	AccessToken  string `url:"access_token"`
}

func (c *Client) token(token string) (string, error) {
	if token != "" {
		return token, nil
	}
	if c.appToken != "" {
		return c.appToken, nil
	}
	return "", ErrNoAccessToken
}

// ProfilePosts lists public posts for username. An empty token falls back to
// the configured app token.
func (c *Client) ProfilePosts(ctx context.Context, token, username string, opts PostsOptions) ([]Media, error) {
	token, err := c.token(token)
	if err != nil {
		return nil, err
	}

	q := profilePostsQuery{
		AccessToken: token,
		Username:    username,
		Fields:      MediaFields,
		Limit:       opts.Limit,
	}
	if !opts.Since.IsZero() {
		q.Since = opts.Since.Unix()
	}
	if !opts.Until.IsZero() {
		q.Until = opts.Until.Unix()
	}

	var page MediaPage
	if err := c.get(ctx, c.versioned("/profile_posts"), q, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch posts for %s: %w", username, err)
	}
	return page.Data, nil
}

func (c *Client) Media(ctx context.Context, token, id string) (*Media, error) {
	token, err := c.token(token)
	if err != nil {
		return nil, err
	}

	var media Media
	if err := c.get(ctx, c.versioned("/"+id), fieldsQuery{AccessToken: token, Fields: MediaFields}, &media); err != nil {
		return nil, fmt.Errorf("failed to fetch media %s: %w", id, err)
	}
	return &media, nil
}

func (c *Client) Me(ctx context.Context, token string) (*Profile, error) {
	if token == "" {
		return nil, ErrNoAccessToken
	}

	var profile Profile
	if err := c.get(ctx, c.versioned("/me"), fieldsQuery{AccessToken: token, Fields: ProfileFields}, &profile); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &profile, nil
}

// ExchangeLongLived trades a short-lived user token for a long-lived one.
func (c *Client) ExchangeLongLived(ctx context.Context, token string) (*LongLivedToken, error) {
	var out LongLivedToken
	q := tokenQuery{GrantType: "th_exchange_token", ClientSecret: c.clientSecret, AccessToken: token}
	if err := c.get(ctx, "/access_token", q, &out); err != nil {
		return nil, fmt.Errorf("failed to exchange for long-lived token: %w", err)
	}
	return &out, nil
}

// RefreshLongLived extends a long-lived token that is at least a day old.
func (c *Client) RefreshLongLived(ctx context.Context, token string) (*LongLivedToken, error) {
	var out LongLivedToken
	q := tokenQuery{GrantType: "th_refresh_token", AccessToken: token}
	if err := c.get(ctx, "/refresh_access_token", q, &out); err != nil {
		return nil, fmt.Errorf("failed to refresh long-lived token: %w", err)
	}
	return &out, nil
}

func (c *Client) versioned(path string) string {
	return "/" + c.version + path
}

func (c *Client) get(ctx context.Context, path string, params any, out any) error {
	values, err := query.Values(params)
	if err != nil {
		return fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+values.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ThreadsAPIDuration.WithLabelValues(metricPath(path)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ThreadsAPIRequestsTotal.WithLabelValues(metricPath(path), "error").Inc()
		return err
	}
	defer resp.Body.Close()

	metrics.ThreadsAPIRequestsTotal.WithLabelValues(metricPath(path), fmt.Sprint(resp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, body []byte) error {
	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		envelope.Error.StatusCode = status
		return envelope.Error
	}
	return &APIError{StatusCode: status, Message: strings.TrimSpace(string(body))}
}

// metricPath keeps media ids out of metric labels.
func metricPath(path string) string {
	switch {
	case strings.HasSuffix(path, "/profile_posts"), strings.HasSuffix(path, "/me"),
		path == "/access_token", path == "/refresh_access_token":
		return path
	default:
		return "media"
	}
}

package threads

import (
	"fmt"
	"time"
)

// Media is a Threads media object as returned by the Graph API.
type Media struct {
	ID               string      `json:"id"`
	MediaProductType string      `json:"media_product_type,omitempty"`
	MediaType        string      `json:"media_type,omitempty"`
	MediaURL         string      `json:"media_url,omitempty"`
	Permalink        string      `json:"permalink,omitempty"`
	Username         string      `json:"username,omitempty"`
	Text             string      `json:"text,omitempty"`
	TopicTag         string      `json:"topic_tag,omitempty"`
	Timestamp        string      `json:"timestamp,omitempty"`
	Shortcode        string      `json:"shortcode,omitempty"`
	ThumbnailURL     string      `json:"thumbnail_url,omitempty"`
	IsQuotePost      bool        `json:"is_quote_post,omitempty"`
	Children         *MediaPage  `json:"children,omitempty"`
	Owner            *MediaOwner `json:"owner,omitempty"`
}

type MediaOwner struct {
	ID string `json:"id"`
}

type MediaPage struct {
	Data   []Media `json:"data"`
	Paging *Paging `json:"paging,omitempty"`
}

type Paging struct {
	Cursors *struct {
		Before string `json:"before"`
		After  string `json:"after"`
	} `json:"cursors,omitempty"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
}

// Profile is the /me response.
type Profile struct {
	ID                string `json:"id"`
	Username          string `json:"username,omitempty"`
	Name              string `json:"name,omitempty"`
	ProfilePictureURL string `json:"threads_profile_picture_url,omitempty"`
	Biography         string `json:"threads_biography,omitempty"`
}

// LongLivedToken is returned by th_exchange_token and th_refresh_token.
type LongLivedToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ExpiresAt is the deadline implied by ExpiresIn, or zero when unknown.
func (t *LongLivedToken) ExpiresAt(now time.Time) time.Time {
	if t.ExpiresIn <= 0 {
		return time.Time{}
	}
	return now.Add(time.Duration(t.ExpiresIn) * time.Second)
}

const (
	MediaTypeText     = "TEXT_POST"
	MediaTypeImage    = "IMAGE"
	MediaTypeVideo    = "VIDEO"
	MediaTypeCarousel = "CAROUSEL_ALBUM"
)

// APIError is the Graph API error envelope.
type APIError struct {
	StatusCode   int    `json:"-"`
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode"`
	FBTraceID    string `json:"fbtrace_id"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("threads api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("threads api error (status %d, code %d): %s", e.StatusCode, e.Code, e.Message)
}

// Temporary reports whether retrying the call may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500 || e.StatusCode == 0
}

package threads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"threadgems/internal/config"

	"golang.org/x/oauth2"
)

var ErrEmptyCode = errors.New("authorization code is empty")

// OAuth performs the server side of the authorization-code grant.
type OAuth struct {
	config     oauth2.Config
	httpClient *http.Client
}

func NewOAuth(cfg config.ThreadsConfig, httpClient *http.Client) *OAuth {
	return &OAuth{
		config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthBaseURL + "/oauth/authorize",
				TokenURL:  cfg.GraphBaseURL + "/oauth/access_token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: httpClient,
	}
}

// ShortLivedToken is the result of a code exchange.
type ShortLivedToken struct {
	Token  *oauth2.Token
	UserID string
}

// Exchange trades code for a short-lived token. redirectURI must match the one
// sent to the authorize endpoint; empty means the configured default.
func (o *OAuth) Exchange(ctx context.Context, code, redirectURI string) (*ShortLivedToken, error) {
	if code == "" {
		return nil, ErrEmptyCode
	}

	cfg := o.config
	if redirectURI != "" {
		cfg.RedirectURL = redirectURI
	}

	if o.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.httpClient)
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	return &ShortLivedToken{Token: token, UserID: extraString(token.Extra("user_id"))}, nil
}

// extraString renders the user_id extra. It arrives as a JSON number, which
// oauth2 decodes as float64 and may lose precision; callers prefer the id
// from /me when they can get it.
func extraString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return ""
	}
}

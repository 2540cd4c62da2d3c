package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"hotelpoc/internal/domain"
)

// Credentials for the client-credentials grant. Loaded once per process.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Authenticator exchanges Credentials for a bearer token on every call.
// Tokens are neither cached nor refreshed.
type Authenticator struct {
	c     *Client
	creds Credentials
}

func NewAuthenticator(c *Client, creds Credentials) (*Authenticator, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: AMADEUS_CLIENT_ID / AMADEUS_CLIENT_SECRET are required", domain.ErrConfiguration)
	}
	return &Authenticator{c: c, creds: creds}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (a *Authenticator) Token(ctx context.Context) (string, error) {
	hdr := http.Header{}
	hdr.Set("Accept", "application/json")

	resp, err := a.c.Do(ctx, Request{
		Method:   http.MethodPost,
		URL:      a.c.base + tokenPath,
		Endpoint: "token",
		Header:   hdr,
		Form: url.Values{
			"grant_type":    {"client_credentials"},
			"client_id":     {a.creds.ClientID},
			"client_secret": {a.creds.ClientSecret},
		},
		Timeout: authTimeout,
	})
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &domain.AuthError{Reason: "token request rejected", Err: resp.apiError()}
	}

	var tr tokenResponse
	if err := json.Unmarshal(resp.Body, &tr); err != nil {
		return "", &domain.AuthError{Reason: "decode token response", Err: err}
	}
	if tr.AccessToken == "" {
		return "", &domain.AuthError{Reason: "access_token missing from token response"}
	}

	log.Debug().
		Str("token_type", tr.TokenType).
		Int("expires_in", tr.ExpiresIn).
		Msg("amadeus token acquired")
	return tr.AccessToken, nil
}

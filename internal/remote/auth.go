package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/token"
)

// AuthClient implements Authenticator against an OAuth-style token endpoint
// supporting the password and refresh_token grants.
type AuthClient struct {
	tokenURL   string
	httpClient *http.Client
}

// NewAuthClient returns an AuthClient for the given token endpoint URL.
func NewAuthClient(tokenURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{
		tokenURL:   tokenURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// tokenResponse is the token endpoint's JSON reply.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (a *AuthClient) Login(ctx context.Context, username, password string) (token.AccessToken, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)
	return a.requestToken(ctx, form)
}

func (a *AuthClient) Refresh(ctx context.Context, expired token.AccessToken) (token.AccessToken, error) {
	if expired.RefreshToken == "" {
		return token.AccessToken{}, fmt.Errorf("no refresh token available")
	}
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", expired.RefreshToken)
	return a.requestToken(ctx, form)
}

func (a *AuthClient) requestToken(ctx context.Context, form url.Values) (token.AccessToken, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return token.AccessToken{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return token.AccessToken{}, fmt.Errorf("%w: %v", common.ErrRemoteVault, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return token.AccessToken{}, fmt.Errorf("%w: token endpoint returned status %d", common.ErrRemoteVault, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return token.AccessToken{}, fmt.Errorf("%w: decoding token response: %v", common.ErrRemoteVault, err)
	}
	if tr.AccessToken == "" {
		return token.AccessToken{}, fmt.Errorf("%w: empty access token", common.ErrRemoteVault)
	}

	return token.New(tr.AccessToken, tr.RefreshToken, time.Duration(tr.ExpiresIn)*time.Second), nil
}

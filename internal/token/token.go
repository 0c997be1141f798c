// Package token implements the access-token lifecycle for the remote vault:
// a single persisted token slot, expiry checks, and the refresh-else-login
// fallback used to keep a usable token on hand.
package token

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is the bearer credential for the remote vault. ExpiresIn of
// zero means the token never expires. Tokens are persisted unencrypted:
// they authenticate to the remote vault and are not protected by the master
// passphrase, a known limitation carried over deliberately.
type AccessToken struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
	CreatedAt    time.Time
}

// New builds a token created now. When the server did not report a validity
// duration but the access token is a JWT, the expiry is backfilled from its
// exp claim; otherwise a zero ExpiresIn stands and the token never expires.
func New(accessToken, refreshToken string, expiresIn time.Duration) AccessToken {
	t := AccessToken{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if t.ExpiresIn == 0 {
		if exp, ok := jwtExpiry(accessToken); ok && exp.After(t.CreatedAt) {
			t.ExpiresIn = exp.Sub(t.CreatedAt)
		}
	}
	return t
}

// IsExpired reports whether the token's validity window has passed.
// A token without ExpiresIn never expires.
func (t AccessToken) IsExpired() bool {
	if t.ExpiresIn == 0 {
		return false
	}
	return !t.CreatedAt.Add(t.ExpiresIn).After(time.Now())
}

// jwtExpiry extracts the exp claim from a JWT without verifying the
// signature. Verification belongs to the server; the client only needs the
// timestamp to schedule a refresh.
func jwtExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// encode serializes the token as the four-field tuple
// access_token,refresh_token,expires_in_seconds,created_unix.
func encode(t AccessToken) ([]byte, error) {
	s := fmt.Sprintf("%s,%s,%d,%d",
		t.AccessToken, t.RefreshToken, int64(t.ExpiresIn.Seconds()), t.CreatedAt.Unix())
	return []byte(s), nil
}

func decode(data []byte) (AccessToken, error) {
	parts := strings.Split(strings.TrimSpace(string(data)), ",")
	if len(parts) != 4 || parts[0] == "" {
		return AccessToken{}, fmt.Errorf("%w: malformed token file", common.ErrCorrupt)
	}
	expiresSeconds, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return AccessToken{}, fmt.Errorf("%w: bad expires_in: %v", common.ErrCorrupt, err)
	}
	createdUnix, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return AccessToken{}, fmt.Errorf("%w: bad created_timestamp: %v", common.ErrCorrupt, err)
	}
	return AccessToken{
		AccessToken:  parts[0],
		RefreshToken: parts[1],
		ExpiresIn:    time.Duration(expiresSeconds) * time.Second,
		CreatedAt:    time.Unix(createdUnix, 0).UTC(),
	}, nil
}

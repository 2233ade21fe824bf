// Package tokens reads claims out of bearer tokens WITHOUT verifying them.
// The result is a display hint; the backend stays the only authority on
// identity.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrUndecodable = errors.New("token cannot be decoded")

// Claims is the payload issued by the auth backend.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId,omitempty"`
	AltID  string `json:"id,omitempty"`
}

// Identifier returns userId, then id, then sub.
func (c *Claims) Identifier() string {
	switch {
	case c.UserID != "":
		return c.UserID
	case c.AltID != "":
		return c.AltID
	default:
		return c.Subject
	}
}

// Decode parses token without checking its signature.
func Decode(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return claims, nil
}

// UserID decodes token and returns its user identifier. A token that parses
// but names no user is reported as ErrUndecodable.
func UserID(token string) (string, error) {
	claims, err := Decode(token)
	if err != nil {
		return "", err
	}
	id := claims.Identifier()
	if id == "" {
		return "", fmt.Errorf("%w: no user id claim", ErrUndecodable)
	}
	return id, nil
}

// ExpiredAt reports whether exp is set and not after now. Claims without
// exp never expire here.
func (c *Claims) ExpiredAt(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Time)
}

// Expired decodes token and reports ExpiredAt. Undecodable tokens report
// false; use Decode to tell them apart.
func Expired(token string, now time.Time) bool {
	claims, err := Decode(token)
	if err != nil {
		return false
	}
	return claims.ExpiredAt(now)
}

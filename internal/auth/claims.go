package auth

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SubjectID accepts both numeric and string user ids from token payloads.
type SubjectID string

func (id *SubjectID) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*id = SubjectID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*id = SubjectID(s)
	return nil
}

type Claims struct {
	UserID SubjectID `json:"user_id,omitempty"`
	Email  string    `json:"email,omitempty"`
	Role   string    `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the access token payload without verifying the
// signature; the backend remains the only verifier.
func ParseClaims(token string) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrNoAccessToken
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return claims, nil
}

// BuyerID is the user id claim, falling back to the standard subject.
func (c *Claims) BuyerID() string {
	if c.UserID != "" {
		return string(c.UserID)
	}
	return c.Subject
}

// ExpiresWithin reports whether the token expires before now+d. Tokens
// without an exp claim never report expiry.
func (c *Claims) ExpiresWithin(now time.Time, d time.Duration) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !c.ExpiresAt.Time.After(now.Add(d))
}

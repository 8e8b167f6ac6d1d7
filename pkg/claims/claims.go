package claims

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded payload of a session token. Besides the identity
// fields the server promises, every other claim is carried opaquely in Extra
// and passed through untouched.
type Claims struct {
	UserID string         `json:"-"`
	Name   string         `json:"name,omitempty"`
	Email  string         `json:"email,omitempty"`
	Role   string         `json:"role,omitempty"`
	Extra  map[string]any `json:"-"`

	expiresAt time.Time
	issuedAt  time.Time
}

// ExpiresAt returns the embedded expiry. The zero time means the token
// carried no expiry claim.
func (c *Claims) ExpiresAt() time.Time {
	return c.expiresAt
}

// IssuedAt returns the embedded issue time, or the zero time if absent.
func (c *Claims) IssuedAt() time.Time {
	return c.issuedAt
}

// IsExpired reports whether the claims are past their expiry at the given
// instant. A token without an expiry claim is treated as expired: the server
// contract does not guarantee non-expiring tokens, so we fail closed.
func (c *Claims) IsExpired(now time.Time) bool {
	if c.expiresAt.IsZero() {
		return true
	}
	return now.After(c.expiresAt)
}

// Decode parses a session token into Claims without verifying its signature.
// Signature verification is the server's job on every request; the client
// only reads the payload. Malformed input returns ErrMalformedToken, never a
// panic.
func Decode(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMalformedToken
	}

	parser := jwt.NewParser()
	raw := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, raw); err != nil {
		return nil, ErrMalformedToken
	}

	c := &Claims{Extra: make(map[string]any)}

	for key, value := range raw {
		switch key {
		case "sub", "uid", "id":
			if s, ok := value.(string); ok && c.UserID == "" {
				c.UserID = s
			}
		case "name":
			c.Name, _ = value.(string)
		case "email":
			c.Email, _ = value.(string)
		case "role":
			c.Role, _ = value.(string)
		case "exp":
			if t, ok := numericTime(value); ok {
				c.expiresAt = t
			}
		case "iat":
			if t, ok := numericTime(value); ok {
				c.issuedAt = t
			}
		default:
			c.Extra[key] = value
		}
	}

	// "sub" wins over the vendor-specific id claims when both are present.
	if s, ok := raw["sub"].(string); ok && s != "" {
		c.UserID = s
	}

	return c, nil
}

// DecodeValid decodes the token and additionally checks expiry against now.
// Expired but otherwise well-formed tokens return ErrExpiredToken alongside
// the decoded claims so callers can still inspect them.
func DecodeValid(token string, now time.Time) (*Claims, error) {
	c, err := Decode(token)
	if err != nil {
		return nil, err
	}
	if c.IsExpired(now) {
		return c, ErrExpiredToken
	}
	return c, nil
}

// numericTime converts the JSON representations of a numeric date claim.
func numericTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case float64:
		return time.Unix(int64(v), 0), true
	case int64:
		return time.Unix(v, 0), true
	case jwt.NumericDate:
		return v.Time, true
	}
	return time.Time{}, false
}

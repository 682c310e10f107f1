package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the parts of an ID token the client displays.
type Claims struct {
	Email     string
	ExpiresAt time.Time
}

// ParseClaims reads email and expiry from token without verifying its
// signature. Opaque tokens yield empty claims and ok=false.
func ParseClaims(token string) (Claims, bool) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, false
	}

	var c Claims
	if email, ok := mc["email"].(string); ok {
		c.Email = email
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, true
}

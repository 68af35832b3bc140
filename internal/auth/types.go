package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// claims carried by access tokens; the user id lives in "sub"
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

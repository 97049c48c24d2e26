package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIdentity is the subject an access token is issued for.
type TokenIdentity struct {
	AccountID uuid.UUID
	Username  string
}

// Claims defines the custom claims for the access token.
type Claims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Type     string   `json:"type"`
	jwt.RegisteredClaims
}

// AccountID parses the subject claim.
func (c *Claims) AccountID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService issues and validates signed bearer tokens.
type TokenService interface {
	// Issue encodes identity and role names into a signed access token.
	Issue(identity TokenIdentity, roleNames []string) (string, error)

	// Validate checks the signature and expiry of a token and returns its claims.
	Validate(token string) (*Claims, error)
}

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims is the claim set carried by auth gateway access tokens.
//
// It embeds [jwt.RegisteredClaims] for sub/exp/iat and adds the fields the
// gateway puts next to them. The client never verifies the signature, it
// only reads the claims to restore a session offline.
type AccessTokenClaims struct {
	jwt.RegisteredClaims

	// Email is the address the identity signed up with.
	Email string `json:"email"`

	// Role is the database role the gateway assigns ("authenticated"). It is
	// unrelated to [Role] stored in the users table.
	Role string `json:"role"`

	// SessionID identifies the refresh-token family on the gateway.
	SessionID string `json:"session_id"`
}

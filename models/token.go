package models

import "github.com/golang-jwt/jwt/v5"

// AdminToken is a parsed or freshly issued admin session token.
type AdminToken struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	SignedString string `json:"-"`
}

func (t *AdminToken) String() string {
	return t.SignedString
}

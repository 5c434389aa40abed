package domain

import "github.com/golang-jwt/jwt/v5"

// Claims carried by the toy login token. The gate exists so the analysis UI
// is not wide open on the office network; it is not a security boundary.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the only supported JWT claims shape for this service.
// Tokens historically carried the user id both in a custom "id" claim and in
// the registered "sub" claim; both forms remain accepted on verification.
type Claims struct {
	jwt.RegisteredClaims

	UserID string `json:"id,omitempty"`
}

// PrincipalID returns the authenticated user id carried by the token,
// preferring the explicit "id" claim and falling back to "sub".
// An empty return means the token names no principal.
func (c Claims) PrincipalID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

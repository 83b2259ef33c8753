package domain

import "time"

// RefreshToken is one link in a rotation chain. Only a hash of the
// opaque token is ever stored; Family ties the chain together so a
// replayed old token can revoke every descendant.
type RefreshToken struct {
	ID        string
	UserID    int64
	TokenHash string
	Family    string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

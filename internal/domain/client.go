package domain

import "time"

// Client is an API consumer holding one key. Only the bcrypt hash of the key secret is stored.
type Client struct {
	ID        string
	KeyHash   string
	Revoked   bool
	CreatedAt time.Time
}

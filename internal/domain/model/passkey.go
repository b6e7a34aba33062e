package model

import "time"

// PasskeyRecord is a random bearer token generated for a site.
type PasskeyRecord struct {
	ID        int64
	Site      string
	Passkey   string
	CreatedAt time.Time
}

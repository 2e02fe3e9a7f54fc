package entities

import "time"

// Profile is this service's projection of an account. ProfileID is an
// internal surrogate key; CredentialID is the stable cross-service id.
type Profile struct {
	ProfileID    int64
	CredentialID int64
	Username     string
	Email        string
	Role         string
	CreatedAt    time.Time
}

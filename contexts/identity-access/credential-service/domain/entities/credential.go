package entities

import "time"

// Credential is the identity record owned by this service. PasswordHash is
// an opaque, already-hashed secret; hashing and token issuance live outside
// the coordination layer.
type Credential struct {
	CredentialID int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

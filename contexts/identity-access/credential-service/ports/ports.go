package ports

import (
	"context"

	"wattline/contexts/identity-access/credential-service/domain/entities"
	"wattline/internal/shared/events"
)

// CredentialRepository owns credential persistence. Lookup methods report
// existence explicitly so callers can distinguish "absent" from failure.
type CredentialRepository interface {
	GetByID(ctx context.Context, credentialID int64) (entities.Credential, bool, error)
	GetByUsername(ctx context.Context, username string) (entities.Credential, bool, error)
	GetByEmail(ctx context.Context, email string) (entities.Credential, bool, error)
	Create(ctx context.Context, credential entities.Credential) (entities.Credential, error)
	Update(ctx context.Context, credential entities.Credential) error
	// Delete reports whether a row existed. A missing row is not an error:
	// delete consumers treat it as a benign replay.
	Delete(ctx context.Context, credentialID int64) (bool, error)
}

// CreateProfileRequest is the payload for the synchronous profile-service
// call inside the create-account saga.
type CreateProfileRequest struct {
	CredentialID int64
	Username     string
	Email        string
	Role         string
}

// ProfileCreator is the profile-service collaborator. Any returned error
// aborts the saga; a *collab.Error carries the collaborator's status and
// body verbatim.
type ProfileCreator interface {
	CreateProfile(ctx context.Context, req CreateProfileRequest) error
}

// EventHandler matches the platform bus handler signature.
type EventHandler = func(ctx context.Context, envelope events.Envelope) error

type EventPublisher interface {
	Publish(ctx context.Context, topic string, envelope events.Envelope) error
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, handler EventHandler) error
}

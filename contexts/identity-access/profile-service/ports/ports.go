package ports

import (
	"context"

	"wattline/contexts/identity-access/profile-service/domain/entities"
	"wattline/internal/shared/events"
)

type ProfileRepository interface {
	GetByCredentialID(ctx context.Context, credentialID int64) (entities.Profile, bool, error)
	GetByUsername(ctx context.Context, username string) (entities.Profile, bool, error)
	GetByEmail(ctx context.Context, email string) (entities.Profile, bool, error)
	List(ctx context.Context) ([]entities.Profile, error)
	Create(ctx context.Context, profile entities.Profile) (entities.Profile, error)
	Update(ctx context.Context, profile entities.Profile) error
	// DeleteByCredentialID reports whether a row existed.
	DeleteByCredentialID(ctx context.Context, credentialID int64) (bool, error)
}

// CredentialDeleter is the synchronous credential-service collaborator used
// by the delete-account saga. Any returned error aborts the saga; a
// *collab.Error carries the collaborator's status and body verbatim.
type CredentialDeleter interface {
	DeleteCredential(ctx context.Context, credentialID int64) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, envelope events.Envelope) error
}

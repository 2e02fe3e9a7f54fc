package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "wattline/contexts/identity-access/credential-service/application"
	"wattline/contexts/identity-access/credential-service/domain/entities"
	domainerrors "wattline/contexts/identity-access/credential-service/domain/errors"
	"wattline/contexts/identity-access/credential-service/ports"
	"wattline/internal/shared/events"
)

const senderName = "credential-service"

type RegisterAccountCommand struct {
	Username     string
	Email        string
	Role         string
	PasswordHash string
}

type RegisterAccountResult struct {
	Credential entities.Credential
}

// RegisterAccountUseCase runs the create-account saga:
// 1) create the credential row locally
// 2) synchronously create the profile in the profile service
// 3) on failure, compensate with a credential delete and return the
//    collaborator's error verbatim
// 4) on success, broadcast add_owner best-effort (never rolled back).
// Terminal states: committed (credential and profile exist) or aborted
// (neither exists).
type RegisterAccountUseCase struct {
	Credentials ports.CredentialRepository
	Profiles    ports.ProfileCreator
	Publisher   ports.EventPublisher
	Logger      *slog.Logger
}

func (u RegisterAccountUseCase) Execute(ctx context.Context, cmd RegisterAccountCommand) (RegisterAccountResult, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.Username) == "" ||
		strings.TrimSpace(cmd.Email) == "" ||
		strings.TrimSpace(cmd.Role) == "" ||
		cmd.PasswordHash == "" {
		return RegisterAccountResult{}, domainerrors.ErrMissingFields
	}

	if _, exists, err := u.Credentials.GetByUsername(ctx, cmd.Username); err != nil {
		return RegisterAccountResult{}, err
	} else if exists {
		return RegisterAccountResult{}, domainerrors.ErrUsernameExists
	}
	if _, exists, err := u.Credentials.GetByEmail(ctx, cmd.Email); err != nil {
		return RegisterAccountResult{}, err
	} else if exists {
		return RegisterAccountResult{}, domainerrors.ErrEmailExists
	}

	credential, err := u.Credentials.Create(ctx, entities.Credential{
		Username:     cmd.Username,
		Email:        cmd.Email,
		PasswordHash: cmd.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return RegisterAccountResult{}, err
	}

	profileReq := ports.CreateProfileRequest{
		CredentialID: credential.CredentialID,
		Username:     cmd.Username,
		Email:        cmd.Email,
		Role:         cmd.Role,
	}
	if err := u.Profiles.CreateProfile(ctx, profileReq); err != nil {
		u.compensate(ctx, logger, credential.CredentialID)
		logger.Error("register aborted, profile creation failed",
			"event", "register_account_aborted",
			"module", "identity-access/credential-service",
			"layer", "application",
			"credential_id", credential.CredentialID,
			"username", cmd.Username,
			"error", err.Error(),
		)
		return RegisterAccountResult{}, err
	}

	u.broadcastOwnerAdded(ctx, logger, credential)

	logger.Info("account registered",
		"event", "register_account_committed",
		"module", "identity-access/credential-service",
		"layer", "application",
		"credential_id", credential.CredentialID,
		"username", cmd.Username,
	)
	return RegisterAccountResult{Credential: credential}, nil
}

// compensate removes the just-created credential so an aborted saga leaves
// no row behind. A failed compensation is logged loudly: it is the one path
// that can strand a credential without a profile.
func (u RegisterAccountUseCase) compensate(ctx context.Context, logger *slog.Logger, credentialID int64) {
	if _, err := u.Credentials.Delete(ctx, credentialID); err != nil {
		logger.Error("compensating credential delete failed",
			"event", "register_account_compensation_failed",
			"module", "identity-access/credential-service",
			"layer", "application",
			"credential_id", credentialID,
			"error", err.Error(),
		)
	}
}

// broadcastOwnerAdded is best-effort: the registry self-heals a missing
// owner on the first device add, so a lost event is logged and accepted.
func (u RegisterAccountUseCase) broadcastOwnerAdded(ctx context.Context, logger *slog.Logger, credential entities.Credential) {
	envelope, err := events.New(events.TypeAddOwner, senderName, events.OwnerAdded{
		OwnerID:  credential.CredentialID,
		Username: credential.Username,
	})
	if err == nil {
		err = u.Publisher.Publish(ctx, events.TopicIdentityEvents, envelope)
	}
	if err != nil {
		logger.Warn("add_owner broadcast failed, registry state may drift",
			"event", "register_account_broadcast_failed",
			"module", "identity-access/credential-service",
			"layer", "application",
			"credential_id", credential.CredentialID,
			"error", err.Error(),
		)
	}
}

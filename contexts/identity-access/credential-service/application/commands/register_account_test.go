package commands

import (
	"context"
	"errors"
	"testing"

	"wattline/contexts/identity-access/credential-service/adapters/memory"
	domainerrors "wattline/contexts/identity-access/credential-service/domain/errors"
	"wattline/contexts/identity-access/credential-service/ports"
	"wattline/internal/shared/collab"
	"wattline/internal/shared/events"
)

type fakeProfileCreator struct {
	err   error
	calls []ports.CreateProfileRequest
}

func (f *fakeProfileCreator) CreateProfile(_ context.Context, req ports.CreateProfileRequest) error {
	f.calls = append(f.calls, req)
	return f.err
}

type recordingPublisher struct {
	err       error
	envelopes []publishedEnvelope
}

type publishedEnvelope struct {
	topic    string
	envelope events.Envelope
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, envelope events.Envelope) error {
	if p.err != nil {
		return p.err
	}
	p.envelopes = append(p.envelopes, publishedEnvelope{topic: topic, envelope: envelope})
	return nil
}

func registerCommand() RegisterAccountCommand {
	return RegisterAccountCommand{
		Username:     "alice",
		Email:        "alice@example.com",
		Role:         "client",
		PasswordHash: "x",
	}
}

func TestRegisterAccountCommitsAndBroadcastsOwner(t *testing.T) {
	store := memory.NewStore()
	profiles := &fakeProfileCreator{}
	publisher := &recordingPublisher{}
	useCase := RegisterAccountUseCase{Credentials: store, Profiles: profiles, Publisher: publisher}

	result, err := useCase.Execute(context.Background(), registerCommand())
	if err != nil {
		t.Fatalf("expected register to commit, got %v", err)
	}
	if result.Credential.CredentialID == 0 {
		t.Fatalf("expected an assigned credential id")
	}
	if len(profiles.calls) != 1 || profiles.calls[0].CredentialID != result.Credential.CredentialID {
		t.Fatalf("expected one profile creation for the new credential, got %+v", profiles.calls)
	}
	if len(publisher.envelopes) != 1 {
		t.Fatalf("expected one add_owner broadcast, got %d", len(publisher.envelopes))
	}
	published := publisher.envelopes[0]
	if published.topic != events.TopicIdentityEvents || published.envelope.Type != events.TypeAddOwner {
		t.Fatalf("unexpected broadcast %s/%s", published.topic, published.envelope.Type)
	}
}

func TestRegisterAccountCompensatesWhenProfileCreationFails(t *testing.T) {
	store := memory.NewStore()
	collaboratorErr := collab.NewError(400, []byte(`{"error":"username already exists"}`))
	profiles := &fakeProfileCreator{err: collaboratorErr}
	publisher := &recordingPublisher{}
	useCase := RegisterAccountUseCase{Credentials: store, Profiles: profiles, Publisher: publisher}

	_, err := useCase.Execute(context.Background(), registerCommand())
	if err == nil {
		t.Fatalf("expected register to abort")
	}
	got, ok := collab.As(err)
	if !ok {
		t.Fatalf("expected the collaborator error verbatim, got %v", err)
	}
	if got.StatusCode != 400 || string(got.Body) != string(collaboratorErr.Body) {
		t.Fatalf("collaborator status/body altered: %d %s", got.StatusCode, got.Body)
	}
	if store.Count() != 0 {
		t.Fatalf("expected compensating delete to leave no credential, have %d", store.Count())
	}
	if len(publisher.envelopes) != 0 {
		t.Fatalf("aborted saga must not broadcast add_owner")
	}
}

func TestRegisterAccountRejectsDuplicateUsername(t *testing.T) {
	store := memory.NewStore()
	useCase := RegisterAccountUseCase{Credentials: store, Profiles: &fakeProfileCreator{}, Publisher: &recordingPublisher{}}

	if _, err := useCase.Execute(context.Background(), registerCommand()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	cmd := registerCommand()
	cmd.Email = "other@example.com"
	_, err := useCase.Execute(context.Background(), cmd)
	if !errors.Is(err, domainerrors.ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
	if store.Count() != 1 {
		t.Fatalf("duplicate register must not create a credential, have %d", store.Count())
	}
}

func TestRegisterAccountValidatesRequiredFields(t *testing.T) {
	useCase := RegisterAccountUseCase{Credentials: memory.NewStore(), Profiles: &fakeProfileCreator{}, Publisher: &recordingPublisher{}}

	cmd := registerCommand()
	cmd.Email = "  "
	if _, err := useCase.Execute(context.Background(), cmd); !errors.Is(err, domainerrors.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestRegisterAccountCommitsEvenWhenBroadcastFails(t *testing.T) {
	store := memory.NewStore()
	publisher := &recordingPublisher{err: errors.New("broker unreachable")}
	useCase := RegisterAccountUseCase{Credentials: store, Profiles: &fakeProfileCreator{}, Publisher: publisher}

	if _, err := useCase.Execute(context.Background(), registerCommand()); err != nil {
		t.Fatalf("broadcast failure must not abort the saga, got %v", err)
	}
	if store.Count() != 1 {
		t.Fatalf("expected the credential to remain committed")
	}
}

package commands

import (
	"context"
	"errors"
	"testing"

	"wattline/contexts/identity-access/profile-service/adapters/memory"
	domainerrors "wattline/contexts/identity-access/profile-service/domain/errors"
	"wattline/internal/shared/collab"
	"wattline/internal/shared/events"
)

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

func (p *recordingPublisher) types() []string {
	var out []string
	for _, published := range p.envelopes {
		out = append(out, published.envelope.Type)
	}
	return out
}

type fakeCredentialDeleter struct {
	err   error
	calls []int64
}

func (f *fakeCredentialDeleter) DeleteCredential(_ context.Context, credentialID int64) error {
	f.calls = append(f.calls, credentialID)
	return f.err
}

func createProfileCommand() CreateProfileCommand {
	return CreateProfileCommand{
		CredentialID: 7,
		Username:     "alice",
		Email:        "alice@example.com",
		Role:         "client",
	}
}

func TestCreateProfileIsIdempotentOnCredentialID(t *testing.T) {
	store := memory.NewStore()
	useCase := CreateProfileUseCase{Profiles: store}

	first, err := useCase.Execute(context.Background(), createProfileCommand())
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	replay, err := useCase.Execute(context.Background(), createProfileCommand())
	if err != nil {
		t.Fatalf("replayed create must succeed, got %v", err)
	}
	if replay.ProfileID != first.ProfileID {
		t.Fatalf("replay created a second profile: %d vs %d", replay.ProfileID, first.ProfileID)
	}
	if store.Count() != 1 {
		t.Fatalf("expected exactly one profile, have %d", store.Count())
	}
}

func TestCreateProfileValidatesRequiredFields(t *testing.T) {
	useCase := CreateProfileUseCase{Profiles: memory.NewStore()}

	cmd := createProfileCommand()
	cmd.CredentialID = 0
	if _, err := useCase.Execute(context.Background(), cmd); !errors.Is(err, domainerrors.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestEditProfileBroadcastsBothDenormalizedCopies(t *testing.T) {
	store := memory.NewStore()
	if _, err := (CreateProfileUseCase{Profiles: store}).Execute(context.Background(), createProfileCommand()); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	publisher := &recordingPublisher{}
	useCase := EditProfileUseCase{Profiles: store, Publisher: publisher}

	updated, err := useCase.Execute(context.Background(), EditProfileCommand{
		CredentialID: 7,
		Username:     "alice2",
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if updated.Username != "alice2" {
		t.Fatalf("username not applied: %+v", updated)
	}

	got := publisher.types()
	if len(got) != 2 || got[0] != events.TypeUpdateAuthProfile || got[1] != events.TypeUpdateUserInDevices {
		t.Fatalf("expected update_auth_profile then update_user_in_devices, got %v", got)
	}
	for _, published := range publisher.envelopes {
		if published.topic != events.TopicProfileCRUD {
			t.Fatalf("broadcast on wrong topic %s", published.topic)
		}
	}
}

func TestEditProfileCommitsLocallyWhenBroadcastFails(t *testing.T) {
	store := memory.NewStore()
	if _, err := (CreateProfileUseCase{Profiles: store}).Execute(context.Background(), createProfileCommand()); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	useCase := EditProfileUseCase{Profiles: store, Publisher: &recordingPublisher{err: errors.New("broker unreachable")}}
	if _, err := useCase.Execute(context.Background(), EditProfileCommand{CredentialID: 7, Username: "alice2"}); err != nil {
		t.Fatalf("broadcast failure must not fail the edit, got %v", err)
	}

	profile, _, _ := store.GetByCredentialID(context.Background(), 7)
	if profile.Username != "alice2" {
		t.Fatalf("local update lost: %+v", profile)
	}
}

func TestEditProfileRejectsTakenUsername(t *testing.T) {
	store := memory.NewStore()
	creator := CreateProfileUseCase{Profiles: store}
	if _, err := creator.Execute(context.Background(), createProfileCommand()); err != nil {
		t.Fatalf("seed alice: %v", err)
	}
	other := createProfileCommand()
	other.CredentialID = 8
	other.Username = "bob"
	other.Email = "bob@example.com"
	if _, err := creator.Execute(context.Background(), other); err != nil {
		t.Fatalf("seed bob: %v", err)
	}

	useCase := EditProfileUseCase{Profiles: store, Publisher: &recordingPublisher{}}
	_, err := useCase.Execute(context.Background(), EditProfileCommand{CredentialID: 8, Username: "alice"})
	if !errors.Is(err, domainerrors.ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
}

func TestDeleteAccountAbortPreservesProfile(t *testing.T) {
	store := memory.NewStore()
	if _, err := (CreateProfileUseCase{Profiles: store}).Execute(context.Background(), createProfileCommand()); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	collaboratorErr := collab.NewError(503, []byte(`{"error":"unavailable"}`))
	publisher := &recordingPublisher{}
	useCase := DeleteAccountUseCase{
		Profiles:    store,
		Credentials: &fakeCredentialDeleter{err: collaboratorErr},
		Publisher:   publisher,
	}

	err := useCase.Execute(context.Background(), 7)
	got, ok := collab.As(err)
	if !ok || got.StatusCode != 503 {
		t.Fatalf("expected the collaborator error verbatim, got %v", err)
	}
	if store.Count() != 1 {
		t.Fatalf("aborted delete must preserve the profile")
	}
	if len(publisher.envelopes) != 0 {
		t.Fatalf("aborted delete must not broadcast cleanup events")
	}
}

func TestDeleteAccountCommitsAndBroadcastsCleanup(t *testing.T) {
	store := memory.NewStore()
	if _, err := (CreateProfileUseCase{Profiles: store}).Execute(context.Background(), createProfileCommand()); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	deleter := &fakeCredentialDeleter{}
	publisher := &recordingPublisher{}
	useCase := DeleteAccountUseCase{Profiles: store, Credentials: deleter, Publisher: publisher}

	if err := useCase.Execute(context.Background(), 7); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(deleter.calls) != 1 || deleter.calls[0] != 7 {
		t.Fatalf("expected one credential delete for id 7, got %v", deleter.calls)
	}
	if store.Count() != 0 {
		t.Fatalf("profile should be gone")
	}

	got := publisher.types()
	if len(got) != 2 || got[0] != events.TypeDeleteAuth || got[1] != events.TypeDeleteDeviceUser {
		t.Fatalf("expected delete_auth then delete_device_user, got %v", got)
	}
}

func TestDeleteAccountUnknownProfile(t *testing.T) {
	useCase := DeleteAccountUseCase{
		Profiles:    memory.NewStore(),
		Credentials: &fakeCredentialDeleter{},
		Publisher:   &recordingPublisher{},
	}
	if err := useCase.Execute(context.Background(), 99); !errors.Is(err, domainerrors.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

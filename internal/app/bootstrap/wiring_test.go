package bootstrap

import (
	"context"
	"strings"
	"testing"

	registryservice "wattline/contexts/device-fleet/registry-service"
	registryhttp "wattline/contexts/device-fleet/registry-service/transport/http"
	credentialservice "wattline/contexts/identity-access/credential-service"
	credentialports "wattline/contexts/identity-access/credential-service/ports"
	credentialhttp "wattline/contexts/identity-access/credential-service/transport/http"
	profileservice "wattline/contexts/identity-access/profile-service"
	profilehttp "wattline/contexts/identity-access/profile-service/transport/http"
	ingestionrouter "wattline/contexts/telemetry/ingestion-router"
	monitoringservice "wattline/contexts/telemetry/monitoring-service"
	notificationservice "wattline/contexts/telemetry/notification-service"
	"wattline/internal/platform/messaging"
	"wattline/internal/shared/events"
)

// In-process collaborator adapters standing in for the HTTP clients.

type inProcessProfiles struct {
	module *profileservice.Module
}

func (p *inProcessProfiles) CreateProfile(ctx context.Context, req credentialports.CreateProfileRequest) error {
	_, err := p.module.Handler.CreateProfileHandler(ctx, profilehttp.CreateProfileRequest{
		CredentialID: req.CredentialID,
		Username:     req.Username,
		Email:        req.Email,
		Role:         req.Role,
	})
	return err
}

type inProcessCredentials struct {
	module *credentialservice.Module
}

func (c *inProcessCredentials) DeleteCredential(ctx context.Context, credentialID int64) error {
	return c.module.Handler.DeleteHandler(ctx, credentialID)
}

type inProcessLimits struct {
	module *registryservice.Module
}

func (l *inProcessLimits) DeviceLimit(ctx context.Context, deviceID int64) (float64, error) {
	resp, err := l.module.Handler.DeviceLimitHandler(ctx, deviceID)
	if err != nil {
		return 0, err
	}
	return resp.MaxConsumption, nil
}

type fleet struct {
	bus          *messaging.Memory
	credential   credentialservice.Module
	profile      profileservice.Module
	registry     registryservice.Module
	monitoring   monitoringservice.Module
	notification notificationservice.Module
}

func buildFleet(t *testing.T) *fleet {
	t.Helper()
	ctx := context.Background()
	bus := messaging.NewMemory(nil)

	profiles := &inProcessProfiles{}
	credentials := &inProcessCredentials{}
	limits := &inProcessLimits{}

	credentialModule := credentialservice.NewInMemoryModule(profiles, bus, bus, nil)
	profileModule := profileservice.NewInMemoryModule(credentials, bus, nil)
	registryModule := registryservice.NewInMemoryModule(bus, bus, nil)
	monitoringModule := monitoringservice.NewInMemoryModule(limits, bus, bus, 1, nil)
	notificationModule := notificationservice.NewInMemoryModule(bus, nil)

	profiles.module = &profileModule
	credentials.module = &credentialModule
	limits.module = &registryModule

	router := &ingestionrouter.Router{Bus: bus, ReplicaCount: 3}

	for _, start := range []func(context.Context) error{
		credentialModule.Consumer.Start,
		registryModule.IdentityConsumer.Start,
		registryModule.ProfileConsumer.Start,
		monitoringModule.DeviceConsumer.Start,
		monitoringModule.ReadingConsumer.Start,
		notificationModule.Consumer.Start,
		router.Start,
	} {
		if err := start(ctx); err != nil {
			t.Fatalf("start consumer: %v", err)
		}
	}

	return &fleet{
		bus:          bus,
		credential:   credentialModule,
		profile:      profileModule,
		registry:     registryModule,
		monitoring:   monitoringModule,
		notification: notificationModule,
	}
}

func (f *fleet) registerAccount(t *testing.T, username string) int64 {
	t.Helper()
	resp, err := f.credential.Handler.RegisterHandler(context.Background(), credentialhttp.RegisterRequest{
		Username:     username,
		Email:        username + "@example.com",
		Role:         "client",
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return resp.CredentialID
}

func (f *fleet) addDevice(t *testing.T, ownerID int64, max float64) int64 {
	t.Helper()
	resp, err := f.registry.Handler.AddDeviceHandler(context.Background(), registryhttp.AddDeviceRequest{
		OwnerID:        ownerID,
		Name:           "smart meter",
		MaxConsumption: max,
	})
	if err != nil {
		t.Fatalf("add device: %v", err)
	}
	return resp.DeviceID
}

func TestOverconsumptionAlertReachesConnectedSubscriber(t *testing.T) {
	f := buildFleet(t)
	ctx := context.Background()

	ownerID := f.registerAccount(t, "alice")
	deviceID := f.addDevice(t, ownerID, 3)
	f.notification.Hub.Connect(ownerID)

	reading, err := events.New(events.TypeConsumptionReading, "device-simulator", events.ConsumptionReading{
		DeviceID: deviceID,
		OwnerID:  ownerID,
		Value:    4.2,
	})
	if err != nil {
		t.Fatalf("build reading: %v", err)
	}
	if err := f.bus.Publish(ctx, events.TopicTelemetryReadings, reading); err != nil {
		t.Fatalf("publish reading: %v", err)
	}

	delivered := f.notification.Hub.Delivered(ownerID)
	if len(delivered) != 1 {
		t.Fatalf("expected exactly one alert, got %d", len(delivered))
	}
	if !strings.Contains(delivered[0].Message, "exceeded its consumption limit") {
		t.Fatalf("unexpected alert text: %q", delivered[0].Message)
	}
	if f.monitoring.ReadingStore.Count() != 1 {
		t.Fatalf("reading should be persisted once, have %d", f.monitoring.ReadingStore.Count())
	}
}

func TestReadingBelowLimitProducesNoAlert(t *testing.T) {
	f := buildFleet(t)
	ctx := context.Background()

	ownerID := f.registerAccount(t, "alice")
	deviceID := f.addDevice(t, ownerID, 3)
	f.notification.Hub.Connect(ownerID)

	reading, err := events.New(events.TypeConsumptionReading, "device-simulator", events.ConsumptionReading{
		DeviceID: deviceID,
		OwnerID:  ownerID,
		Value:    2.5,
	})
	if err != nil {
		t.Fatalf("build reading: %v", err)
	}
	if err := f.bus.Publish(ctx, events.TopicTelemetryReadings, reading); err != nil {
		t.Fatalf("publish reading: %v", err)
	}

	if delivered := f.notification.Hub.Delivered(ownerID); len(delivered) != 0 {
		t.Fatalf("no alert expected, got %d", len(delivered))
	}
	if f.monitoring.ReadingStore.Count() != 1 {
		t.Fatalf("reading should still be persisted")
	}
}

func TestRegisterAbortLeavesNoAccountState(t *testing.T) {
	f := buildFleet(t)
	ctx := context.Background()

	// A profile that no credential knows about: the credential service's
	// local uniqueness checks pass, but the synchronous profile create
	// rejects the username, forcing the saga to compensate.
	if _, err := f.profile.Handler.CreateProfileHandler(ctx, profilehttp.CreateProfileRequest{
		CredentialID: 99,
		Username:     "bob",
		Email:        "bob@example.com",
		Role:         "client",
	}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	_, err := f.credential.Handler.RegisterHandler(ctx, credentialhttp.RegisterRequest{
		Username:     "bob",
		Email:        "bob+new@example.com",
		Role:         "client",
		PasswordHash: "x",
	})
	if err == nil {
		t.Fatalf("register should abort on the profile conflict")
	}

	if f.credential.Store.Count() != 0 {
		t.Fatalf("compensation must remove the credential, have %d", f.credential.Store.Count())
	}
	if f.profile.Store.Count() != 1 {
		t.Fatalf("only the seeded profile should exist, have %d", f.profile.Store.Count())
	}
}

func TestDeleteAccountUnassignsDevicesAndRemovesIdentity(t *testing.T) {
	f := buildFleet(t)
	ctx := context.Background()

	ownerID := f.registerAccount(t, "alice")
	f.addDevice(t, ownerID, 3)

	if err := f.profile.Handler.DeleteAccountHandler(ctx, ownerID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if f.credential.Store.Count() != 0 {
		t.Fatalf("credential should be gone")
	}
	if f.profile.Store.Count() != 0 {
		t.Fatalf("profile should be gone")
	}
	if f.registry.Store.Count() != 1 {
		t.Fatalf("device must survive its owner")
	}
	unassigned, err := f.registry.Store.ListByOwner(ctx, 0)
	if err != nil {
		t.Fatalf("list unassigned: %v", err)
	}
	if len(unassigned) != 1 {
		t.Fatalf("device should be reassigned to the unassigned sentinel")
	}
	if f.registry.OwnerStore.Count() != 0 {
		t.Fatalf("owner projection should be dropped")
	}
}

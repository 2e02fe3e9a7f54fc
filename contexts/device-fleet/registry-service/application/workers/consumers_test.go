package workers

import (
	"context"
	"testing"

	"wattline/contexts/device-fleet/registry-service/adapters/memory"
	"wattline/contexts/device-fleet/registry-service/domain/entities"
	"wattline/internal/shared/events"
)

func mustEnvelope(t *testing.T, eventType string, payload any) events.Envelope {
	t.Helper()
	envelope, err := events.New(eventType, "test", payload)
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	return envelope
}

func TestAddOwnerProjectionIsIdempotent(t *testing.T) {
	owners := memory.NewOwnerStore()
	consumer := IdentityEventsConsumer{Owners: owners}

	envelope := mustEnvelope(t, events.TypeAddOwner, events.OwnerAdded{OwnerID: 5, Username: "alice"})
	for i := 0; i < 2; i++ {
		if err := consumer.handle(context.Background(), envelope); err != nil {
			t.Fatalf("delivery %d failed: %v", i+1, err)
		}
	}

	if owners.Count() != 1 {
		t.Fatalf("replay must not create a second projection, have %d", owners.Count())
	}
	owner, _, _ := owners.Get(context.Background(), 5)
	if owner.DisplayName != "alice" {
		t.Fatalf("projection wrong: %+v", owner)
	}
}

func TestDeleteDeviceUserReassignsDevicesToSentinel(t *testing.T) {
	devices := memory.NewStore()
	owners := memory.NewOwnerStore()
	_ = owners.Upsert(context.Background(), entities.Owner{OwnerID: 5, DisplayName: "alice"})
	for i := 0; i < 2; i++ {
		if _, err := devices.Create(context.Background(), entities.Device{OwnerID: 5, Name: "meter"}); err != nil {
			t.Fatalf("seed device: %v", err)
		}
	}

	consumer := ProfileEventsConsumer{Devices: devices, Owners: owners}
	envelope := mustEnvelope(t, events.TypeDeleteDeviceUser, events.DeviceUserDeleted{OwnerID: 5})
	if err := consumer.handle(context.Background(), envelope); err != nil {
		t.Fatalf("handler returned %v", err)
	}

	if devices.Count() != 2 {
		t.Fatalf("owner deletion must never delete devices, have %d", devices.Count())
	}
	unassigned, _ := devices.ListByOwner(context.Background(), entities.UnassignedOwnerID)
	if len(unassigned) != 2 {
		t.Fatalf("expected both devices unassigned, got %d", len(unassigned))
	}
	if owners.Count() != 0 {
		t.Fatalf("owner projection should be dropped")
	}
}

func TestDeleteDeviceUserWithNoDevicesIsBenign(t *testing.T) {
	consumer := ProfileEventsConsumer{Devices: memory.NewStore(), Owners: memory.NewOwnerStore()}

	envelope := mustEnvelope(t, events.TypeDeleteDeviceUser, events.DeviceUserDeleted{OwnerID: 77})
	if err := consumer.handle(context.Background(), envelope); err != nil {
		t.Fatalf("no-op delete must not be an error, got %v", err)
	}
}

func TestUpdateUserInDevicesRefreshesDisplayName(t *testing.T) {
	owners := memory.NewOwnerStore()
	_ = owners.Upsert(context.Background(), entities.Owner{OwnerID: 5, DisplayName: "alice"})
	consumer := ProfileEventsConsumer{Devices: memory.NewStore(), Owners: owners}

	envelope := mustEnvelope(t, events.TypeUpdateUserInDevices, events.UserInDevicesUpdated{OwnerID: 5, DisplayName: "alice2"})
	if err := consumer.handle(context.Background(), envelope); err != nil {
		t.Fatalf("handler returned %v", err)
	}

	owner, _, _ := owners.Get(context.Background(), 5)
	if owner.DisplayName != "alice2" {
		t.Fatalf("display name not refreshed: %+v", owner)
	}
}

func TestUpdateUserInDevicesForUnknownOwnerIsBenign(t *testing.T) {
	consumer := ProfileEventsConsumer{Devices: memory.NewStore(), Owners: memory.NewOwnerStore()}

	envelope := mustEnvelope(t, events.TypeUpdateUserInDevices, events.UserInDevicesUpdated{OwnerID: 404, DisplayName: "ghost"})
	if err := consumer.handle(context.Background(), envelope); err != nil {
		t.Fatalf("unknown owner must be benign, got %v", err)
	}
}

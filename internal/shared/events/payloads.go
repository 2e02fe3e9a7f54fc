package events

import "time"

// Cross-service event payloads. These are wire contracts: changing a field
// name here changes what every consumer sees.

// OwnerAdded is broadcast on identity-events after an account commits.
type OwnerAdded struct {
	OwnerID  int64  `json:"owner_id"`
	Username string `json:"username"`
}

// AuthProfileUpdated propagates denormalized profile fields back to the
// credential service.
type AuthProfileUpdated struct {
	CredentialID int64  `json:"credential_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
}

// AuthDeleted asks the credential service to drop a credential that the
// delete-account saga already removed synchronously. Consumers treat a
// missing record as benign.
type AuthDeleted struct {
	CredentialID int64 `json:"credential_id"`
}

// UserInDevicesUpdated refreshes the device registry's cached owner name.
type UserInDevicesUpdated struct {
	OwnerID     int64  `json:"owner_id"`
	DisplayName string `json:"display_name"`
}

// DeviceUserDeleted unassigns all of an owner's devices in the registry.
type DeviceUserDeleted struct {
	OwnerID int64 `json:"owner_id"`
}

// DeviceAdded and DeviceDeleted keep the monitoring mapping in sync with
// the registry.
type DeviceAdded struct {
	DeviceID int64 `json:"device_id"`
	OwnerID  int64 `json:"owner_id"`
}

type DeviceDeleted struct {
	DeviceID int64 `json:"device_id"`
}

// ConsumptionReading is one telemetry sample, produced by the simulator and
// routed to exactly one monitoring replica.
type ConsumptionReading struct {
	DeviceID  int64     `json:"device_id"`
	OwnerID   int64     `json:"owner_id"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// OverconsumptionAlert is emitted when a reading exceeds the device's
// configured maximum.
type OverconsumptionAlert struct {
	OwnerID   int64     `json:"owner_id"`
	DeviceID  int64     `json:"device_id"`
	Value     float64   `json:"value"`
	Threshold float64   `json:"threshold"`
	Timestamp time.Time `json:"timestamp"`
}

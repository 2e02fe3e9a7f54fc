package entities

import "time"

// UnassignedOwnerID marks a device without an owner. Devices land here when
// their owner's account is deleted.
const UnassignedOwnerID int64 = 0

// Device is a registered fleet device. MaxConsumption is the threshold the
// monitoring service checks readings against.
type Device struct {
	DeviceID       int64
	OwnerID        int64
	Name           string
	Status         string
	MaxConsumption float64
	CreatedAt      time.Time
}

// Owner is the registry's projection of an account, fed by identity
// broadcasts. DisplayName is a cache refreshed by profile edits.
type Owner struct {
	OwnerID     int64
	DisplayName string
}

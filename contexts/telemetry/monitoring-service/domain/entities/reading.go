package entities

import "time"

// DeviceMapping scopes a device's readings to its owner. MappingKey is a
// surrogate identifier so replayed add_device events can be deduplicated on
// device id alone.
type DeviceMapping struct {
	MappingKey string
	DeviceID   int64
	OwnerID    int64
}

// Reading is one persisted telemetry sample.
type Reading struct {
	ReadingID int64
	DeviceID  int64
	OwnerID   int64
	Value     float64
	Timestamp time.Time
}

package events

import "fmt"

// Topic names. All topics are broadcast (fanout) except TopicTelemetryIngest,
// which is sharded by replica routing key.
const (
	TopicIdentityEvents    = "identity-events"
	TopicProfileCRUD       = "profile-crud-events"
	TopicDeviceCRUD        = "device-crud"
	TopicTelemetryReadings = "telemetry-readings"
	TopicTelemetryIngest   = "telemetry-ingest"
	TopicAlertEvents       = "alert-events"
)

// Event types carried on the topics above.
const (
	TypeAddOwner             = "add_owner"
	TypeUpdateAuthProfile    = "update_auth_profile"
	TypeDeleteAuth           = "delete_auth"
	TypeUpdateUserInDevices  = "update_user_in_devices"
	TypeDeleteDeviceUser     = "delete_device_user"
	TypeAddDevice            = "add_device"
	TypeDeleteDevice         = "delete_device"
	TypeConsumptionReading   = "consumption_reading"
	TypeOverconsumptionAlert = "overconsumption_alert"
)

// ReplicaKey is the routing key that binds a monitoring replica to its
// shard of the telemetry-ingest topic. Replica numbering starts at 1.
func ReplicaKey(replica int) string {
	return fmt.Sprintf("replica%d", replica)
}

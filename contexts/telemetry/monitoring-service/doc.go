// Package monitoringservice consumes its shard of telemetry readings,
// checks each one against the device's consumption limit, persists it, and
// raises overconsumption alerts. A projection of device-to-owner mappings,
// fed by registry broadcasts, scopes readings to their owner.
package monitoringservice

// Package ingestionrouter spreads the telemetry reading stream across
// monitoring replicas. It subscribes the broadcast readings topic and
// republishes each envelope unchanged on the sharded ingest topic with a
// round-robin replica routing key.
package ingestionrouter

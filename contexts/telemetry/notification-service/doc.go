// Package notificationservice relays overconsumption alerts to live
// websocket subscribers. Delivery is push-only: an owner with no connected
// subscriber misses the alert, there is no inbox and no replay.
package notificationservice

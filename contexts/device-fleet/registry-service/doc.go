// Package registryservice owns the device fleet: device CRUD, a projection
// of owners fed by identity broadcasts, and the read API that monitoring
// uses to resolve a device's consumption limit.
//
// Devices survive their owner: deleting an account reassigns the owner's
// devices to the unassigned sentinel instead of removing them.
package registryservice

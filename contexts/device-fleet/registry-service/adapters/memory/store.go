package memory

import (
	"context"
	"sort"
	"sync"

	"wattline/contexts/device-fleet/registry-service/domain/entities"
)

// Store is the in-memory device repository used by tests and local
// bootstrap. Device IDs come from a monotonically increasing counter.
type Store struct {
	mu      sync.RWMutex
	devices map[int64]entities.Device
	nextID  int64
}

func NewStore() *Store {
	return &Store{
		devices: make(map[int64]entities.Device),
		nextID:  1,
	}
}

func (s *Store) GetByID(_ context.Context, deviceID int64) (entities.Device, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	device, ok := s.devices[deviceID]
	return device, ok, nil
}

func (s *Store) List(_ context.Context) ([]entities.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Device, 0, len(s.devices))
	for _, device := range s.devices {
		items = append(items, device)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].DeviceID < items[j].DeviceID })
	return items, nil
}

func (s *Store) ListByOwner(_ context.Context, ownerID int64) ([]entities.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []entities.Device
	for _, device := range s.devices {
		if device.OwnerID == ownerID {
			items = append(items, device)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].DeviceID < items[j].DeviceID })
	return items, nil
}

func (s *Store) Create(_ context.Context, device entities.Device) (entities.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	device.DeviceID = s.nextID
	s.nextID++
	s.devices[device.DeviceID] = device
	return device, nil
}

func (s *Store) Update(_ context.Context, device entities.Device) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.devices[device.DeviceID]; !ok {
		return nil
	}
	s.devices[device.DeviceID] = device
	return nil
}

func (s *Store) Delete(_ context.Context, deviceID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.devices[deviceID]; !ok {
		return false, nil
	}
	delete(s.devices, deviceID)
	return true, nil
}

func (s *Store) ReassignOwner(_ context.Context, ownerID, newOwnerID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var changed int64
	for id, device := range s.devices {
		if device.OwnerID == ownerID {
			device.OwnerID = newOwnerID
			s.devices[id] = device
			changed++
		}
	}
	return changed, nil
}

// Count is exposed for tests asserting that owner deletion never removes
// devices.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.devices)
}

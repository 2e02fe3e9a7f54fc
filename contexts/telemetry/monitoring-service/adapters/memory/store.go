package memory

import (
	"context"
	"sync"
	"time"

	"wattline/contexts/telemetry/monitoring-service/domain/entities"
)

// MappingStore is the in-memory device-to-owner projection used by tests
// and local bootstrap.
type MappingStore struct {
	mu       sync.RWMutex
	mappings map[int64]entities.DeviceMapping
}

func NewMappingStore() *MappingStore {
	return &MappingStore{mappings: make(map[int64]entities.DeviceMapping)}
}

func (s *MappingStore) GetByDeviceID(_ context.Context, deviceID int64) (entities.DeviceMapping, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mapping, ok := s.mappings[deviceID]
	return mapping, ok, nil
}

func (s *MappingStore) Create(_ context.Context, mapping entities.DeviceMapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings[mapping.DeviceID] = mapping
	return nil
}

func (s *MappingStore) Delete(_ context.Context, deviceID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.mappings[deviceID]; !ok {
		return false, nil
	}
	delete(s.mappings, deviceID)
	return true, nil
}

// Count is exposed for tests asserting replay deduplication.
func (s *MappingStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mappings)
}

// ReadingStore is the in-memory reading repository used by tests and local
// bootstrap.
type ReadingStore struct {
	mu       sync.RWMutex
	readings []entities.Reading
	nextID   int64
}

func NewReadingStore() *ReadingStore {
	return &ReadingStore{nextID: 1}
}

func (s *ReadingStore) Insert(_ context.Context, reading entities.Reading) (entities.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reading.ReadingID = s.nextID
	s.nextID++
	s.readings = append(s.readings, reading)
	return reading, nil
}

func (s *ReadingStore) ListByOwnerAndDay(_ context.Context, ownerID int64, day time.Time) ([]entities.Reading, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []entities.Reading
	for _, reading := range s.readings {
		if reading.OwnerID != ownerID {
			continue
		}
		if reading.Timestamp.Before(start) || !reading.Timestamp.Before(end) {
			continue
		}
		items = append(items, reading)
	}
	return items, nil
}

func (s *ReadingStore) DeleteByDevice(_ context.Context, deviceID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.readings[:0]
	var dropped int64
	for _, reading := range s.readings {
		if reading.DeviceID == deviceID {
			dropped++
			continue
		}
		kept = append(kept, reading)
	}
	s.readings = kept
	return dropped, nil
}

// Count is exposed for tests asserting persistence and cascade behavior.
func (s *ReadingStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.readings)
}

package memory

import (
	"context"
	"sync"

	"wattline/contexts/device-fleet/registry-service/domain/entities"
)

// OwnerStore is the in-memory owner projection used by tests and local
// bootstrap.
type OwnerStore struct {
	mu     sync.RWMutex
	owners map[int64]entities.Owner
}

func NewOwnerStore() *OwnerStore {
	return &OwnerStore{owners: make(map[int64]entities.Owner)}
}

func (s *OwnerStore) Get(_ context.Context, ownerID int64) (entities.Owner, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owner, ok := s.owners[ownerID]
	return owner, ok, nil
}

func (s *OwnerStore) Upsert(_ context.Context, owner entities.Owner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners[owner.OwnerID] = owner
	return nil
}

func (s *OwnerStore) Delete(_ context.Context, ownerID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.owners[ownerID]; !ok {
		return false, nil
	}
	delete(s.owners, ownerID)
	return true, nil
}

// Count is exposed for tests asserting projection invariants.
func (s *OwnerStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.owners)
}

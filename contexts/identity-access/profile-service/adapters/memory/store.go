package memory

import (
	"context"
	"sort"
	"sync"

	"wattline/contexts/identity-access/profile-service/domain/entities"
)

// Store is the in-memory profile repository used by tests and local
// bootstrap.
type Store struct {
	mu       sync.RWMutex
	profiles map[int64]entities.Profile // keyed by credential id
	nextID   int64
}

func NewStore() *Store {
	return &Store{
		profiles: make(map[int64]entities.Profile),
		nextID:   1,
	}
}

func (s *Store) GetByCredentialID(_ context.Context, credentialID int64) (entities.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[credentialID]
	return profile, ok, nil
}

func (s *Store) GetByUsername(_ context.Context, username string) (entities.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, profile := range s.profiles {
		if profile.Username == username {
			return profile, true, nil
		}
	}
	return entities.Profile{}, false, nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (entities.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, profile := range s.profiles {
		if profile.Email == email {
			return profile, true, nil
		}
	}
	return entities.Profile{}, false, nil
}

func (s *Store) List(_ context.Context) ([]entities.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Profile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		items = append(items, profile)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProfileID < items[j].ProfileID })
	return items, nil
}

func (s *Store) Create(_ context.Context, profile entities.Profile) (entities.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile.ProfileID = s.nextID
	s.nextID++
	s.profiles[profile.CredentialID] = profile
	return profile, nil
}

func (s *Store) Update(_ context.Context, profile entities.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.CredentialID]; !ok {
		return nil
	}
	s.profiles[profile.CredentialID] = profile
	return nil
}

func (s *Store) DeleteByCredentialID(_ context.Context, credentialID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[credentialID]; !ok {
		return false, nil
	}
	delete(s.profiles, credentialID)
	return true, nil
}

// Count is exposed for tests asserting the no-orphan invariant.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

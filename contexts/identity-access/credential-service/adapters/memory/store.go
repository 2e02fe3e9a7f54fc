package memory

import (
	"context"
	"sync"

	"wattline/contexts/identity-access/credential-service/domain/entities"
)

// Store is the in-memory credential repository used by tests and local
// bootstrap. IDs are assigned from a monotonically increasing counter.
type Store struct {
	mu          sync.RWMutex
	credentials map[int64]entities.Credential
	nextID      int64
}

func NewStore() *Store {
	return &Store{
		credentials: make(map[int64]entities.Credential),
		nextID:      1,
	}
}

func (s *Store) GetByID(_ context.Context, credentialID int64) (entities.Credential, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	credential, ok := s.credentials[credentialID]
	return credential, ok, nil
}

func (s *Store) GetByUsername(_ context.Context, username string) (entities.Credential, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, credential := range s.credentials {
		if credential.Username == username {
			return credential, true, nil
		}
	}
	return entities.Credential{}, false, nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (entities.Credential, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, credential := range s.credentials {
		if credential.Email == email {
			return credential, true, nil
		}
	}
	return entities.Credential{}, false, nil
}

func (s *Store) Create(_ context.Context, credential entities.Credential) (entities.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	credential.CredentialID = s.nextID
	s.nextID++
	s.credentials[credential.CredentialID] = credential
	return credential, nil
}

func (s *Store) Update(_ context.Context, credential entities.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.credentials[credential.CredentialID]; !ok {
		return nil
	}
	s.credentials[credential.CredentialID] = credential
	return nil
}

func (s *Store) Delete(_ context.Context, credentialID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.credentials[credentialID]; !ok {
		return false, nil
	}
	delete(s.credentials, credentialID)
	return true, nil
}

// Count is exposed for tests asserting compensation invariants.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.credentials)
}

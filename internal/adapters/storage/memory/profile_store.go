package memory

import (
	"sync"

	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

// MemoryProfileStore is a simple in-memory implementation of
// domain.ProfileStore. An unknown user resolves to a nil history, which the
// risk engine treats as "nothing known".
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[domain.UserID]*domain.UserHistory
}

// NewProfileStore creates a new in-memory ProfileStore.
func NewProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{
		profiles: make(map[domain.UserID]*domain.UserHistory),
	}
}

func (s *MemoryProfileStore) GetHistory(userID domain.UserID) (*domain.UserHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}

	// Return a copy: the stored history is not the caller's to mutate.
	copied := *h
	return &copied, nil
}

func (s *MemoryProfileStore) PutHistory(userID domain.UserID, h *domain.UserHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h == nil {
		delete(s.profiles, userID)
		return nil
	}

	copied := *h
	s.profiles[userID] = &copied
	return nil
}

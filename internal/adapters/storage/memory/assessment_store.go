package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

// MemoryAssessmentStore is a simple in-memory implementation of
// domain.AssessmentStore. Assessments contain only derived fields, never the
// raw message text, so keeping them around is safe even in dev mode.
type MemoryAssessmentStore struct {
	mu       sync.RWMutex
	byID     map[domain.AssessmentID]*domain.ComprehensiveAssessment
	byUserID map[domain.UserID][]domain.AssessmentID
}

// NewAssessmentStore creates a new in-memory AssessmentStore.
func NewAssessmentStore() *MemoryAssessmentStore {
	return &MemoryAssessmentStore{
		byID:     make(map[domain.AssessmentID]*domain.ComprehensiveAssessment),
		byUserID: make(map[domain.UserID][]domain.AssessmentID),
	}
}

// AppendAssessment saves a new assessment.
func (s *MemoryAssessmentStore) AppendAssessment(a *domain.ComprehensiveAssessment) error {
	if a == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = domain.AssessmentID(uuid.NewString())
	}

	s.byID[a.ID] = a
	s.byUserID[a.UserID] = append(s.byUserID[a.UserID], a.ID)

	return nil
}

// ListAssessmentsByUser returns the last `limit` assessments for a user.
// If limit <= 0, returns all.
func (s *MemoryAssessmentStore) ListAssessmentsByUser(
	userID domain.UserID,
	limit int,
) ([]*domain.ComprehensiveAssessment, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUserID[userID]
	if len(ids) == 0 {
		return []*domain.ComprehensiveAssessment{}, nil
	}

	if limit <= 0 || limit > len(ids) {
		limit = len(ids)
	}

	start := len(ids) - limit
	selected := ids[start:]

	out := make([]*domain.ComprehensiveAssessment, 0, len(selected))
	for _, id := range selected {
		if a, ok := s.byID[id]; ok {
			out = append(out, a)
		}
	}

	return out, nil
}

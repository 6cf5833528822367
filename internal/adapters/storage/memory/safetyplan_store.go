package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

// MemorySafetyPlanStore is a simple in-memory implementation of
// domain.SafetyPlanStore. It is NOT persistent and is only suitable for
// development / local mode.
type MemorySafetyPlanStore struct {
	mu       sync.RWMutex
	plans    map[domain.SafetyPlanID]*domain.SafetyPlan
	byUserID map[domain.UserID][]domain.SafetyPlanID
}

// NewSafetyPlanStore creates a new in-memory SafetyPlanStore.
func NewSafetyPlanStore() *MemorySafetyPlanStore {
	return &MemorySafetyPlanStore{
		plans:    make(map[domain.SafetyPlanID]*domain.SafetyPlan),
		byUserID: make(map[domain.UserID][]domain.SafetyPlanID),
	}
}

// AppendSafetyPlan saves a new safety plan.
func (s *MemorySafetyPlanStore) AppendSafetyPlan(plan *domain.SafetyPlan) error {
	if plan == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if plan.ID == "" {
		plan.ID = domain.SafetyPlanID(uuid.NewString())
	}

	s.plans[plan.ID] = plan
	s.byUserID[plan.UserID] = append(s.byUserID[plan.UserID], plan.ID)

	return nil
}

// ListSafetyPlansByUser returns the last `limit` plans for a user.
// If limit <= 0, returns all.
func (s *MemorySafetyPlanStore) ListSafetyPlansByUser(
	userID domain.UserID,
	limit int,
) ([]*domain.SafetyPlan, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUserID[userID]
	if len(ids) == 0 {
		return []*domain.SafetyPlan{}, nil
	}

	if limit <= 0 || limit > len(ids) {
		limit = len(ids)
	}

	start := len(ids) - limit
	selected := ids[start:]

	out := make([]*domain.SafetyPlan, 0, len(selected))
	for _, id := range selected {
		if p, ok := s.plans[id]; ok {
			out = append(out, p)
		}
	}

	return out, nil
}

package safetyplan

import (
	"context"

	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

// Service holds the logic of reading a user's safety plans
type Service struct {
	store domain.SafetyPlanStore
}

// NewService creates a safety-plan service from a SafetyPlanStore
func NewService(store domain.SafetyPlanStore) *Service {
	return &Service{
		store: store,
	}
}

// GetUserSafetyPlans returns the last `limit` safety plans for a user.
// If limit <= 0, a reasonable default value is used.
func (s *Service) GetUserSafetyPlans(
	ctx context.Context,
	userID domain.UserID,
	limit int,
) ([]*domain.SafetyPlan, error) {

	if s.store == nil {
		// The store is optional in some deployments; an empty list is the
		// right answer when plans are not persisted.
		return []*domain.SafetyPlan{}, nil
	}

	if limit <= 0 {
		limit = 20
	}

	// ctx is unused by the in-memory store but the interface may grow it
	_ = ctx
	return s.store.ListSafetyPlansByUser(userID, limit)
}

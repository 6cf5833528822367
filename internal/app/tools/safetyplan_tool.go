package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

// SafetyPlanTool uses a domain.SafetyPlanStore to persist the crisis plan
// the dialogue layer builds when an assessment escalates.
type SafetyPlanTool struct {
	store domain.SafetyPlanStore
	now   func() time.Time
}

// NewSafetyPlanTool creates a new SafetyPlanTool.
// store can be an in-memory or Firestore implementation.
func NewSafetyPlanTool(store domain.SafetyPlanStore) *SafetyPlanTool {
	return &SafetyPlanTool{
		store: store,
		now:   time.Now,
	}
}

func (t *SafetyPlanTool) Name() string {
	return "safety_plan_store"
}

// Call expects an input with this shape:
//
//	{
//	  "assessment_id": "a1b2...",
//	  "protocol": "medium_risk",
//	  "level": "moderate",
//	  "monitoring": "daily",
//	  "steps": [
//	    {
//	      "description": "Call my sister when it gets hard tonight",
//	      "notes": "she answers late"
//	    }
//	  ],
//	  "contacts": ["local crisis line", "my sister"]
//	}
//
// UserID and SessionID come in ToolContext.
func (t *SafetyPlanTool) Call(
	ctx context.Context,
	tctx ToolContext,
	input map[string]any,
) (map[string]any, error) {

	// Basic validation of context
	if tctx.UserID == "" || tctx.SessionID == "" {
		return nil, fmt.Errorf("safety_plan_store: missing UserID or SessionID in ToolContext")
	}

	now := t.now()

	plan := &domain.SafetyPlan{
		ID:           domain.SafetyPlanID(uuid.NewString()),
		SessionID:    domain.SessionID(tctx.SessionID),
		UserID:       domain.UserID(tctx.UserID),
		AssessmentID: domain.AssessmentID(getString(input, "assessment_id")),
		CreatedAt:    now,
		UpdatedAt:    now,
		Protocol:     domain.ProtocolType(getString(input, "protocol")),
		Level:        parseRiskLevel(getString(input, "level")),
		Monitoring:   domain.MonitoringFrequency(getString(input, "monitoring")),
		Steps:        parseSteps(input["steps"], now),
		Contacts:     parseContacts(input["contacts"]),
	}

	if err := t.store.AppendSafetyPlan(plan); err != nil {
		return nil, fmt.Errorf("safety_plan_store: append failed: %w", err)
	}

	return map[string]any{
		"status":      "ok",
		"plan_id":     string(plan.ID),
		"session_id":  string(plan.SessionID),
		"user_id":     string(plan.UserID),
		"created_at":  plan.CreatedAt,
		"steps_count": len(plan.Steps),
	}, nil
}

// --- internal helpers --- //

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func parseRiskLevel(s string) domain.RiskLevel {
	switch s {
	case "low":
		return domain.RiskLow
	case "moderate":
		return domain.RiskModerate
	case "high":
		return domain.RiskHigh
	case "critical":
		return domain.RiskCritical
	default:
		return domain.RiskNone
	}
}

func parseSteps(raw any, now time.Time) []domain.SafetyStep {
	if raw == nil {
		return nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil
	}

	var steps []domain.SafetyStep
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		desc := getString(obj, "description")
		if desc == "" {
			continue
		}

		steps = append(steps, domain.SafetyStep{
			ID:          fmt.Sprintf("s-%d-%d", now.UnixNano(), i),
			Description: desc,
			Status:      domain.StepStatusPending,
			Notes:       getString(obj, "notes"),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	return steps
}

func parseContacts(raw any) []string {
	if raw == nil {
		return nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil
	}

	var contacts []string
	for _, item := range list {
		if s, ok := item.(string); ok && s != "" {
			contacts = append(contacts, s)
		}
	}
	return contacts
}

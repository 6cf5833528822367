package memory_test

import (
	"errors"
	"testing"

	"github.com/PabloGalante/farum-sentinel/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

func TestSessionStoreNotFound(t *testing.T) {
	store := memory.NewSessionStore()

	_, err := store.GetSession("missing")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAssessmentStoreListLimit(t *testing.T) {
	store := memory.NewAssessmentStore()
	userID := domain.UserID("u-1")

	for i := 0; i < 5; i++ {
		if err := store.AppendAssessment(&domain.ComprehensiveAssessment{
			UserID: userID,
			Level:  domain.RiskLow,
		}); err != nil {
			t.Fatalf("AppendAssessment failed: %v", err)
		}
	}

	got, err := store.ListAssessmentsByUser(userID, 3)
	if err != nil {
		t.Fatalf("ListAssessmentsByUser failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 assessments, got %d", len(got))
	}

	all, err := store.ListAssessmentsByUser(userID, 0)
	if err != nil {
		t.Fatalf("ListAssessmentsByUser failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 assessments, got %d", len(all))
	}
}

func TestSafetyPlanStoreAssignsID(t *testing.T) {
	store := memory.NewSafetyPlanStore()
	plan := &domain.SafetyPlan{UserID: "u-1", Protocol: domain.ProtocolMediumRisk}

	if err := store.AppendSafetyPlan(plan); err != nil {
		t.Fatalf("AppendSafetyPlan failed: %v", err)
	}
	if plan.ID == "" {
		t.Fatalf("expected an assigned plan id")
	}

	got, err := store.ListSafetyPlansByUser("u-1", 0)
	if err != nil {
		t.Fatalf("ListSafetyPlansByUser failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != plan.ID {
		t.Fatalf("expected the stored plan back, got %v", got)
	}
}

func TestProfileStoreCopiesHistory(t *testing.T) {
	store := memory.NewProfileStore()
	userID := domain.UserID("u-1")

	h := &domain.UserHistory{PreviousSuicideAttempt: true}
	if err := store.PutHistory(userID, h); err != nil {
		t.Fatalf("PutHistory failed: %v", err)
	}

	// Mutating the caller's copy after Put must not affect the store.
	h.PreviousSuicideAttempt = false

	got, err := store.GetHistory(userID)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if got == nil || !got.PreviousSuicideAttempt {
		t.Fatalf("expected the stored history to be isolated from the caller")
	}

	// Unknown users resolve to nil, nil.
	none, err := store.GetHistory("unknown")
	if err != nil || none != nil {
		t.Fatalf("expected nil history for an unknown user, got %v, %v", none, err)
	}

	// A nil put clears the profile.
	if err := store.PutHistory(userID, nil); err != nil {
		t.Fatalf("PutHistory(nil) failed: %v", err)
	}
	cleared, err := store.GetHistory(userID)
	if err != nil || cleared != nil {
		t.Fatalf("expected cleared history, got %v, %v", cleared, err)
	}
}

package conversation_test

import (
	"context"
	"testing"

	"github.com/PabloGalante/farum-sentinel/internal/adapters/llm"
	"github.com/PabloGalante/farum-sentinel/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-sentinel/internal/app/conversation"
	"github.com/PabloGalante/farum-sentinel/internal/app/risk"
	"github.com/PabloGalante/farum-sentinel/internal/app/tools"
	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

type fixture struct {
	svc      *conversation.Service
	plans    *memory.MemorySafetyPlanStore
	profiles *memory.MemoryProfileStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	lexicons, err := risk.LoadLexicons()
	if err != nil {
		t.Fatalf("LoadLexicons failed: %v", err)
	}

	planStore := memory.NewSafetyPlanStore()
	profileStore := memory.NewProfileStore()

	svc := conversation.NewService(
		llm.NewMockLLM(),
		memory.NewSessionStore(),
		memory.NewMessageStore(),
		memory.NewAssessmentStore(),
		profileStore,
		risk.NewEngine(lexicons),
		tools.NewSafetyPlanTool(planStore),
		nil,
	)

	return &fixture{svc: svc, plans: planStore, profiles: profileStore}
}

func TestStartSessionAndSendMessage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.svc.StartSession(ctx, conversation.StartSessionInput{
		UserID:        domain.UserID("test-user"),
		PreferredMode: domain.ModeCheckIn,
		Title:         "Test session",
		Language:      "en",
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	if out.Session.ID == "" {
		t.Fatalf("expected session id, got empty")
	}

	reply, err := f.svc.SendMessage(ctx, conversation.SendMessageInput{
		SessionID: out.Session.ID,
		UserID:    out.Session.UserID,
		Text:      "I had a pretty calm week",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if reply.AgentMessage == nil || reply.AgentMessage.Text == "" {
		t.Fatalf("expected non-empty agent reply")
	}
	if reply.AgentMessage.ContentType != "text" {
		t.Fatalf("expected a normal reply, got content type %q", reply.AgentMessage.ContentType)
	}
	if reply.Assessment == nil {
		t.Fatalf("expected an assessment on the reply")
	}
	if reply.Assessment.Level != domain.RiskNone {
		t.Fatalf("expected NONE risk for a calm message, got %s", reply.Assessment.Level)
	}
}

func TestSendMessageCrisisPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.svc.StartSession(ctx, conversation.StartSessionInput{
		UserID:        domain.UserID("crisis-user"),
		PreferredMode: domain.ModeCheckIn,
		Language:      "en",
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	reply, err := f.svc.SendMessage(ctx, conversation.SendMessageInput{
		SessionID: out.Session.ID,
		UserID:    out.Session.UserID,
		Text:      "I'm going to kill myself tonight, I have the pills",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if reply.Assessment.Level != domain.RiskHigh {
		t.Fatalf("expected HIGH risk, got %s", reply.Assessment.Level)
	}
	if reply.Assessment.Protocol != domain.ProtocolHighRisk {
		t.Fatalf("expected high_risk protocol, got %q", reply.Assessment.Protocol)
	}
	if reply.AgentMessage.ContentType != "crisis_template" {
		t.Fatalf("expected a crisis template reply, got content type %q", reply.AgentMessage.ContentType)
	}

	plans, err := f.plans.ListSafetyPlansByUser(out.Session.UserID, 10)
	if err != nil {
		t.Fatalf("ListSafetyPlansByUser failed: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("expected 1 persisted safety plan, got %d", len(plans))
	}
	if plans[0].AssessmentID != reply.Assessment.ID {
		t.Fatalf("safety plan not linked to the triggering assessment")
	}
	if len(plans[0].Steps) == 0 {
		t.Fatalf("expected default steps on the safety plan")
	}
}

func TestSendMessageUsesProfileHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	userID := domain.UserID("returning-user")
	if err := f.profiles.PutHistory(userID, &domain.UserHistory{PreviousSuicideAttempt: true}); err != nil {
		t.Fatalf("PutHistory failed: %v", err)
	}

	out, err := f.svc.StartSession(ctx, conversation.StartSessionInput{
		UserID:   userID,
		Language: "en",
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	// Passive ideation alone scores 1 (NONE); the previous attempt on the
	// profile adds 2 and lifts the verdict to LOW.
	reply, err := f.svc.SendMessage(ctx, conversation.SendMessageInput{
		SessionID: out.Session.ID,
		UserID:    userID,
		Text:      "I don't want to live anymore",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if reply.Assessment.Level != domain.RiskLow {
		t.Fatalf("expected LOW with a previous attempt on record, got %s", reply.Assessment.Level)
	}
}

func TestGetUserAssessments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.svc.StartSession(ctx, conversation.StartSessionInput{
		UserID:   domain.UserID("audited-user"),
		Language: "en",
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	if _, err := f.svc.SendMessage(ctx, conversation.SendMessageInput{
		SessionID: out.Session.ID,
		UserID:    out.Session.UserID,
		Text:      "just checking in",
	}); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	assessments, err := f.svc.GetUserAssessments(ctx, out.Session.UserID, 10)
	if err != nil {
		t.Fatalf("GetUserAssessments failed: %v", err)
	}
	if len(assessments) != 1 {
		t.Fatalf("expected 1 assessment, got %d", len(assessments))
	}
}

func TestSendMessageUnknownSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.SendMessage(ctx, conversation.SendMessageInput{
		SessionID: domain.SessionID("missing"),
		UserID:    domain.UserID("u"),
		Text:      "hello",
	})
	if err == nil {
		t.Fatalf("expected an error for an unknown session")
	}
}

package conversation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-sentinel/internal/app/dialogue"
	"github.com/PabloGalante/farum-sentinel/internal/app/risk"
	"github.com/PabloGalante/farum-sentinel/internal/app/tools"
	"github.com/PabloGalante/farum-sentinel/internal/domain"
	"github.com/PabloGalante/farum-sentinel/internal/observability"
)

// maxMessageLength caps what is handed to the risk engine. Longer messages
// are assessed on their first maxMessageLength runes.
const maxMessageLength = 512

type Service struct {
	llm          domain.LLMClient
	sessionStore domain.SessionStore
	messageStore domain.MessageStore
	assessments  domain.AssessmentStore
	profiles     domain.ProfileStore
	engine       *risk.Engine
	responder    *dialogue.Responder
	metrics      *observability.Metrics
	now          func() time.Time
}

func NewService(
	llm domain.LLMClient,
	sessionStore domain.SessionStore,
	messageStore domain.MessageStore,
	assessments domain.AssessmentStore,
	profiles domain.ProfileStore,
	engine *risk.Engine,
	safetyTool *tools.SafetyPlanTool,
	metrics *observability.Metrics,
) *Service {
	var toolForResponder tools.Tool
	if safetyTool != nil {
		toolForResponder = safetyTool
	}

	return &Service{
		llm:          llm,
		sessionStore: sessionStore,
		messageStore: messageStore,
		assessments:  assessments,
		profiles:     profiles,
		engine:       engine,
		responder:    dialogue.NewResponder(llm, toolForResponder),
		metrics:      metrics,
		now:          time.Now,
	}
}

type StartSessionInput struct {
	UserID        domain.UserID
	PreferredMode domain.InteractionMode
	Title         string
	Language      string
}

type StartSessionOutput struct {
	Session *domain.Session
}

func (s *Service) StartSession(ctx context.Context, in StartSessionInput) (*StartSessionOutput, error) {
	now := s.now()

	log := observability.LoggerFromContext(ctx).With(
		"user_id", in.UserID,
		"preferred_mode", in.PreferredMode,
	)
	log.Info("starting new session")

	session := &domain.Session{
		ID:            domain.SessionID(uuid.NewString()),
		UserID:        in.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
		PreferredMode: in.PreferredMode,
		Title:         in.Title,
		Language:      in.Language,
	}

	if err := s.sessionStore.CreateSession(session); err != nil {
		log.Error("failed to create session", "error", err)
		return nil, err
	}

	// Optional: Welcome message from the agent
	welcome := &domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		SessionID: session.ID,
		Author:    domain.RoleAgent,
		Text:      welcomeText(session.Language),
		CreatedAt: now,
		Mode:      session.PreferredMode,
	}

	if err := s.messageStore.AppendMessage(welcome); err != nil {
		log.Error("failed to append welcome message", "error", err)
		return nil, err
	}

	log.Info("session started", "session_id", session.ID)

	return &StartSessionOutput{
		Session: session,
	}, nil
}

type SendMessageInput struct {
	SessionID domain.SessionID
	UserID    domain.UserID
	Text      string
}

type SendMessageOutput struct {
	UserMessage  *domain.Message
	AgentMessage *domain.Message
	Assessment   *domain.ComprehensiveAssessment
}

func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageOutput, error) {
	session, err := s.sessionStore.GetSession(in.SessionID)
	if err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With(
		"session_id", session.ID,
		"user_id", session.UserID,
		"mode", session.PreferredMode,
	)
	// Raw text is never logged; only its length.
	log.Info("sending message", "text_length", len(in.Text))

	now := s.now()

	userMsg := &domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		SessionID: session.ID,
		Author:    domain.RoleUser,
		Text:      in.Text,
		CreatedAt: now,
		Mode:      session.PreferredMode,
	}

	if err := s.messageStore.AppendMessage(userMsg); err != nil {
		log.Error("failed to append user message", "error", err)
		return nil, err
	}

	verdict := s.assess(ctx, session, in.Text)
	log.Info("message assessed",
		"risk_level", verdict.Level.String(),
		"protocol", string(verdict.Protocol),
		"immediate_intervention", verdict.ImmediateInterventionRequired)

	if err := s.recordAssessment(verdict); err != nil {
		log.Error("failed to persist assessment", "error", err)
		return nil, err
	}

	history, err := s.messageStore.GetMessagesBySession(session.ID, 20)
	if err != nil {
		log.Error("failed to load history", "error", err)
		return nil, err
	}

	convCtx := domain.ConversationContext{
		SessionID: session.ID,
		UserID:    session.UserID,
		Mode:      session.PreferredMode,
		Language:  session.Language,
		History:   history,
	}

	reply, err := s.responder.Respond(ctx, in.Text, convCtx, verdict)
	if err != nil {
		log.Error("responder failed", "error", err)
		return nil, err
	}

	agentMsg := &domain.Message{
		ID:          domain.MessageID(uuid.NewString()),
		SessionID:   session.ID,
		Author:      domain.RoleAgent,
		Text:        reply.Text,
		CreatedAt:   s.now(),
		Mode:        session.PreferredMode,
		ContentType: reply.ContentType,
	}

	if err := s.messageStore.AppendMessage(agentMsg); err != nil {
		log.Error("failed to append agent message", "error", err)
		return nil, err
	}

	session.UpdatedAt = s.now()
	if err := s.sessionStore.UpdateSession(session); err != nil {
		log.Error("failed to update session", "error", err)
		return nil, err
	}

	log.Info("send message completed")

	return &SendMessageOutput{
		UserMessage:  userMsg,
		AgentMessage: agentMsg,
		Assessment:   verdict,
	}, nil
}

// assess runs the risk engine over the message, wiring in whatever history
// the profile store knows about the user. A missing or failing profile store
// degrades to no history rather than blocking the evaluation.
func (s *Service) assess(ctx context.Context, session *domain.Session, text string) *domain.ComprehensiveAssessment {
	var history *domain.UserHistory
	if s.profiles != nil {
		h, err := s.profiles.GetHistory(session.UserID)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn("failed to load user history", "error", err)
		} else {
			history = h
		}
	}

	verdict := s.engine.Evaluate(ctx, risk.EvaluateInput{
		Text:     truncate(text, maxMessageLength),
		Language: session.Language,
		History:  history,
	})

	verdict.ID = domain.AssessmentID(uuid.NewString())
	verdict.SessionID = session.ID
	verdict.UserID = session.UserID

	s.metrics.RecordAssessment(verdict.Level, len(text))
	if verdict.Level >= domain.RiskModerate {
		s.metrics.RecordCrisisReply(verdict.Protocol)
	}

	return verdict
}

func (s *Service) recordAssessment(verdict *domain.ComprehensiveAssessment) error {
	if s.assessments == nil {
		return nil
	}
	return s.assessments.AppendAssessment(verdict)
}

// GetUserAssessments returns the last `limit` risk verdicts for a user.
func (s *Service) GetUserAssessments(
	ctx context.Context,
	userID domain.UserID,
	limit int,
) ([]*domain.ComprehensiveAssessment, error) {

	if s.assessments == nil {
		return []*domain.ComprehensiveAssessment{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	_ = ctx
	return s.assessments.ListAssessmentsByUser(userID, limit)
}

func (s *Service) GetSessionTimeline(
	ctx context.Context,
	sessionID domain.SessionID,
	limit int,
) (*domain.Session, []*domain.Message, error) {

	log := observability.LoggerFromContext(ctx).With(
		"session_id", sessionID,
		"limit", limit,
	)

	session, err := s.sessionStore.GetSession(sessionID)
	if err != nil {
		log.Error("failed to get session", "error", err)
		return nil, nil, err
	}

	msgs, err := s.messageStore.GetMessagesBySession(sessionID, limit)
	if err != nil {
		log.Error("failed to get messages", "error", err)
		return nil, nil, err
	}

	log.Info("fetched session timeline", "message_count", len(msgs))

	return session, msgs, nil
}

func welcomeText(lang string) string {
	if len(lang) >= 2 && lang[:2] == "es" {
		return "Hola, soy Farum. ¿Qué te gustaría trabajar hoy?"
	}
	return "Hi, I'm Farum. What would you like to work on today?"
}

// truncate cuts at a rune boundary so a multi-byte character is never split.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

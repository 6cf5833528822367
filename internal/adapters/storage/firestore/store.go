package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store.
// Uses the project passed (SENTINEL_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) sessionsCol() *firestore.CollectionRef {
	return s.client.Collection("sessions")
}

func (s *Store) sessionDoc(id domain.SessionID) *firestore.DocumentRef {
	return s.sessionsCol().Doc(string(id))
}

func (s *Store) messagesCol(sessionID domain.SessionID) *firestore.CollectionRef {
	return s.sessionDoc(sessionID).Collection("messages")
}

func (s *Store) messageDoc(sessionID domain.SessionID, msgID domain.MessageID) *firestore.DocumentRef {
	return s.messagesCol(sessionID).Doc(string(msgID))
}

func (s *Store) assessmentsCol() *firestore.CollectionRef {
	return s.client.Collection("assessments")
}

func (s *Store) safetyPlansCol() *firestore.CollectionRef {
	return s.client.Collection("safety_plans")
}

func (s *Store) profilesCol() *firestore.CollectionRef {
	return s.client.Collection("profiles")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type sessionDoc struct {
	UserID        string    `firestore:"user_id"`
	Title         string    `firestore:"title"`
	PreferredMode string    `firestore:"preferred_mode"`
	Language      string    `firestore:"language"`
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

type messageDoc struct {
	SessionID   string    `firestore:"session_id"`
	Author      string    `firestore:"author"`
	Text        string    `firestore:"text"`
	Mode        string    `firestore:"mode"`
	CreatedAt   time.Time `firestore:"created_at"`
	Tags        []string  `firestore:"tags"`
	ReplyTo     *string   `firestore:"reply_to"`
	ContentType string    `firestore:"content_type"`
}

// assessmentDoc keeps only derived fields. The raw message text is never
// persisted here.
type assessmentDoc struct {
	SessionID string `firestore:"session_id"`
	UserID    string `firestore:"user_id"`

	Level             string   `firestore:"level"`
	RecommendedAction string   `firestore:"recommended_action"`
	Protocol          string   `firestore:"protocol"`
	Monitoring        string   `firestore:"monitoring"`
	Immediate         bool     `firestore:"immediate_intervention"`
	Reasoning         []string `firestore:"reasoning"`

	Ideation           string  `firestore:"ideation,omitempty"`
	SuicidalConfidence float64 `firestore:"suicidal_confidence,omitempty"`
	ThreatType         string  `firestore:"threat_type,omitempty"`
	ViolenceConfidence float64 `firestore:"violence_confidence,omitempty"`
	ChildHarmSeverity  string  `firestore:"child_harm_severity,omitempty"`

	CreatedAt time.Time `firestore:"created_at"`
}

type safetyStepDoc struct {
	ID          string    `firestore:"id"`
	Description string    `firestore:"description"`
	Status      string    `firestore:"status"`
	Notes       string    `firestore:"notes"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

type safetyPlanDoc struct {
	SessionID    string          `firestore:"session_id"`
	UserID       string          `firestore:"user_id"`
	AssessmentID string          `firestore:"assessment_id"`
	Protocol     string          `firestore:"protocol"`
	Level        string          `firestore:"level"`
	Monitoring   string          `firestore:"monitoring"`
	Steps        []safetyStepDoc `firestore:"steps"`
	Contacts     []string        `firestore:"contacts"`
	CreatedAt    time.Time       `firestore:"created_at"`
	UpdatedAt    time.Time       `firestore:"updated_at"`
}

type profileDoc struct {
	PreviousSuicideAttempt bool `firestore:"previous_suicide_attempt"`
	ViolenceHistory        bool `firestore:"violence_history"`
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateSession(session *domain.Session) error {
	ctx := context.Background()

	doc := sessionDoc{
		UserID:        string(session.UserID),
		Title:         session.Title,
		PreferredMode: string(session.PreferredMode),
		Language:      session.Language,
		CreatedAt:     session.CreatedAt,
		UpdatedAt:     session.UpdatedAt,
	}

	_, err := s.sessionDoc(session.ID).Create(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore CreateSession: %w", err)
	}
	return nil
}

func (s *Store) UpdateSession(session *domain.Session) error {
	ctx := context.Background()

	doc := map[string]interface{}{
		"user_id":        string(session.UserID),
		"title":          session.Title,
		"preferred_mode": string(session.PreferredMode),
		"language":       session.Language,
		"created_at":     session.CreatedAt,
		"updated_at":     session.UpdatedAt,
	}

	_, err := s.sessionDoc(session.ID).Set(ctx, doc, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("firestore UpdateSession: %w", err)
	}
	return nil
}

func (s *Store) GetSession(id domain.SessionID) (*domain.Session, error) {
	ctx := context.Background()

	snap, err := s.sessionDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("firestore GetSession: %w", err)
	}

	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetSession decode: %w", err)
	}

	return &domain.Session{
		ID:            id,
		UserID:        domain.UserID(doc.UserID),
		Title:         doc.Title,
		PreferredMode: domain.InteractionMode(doc.PreferredMode),
		Language:      doc.Language,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}

func (s *Store) ListSessionsByUser(userID domain.UserID, limit int) ([]*domain.Session, error) {
	ctx := context.Background()

	q := s.sessionsCol().Where("user_id", "==", string(userID)).OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.Session
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListSessionsByUser: %w", err)
		}

		var doc sessionDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode sessionDoc: %w", err)
		}

		out = append(out, &domain.Session{
			ID:            domain.SessionID(snap.Ref.ID),
			UserID:        domain.UserID(doc.UserID),
			Title:         doc.Title,
			PreferredMode: domain.InteractionMode(doc.PreferredMode),
			Language:      doc.Language,
			CreatedAt:     doc.CreatedAt,
			UpdatedAt:     doc.UpdatedAt,
		})
	}
	return out, nil
}

// ─────────────────────────────────────────
// MessageStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMessage(msg *domain.Message) error {
	ctx := context.Background()

	var replyTo *string
	if msg.ReplyTo != nil {
		v := string(*msg.ReplyTo)
		replyTo = &v
	}

	doc := messageDoc{
		SessionID:   string(msg.SessionID),
		Author:      string(msg.Author),
		Text:        msg.Text,
		Mode:        string(msg.Mode),
		CreatedAt:   msg.CreatedAt,
		Tags:        msg.Tags,
		ReplyTo:     replyTo,
		ContentType: msg.ContentType,
	}

	_, err := s.messageDoc(msg.SessionID, msg.ID).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore AppendMessage: %w", err)
	}
	return nil
}

func (s *Store) GetMessagesBySession(sessionID domain.SessionID, limit int) ([]*domain.Message, error) {
	ctx := context.Background()

	q := s.messagesCol(sessionID).OrderBy("created_at", firestore.Asc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.Message
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore GetMessagesBySession: %w", err)
		}

		var doc messageDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode messageDoc: %w", err)
		}

		var replyTo *domain.MessageID
		if doc.ReplyTo != nil {
			id := domain.MessageID(*doc.ReplyTo)
			replyTo = &id
		}

		out = append(out, &domain.Message{
			ID:          domain.MessageID(snap.Ref.ID),
			SessionID:   sessionID,
			Author:      domain.Role(doc.Author),
			Text:        doc.Text,
			Mode:        domain.InteractionMode(doc.Mode),
			CreatedAt:   doc.CreatedAt,
			Tags:        doc.Tags,
			ReplyTo:     replyTo,
			ContentType: doc.ContentType,
		})
	}
	return out, nil
}

// ─────────────────────────────────────────
// AssessmentStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendAssessment(a *domain.ComprehensiveAssessment) error {
	ctx := context.Background()

	doc := assessmentDoc{
		SessionID:         string(a.SessionID),
		UserID:            string(a.UserID),
		Level:             a.Level.String(),
		RecommendedAction: string(a.RecommendedAction),
		Protocol:          string(a.Protocol),
		Monitoring:        string(a.Monitoring),
		Immediate:         a.ImmediateInterventionRequired,
		Reasoning:         a.Reasoning,
		CreatedAt:         a.Timestamp,
	}

	if a.Suicidal != nil {
		doc.Ideation = a.Suicidal.Ideation.String()
		doc.SuicidalConfidence = a.Suicidal.Confidence
	}
	if a.Violence != nil && a.Violence.Present {
		doc.ThreatType = string(a.Violence.ThreatType)
		doc.ViolenceConfidence = a.Violence.Confidence
	}
	if a.ChildHarm != nil && a.ChildHarm.Present {
		doc.ChildHarmSeverity = string(a.ChildHarm.Severity)
	}

	_, err := s.assessmentsCol().Doc(string(a.ID)).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore AppendAssessment: %w", err)
	}
	return nil
}

func (s *Store) ListAssessmentsByUser(userID domain.UserID, limit int) ([]*domain.ComprehensiveAssessment, error) {
	ctx := context.Background()

	q := s.assessmentsCol().Where("user_id", "==", string(userID)).OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.ComprehensiveAssessment
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListAssessmentsByUser: %w", err)
		}

		var doc assessmentDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode assessmentDoc: %w", err)
		}

		out = append(out, &domain.ComprehensiveAssessment{
			ID:                            domain.AssessmentID(snap.Ref.ID),
			SessionID:                     domain.SessionID(doc.SessionID),
			UserID:                        domain.UserID(doc.UserID),
			Level:                         parseRiskLevel(doc.Level),
			RecommendedAction:             domain.RecommendedAction(doc.RecommendedAction),
			Protocol:                      domain.ProtocolType(doc.Protocol),
			Monitoring:                    domain.MonitoringFrequency(doc.Monitoring),
			ImmediateInterventionRequired: doc.Immediate,
			Reasoning:                     doc.Reasoning,
			Timestamp:                     doc.CreatedAt,
		})
	}
	return out, nil
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

// ─────────────────────────────────────────
// SafetyPlanStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendSafetyPlan(plan *domain.SafetyPlan) error {
	ctx := context.Background()

	steps := make([]safetyStepDoc, 0, len(plan.Steps))
	for _, st := range plan.Steps {
		steps = append(steps, safetyStepDoc{
			ID:          st.ID,
			Description: st.Description,
			Status:      string(st.Status),
			Notes:       st.Notes,
			CreatedAt:   st.CreatedAt,
			UpdatedAt:   st.UpdatedAt,
		})
	}

	doc := safetyPlanDoc{
		SessionID:    string(plan.SessionID),
		UserID:       string(plan.UserID),
		AssessmentID: string(plan.AssessmentID),
		Protocol:     string(plan.Protocol),
		Level:        plan.Level.String(),
		Monitoring:   string(plan.Monitoring),
		Steps:        steps,
		Contacts:     plan.Contacts,
		CreatedAt:    plan.CreatedAt,
		UpdatedAt:    plan.UpdatedAt,
	}

	_, err := s.safetyPlansCol().Doc(string(plan.ID)).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore AppendSafetyPlan: %w", err)
	}
	return nil
}

func (s *Store) ListSafetyPlansByUser(userID domain.UserID, limit int) ([]*domain.SafetyPlan, error) {
	ctx := context.Background()

	q := s.safetyPlansCol().Where("user_id", "==", string(userID)).OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.SafetyPlan
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListSafetyPlansByUser: %w", err)
		}

		var doc safetyPlanDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode safetyPlanDoc: %w", err)
		}

		steps := make([]domain.SafetyStep, 0, len(doc.Steps))
		for _, st := range doc.Steps {
			steps = append(steps, domain.SafetyStep{
				ID:          st.ID,
				Description: st.Description,
				Status:      domain.StepStatus(st.Status),
				Notes:       st.Notes,
				CreatedAt:   st.CreatedAt,
				UpdatedAt:   st.UpdatedAt,
			})
		}

		out = append(out, &domain.SafetyPlan{
			ID:           domain.SafetyPlanID(snap.Ref.ID),
			SessionID:    domain.SessionID(doc.SessionID),
			UserID:       domain.UserID(doc.UserID),
			AssessmentID: domain.AssessmentID(doc.AssessmentID),
			Protocol:     domain.ProtocolType(doc.Protocol),
			Level:        parseRiskLevel(doc.Level),
			Monitoring:   domain.MonitoringFrequency(doc.Monitoring),
			Steps:        steps,
			Contacts:     doc.Contacts,
			CreatedAt:    doc.CreatedAt,
			UpdatedAt:    doc.UpdatedAt,
		})
	}
	return out, nil
}

// ─────────────────────────────────────────
// ProfileStore implementation
// ─────────────────────────────────────────

func (s *Store) GetHistory(userID domain.UserID) (*domain.UserHistory, error) {
	ctx := context.Background()

	snap, err := s.profilesCol().Doc(string(userID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("firestore GetHistory: %w", err)
	}

	var doc profileDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetHistory decode: %w", err)
	}

	return &domain.UserHistory{
		PreviousSuicideAttempt: doc.PreviousSuicideAttempt,
		ViolenceHistory:        doc.ViolenceHistory,
	}, nil
}

func (s *Store) PutHistory(userID domain.UserID, h *domain.UserHistory) error {
	ctx := context.Background()

	if h == nil {
		_, err := s.profilesCol().Doc(string(userID)).Delete(ctx)
		if err != nil {
			return fmt.Errorf("firestore PutHistory delete: %w", err)
		}
		return nil
	}

	doc := profileDoc{
		PreviousSuicideAttempt: h.PreviousSuicideAttempt,
		ViolenceHistory:        h.ViolenceHistory,
	}

	_, err := s.profilesCol().Doc(string(userID)).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore PutHistory: %w", err)
	}
	return nil
}

package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/PabloGalante/farum-sentinel/internal/app/conversation"
	"github.com/PabloGalante/farum-sentinel/internal/app/safetyplan"
	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

type Server struct {
	conv  *conversation.Service
	plans *safetyplan.Service
}

// NewServer wires the HTTP surface. metricsHandler is mounted at /metrics
// when non-nil (promhttp in the real binary, nil in most tests).
func NewServer(conv *conversation.Service, plans *safetyplan.Service, metricsHandler http.Handler) http.Handler {
	s := &Server{conv: conv, plans: plans}
	mux := http.NewServeMux()

	// /sessions → create session (POST)
	mux.HandleFunc("/sessions", s.handleSessions)

	// /sessions/{id}          →  GET: get session + messages
	// /sessions/{id}/messages → POST: send message, returns the risk verdict
	mux.HandleFunc("/sessions/", s.handleSessionWithID)

	// /users/{id}/safety-plans → GET
	// /users/{id}/assessments  → GET
	mux.HandleFunc("/users/", s.handleUserWithID)

	mux.HandleFunc("/healthz", s.handleHealth)

	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}

	return withRequestID(withLogging(withCORS(mux)))
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type createSessionRequest struct {
	UserID        string `json:"user_id"`
	PreferredMode string `json:"preferred_mode,omitempty"`
	Title         string `json:"title,omitempty"`
	Language      string `json:"language,omitempty"`
}

type createSessionResponse struct {
	Session sessionResponse  `json:"session"`
	Welcome *messageResponse `json:"welcome_message,omitempty"`
}

type sessionResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	PreferredMode string    `json:"preferred_mode"`
	Language      string    `json:"language"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type messageResponse struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	Mode        string    `json:"mode"`
	ContentType string    `json:"content_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type sendMessageRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

type assessmentResponse struct {
	ID                string   `json:"id"`
	Level             string   `json:"level"`
	RecommendedAction string   `json:"recommended_action"`
	Protocol          string   `json:"protocol,omitempty"`
	Monitoring        string   `json:"monitoring"`
	Immediate         bool     `json:"immediate_intervention_required"`
	Reasoning         []string `json:"reasoning"`
}

type sendMessageResponse struct {
	UserMessage  messageResponse     `json:"user_message"`
	AgentMessage messageResponse     `json:"agent_message"`
	Assessment   *assessmentResponse `json:"assessment,omitempty"`
}

type getSessionResponse struct {
	Session  sessionResponse   `json:"session"`
	Messages []messageResponse `json:"messages"`
}

type safetyStepResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
}

type safetyPlanResponse struct {
	ID           string               `json:"id"`
	SessionID    string               `json:"session_id"`
	AssessmentID string               `json:"assessment_id"`
	Protocol     string               `json:"protocol"`
	Level        string               `json:"level"`
	Monitoring   string               `json:"monitoring"`
	Steps        []safetyStepResponse `json:"steps"`
	Contacts     []string             `json:"contacts"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ─────────────────────────────────────────────
// Basic routing
// ─────────────────────────────────────────────

// /sessions
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateSession(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /sessions/{id} or /sessions/{id}/messages
func (s *Server) handleSessionWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/sessions/")
	if path == "" {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id := parts[0]

	if id == "" {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.handleGetSession(w, r, domain.SessionID(id))
		default:
			methodNotAllowed(w)
		}
		return
	}

	if len(parts) == 2 && parts[1] == "messages" {
		switch r.Method {
		case http.MethodPost:
			s.handleSendMessage(w, r, domain.SessionID(id))
		default:
			methodNotAllowed(w)
		}
		return
	}

	http.NotFound(w, r)
}

// /users/{id}/safety-plans or /users/{id}/assessments
func (s *Server) handleUserWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/users/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}

	userID := domain.UserID(parts[0])

	switch parts[1] {
	case "safety-plans":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.handleGetSafetyPlans(w, r, userID)
	case "assessments":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.handleGetAssessments(w, r, userID)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}

	mode := parseInteractionMode(req.PreferredMode)

	out, err := s.conv.StartSession(
		r.Context(),
		conversation.StartSessionInput{
			UserID:        domain.UserID(req.UserID),
			PreferredMode: mode,
			Title:         req.Title,
			Language:      req.Language,
		},
	)
	if err != nil {
		internalError(w, err)
		return
	}

	// The welcome message is the most recent agent message in the timeline.
	_, msgs, err := s.conv.GetSessionTimeline(r.Context(), out.Session.ID, 5)
	if err != nil {
		internalError(w, err)
		return
	}

	var welcome *messageResponse
	if len(msgs) > 0 {
		last := msgs[len(msgs)-1]
		if last.Author == domain.RoleAgent {
			m := toMessageResponse(last)
			welcome = &m
		}
	}

	resp := createSessionResponse{
		Session: toSessionResponse(out.Session),
		Welcome: welcome,
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	session, msgs, err := s.conv.GetSessionTimeline(r.Context(), id, 0)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	resp := getSessionResponse{
		Session:  toSessionResponse(session),
		Messages: toMessagesResponse(msgs),
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, sessionID domain.SessionID) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(w, "text is required")
		return
	}

	out, err := s.conv.SendMessage(
		r.Context(),
		conversation.SendMessageInput{
			SessionID: sessionID,
			UserID:    domain.UserID(req.UserID),
			Text:      req.Text,
		},
	)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	resp := sendMessageResponse{
		UserMessage:  toMessageResponse(out.UserMessage),
		AgentMessage: toMessageResponse(out.AgentMessage),
		Assessment:   toAssessmentResponse(out.Assessment),
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSafetyPlans(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	plans, err := s.plans.GetUserSafetyPlans(r.Context(), userID, 0)
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]safetyPlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toSafetyPlanResponse(p))
	}

	writeJSON(w, http.StatusOK, map[string][]safetyPlanResponse{"safety_plans": out})
}

func (s *Server) handleGetAssessments(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	assessments, err := s.conv.GetUserAssessments(r.Context(), userID, 0)
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]assessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		if resp := toAssessmentResponse(a); resp != nil {
			out = append(out, *resp)
		}
	}

	writeJSON(w, http.StatusOK, map[string][]assessmentResponse{"assessments": out})
}

// ─────────────────────────────────────────────
// Conversation Helpers
// ─────────────────────────────────────────────

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:            string(s.ID),
		UserID:        string(s.UserID),
		Title:         s.Title,
		PreferredMode: string(s.PreferredMode),
		Language:      s.Language,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:          string(m.ID),
		SessionID:   string(m.SessionID),
		Author:      string(m.Author),
		Text:        m.Text,
		Mode:        string(m.Mode),
		ContentType: m.ContentType,
		CreatedAt:   m.CreatedAt,
	}
}

func toMessagesResponse(msgs []*domain.Message) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}

func toAssessmentResponse(a *domain.ComprehensiveAssessment) *assessmentResponse {
	if a == nil {
		return nil
	}
	return &assessmentResponse{
		ID:                string(a.ID),
		Level:             a.Level.String(),
		RecommendedAction: string(a.RecommendedAction),
		Protocol:          string(a.Protocol),
		Monitoring:        string(a.Monitoring),
		Immediate:         a.ImmediateInterventionRequired,
		Reasoning:         a.Reasoning,
	}
}

func toSafetyPlanResponse(p *domain.SafetyPlan) safetyPlanResponse {
	steps := make([]safetyStepResponse, 0, len(p.Steps))
	for _, st := range p.Steps {
		steps = append(steps, safetyStepResponse{
			ID:          st.ID,
			Description: st.Description,
			Status:      string(st.Status),
			Notes:       st.Notes,
		})
	}
	return safetyPlanResponse{
		ID:           string(p.ID),
		SessionID:    string(p.SessionID),
		AssessmentID: string(p.AssessmentID),
		Protocol:     string(p.Protocol),
		Level:        p.Level.String(),
		Monitoring:   string(p.Monitoring),
		Steps:        steps,
		Contacts:     p.Contacts,
		CreatedAt:    p.CreatedAt,
	}
}

func parseInteractionMode(s string) domain.InteractionMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "check_in", "checkin":
		return domain.ModeCheckIn
	case "deep_dive", "deep":
		return domain.ModeDeepDive
	case "action_plan", "action":
		return domain.ModeActionPlan
	default:
		return domain.ModeCheckIn
	}
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}

package domain

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned by SessionStore lookups of unknown sessions,
// regardless of backend.
var ErrSessionNotFound = errors.New("session not found")

// LLMClient defines how the core application interacts with an LLM service.
type LLMClient interface {
	GenerateReply(ctx context.Context, prompt string, convCtx ConversationContext) (string, error)
}

// SeverityClassifier is the optional upstream model that supplies a
// self-harm confidence score for a message. The risk engine treats it as a
// best-effort collaborator: any error or timeout falls back to the lexical
// confidence substitute.
type SeverityClassifier interface {
	Confidence(ctx context.Context, text string) (float64, error)
}

// ConversationContext gives the LLM minimal context about the conversation.
type ConversationContext struct {
	SessionID SessionID
	UserID    UserID
	Mode      InteractionMode
	Language  string     // BCP-47 tag from the session
	History   []*Message // last N interactions
}

// SessionStore defines session's persistence
type SessionStore interface {
	CreateSession(session *Session) error
	UpdateSession(session *Session) error
	GetSession(id SessionID) (*Session, error)
	ListSessionsByUser(userID UserID, limit int) ([]*Session, error)
}

// MessageStore defines message's persistence
type MessageStore interface {
	AppendMessage(msg *Message) error
	GetMessagesBySession(sessionID SessionID, limit int) ([]*Message, error)
}

// AssessmentStore persists risk verdicts. Implementations must never store
// the raw message text, only the derived assessment fields.
type AssessmentStore interface {
	AppendAssessment(a *ComprehensiveAssessment) error
	ListAssessmentsByUser(userID UserID, limit int) ([]*ComprehensiveAssessment, error)
}

// ProfileStore serves the caller-owned risk history for a user.
// A nil history means nothing is known about the user.
type ProfileStore interface {
	GetHistory(userID UserID) (*UserHistory, error)
	PutHistory(userID UserID, h *UserHistory) error
}

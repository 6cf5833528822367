package domain

import "time"

// StepStatus represents the status of one safety-plan step
type StepStatus string

const (
	StepStatusPending StepStatus = "pending"
	StepStatusDone    StepStatus = "done"
)

// SafetyStep is a concrete step within a safety plan
type SafetyStep struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Status      StepStatus `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SafetyPlan is the standing crisis plan the agent builds with a user when an
// assessment escalates to medium_risk or above.
type SafetyPlan struct {
	ID           SafetyPlanID `json:"id"`
	SessionID    SessionID    `json:"session_id"`
	UserID       UserID       `json:"user_id"`
	AssessmentID AssessmentID `json:"assessment_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Protocol that triggered the plan (medium_risk, high_risk, ...)
	Protocol ProtocolType `json:"protocol"`

	// Level the triggering assessment resolved to
	Level RiskLevel `json:"level"`

	// Steps the user agreed to follow until the next check-in
	Steps []SafetyStep `json:"steps"`

	// Crisis contacts surfaced to the user (helplines, trusted people)
	Contacts []string `json:"contacts"`

	// Monitoring cadence inherited from the assessment
	Monitoring MonitoringFrequency `json:"monitoring"`
}

// SafetyPlanStore defines the minimum operations to persist safety plans
type SafetyPlanStore interface {
	AppendSafetyPlan(plan *SafetyPlan) error
	ListSafetyPlansByUser(userID UserID, limit int) ([]*SafetyPlan, error)
}

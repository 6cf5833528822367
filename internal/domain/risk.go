package domain

import "time"

// RiskLevel is the graded outcome of a full risk evaluation.
// Levels are totally ordered: None < Low < Moderate < High < Critical.
type RiskLevel int

const (
	RiskNone RiskLevel = iota
	RiskLow
	RiskModerate
	RiskHigh
	RiskCritical
)

func (l RiskLevel) String() string {
	switch l {
	case RiskLow:
		return "low"
	case RiskModerate:
		return "moderate"
	case RiskHigh:
		return "high"
	case RiskCritical:
		return "critical"
	default:
		return "none"
	}
}

// IdeationType grades suicidal ideation from least to most severe.
type IdeationType int

const (
	IdeationNone IdeationType = iota
	IdeationPassive
	IdeationActiveNoIntent
	IdeationActiveWithMethod
	IdeationActiveWithIntent
	IdeationActiveWithPlan
)

// SeverityWeight is the fixed score contribution of each ideation level.
func (t IdeationType) SeverityWeight() int {
	return int(t)
}

func (t IdeationType) String() string {
	switch t {
	case IdeationPassive:
		return "passive"
	case IdeationActiveNoIntent:
		return "active_no_intent"
	case IdeationActiveWithMethod:
		return "active_with_method"
	case IdeationActiveWithIntent:
		return "active_with_intent"
	case IdeationActiveWithPlan:
		return "active_with_plan"
	default:
		return "none"
	}
}

// ThreatType classifies interpersonal-violence language.
type ThreatType string

const (
	ThreatEmotionalDischarge ThreatType = "emotional_discharge"
	ThreatWithPlan           ThreatType = "threat_with_plan"
	ThreatImminentDanger     ThreatType = "imminent_danger"
)

// ChildHarmSeverity grades a child-harm screening result.
type ChildHarmSeverity string

const (
	ChildHarmNone     ChildHarmSeverity = "none"
	ChildHarmLow      ChildHarmSeverity = "low"
	ChildHarmModerate ChildHarmSeverity = "moderate"
	ChildHarmHigh     ChildHarmSeverity = "high"
	ChildHarmCritical ChildHarmSeverity = "critical"
)

// RecommendedAction is a closed set so callers can machine-match on it.
// Free-text rationale lives in ComprehensiveAssessment.Reasoning instead.
type RecommendedAction string

const (
	ActionContinueConversation RecommendedAction = "continue_conversation"
	ActionSupportiveMonitoring RecommendedAction = "supportive_monitoring"
	ActionSafetyPlanning       RecommendedAction = "safety_planning"
	ActionCrisisIntervention   RecommendedAction = "crisis_intervention"
	ActionEmergencyEscalation  RecommendedAction = "emergency_escalation"
)

// ProtocolType names the escalation protocol the caller must run.
// Empty means no protocol is required.
type ProtocolType string

const (
	ProtocolNone            ProtocolType = ""
	ProtocolLowRisk         ProtocolType = "low_risk"
	ProtocolMediumRisk      ProtocolType = "medium_risk"
	ProtocolHighRisk        ProtocolType = "high_risk"
	ProtocolChildProtection ProtocolType = "critical_child_protection"
)

// MonitoringFrequency tells the caller how often to re-check on the user.
type MonitoringFrequency string

const (
	MonitorAsNeeded  MonitoringFrequency = "as_needed"
	MonitorWeekly    MonitoringFrequency = "weekly"
	MonitorDaily     MonitoringFrequency = "daily"
	MonitorImmediate MonitoringFrequency = "immediate"
)

// UserHistory is read-only context supplied by the caller. The engine never
// mutates it; unknown or missing fields are treated as false.
type UserHistory struct {
	PreviousSuicideAttempt bool
	ViolenceHistory        bool
}

// SuicidalAssessment is the self-harm leaf assessment for one message.
type SuicidalAssessment struct {
	Present           bool
	Ideation          IdeationType
	HasPlan           bool
	HasMeans          bool
	HasIntent         bool
	HasTimeline       bool
	ProtectiveFactors []string
	RiskFactors       []string
	MatchedSignals    []string
	Confidence        float64
	Timestamp         time.Time
}

// ViolenceAssessment is the interpersonal-violence leaf assessment.
type ViolenceAssessment struct {
	Present           bool
	ThreatType        ThreatType
	TargetMentioned   bool
	MeansAvailable    bool
	HistoryOfViolence bool
	ProtectiveFactors []string
	Confidence        float64
}

// ChildHarmAssessment is the dependent-minor harm screening result.
type ChildHarmAssessment struct {
	Present        bool
	Severity       ChildHarmSeverity
	SpecificThreat bool
	Confidence     float64
}

// ComprehensiveAssessment is the terminal verdict for one message.
// Attention: ImmediateInterventionRequired is true exactly when
// Level is RiskHigh or RiskCritical.
type ComprehensiveAssessment struct {
	ID        AssessmentID
	SessionID SessionID
	UserID    UserID

	Level     RiskLevel
	Suicidal  *SuicidalAssessment
	Violence  *ViolenceAssessment
	ChildHarm *ChildHarmAssessment

	RecommendedAction             RecommendedAction
	ImmediateInterventionRequired bool
	Protocol                      ProtocolType
	Monitoring                    MonitoringFrequency

	// Reasoning collects every rationale fragment in evaluation order.
	Reasoning []string

	Timestamp time.Time
}

// RequiresSafetyPlanning reports whether the verdict should trigger the
// safety-planning module.
func (a *ComprehensiveAssessment) RequiresSafetyPlanning() bool {
	switch a.Protocol {
	case ProtocolMediumRisk, ProtocolHighRisk, ProtocolChildProtection:
		return true
	default:
		return false
	}
}

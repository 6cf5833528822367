// Package dialogue selects the agent's reply for a message once the risk
// engine has produced its verdict. Low-risk conversations flow to the LLM;
// anything at MODERATE or above gets a fixed crisis template and, when the
// protocol asks for it, a persisted safety plan.
package dialogue

import (
	"context"
	"strings"

	"github.com/PabloGalante/farum-sentinel/internal/app/tools"
	"github.com/PabloGalante/farum-sentinel/internal/domain"
	"github.com/PabloGalante/farum-sentinel/internal/observability"
)

// Reply is the chosen agent response.
type Reply struct {
	Text        string
	ContentType string // "text" or "crisis_template"
}

// Responder is responsible for turning a verdict into the agent's reply.
type Responder struct {
	llm        domain.LLMClient
	safetyTool tools.Tool
}

// NewResponder constructs the reply path. safetyTool may be nil; crisis
// templates are still returned, only the plan persistence is skipped.
func NewResponder(llm domain.LLMClient, safetyTool tools.Tool) *Responder {
	return &Responder{
		llm:        llm,
		safetyTool: safetyTool,
	}
}

// Respond picks the reply for a user message given its risk verdict.
func (r *Responder) Respond(
	ctx context.Context,
	userMessage string,
	convCtx domain.ConversationContext,
	verdict *domain.ComprehensiveAssessment,
) (Reply, error) {

	log := observability.LoggerFromContext(ctx).With(
		"session_id", convCtx.SessionID,
		"user_id", convCtx.UserID,
	)

	if verdict != nil && verdict.Level >= domain.RiskModerate {
		log.Info("crisis reply selected",
			"risk_level", verdict.Level.String(),
			"protocol", string(verdict.Protocol))

		if verdict.RequiresSafetyPlanning() && r.safetyTool != nil {
			if err := r.recordSafetyPlan(ctx, convCtx, verdict); err != nil {
				// The crisis reply must go out even if persistence fails.
				log.Error("safety plan persistence failed", "error", err)
			}
		}

		return Reply{
			Text:        CrisisTemplate(convCtx.Language, verdict.Level),
			ContentType: "crisis_template",
		}, nil
	}

	reply, err := r.llm.GenerateReply(ctx, userMessage, convCtx)
	if err != nil {
		log.Error("llm reply failed", "error", err)
		return Reply{}, err
	}

	return Reply{Text: reply, ContentType: "text"}, nil
}

func (r *Responder) recordSafetyPlan(
	ctx context.Context,
	convCtx domain.ConversationContext,
	verdict *domain.ComprehensiveAssessment,
) error {

	tctx := tools.ToolContext{
		UserID:    string(convCtx.UserID),
		SessionID: string(convCtx.SessionID),
	}

	input := map[string]any{
		"assessment_id": string(verdict.ID),
		"protocol":      string(verdict.Protocol),
		"level":         verdict.Level.String(),
		"monitoring":    string(verdict.Monitoring),
		"steps":         defaultSteps(convCtx.Language, verdict.Level),
		"contacts":      defaultContacts(convCtx.Language),
	}

	_, err := r.safetyTool.Call(ctx, tctx, input)
	return err
}

func defaultSteps(lang string, level domain.RiskLevel) []any {
	es := strings.HasPrefix(strings.ToLower(lang), "es")

	if level >= domain.RiskHigh {
		if es {
			return []any{
				map[string]any{"description": "Llamar ya al número de emergencias o a la línea de crisis"},
				map[string]any{"description": "Avisarle a una persona de confianza cómo me siento"},
				map[string]any{"description": "No quedarme en un lugar donde tenga acceso a medios de hacerme daño"},
			}
		}
		return []any{
			map[string]any{"description": "Call the emergency number or a crisis line right now"},
			map[string]any{"description": "Tell a trusted person how I am feeling"},
			map[string]any{"description": "Stay away from anything I could use to hurt myself"},
		}
	}

	if es {
		return []any{
			map[string]any{"description": "Identificar dos señales de alarma personales"},
			map[string]any{"description": "Elegir una actividad que me calme para esta semana"},
			map[string]any{"description": "Acordar un nuevo check-in con el agente"},
		}
	}
	return []any{
		map[string]any{"description": "Name two personal warning signs"},
		map[string]any{"description": "Pick one calming activity for this week"},
		map[string]any{"description": "Agree on the next check-in with the agent"},
	}
}

func defaultContacts(lang string) []any {
	if strings.HasPrefix(strings.ToLower(lang), "es") {
		return []any{"línea de crisis local", "una persona de confianza"}
	}
	return []any{"local crisis line", "a trusted person"}
}

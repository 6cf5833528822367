package dialogue

import (
	"strings"

	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

// Crisis replies are fixed, reviewed templates. Messages that assess at
// MODERATE or above never reach the LLM: the response wording for those
// situations is not something to generate on the fly.

const enModerateTemplate = `Thank you for telling me this. What you are carrying sounds really heavy, and I want you to know it matters.

I'd like us to put together a small safety plan for the next few days: a couple of things you can do when it gets hard, and one or two people you could reach out to.

If it ever feels like too much, please contact your local crisis line or someone you trust. You don't have to go through this alone.`

const enHighTemplate = `I'm really glad you told me. What you are describing sounds serious, and your safety comes first right now.

Please reach out to your local emergency number or a suicide crisis line right away — they are there for exactly this moment. If you can, also tell someone near you how you are feeling.

I'm staying with you in this conversation, but I cannot replace emergency help. Can you tell me if you are somewhere safe right now?`

const enCriticalTemplate = `What you just shared is serious, and keeping everyone safe is the only priority right now.

Please contact your local emergency services immediately. If a child may be in danger, reach out to your local child protection helpline right away — they respond to exactly this kind of situation.

This conversation cannot replace that help. Please make that call now.`

const esModerateTemplate = `Gracias por contarme esto. Lo que estás cargando suena muy pesado, y quiero que sepas que importa.

Me gustaría que armemos un pequeño plan de seguridad para los próximos días: un par de cosas que puedas hacer cuando se ponga difícil, y una o dos personas a las que puedas recurrir.

Si en algún momento sentís que es demasiado, por favor contactá a una línea de crisis local o a alguien de confianza. No tenés que atravesar esto en soledad.`

const esHighTemplate = `Me alegra mucho que me lo hayas contado. Lo que describís suena serio, y tu seguridad es lo primero ahora.

Por favor contactá ya al número de emergencias local o a una línea de prevención del suicidio: están para este momento exacto. Si podés, contale también a alguien cercano cómo te sentís.

Sigo acá con vos en esta conversación, pero no puedo reemplazar la ayuda de emergencia. ¿Me podés decir si estás en un lugar seguro ahora?`

const esCriticalTemplate = `Lo que acabás de compartir es serio, y la única prioridad ahora es que todos estén a salvo.

Por favor contactá de inmediato a los servicios de emergencia. Si un niño o una niña puede estar en peligro, llamá ya a la línea de protección infantil local: responden exactamente a este tipo de situación.

Esta conversación no puede reemplazar esa ayuda. Por favor hacé esa llamada ahora.`

var crisisTemplates = map[string]map[domain.RiskLevel]string{
	"en": {
		domain.RiskModerate: enModerateTemplate,
		domain.RiskHigh:     enHighTemplate,
		domain.RiskCritical: enCriticalTemplate,
	},
	"es": {
		domain.RiskModerate: esModerateTemplate,
		domain.RiskHigh:     esHighTemplate,
		domain.RiskCritical: esCriticalTemplate,
	},
}

// CrisisTemplate returns the reviewed template for a language and level.
// Unknown languages fall back to English; levels below MODERATE return "".
func CrisisTemplate(lang string, level domain.RiskLevel) string {
	if level < domain.RiskModerate {
		return ""
	}

	base := "en"
	if lang != "" {
		if tag, _, ok := strings.Cut(strings.ToLower(lang), "-"); ok || tag != "" {
			if _, known := crisisTemplates[tag]; known {
				base = tag
			}
		}
	}
	return crisisTemplates[base][level]
}

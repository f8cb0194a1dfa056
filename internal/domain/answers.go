package domain

// TraitKey identifica una pregunta del cuestionario de prakriti.
type TraitKey string

const (
	TraitBodyType             TraitKey = "bodyType"
	TraitSkinType             TraitKey = "skinType"
	TraitHairType             TraitKey = "hairType"
	TraitAppetite             TraitKey = "appetite"
	TraitDigestion            TraitKey = "digestion"
	TraitSleepQuality         TraitKey = "sleepQuality"
	TraitSleepDuration        TraitKey = "sleepDuration"
	TraitTemperament          TraitKey = "temperament"
	TraitEmotionalState       TraitKey = "emotionalState"
	TraitPreferredTemperature TraitKey = "preferredTemperature"
	TraitPhysicalActivity     TraitKey = "physicalActivity"
	TraitFlexibility          TraitKey = "flexibility"
)

// RequiredTraits son las claves que debe tener un AnswerSet completo, en orden de cuestionario.
var RequiredTraits = []TraitKey{
	TraitBodyType,
	TraitSkinType,
	TraitHairType,
	TraitAppetite,
	TraitDigestion,
	TraitSleepQuality,
	TraitSleepDuration,
	TraitTemperament,
	TraitEmotionalState,
	TraitPreferredTemperature,
	TraitPhysicalActivity,
	TraitFlexibility,
}

// IsRequiredTrait indica si k pertenece al cuestionario.
func IsRequiredTrait(k TraitKey) bool {
	for _, r := range RequiredTraits {
		if r == k {
			return true
		}
	}
	return false
}

// AnswerSet mapea cada pregunta a la opcion elegida. Un map no admite claves repetidas.
type AnswerSet map[TraitKey]string

// AnswerOption es una opcion de respuesta con su contribucion a cada dosha.
type AnswerOption struct {
	ID     string      `json:"id" yaml:"id"`
	Label  string      `json:"label" yaml:"label"`
	Weight DoshaVector `json:"weight" yaml:"weight"`
}

// TraitQuestion es una pregunta del cuestionario con sus opciones.
type TraitQuestion struct {
	Key     TraitKey       `json:"key" yaml:"key"`
	Label   string         `json:"label" yaml:"label"`
	Options []AnswerOption `json:"options" yaml:"options"`
}

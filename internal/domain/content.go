package domain

// Priority de una sugerencia dietetica.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank ordena high < medium < low (menor es mas prioritario). Desconocido va al final.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

func (p Priority) Valid() bool {
	return p.Rank() < 3
}

const (
	MealCategoryBreakfast = "breakfast"
	MealCategoryLunch     = "lunch"
	MealCategoryDinner    = "dinner"
	MealCategorySnack     = "snack"

	SuggestionCategoryFood      = "food"
	SuggestionCategoryTiming    = "timing"
	SuggestionCategoryLifestyle = "lifestyle"
	SuggestionCategoryDigestion = "digestion"

	// SeasonAll marca un plato apto para cualquier estacion.
	SeasonAll = "all"
)

// ContentItem es lo comun a platos y sugerencias para el selector.
type ContentItem interface {
	ItemID() string
	ItemCategory() string
	AppliesTo(d Dosha) bool
}

// MealItem es un plato del catalogo del plan de comidas.
type MealItem struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Category    string   `json:"category" yaml:"category"`
	Doshas      []Dosha  `json:"doshas" yaml:"doshas"`
	Benefits    []string `json:"benefits" yaml:"benefits"`
	Cautions    []string `json:"cautions" yaml:"cautions"`
	Seasons     []string `json:"seasons" yaml:"seasons"`
}

func (m MealItem) ItemID() string       { return m.ID }
func (m MealItem) ItemCategory() string { return m.Category }

// AppliesTo es falso para un conjunto vacio de doshas.
func (m MealItem) AppliesTo(d Dosha) bool { return containsDosha(m.Doshas, d) }

// InSeason indica si el plato sirve en la estacion pedida ("all" sirve siempre).
func (m MealItem) InSeason(season string) bool {
	for _, s := range m.Seasons {
		if s == season || s == SeasonAll {
			return true
		}
	}
	return false
}

// DietarySuggestion es una recomendacion con pasos accionables.
type DietarySuggestion struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Description     string   `json:"description" yaml:"description"`
	Doshas          []Dosha  `json:"doshas" yaml:"doshas"`
	Category        string   `json:"category" yaml:"category"`
	Priority        Priority `json:"priority" yaml:"priority"`
	ActionableSteps []string `json:"actionable_steps" yaml:"actionable_steps"`
	Alternatives    []string `json:"alternatives" yaml:"alternatives"`
}

func (s DietarySuggestion) ItemID() string         { return s.ID }
func (s DietarySuggestion) ItemCategory() string   { return s.Category }
func (s DietarySuggestion) AppliesTo(d Dosha) bool { return containsDosha(s.Doshas, d) }

// ContentQuery son los filtros de seleccion. Los campos vacios no filtran; Limit <= 0 no acota.
type ContentQuery struct {
	Primary  Dosha
	Category string
	Priority Priority
	Season   string
	Limit    int
}

func containsDosha(list []Dosha, d Dosha) bool {
	for _, x := range list {
		if x == d {
			return true
		}
	}
	return false
}

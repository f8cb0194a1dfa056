package domain

import "time"

// EffectMin y EffectMax acotan el efecto de un alimento sobre cada dosha.
const (
	EffectMin = -5
	EffectMax = 5
)

// DoshaEffect es el efecto por dosha de un alimento: >= 0 equilibra, < 0 agrava.
type DoshaEffect = DoshaVector

// FoodImpact es la clasificacion del efecto de un alimento sobre un dosha.
type FoodImpact string

const (
	ImpactBalancing   FoodImpact = "balancing"
	ImpactAggravating FoodImpact = "aggravating"
)

// Food es un alimento reconocible con su informacion nutricional por porcion.
type Food struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Category    string      `json:"category" yaml:"category"`
	Calories    float64     `json:"calories" yaml:"calories"`
	ProteinG    float64     `json:"protein_g" yaml:"protein_g"`
	CarbsG      float64     `json:"carbs_g" yaml:"carbs_g"`
	FatG        float64     `json:"fat_g" yaml:"fat_g"`
	FiberG      float64     `json:"fiber_g" yaml:"fiber_g"`
	Effect      DoshaEffect `json:"effect" yaml:"effect"`
	ServingSize string      `json:"serving_size" yaml:"serving_size"`
	ServingUnit string      `json:"serving_unit" yaml:"serving_unit"`
}

// FoodLogEntry es un registro de consumo. Guarda una copia del efecto del alimento
// para que el historial no cambie si el catalogo se actualiza.
type FoodLogEntry struct {
	ID         string      `json:"id"`
	SubjectID  string      `json:"subject_id"`
	FoodID     string      `json:"food_id"`
	FoodName   string      `json:"food_name"`
	MealType   string      `json:"meal_type"`
	Servings   float64     `json:"servings"`
	Calories   float64     `json:"calories"`
	Effect     DoshaEffect `json:"effect"`
	ConsumedAt time.Time   `json:"consumed_at"`
	CreatedAt  time.Time   `json:"created_at"`
}

// PeriodKind distingue el resumen diario del semanal.
type PeriodKind string

const (
	PeriodDaily  PeriodKind = "daily"
	PeriodWeekly PeriodKind = "weekly"
)

// PeriodSummary es el resumen de balance de un periodo.
type PeriodSummary struct {
	Kind             PeriodKind     `json:"kind,omitempty"`
	Start            time.Time      `json:"start,omitempty"`
	End              time.Time      `json:"end,omitempty"`
	Primary          Dosha          `json:"primary"`
	EntryCount       int            `json:"entry_count"`
	TotalCalories    float64        `json:"total_calories"`
	MealCounts       map[string]int `json:"meal_counts"`
	AggravatingFoods []string       `json:"aggravating_foods"`
	BalancingFoods   []string       `json:"balancing_foods"`
	Balance          DoshaVector    `json:"balance"`
	HasBalance       bool           `json:"has_balance"`
}

package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"veda-core/internal/domain"
)

//go:embed data/*.yaml
var defaultData embed.FS

const (
	questionnaireFile = "questionnaire.yaml"
	doshasFile        = "doshas.yaml"
	mealsFile         = "meals.yaml"
	suggestionsFile   = "suggestions.yaml"
	foodsFile         = "foods.yaml"
)

var (
	validMealCategories = map[string]struct{}{
		domain.MealCategoryBreakfast: {},
		domain.MealCategoryLunch:     {},
		domain.MealCategoryDinner:    {},
		domain.MealCategorySnack:     {},
	}
	validSuggestionCategories = map[string]struct{}{
		domain.SuggestionCategoryFood:      {},
		domain.SuggestionCategoryTiming:    {},
		domain.SuggestionCategoryLifestyle: {},
		domain.SuggestionCategoryDigestion: {},
	}
)

// Catalog contiene los datos estaticos de solo lectura: cuestionario, textos por dosha,
// platos, sugerencias y alimentos. Se carga una vez al arrancar y no se modifica.
// Los accesores devuelven copias.
type Catalog struct {
	questions   []domain.TraitQuestion
	doshas      map[domain.Dosha]domain.DoshaInfo
	meals       []domain.MealItem
	suggestions []domain.DietarySuggestion
	foods       []domain.Food
	foodsByID   map[string]int
}

// Default carga el catalogo embebido en el binario.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(defaultData, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// MustDefault es Default para tests y valores por defecto de paquete.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("load default catalog: %v", err))
	}
	return c
}

// Open carga el catalogo de dir, o el embebido si dir esta vacio.
func Open(dir string) (*Catalog, error) {
	if dir == "" {
		return Default()
	}
	return LoadDir(dir)
}

// LoadDir carga el catalogo desde un directorio con los mismos ficheros que el embebido.
func LoadDir(dir string) (*Catalog, error) {
	return Load(os.DirFS(dir))
}

// Load lee y valida los cinco ficheros YAML del catalogo.
func Load(fsys fs.FS) (*Catalog, error) {
	var q struct {
		Questions []domain.TraitQuestion `yaml:"questions"`
	}
	if err := decode(fsys, questionnaireFile, &q); err != nil {
		return nil, err
	}
	var d struct {
		Doshas []domain.DoshaInfo `yaml:"doshas"`
	}
	if err := decode(fsys, doshasFile, &d); err != nil {
		return nil, err
	}
	var m struct {
		Meals []domain.MealItem `yaml:"meals"`
	}
	if err := decode(fsys, mealsFile, &m); err != nil {
		return nil, err
	}
	var s struct {
		Suggestions []domain.DietarySuggestion `yaml:"suggestions"`
	}
	if err := decode(fsys, suggestionsFile, &s); err != nil {
		return nil, err
	}
	var f struct {
		Foods []domain.Food `yaml:"foods"`
	}
	if err := decode(fsys, foodsFile, &f); err != nil {
		return nil, err
	}
	return New(q.Questions, d.Doshas, m.Meals, s.Suggestions, f.Foods)
}

// New construye un catalogo validado a partir de datos ya decodificados (fixtures en tests).
func New(
	questions []domain.TraitQuestion,
	doshas []domain.DoshaInfo,
	meals []domain.MealItem,
	suggestions []domain.DietarySuggestion,
	foods []domain.Food,
) (*Catalog, error) {
	c := &Catalog{
		questions:   cloneQuestions(questions),
		doshas:      make(map[domain.Dosha]domain.DoshaInfo, len(doshas)),
		meals:       append([]domain.MealItem(nil), meals...),
		suggestions: append([]domain.DietarySuggestion(nil), suggestions...),
		foods:       append([]domain.Food(nil), foods...),
		foodsByID:   make(map[string]int, len(foods)),
	}

	for _, info := range doshas {
		if !info.Dosha.Valid() {
			return nil, fmt.Errorf("%s: unknown dosha %q", doshasFile, info.Dosha)
		}
		c.doshas[info.Dosha] = info
	}

	if err := validateMeals(c.meals); err != nil {
		return nil, err
	}
	if err := validateSuggestions(c.suggestions); err != nil {
		return nil, err
	}
	for i, food := range c.foods {
		if food.ID == "" {
			return nil, fmt.Errorf("%s: food %d has no id", foodsFile, i)
		}
		if _, dup := c.foodsByID[food.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate food id %q", foodsFile, food.ID)
		}
		for _, v := range food.Effect.Components() {
			if v < domain.EffectMin || v > domain.EffectMax {
				return nil, fmt.Errorf("%s: food %q effect %d out of range [%d,%d]", foodsFile, food.ID, v, domain.EffectMin, domain.EffectMax)
			}
		}
		c.foodsByID[food.ID] = i
	}
	return c, nil
}

// Questions devuelve el cuestionario en orden.
func (c *Catalog) Questions() []domain.TraitQuestion {
	return cloneQuestions(c.questions)
}

// DoshaInfo devuelve los textos de un dosha.
func (c *Catalog) DoshaInfo(d domain.Dosha) (domain.DoshaInfo, bool) {
	info, ok := c.doshas[d]
	return info, ok
}

func (c *Catalog) Meals() []domain.MealItem {
	return append([]domain.MealItem(nil), c.meals...)
}

func (c *Catalog) Suggestions() []domain.DietarySuggestion {
	return append([]domain.DietarySuggestion(nil), c.suggestions...)
}

func (c *Catalog) Foods() []domain.Food {
	return append([]domain.Food(nil), c.foods...)
}

// Food busca un alimento por id.
func (c *Catalog) Food(id string) (domain.Food, bool) {
	i, ok := c.foodsByID[id]
	if !ok {
		return domain.Food{}, false
	}
	return c.foods[i], true
}

func decode(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func validateMeals(meals []domain.MealItem) error {
	seen := make(map[string]struct{}, len(meals))
	for _, m := range meals {
		if m.ID == "" {
			return errors.New(mealsFile + ": meal without id")
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%s: duplicate meal id %q", mealsFile, m.ID)
		}
		seen[m.ID] = struct{}{}
		if _, ok := validMealCategories[m.Category]; !ok {
			return fmt.Errorf("%s: meal %q has unknown category %q", mealsFile, m.ID, m.Category)
		}
		for _, d := range m.Doshas {
			if !d.Valid() {
				return fmt.Errorf("%s: meal %q has unknown dosha %q", mealsFile, m.ID, d)
			}
		}
	}
	return nil
}

func validateSuggestions(suggestions []domain.DietarySuggestion) error {
	seen := make(map[string]struct{}, len(suggestions))
	for _, s := range suggestions {
		if s.ID == "" {
			return errors.New(suggestionsFile + ": suggestion without id")
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%s: duplicate suggestion id %q", suggestionsFile, s.ID)
		}
		seen[s.ID] = struct{}{}
		if _, ok := validSuggestionCategories[s.Category]; !ok {
			return fmt.Errorf("%s: suggestion %q has unknown category %q", suggestionsFile, s.ID, s.Category)
		}
		if !s.Priority.Valid() {
			return fmt.Errorf("%s: suggestion %q has unknown priority %q", suggestionsFile, s.ID, s.Priority)
		}
		for _, d := range s.Doshas {
			if !d.Valid() {
				return fmt.Errorf("%s: suggestion %q has unknown dosha %q", suggestionsFile, s.ID, d)
			}
		}
	}
	return nil
}

func cloneQuestions(in []domain.TraitQuestion) []domain.TraitQuestion {
	out := make([]domain.TraitQuestion, len(in))
	for i, q := range in {
		q.Options = append([]domain.AnswerOption(nil), q.Options...)
		out[i] = q
	}
	return out
}

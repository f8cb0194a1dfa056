package service

import (
	"fmt"
	"sort"

	"veda-core/internal/catalog"
	"veda-core/internal/domain"
)

// ContentSelector filtra platos y sugerencias del catalogo segun la clasificacion.
// No tiene estado mutable: mismo catalogo y misma consulta dan el mismo resultado.
type ContentSelector struct {
	meals       []domain.MealItem
	suggestions []domain.DietarySuggestion
}

func NewContentSelector(meals []domain.MealItem, suggestions []domain.DietarySuggestion) *ContentSelector {
	return &ContentSelector{
		meals:       append([]domain.MealItem(nil), meals...),
		suggestions: append([]domain.DietarySuggestion(nil), suggestions...),
	}
}

func NewContentSelectorFromCatalog(c *catalog.Catalog) *ContentSelector {
	return NewContentSelector(c.Meals(), c.Suggestions())
}

// SelectMeals devuelve los platos del dosha primario, en orden de catalogo.
// Category y Season filtran si no estan vacios; Limit > 0 acota el resultado.
func (s *ContentSelector) SelectMeals(q domain.ContentQuery) []domain.MealItem {
	out := selectItems(s.meals, q, func(m domain.MealItem) bool {
		return q.Season == "" || m.InSeason(q.Season)
	})
	return truncate(out, q.Limit)
}

// SelectSuggestions devuelve las sugerencias del dosha primario.
// Sin Limit respeta el orden de catalogo. Con Limit > 0 ordena por prioridad
// (high, medium, low), mantiene el orden de catalogo dentro de cada prioridad y corta en Limit.
func (s *ContentSelector) SelectSuggestions(q domain.ContentQuery) []domain.DietarySuggestion {
	out := selectItems(s.suggestions, q, func(sg domain.DietarySuggestion) bool {
		return q.Priority == "" || sg.Priority == q.Priority
	})
	if q.Limit <= 0 {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return truncate(out, q.Limit)
}

// TopSuggestions es la seleccion acotada por prioridad para paneles de resumen.
func (s *ContentSelector) TopSuggestions(primary domain.Dosha, n int) []domain.DietarySuggestion {
	return s.SelectSuggestions(domain.ContentQuery{Primary: primary, Limit: n})
}

// SuggestionByID busca una sugerencia por id en todo el catalogo.
func (s *ContentSelector) SuggestionByID(id string) (domain.DietarySuggestion, error) {
	for _, sg := range s.suggestions {
		if sg.ID == id {
			return sg, nil
		}
	}
	return domain.DietarySuggestion{}, fmt.Errorf("suggestion %q: %w", id, domain.ErrUnknownContent)
}

// selectItems aplica el filtro por dosha y categoria, mas un filtro especifico del tipo.
// Nunca devuelve nil: sin coincidencias el resultado es un slice vacio.
func selectItems[T domain.ContentItem](items []T, q domain.ContentQuery, extra func(T) bool) []T {
	out := make([]T, 0)
	if !q.Primary.Valid() {
		return out
	}
	for _, item := range items {
		if !item.AppliesTo(q.Primary) {
			continue
		}
		if q.Category != "" && item.ItemCategory() != q.Category {
			continue
		}
		if extra != nil && !extra(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

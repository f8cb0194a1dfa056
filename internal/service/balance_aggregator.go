package service

import (
	"errors"
	"fmt"
	"time"

	"veda-core/internal/domain"
)

// BalanceAggregator resume registros de consumo por periodo.
type BalanceAggregator struct{}

// DefaultBalanceAggregator permite uso directo sin instanciar.
var DefaultBalanceAggregator = BalanceAggregator{}

// ClassifyFoodImpact aplica la regla de signo: efecto >= 0 equilibra, < 0 agrava.
func ClassifyFoodImpact(effect domain.DoshaEffect, d domain.Dosha) domain.FoodImpact {
	if effect.Get(d) < 0 {
		return domain.ImpactAggravating
	}
	return domain.ImpactBalancing
}

// FoodImpacts clasifica un alimento para los tres doshas.
func FoodImpacts(effect domain.DoshaEffect) map[domain.Dosha]domain.FoodImpact {
	out := make(map[domain.Dosha]domain.FoodImpact, len(domain.CanonicalOrder))
	for _, d := range domain.CanonicalOrder {
		out[d] = ClassifyFoodImpact(effect, d)
	}
	return out
}

// SummarizePeriod separa alimentos agravantes y equilibrantes para el dosha primario
// (sin repetidos, en orden de primera aparicion) y normaliza la suma de efectos del periodo.
// Un periodo sin registros no es un error: listas vacias y HasBalance=false.
// Si hay registros pero los efectos se anulan del todo devuelve ErrDegenerateScore.
func (BalanceAggregator) SummarizePeriod(records []domain.FoodLogEntry, primary domain.Dosha) (domain.PeriodSummary, error) {
	if !primary.Valid() {
		return domain.PeriodSummary{}, fmt.Errorf("summarize period: unknown dosha %q", primary)
	}
	summary := domain.PeriodSummary{
		Primary:          primary,
		EntryCount:       len(records),
		MealCounts:       make(map[string]int),
		AggravatingFoods: []string{},
		BalancingFoods:   []string{},
	}
	if len(records) == 0 {
		return summary, nil
	}

	seenAggravating := make(map[string]struct{})
	seenBalancing := make(map[string]struct{})
	var total domain.DoshaVector
	for _, r := range records {
		total = total.Add(r.Effect)
		summary.TotalCalories += r.Calories
		if r.MealType != "" {
			summary.MealCounts[r.MealType]++
		}
		name := r.FoodName
		if name == "" {
			name = r.FoodID
		}
		switch ClassifyFoodImpact(r.Effect, primary) {
		case domain.ImpactAggravating:
			if _, ok := seenAggravating[name]; !ok {
				seenAggravating[name] = struct{}{}
				summary.AggravatingFoods = append(summary.AggravatingFoods, name)
			}
		default:
			if _, ok := seenBalancing[name]; !ok {
				seenBalancing[name] = struct{}{}
				summary.BalancingFoods = append(summary.BalancingFoods, name)
			}
		}
	}

	balance, err := NormalizeSigned(total)
	if err != nil {
		return summary, err
	}
	summary.Balance = balance
	summary.HasBalance = true
	return summary, nil
}

// SummarizeWindow filtra los registros de la ventana que contiene ref y los resume.
func (a BalanceAggregator) SummarizeWindow(kind domain.PeriodKind, ref time.Time, records []domain.FoodLogEntry, primary domain.Dosha) (domain.PeriodSummary, error) {
	start, end, err := PeriodWindow(kind, ref)
	if err != nil {
		return domain.PeriodSummary{}, err
	}
	inWindow := make([]domain.FoodLogEntry, 0, len(records))
	for _, r := range records {
		at := r.ConsumedAt.UTC()
		if !at.Before(start) && at.Before(end) {
			inWindow = append(inWindow, r)
		}
	}
	summary, err := a.SummarizePeriod(inWindow, primary)
	summary.Kind = kind
	summary.Start = start
	summary.End = end
	return summary, err
}

// PeriodWindow devuelve [start, end) en UTC. El dia empieza a medianoche; la semana
// son siete dias desde la medianoche de ref (ref se interpreta como inicio de semana).
func PeriodWindow(kind domain.PeriodKind, ref time.Time) (time.Time, time.Time, error) {
	ref = ref.UTC()
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	switch kind {
	case domain.PeriodDaily:
		return start, start.AddDate(0, 0, 1), nil
	case domain.PeriodWeekly:
		return start, start.AddDate(0, 0, 7), nil
	}
	return time.Time{}, time.Time{}, errors.New("unknown period kind: " + string(kind))
}

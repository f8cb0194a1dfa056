package service

import (
	"errors"
	"testing"
	"time"

	"veda-core/internal/domain"
)

func entry(name string, effect domain.DoshaEffect, at time.Time) domain.FoodLogEntry {
	return domain.FoodLogEntry{FoodID: name, FoodName: name, Effect: effect, ConsumedAt: at, Servings: 1}
}

func TestClassifyFoodImpact(t *testing.T) {
	effect := domain.DoshaEffect{Vata: 0, Pitta: -1, Kapha: 3}
	if got := ClassifyFoodImpact(effect, domain.Vata); got != domain.ImpactBalancing {
		t.Fatalf("expected zero effect to be balancing, got %s", got)
	}
	if got := ClassifyFoodImpact(effect, domain.Pitta); got != domain.ImpactAggravating {
		t.Fatalf("expected negative effect to be aggravating, got %s", got)
	}
	impacts := FoodImpacts(effect)
	if len(impacts) != 3 || impacts[domain.Kapha] != domain.ImpactBalancing {
		t.Fatalf("unexpected impacts: %+v", impacts)
	}
}

func TestSummarizePeriod_SplitsByPrimary(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	records := []domain.FoodLogEntry{
		entry("Ghee", domain.DoshaEffect{Vata: -2, Pitta: 1, Kapha: 1}, now),
		entry("Apple", domain.DoshaEffect{Vata: 1, Pitta: 0, Kapha: 0}, now),
		entry("Rice", domain.DoshaEffect{Vata: -3, Pitta: 0, Kapha: 2}, now),
	}

	summary, err := DefaultBalanceAggregator.SummarizePeriod(records, domain.Vata)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !equalIDs(summary.AggravatingFoods, []string{"Ghee", "Rice"}) {
		t.Fatalf("unexpected aggravating foods: %v", summary.AggravatingFoods)
	}
	if !equalIDs(summary.BalancingFoods, []string{"Apple"}) {
		t.Fatalf("unexpected balancing foods: %v", summary.BalancingFoods)
	}
	// Suma {-4, 1, 3}, total absoluto 8.
	want := domain.DoshaVector{Vata: -50, Pitta: 13, Kapha: 38}
	if summary.Balance != want || !summary.HasBalance {
		t.Fatalf("expected balance %+v, got %+v (has=%v)", want, summary.Balance, summary.HasBalance)
	}
	if summary.EntryCount != 3 {
		t.Fatalf("expected 3 entries, got %d", summary.EntryCount)
	}
}

func TestSummarizePeriod_DistinctNames(t *testing.T) {
	now := time.Now().UTC()
	records := []domain.FoodLogEntry{
		entry("Milk", domain.DoshaEffect{Kapha: 3}, now),
		entry("Milk", domain.DoshaEffect{Kapha: 3}, now),
		entry("Honey", domain.DoshaEffect{Kapha: -4}, now),
		entry("Honey", domain.DoshaEffect{Kapha: -4}, now),
	}
	summary, err := DefaultBalanceAggregator.SummarizePeriod(records, domain.Kapha)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !equalIDs(summary.BalancingFoods, []string{"Milk"}) || !equalIDs(summary.AggravatingFoods, []string{"Honey"}) {
		t.Fatalf("expected distinct names, got %+v", summary)
	}
}

func TestSummarizePeriod_NegativeHalfBalance(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	records := []domain.FoodLogEntry{
		entry("Coffee", domain.DoshaEffect{Vata: -3, Pitta: 1}, now),
		entry("Pear", domain.DoshaEffect{Vata: -2, Pitta: 2}, now),
	}
	// (-5, 3, 0) sobre 8: -62.5 -> -62, 37.5 -> 38.
	summary, err := DefaultBalanceAggregator.SummarizePeriod(records, domain.Vata)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := (domain.DoshaVector{Vata: -62, Pitta: 38}); summary.Balance != want {
		t.Fatalf("expected balance %+v, got %+v", want, summary.Balance)
	}
}

func TestSummarizePeriod_EmptyIsNotError(t *testing.T) {
	summary, err := DefaultBalanceAggregator.SummarizePeriod(nil, domain.Pitta)
	if err != nil {
		t.Fatalf("expected no error for empty period, got %v", err)
	}
	if summary.HasBalance || summary.EntryCount != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.AggravatingFoods == nil || summary.BalancingFoods == nil {
		t.Fatalf("expected empty non-nil lists")
	}
}

func TestSummarizePeriod_CancellingEffectsAreDegenerate(t *testing.T) {
	now := time.Now().UTC()
	records := []domain.FoodLogEntry{
		entry("A", domain.DoshaEffect{Vata: 2, Pitta: -1}, now),
		entry("B", domain.DoshaEffect{Vata: -2, Pitta: 1}, now),
	}
	_, err := DefaultBalanceAggregator.SummarizePeriod(records, domain.Vata)
	if !errors.Is(err, domain.ErrDegenerateScore) {
		t.Fatalf("expected ErrDegenerateScore, got %v", err)
	}
}

func TestSummarizePeriod_UnknownDosha(t *testing.T) {
	if _, err := DefaultBalanceAggregator.SummarizePeriod(nil, "EARTH"); err == nil {
		t.Fatalf("expected error for unknown dosha")
	}
}

func TestSummarizeWindow_FiltersByDay(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	records := []domain.FoodLogEntry{
		entry("Before", domain.DoshaEffect{Vata: 1}, day.Add(-time.Minute)),
		entry("Morning", domain.DoshaEffect{Vata: 2}, day.Add(8*time.Hour)),
		entry("Night", domain.DoshaEffect{Vata: -1}, day.Add(23*time.Hour+59*time.Minute)),
		entry("Next", domain.DoshaEffect{Vata: 1}, day.AddDate(0, 0, 1)),
	}
	records[1].Calories = 200
	records[1].MealType = domain.MealCategoryBreakfast
	records[2].Calories = 150
	records[2].MealType = domain.MealCategoryDinner

	summary, err := DefaultBalanceAggregator.SummarizeWindow(domain.PeriodDaily, day.Add(12*time.Hour), records, domain.Vata)
	if err != nil {
		t.Fatalf("summarize window: %v", err)
	}
	if summary.EntryCount != 2 {
		t.Fatalf("expected 2 entries in window, got %d", summary.EntryCount)
	}
	if summary.TotalCalories != 350 {
		t.Fatalf("expected 350 calories, got %v", summary.TotalCalories)
	}
	if summary.MealCounts[domain.MealCategoryBreakfast] != 1 || summary.MealCounts[domain.MealCategoryDinner] != 1 {
		t.Fatalf("unexpected meal counts: %+v", summary.MealCounts)
	}
	if !summary.Start.Equal(day) || !summary.End.Equal(day.AddDate(0, 0, 1)) {
		t.Fatalf("unexpected window [%v, %v)", summary.Start, summary.End)
	}
}

func TestPeriodWindow(t *testing.T) {
	ref := time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC)
	start, end, err := PeriodWindow(domain.PeriodWeekly, ref)
	if err != nil {
		t.Fatalf("period window: %v", err)
	}
	if !start.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) || !end.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected weekly window [%v, %v)", start, end)
	}
	if _, _, err := PeriodWindow("monthly", ref); err == nil {
		t.Fatalf("expected error for unknown period kind")
	}
}

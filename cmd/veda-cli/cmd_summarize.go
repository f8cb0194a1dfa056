package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"veda-core/internal/domain"
	"veda-core/internal/service"
)

// logRecord es una linea del fichero de consumos; el efecto sale del catalogo.
type logRecord struct {
	FoodID   string  `json:"food_id"`
	Servings float64 `json:"servings"`
	MealType string  `json:"meal_type"`
}

func summarizeCmd(a *app) *cobra.Command {
	var (
		logPath string
		dosha   string
	)
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize a food log for a primary dosha",
		RunE: func(cmd *cobra.Command, args []string) error {
			primary, err := domain.ParseDosha(dosha)
			if err != nil {
				return fmt.Errorf("summarize: %w", err)
			}
			raw, err := os.ReadFile(logPath)
			if err != nil {
				return fmt.Errorf("summarize: reading log: %w", err)
			}
			var records []logRecord
			if err := json.Unmarshal(raw, &records); err != nil {
				return fmt.Errorf("summarize: parsing log: %w", err)
			}

			entries := make([]domain.FoodLogEntry, 0, len(records))
			for _, r := range records {
				food, ok := a.catalog.Food(r.FoodID)
				if !ok {
					return fmt.Errorf("summarize: unknown food %q", r.FoodID)
				}
				servings := r.Servings
				if servings <= 0 {
					servings = 1
				}
				entries = append(entries, domain.FoodLogEntry{
					FoodID:   food.ID,
					FoodName: food.Name,
					MealType: r.MealType,
					Servings: servings,
					Calories: servings * food.Calories,
					Effect:   food.Effect,
				})
			}

			summary, err := service.DefaultBalanceAggregator.SummarizePeriod(entries, primary)
			if err != nil {
				return fmt.Errorf("summarize: %w", err)
			}
			return writeJSON(cmd, summary)
		},
	}
	cmd.Flags().StringVar(&logPath, "log", "", "path to a JSON array of {food_id, servings, meal_type}")
	cmd.Flags().StringVar(&dosha, "dosha", "", "primary dosha")
	_ = cmd.MarkFlagRequired("log")
	_ = cmd.MarkFlagRequired("dosha")
	return cmd
}

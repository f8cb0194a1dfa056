package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"veda-core/internal/domain"
	"veda-core/internal/service"
)

type contentFlags struct {
	dosha    string
	category string
	priority string
	season   string
	limit    int
}

func (f *contentFlags) register(cmd *cobra.Command, withPriority, withSeason bool) {
	cmd.Flags().StringVar(&f.dosha, "dosha", "", "primary dosha (vata, pitta, kapha)")
	cmd.Flags().StringVar(&f.category, "category", "", "category filter")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "maximum number of items (0 = all)")
	if withPriority {
		cmd.Flags().StringVar(&f.priority, "priority", "", "priority filter (high, medium, low)")
	}
	if withSeason {
		cmd.Flags().StringVar(&f.season, "season", "", "season filter")
	}
	_ = cmd.MarkFlagRequired("dosha")
}

func (f *contentFlags) query() (domain.ContentQuery, error) {
	d, err := domain.ParseDosha(f.dosha)
	if err != nil {
		return domain.ContentQuery{}, err
	}
	q := domain.ContentQuery{
		Primary:  d,
		Category: strings.ToLower(f.category),
		Priority: domain.Priority(strings.ToLower(f.priority)),
		Season:   strings.ToLower(f.season),
		Limit:    f.limit,
	}
	if q.Priority != "" && !q.Priority.Valid() {
		return domain.ContentQuery{}, fmt.Errorf("unknown priority %q", f.priority)
	}
	return q, nil
}

func mealsCmd(a *app) *cobra.Command {
	f := &contentFlags{}
	cmd := &cobra.Command{
		Use:   "meals",
		Short: "List meal items for a dosha",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := f.query()
			if err != nil {
				return fmt.Errorf("meals: %w", err)
			}
			meals := service.NewContentSelectorFromCatalog(a.catalog).SelectMeals(q)
			out := cmd.OutOrStdout()
			if len(meals) == 0 {
				fmt.Fprintln(out, "No meals found.")
				return nil
			}
			for _, m := range meals {
				fmt.Fprintf(out, "[%s] %-10s %s\n", m.ID, m.Category, m.Name)
			}
			return nil
		},
	}
	f.register(cmd, false, true)
	return cmd
}

func suggestionsCmd(a *app) *cobra.Command {
	f := &contentFlags{}
	cmd := &cobra.Command{
		Use:   "suggestions",
		Short: "List dietary suggestions for a dosha",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := f.query()
			if err != nil {
				return fmt.Errorf("suggestions: %w", err)
			}
			suggestions := service.NewContentSelectorFromCatalog(a.catalog).SelectSuggestions(q)
			out := cmd.OutOrStdout()
			if len(suggestions) == 0 {
				fmt.Fprintln(out, "No suggestions found.")
				return nil
			}
			for _, s := range suggestions {
				fmt.Fprintf(out, "[%s] %-6s %-10s %s\n", s.ID, s.Priority, s.Category, s.Title)
			}
			return nil
		},
	}
	f.register(cmd, true, false)
	return cmd
}

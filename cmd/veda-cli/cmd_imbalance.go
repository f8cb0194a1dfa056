package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"veda-core/internal/domain"
	"veda-core/internal/service"
)

func imbalanceCmd(a *app) *cobra.Command {
	var (
		baseline  string
		current   string
		threshold int
	)
	cmd := &cobra.Command{
		Use:   "imbalance",
		Short: "Compare a baseline and a current vector",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := parseVector(baseline)
			if err != nil {
				return fmt.Errorf("imbalance: baseline: %w", err)
			}
			c, err := parseVector(current)
			if err != nil {
				return fmt.Errorf("imbalance: current: %w", err)
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.ImbalanceThreshold
			}
			report := service.NewImbalanceDetector(threshold).Compare(b, c)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Diff:       vata=%d pitta=%d kapha=%d\n", report.Diff.Vata, report.Diff.Pitta, report.Diff.Kapha)
			fmt.Fprintf(out, "Max diff:   %d (threshold %d)\n", report.MaxDiff, report.Threshold)
			fmt.Fprintf(out, "Imbalanced: %t\n", report.Imbalanced)
			return nil
		},
	}
	cmd.Flags().StringVar(&baseline, "baseline", "", "baseline vector as vata,pitta,kapha")
	cmd.Flags().StringVar(&current, "current", "", "current vector as vata,pitta,kapha")
	cmd.Flags().IntVar(&threshold, "threshold", service.DefaultImbalanceThreshold, "imbalance threshold in percentage points")
	_ = cmd.MarkFlagRequired("baseline")
	_ = cmd.MarkFlagRequired("current")
	return cmd
}

// parseVector lee "v,p,k".
func parseVector(raw string) (domain.DoshaVector, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return domain.DoshaVector{}, fmt.Errorf("expected 3 comma separated values, got %q", raw)
	}
	var vals [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return domain.DoshaVector{}, fmt.Errorf("invalid component %q: %w", p, err)
		}
		vals[i] = n
	}
	return domain.DoshaVector{Vata: vals[0], Pitta: vals[1], Kapha: vals[2]}, nil
}

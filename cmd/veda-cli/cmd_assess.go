package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"veda-core/internal/db"
	"veda-core/internal/domain"
	"veda-core/internal/repository"
	"veda-core/internal/service"
)

func assessCmd(a *app) *cobra.Command {
	var (
		answersPath string
		subjectID   string
		dbPath      string
	)
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Compute a constitution from a JSON answer file",
		Long:  "Reads a JSON object mapping trait keys to option ids. With --subject and --db the result is stored as the subject's profile.",
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := readAnswers(answersPath)
			if err != nil {
				return err
			}
			engine, err := service.NewConstitutionEngineFromCatalog(a.catalog)
			if err != nil {
				return fmt.Errorf("assess: %w", err)
			}

			if subjectID == "" {
				cls, err := engine.ComputeConstitution(answers)
				if err != nil {
					return fmt.Errorf("assess: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Scores:    vata=%d pitta=%d kapha=%d\n", cls.Scores.Vata, cls.Scores.Pitta, cls.Scores.Kapha)
				fmt.Fprintf(out, "Primary:   %s\n", cls.Primary)
				fmt.Fprintf(out, "Secondary: %s\n", cls.Secondary)
				if info, ok := a.catalog.DoshaInfo(cls.Primary); ok {
					fmt.Fprintf(out, "\n%s (%s)\n", info.Description, info.Elements)
				}
				return nil
			}

			conn, err := db.OpenSQLite(cmd.Context(), dbPath)
			if err != nil {
				return fmt.Errorf("assess: %w", err)
			}
			defer conn.Close()

			detector := service.NewImbalanceDetector(a.cfg.ImbalanceThreshold)
			svc := service.NewProfileService(a.logger, engine, detector, repository.NewSQLiteProfileRepository(conn), nil, nil)
			profile, err := svc.LoadOrCreateProfile(cmd.Context(), subjectID, answers)
			if err != nil {
				return fmt.Errorf("assess: %w", err)
			}
			return writeJSON(cmd, map[string]any{
				"profile":   profile,
				"imbalance": detector.Detect(profile),
			})
		},
	}
	cmd.Flags().StringVar(&answersPath, "answers", "", "path to the JSON answers file")
	cmd.Flags().StringVar(&subjectID, "subject", "", "subject id; stores the profile when set")
	cmd.Flags().StringVar(&dbPath, "db", "veda-profiles.db", "SQLite database for stored profiles")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func readAnswers(path string) (domain.AnswerSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers: %w", err)
	}
	var answers domain.AnswerSet
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("parsing answers: %w", err)
	}
	return answers, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

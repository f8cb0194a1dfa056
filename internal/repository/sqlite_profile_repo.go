package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"veda-core/internal/domain"
)

// SQLiteProfileRepository guarda perfiles en una base local (CLI, pruebas).
// Aplica la misma regla que Postgres: baseline se escribe una sola vez.
type SQLiteProfileRepository struct {
	db *sql.DB
}

func NewSQLiteProfileRepository(db *sql.DB) *SQLiteProfileRepository {
	return &SQLiteProfileRepository{db: db}
}

const sqliteProfileColumns = `id, subject_id, baseline_vata, baseline_pitta, baseline_kapha,
	current_vata, current_pitta, current_kapha, primary_type, secondary_type,
	current_primary, current_secondary, imbalance, last_assessed_at, created_at, updated_at`

func (r *SQLiteProfileRepository) GetBySubjectID(ctx context.Context, subjectID string) (domain.ConstitutionProfile, error) {
	query := `SELECT ` + sqliteProfileColumns + ` FROM constitution_profiles WHERE subject_id = ?`
	profile, err := scanSQLiteProfile(r.db.QueryRowContext(ctx, query, subjectID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ConstitutionProfile{}, domain.ErrProfileNotFound
	}
	return profile, err
}

func (r *SQLiteProfileRepository) Upsert(ctx context.Context, profile domain.ConstitutionProfile) (domain.ConstitutionProfile, error) {
	query := `
		INSERT INTO constitution_profiles (` + sqliteProfileColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (subject_id)
		DO UPDATE SET
			current_vata = excluded.current_vata,
			current_pitta = excluded.current_pitta,
			current_kapha = excluded.current_kapha,
			current_primary = excluded.current_primary,
			current_secondary = excluded.current_secondary,
			imbalance = excluded.imbalance,
			last_assessed_at = excluded.last_assessed_at,
			updated_at = excluded.updated_at
		RETURNING ` + sqliteProfileColumns

	imbalance := 0
	if profile.Imbalance {
		imbalance = 1
	}
	return scanSQLiteProfile(r.db.QueryRowContext(ctx, query,
		profile.ID,
		profile.SubjectID,
		profile.Baseline.Vata,
		profile.Baseline.Pitta,
		profile.Baseline.Kapha,
		profile.Current.Vata,
		profile.Current.Pitta,
		profile.Current.Kapha,
		string(profile.PrimaryType),
		string(profile.SecondaryType),
		string(profile.CurrentPrimary),
		string(profile.CurrentSecondary),
		imbalance,
		formatTime(profile.LastAssessedAt),
		formatTime(profile.CreatedAt),
		formatTime(profile.UpdatedAt),
	))
}

func scanSQLiteProfile(row *sql.Row) (domain.ConstitutionProfile, error) {
	var p domain.ConstitutionProfile
	var primary, secondary, curPri, curSec string
	var lastAssessed, created, updated string
	var imbalance int
	err := row.Scan(
		&p.ID,
		&p.SubjectID,
		&p.Baseline.Vata,
		&p.Baseline.Pitta,
		&p.Baseline.Kapha,
		&p.Current.Vata,
		&p.Current.Pitta,
		&p.Current.Kapha,
		&primary,
		&secondary,
		&curPri,
		&curSec,
		&imbalance,
		&lastAssessed,
		&created,
		&updated,
	)
	if err != nil {
		return domain.ConstitutionProfile{}, err
	}
	p.PrimaryType = domain.Dosha(primary)
	p.SecondaryType = domain.Dosha(secondary)
	p.CurrentPrimary = domain.Dosha(curPri)
	p.CurrentSecondary = domain.Dosha(curSec)
	p.Imbalance = imbalance != 0
	if p.LastAssessedAt, err = parseTime(lastAssessed); err != nil {
		return domain.ConstitutionProfile{}, err
	}
	if p.CreatedAt, err = parseTime(created); err != nil {
		return domain.ConstitutionProfile{}, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return domain.ConstitutionProfile{}, err
	}
	return p, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return t, nil
}

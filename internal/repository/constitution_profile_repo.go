package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"veda-core/internal/domain"
)

// ProfileRepository persiste perfiles de constitucion.
// Upsert inserta el perfil si el sujeto no tiene uno; si ya existe solo reescribe los campos
// de la evaluacion actual y deja intactos baseline, tipo primario/secundario, id y created_at.
// Devuelve siempre la fila tal como quedo guardada.
type ProfileRepository interface {
	GetBySubjectID(ctx context.Context, subjectID string) (domain.ConstitutionProfile, error)
	Upsert(ctx context.Context, profile domain.ConstitutionProfile) (domain.ConstitutionProfile, error)
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

const profileColumns = `id, subject_id, baseline_vector, current_vector, primary_type, secondary_type,
	current_primary, current_secondary, imbalance, last_assessed_at, created_at, updated_at`

func (r *PgProfileRepository) GetBySubjectID(ctx context.Context, subjectID string) (domain.ConstitutionProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM constitution_profiles WHERE subject_id = $1`
	profile, err := scanPgProfile(r.pool.QueryRow(ctx, query, subjectID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ConstitutionProfile{}, domain.ErrProfileNotFound
	}
	return profile, err
}

func (r *PgProfileRepository) Upsert(ctx context.Context, profile domain.ConstitutionProfile) (domain.ConstitutionProfile, error) {
	query := `
		INSERT INTO constitution_profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (subject_id)
		DO UPDATE SET
			current_vector = EXCLUDED.current_vector,
			current_primary = EXCLUDED.current_primary,
			current_secondary = EXCLUDED.current_secondary,
			imbalance = EXCLUDED.imbalance,
			last_assessed_at = EXCLUDED.last_assessed_at,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + profileColumns

	return scanPgProfile(r.pool.QueryRow(ctx, query,
		profile.ID,
		profile.SubjectID,
		toPgVector(profile.Baseline),
		toPgVector(profile.Current),
		string(profile.PrimaryType),
		string(profile.SecondaryType),
		string(profile.CurrentPrimary),
		string(profile.CurrentSecondary),
		profile.Imbalance,
		profile.LastAssessedAt,
		profile.CreatedAt,
		profile.UpdatedAt,
	))
}

func scanPgProfile(row pgx.Row) (domain.ConstitutionProfile, error) {
	var p domain.ConstitutionProfile
	var baseline, current pgvector.Vector
	var primary, secondary, curPri, curSec string
	err := row.Scan(
		&p.ID,
		&p.SubjectID,
		&baseline,
		&current,
		&primary,
		&secondary,
		&curPri,
		&curSec,
		&p.Imbalance,
		&p.LastAssessedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.ConstitutionProfile{}, err
	}
	p.Baseline = fromPgVector(baseline)
	p.Current = fromPgVector(current)
	p.PrimaryType = domain.Dosha(primary)
	p.SecondaryType = domain.Dosha(secondary)
	p.CurrentPrimary = domain.Dosha(curPri)
	p.CurrentSecondary = domain.Dosha(curSec)
	return p, nil
}

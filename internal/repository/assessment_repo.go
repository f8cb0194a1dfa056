package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"veda-core/internal/domain"
)

// AssessmentRepository guarda el historial de evaluaciones de cada sujeto.
type AssessmentRepository interface {
	Create(ctx context.Context, assessment domain.Assessment) error
	ListBySubjectID(ctx context.Context, subjectID string, limit int) ([]domain.Assessment, error)
	ListNearest(ctx context.Context, subjectID string, target domain.DoshaVector, limit int) ([]domain.Assessment, error)
}

type PgAssessmentRepository struct {
	pool *pgxpool.Pool
}

func NewPgAssessmentRepository(pool *pgxpool.Pool) *PgAssessmentRepository {
	return &PgAssessmentRepository{pool: pool}
}

func (r *PgAssessmentRepository) Create(ctx context.Context, a domain.Assessment) error {
	const query = `
		INSERT INTO assessments (id, profile_id, subject_id, answers, raw_vector, scores_vector, primary_type, secondary_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	_, err = r.pool.Exec(ctx, query,
		a.ID,
		a.ProfileID,
		a.SubjectID,
		answers,
		toPgVector(a.Raw),
		toPgVector(a.Scores),
		string(a.Primary),
		string(a.Secondary),
		a.CreatedAt,
	)
	return err
}

// ListBySubjectID devuelve las evaluaciones mas recientes primero.
func (r *PgAssessmentRepository) ListBySubjectID(ctx context.Context, subjectID string, limit int) ([]domain.Assessment, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
		SELECT id, profile_id, subject_id, answers, raw_vector, scores_vector, primary_type, secondary_type, created_at
		FROM assessments
		WHERE subject_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, subjectID, limit)
	if err != nil {
		return nil, err
	}
	return scanAssessments(rows)
}

// ListNearest ordena las evaluaciones por distancia L2 entre sus scores y target
// (normalmente el baseline del perfil).
func (r *PgAssessmentRepository) ListNearest(ctx context.Context, subjectID string, target domain.DoshaVector, limit int) ([]domain.Assessment, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
		SELECT id, profile_id, subject_id, answers, raw_vector, scores_vector, primary_type, secondary_type, created_at
		FROM assessments
		WHERE subject_id = $1
		ORDER BY scores_vector <-> $2, created_at DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, subjectID, toPgVector(target), limit)
	if err != nil {
		return nil, err
	}
	return scanAssessments(rows)
}

func scanAssessments(rows pgx.Rows) ([]domain.Assessment, error) {
	defer rows.Close()

	out := make([]domain.Assessment, 0)
	for rows.Next() {
		var a domain.Assessment
		var answers []byte
		var raw, scores pgvector.Vector
		var primary, secondary string
		if err := rows.Scan(
			&a.ID,
			&a.ProfileID,
			&a.SubjectID,
			&answers,
			&raw,
			&scores,
			&primary,
			&secondary,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(answers, &a.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers of assessment %s: %w", a.ID, err)
		}
		a.Raw = fromPgVector(raw)
		a.Scores = fromPgVector(scores)
		a.Primary = domain.Dosha(primary)
		a.Secondary = domain.Dosha(secondary)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

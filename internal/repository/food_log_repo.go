package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"veda-core/internal/domain"
)

type FoodLogRepository interface {
	Create(ctx context.Context, entry domain.FoodLogEntry) error
	ListBySubjectBetween(ctx context.Context, subjectID string, start, end time.Time) ([]domain.FoodLogEntry, error)
}

type PgFoodLogRepository struct {
	pool *pgxpool.Pool
}

func NewPgFoodLogRepository(pool *pgxpool.Pool) *PgFoodLogRepository {
	return &PgFoodLogRepository{pool: pool}
}

func (r *PgFoodLogRepository) Create(ctx context.Context, e domain.FoodLogEntry) error {
	const query = `
		INSERT INTO food_log_entries (id, subject_id, food_id, food_name, meal_type, servings, calories, effect_vata, effect_pitta, effect_kapha, consumed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		e.ID,
		e.SubjectID,
		e.FoodID,
		e.FoodName,
		e.MealType,
		e.Servings,
		e.Calories,
		e.Effect.Vata,
		e.Effect.Pitta,
		e.Effect.Kapha,
		e.ConsumedAt,
		e.CreatedAt,
	)
	return err
}

// ListBySubjectBetween devuelve los registros con consumed_at en [start, end), en orden cronologico.
func (r *PgFoodLogRepository) ListBySubjectBetween(ctx context.Context, subjectID string, start, end time.Time) ([]domain.FoodLogEntry, error) {
	const query = `
		SELECT id, subject_id, food_id, food_name, meal_type, servings, calories, effect_vata, effect_pitta, effect_kapha, consumed_at, created_at
		FROM food_log_entries
		WHERE subject_id = $1 AND consumed_at >= $2 AND consumed_at < $3
		ORDER BY consumed_at ASC, created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, subjectID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.FoodLogEntry, 0)
	for rows.Next() {
		var e domain.FoodLogEntry
		if err := rows.Scan(
			&e.ID,
			&e.SubjectID,
			&e.FoodID,
			&e.FoodName,
			&e.MealType,
			&e.Servings,
			&e.Calories,
			&e.Effect.Vata,
			&e.Effect.Pitta,
			&e.Effect.Kapha,
			&e.ConsumedAt,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

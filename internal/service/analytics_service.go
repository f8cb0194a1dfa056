package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"veda-core/internal/catalog"
	"veda-core/internal/domain"
	"veda-core/internal/repository"
)

var ErrInvalidMealType = errors.New("invalid meal type")

// FoodLogInput es un consumo a registrar. Servings <= 0 cuenta como una porcion.
type FoodLogInput struct {
	FoodID     string
	Servings   float64
	MealType   string
	ConsumedAt time.Time
}

// AnalyticsService registra consumos y calcula los resumenes diario y semanal.
type AnalyticsService struct {
	logger     *zap.Logger
	catalog    *catalog.Catalog
	logs       repository.FoodLogRepository
	profiles   repository.ProfileRepository
	aggregator BalanceAggregator
	now        func() time.Time
}

func NewAnalyticsService(logger *zap.Logger, c *catalog.Catalog, logs repository.FoodLogRepository, profiles repository.ProfileRepository) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{
		logger:     logger,
		catalog:    c,
		logs:       logs,
		profiles:   profiles,
		aggregator: DefaultBalanceAggregator,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// RecordFood guarda un consumo copiando el efecto del alimento del catalogo.
func (s *AnalyticsService) RecordFood(ctx context.Context, subjectID string, in FoodLogInput) (domain.FoodLogEntry, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return domain.FoodLogEntry{}, ErrInvalidSubject
	}
	food, ok := s.catalog.Food(strings.TrimSpace(in.FoodID))
	if !ok {
		return domain.FoodLogEntry{}, fmt.Errorf("food %q: %w", in.FoodID, domain.ErrUnknownContent)
	}
	mealType := strings.ToLower(strings.TrimSpace(in.MealType))
	switch mealType {
	case "", domain.MealCategoryBreakfast, domain.MealCategoryLunch, domain.MealCategoryDinner, domain.MealCategorySnack:
	default:
		return domain.FoodLogEntry{}, ErrInvalidMealType
	}
	servings := in.Servings
	if servings <= 0 {
		servings = 1
	}
	now := s.now()
	consumedAt := in.ConsumedAt
	if consumedAt.IsZero() {
		consumedAt = now
	}

	entry := domain.FoodLogEntry{
		ID:         uuid.NewString(),
		SubjectID:  subjectID,
		FoodID:     food.ID,
		FoodName:   food.Name,
		MealType:   mealType,
		Servings:   servings,
		Calories:   servings * food.Calories,
		Effect:     food.Effect,
		ConsumedAt: consumedAt.UTC(),
		CreatedAt:  now,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		return domain.FoodLogEntry{}, fmt.Errorf("save food log: %w", err)
	}
	return entry, nil
}

// Summary resume el periodo que contiene ref. Sin override usa el dosha primario actual del perfil.
func (s *AnalyticsService) Summary(ctx context.Context, subjectID string, kind domain.PeriodKind, ref time.Time, override domain.Dosha) (domain.PeriodSummary, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return domain.PeriodSummary{}, ErrInvalidSubject
	}
	primary := override
	if primary == "" {
		profile, err := s.profiles.GetBySubjectID(ctx, subjectID)
		if err != nil {
			return domain.PeriodSummary{}, err
		}
		primary = profile.CurrentPrimary
	}
	start, end, err := PeriodWindow(kind, ref)
	if err != nil {
		return domain.PeriodSummary{}, err
	}
	records, err := s.logs.ListBySubjectBetween(ctx, subjectID, start, end)
	if err != nil {
		return domain.PeriodSummary{}, fmt.Errorf("list food log: %w", err)
	}
	summary, err := s.aggregator.SummarizeWindow(kind, ref, records, primary)
	if err != nil {
		s.logger.Warn("summarize period failed",
			zap.String("subject_id", subjectID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return domain.PeriodSummary{}, err
	}
	return summary, nil
}

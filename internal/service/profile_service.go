package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"veda-core/internal/domain"
	"veda-core/internal/repository"
)

var (
	ErrInvalidSubject        = errors.New("invalid subject id")
	ErrAssessmentRateLimited = errors.New("assessment rate limited")
)

// RateLimitError indica cuanto debe esperar el sujeto antes de volver a evaluarse.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrAssessmentRateLimited, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error { return ErrAssessmentRateLimited }

// ProfileService coordina evaluacion, persistencia del perfil e historial.
type ProfileService struct {
	logger      *zap.Logger
	engine      *ConstitutionEngine
	detector    ImbalanceDetector
	profiles    repository.ProfileRepository
	assessments repository.AssessmentRepository
	limiter     AssessmentRateLimiter
	now         func() time.Time
}

// NewProfileService acepta assessments y limiter nil (CLI sin historial ni Redis).
func NewProfileService(
	logger *zap.Logger,
	engine *ConstitutionEngine,
	detector ImbalanceDetector,
	profiles repository.ProfileRepository,
	assessments repository.AssessmentRepository,
	limiter AssessmentRateLimiter,
) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		logger:      logger,
		engine:      engine,
		detector:    detector,
		profiles:    profiles,
		assessments: assessments,
		limiter:     limiter,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Detector expone el detector configurado (umbral) para los handlers.
func (s *ProfileService) Detector() ImbalanceDetector {
	return s.detector
}

// LoadOrCreateProfile evalua las respuestas y guarda el resultado.
// La primera evaluacion fija baseline y current; las siguientes solo reescriben current.
func (s *ProfileService) LoadOrCreateProfile(ctx context.Context, subjectID string, answers domain.AnswerSet) (domain.ConstitutionProfile, error) {
	if s.engine == nil || s.profiles == nil {
		return domain.ConstitutionProfile{}, errors.New("profile service not configured")
	}
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return domain.ConstitutionProfile{}, ErrInvalidSubject
	}

	classification, err := s.engine.ComputeConstitution(answers)
	if err != nil {
		return domain.ConstitutionProfile{}, err
	}

	if s.limiter != nil {
		if quota := s.limiter.Reserve(ctx, subjectID); !quota.Allowed {
			s.logger.Info("assessment rate limited",
				zap.String("subject_id", subjectID),
				zap.Duration("retry_after", quota.RetryAfter),
			)
			return domain.ConstitutionProfile{}, &RateLimitError{RetryAfter: quota.RetryAfter}
		}
	}

	now := s.now()
	existing, err := s.profiles.GetBySubjectID(ctx, subjectID)
	created := false
	var candidate domain.ConstitutionProfile
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		created = true
		candidate = domain.ConstitutionProfile{
			ID:               uuid.NewString(),
			SubjectID:        subjectID,
			Baseline:         classification.Scores,
			Current:          classification.Scores,
			PrimaryType:      classification.Primary,
			SecondaryType:    classification.Secondary,
			CurrentPrimary:   classification.Primary,
			CurrentSecondary: classification.Secondary,
			Imbalance:        false,
			LastAssessedAt:   now,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
	case err != nil:
		return domain.ConstitutionProfile{}, fmt.Errorf("load profile: %w", err)
	default:
		candidate = existing
		candidate.Current = classification.Scores
		candidate.CurrentPrimary = classification.Primary
		candidate.CurrentSecondary = classification.Secondary
		candidate.Imbalance = s.detector.Compare(existing.Baseline, classification.Scores).Imbalanced
		candidate.LastAssessedAt = now
		candidate.UpdatedAt = now
	}

	stored, err := s.profiles.Upsert(ctx, candidate)
	if err != nil {
		return domain.ConstitutionProfile{}, fmt.Errorf("save profile: %w", err)
	}

	// Otra evaluacion concurrente creo el perfil primero: el baseline guardado manda.
	if stored.Baseline != candidate.Baseline {
		report := s.detector.Compare(stored.Baseline, stored.Current)
		if report.Imbalanced != stored.Imbalance {
			stored.Imbalance = report.Imbalanced
			stored, err = s.profiles.Upsert(ctx, stored)
			if err != nil {
				return domain.ConstitutionProfile{}, fmt.Errorf("save profile: %w", err)
			}
		}
		created = false
	}

	if created {
		s.logger.Info("constitution profile created",
			zap.String("subject_id", subjectID),
			zap.String("primary", stored.PrimaryType.String()),
		)
	} else if stored.Imbalance {
		s.logger.Info("constitution imbalance detected",
			zap.String("subject_id", subjectID),
			zap.String("baseline_primary", stored.PrimaryType.String()),
			zap.String("current_primary", stored.CurrentPrimary.String()),
		)
	}

	s.recordAssessment(ctx, stored, answers, classification)
	return stored, nil
}

func (s *ProfileService) recordAssessment(ctx context.Context, profile domain.ConstitutionProfile, answers domain.AnswerSet, classification domain.Classification) {
	if s.assessments == nil {
		return
	}
	raw, err := s.engine.Aggregate(answers)
	if err != nil {
		return
	}
	copied := make(domain.AnswerSet, len(answers))
	for k, v := range answers {
		copied[k] = v
	}
	assessment := domain.Assessment{
		ID:        uuid.NewString(),
		ProfileID: profile.ID,
		SubjectID: profile.SubjectID,
		Answers:   copied,
		Raw:       raw,
		Scores:    classification.Scores,
		Primary:   classification.Primary,
		Secondary: classification.Secondary,
		CreatedAt: profile.LastAssessedAt,
	}
	if err := s.assessments.Create(ctx, assessment); err != nil {
		s.logger.Warn("store assessment failed",
			zap.String("subject_id", profile.SubjectID),
			zap.Error(err),
		)
	}
}

// GetProfile devuelve el perfil guardado con su informe de desequilibrio.
func (s *ProfileService) GetProfile(ctx context.Context, subjectID string) (domain.ConstitutionProfile, domain.ImbalanceReport, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return domain.ConstitutionProfile{}, domain.ImbalanceReport{}, ErrInvalidSubject
	}
	profile, err := s.profiles.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return domain.ConstitutionProfile{}, domain.ImbalanceReport{}, err
	}
	return profile, s.detector.Detect(profile), nil
}

// History lista evaluaciones pasadas. Con nearestBaseline ordena por cercania al baseline.
func (s *ProfileService) History(ctx context.Context, subjectID string, limit int, nearestBaseline bool) ([]domain.Assessment, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return nil, ErrInvalidSubject
	}
	if s.assessments == nil {
		return []domain.Assessment{}, nil
	}
	if !nearestBaseline {
		return s.assessments.ListBySubjectID(ctx, subjectID, limit)
	}
	profile, err := s.profiles.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return s.assessments.ListNearest(ctx, subjectID, profile.Baseline, limit)
}

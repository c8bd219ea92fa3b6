package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/NourJadiri/invox-app/internal/models"
	"github.com/NourJadiri/invox-app/internal/repository"
)

type PricingService interface {
	ApplyDefaultPrices(ctx context.Context, req *models.ApplyDefaultPricesRequest) (*models.ApplyDefaultPricesResponse, error)
}

type pricingService struct {
	lessonRepo repository.LessonRepository
	logger     zerolog.Logger
}

func NewPricingService(lessonRepo repository.LessonRepository, logger zerolog.Logger) PricingService {
	return &pricingService{lessonRepo: lessonRepo, logger: logger}
}

// ApplyDefaultPrices stamps each lesson in the range with its student's
// default hourly rate. Students without a default are left alone. The end
// date is inclusive up to the last nanosecond of that day.
func (s *pricingService) ApplyDefaultPrices(ctx context.Context, req *models.ApplyDefaultPricesRequest) (*models.ApplyDefaultPricesResponse, error) {
	start := req.StartDate
	end := endOfDay(req.EndDate)

	lessons, err := s.lessonRepo.GetAll(ctx, repository.LessonFilter{Start: &start, End: &end})
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}

	resp := &models.ApplyDefaultPricesResponse{Errors: []string{}}
	for i := range lessons {
		lesson := &lessons[i]

		if lesson.Student.DefaultLessonPrice == nil {
			continue
		}

		if err := s.lessonRepo.UpdatePrice(ctx, lesson.ID, lesson.Student.DefaultLessonPrice); err != nil {
			s.logger.Error().Err(err).
				Str("lesson_id", lesson.ID).
				Msg("Failed to apply default price")
			resp.Errors = append(resp.Errors, fmt.Sprintf("lesson %s: %v", lesson.ID, err))
			continue
		}

		resp.Updated++
	}

	s.logger.Info().
		Int("updated", resp.Updated).
		Int("errors", len(resp.Errors)).
		Msg("Default prices applied")

	return resp, nil
}

func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

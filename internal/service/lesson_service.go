package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NourJadiri/invox-app/internal/models"
	"github.com/NourJadiri/invox-app/internal/repository"
	"github.com/NourJadiri/invox-app/internal/service/integration"
)

var (
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrStudentNotFound = errors.New("student not found")
)

type LessonService interface {
	CreateLesson(ctx context.Context, req *models.CreateLessonRequest, calendarToken string) (*models.LessonWithStudent, error)
	GetLessonByID(ctx context.Context, id string) (*models.LessonWithStudent, error)
	GetLessons(ctx context.Context, start, end *time.Time) ([]models.LessonWithStudent, error)
	GetInstances(ctx context.Context, recurringLessonID string) ([]models.LessonWithStudent, error)
	UpdateLesson(ctx context.Context, id string, req *models.UpdateLessonRequest, calendarToken string) (*models.LessonWithStudent, error)
	DeleteLesson(ctx context.Context, id string, calendarToken string) error
}

type lessonService struct {
	lessonRepo  repository.LessonRepository
	studentRepo repository.StudentRepository
	calendar    integration.CalendarClient
	eventColor  string
	logger      zerolog.Logger
}

func NewLessonService(
	lessonRepo repository.LessonRepository,
	studentRepo repository.StudentRepository,
	calendar integration.CalendarClient,
	eventColor string,
	logger zerolog.Logger,
) LessonService {
	return &lessonService{
		lessonRepo:  lessonRepo,
		studentRepo: studentRepo,
		calendar:    calendar,
		eventColor:  eventColor,
		logger:      logger,
	}
}

func (s *lessonService) CreateLesson(ctx context.Context, req *models.CreateLessonRequest, calendarToken string) (*models.LessonWithStudent, error) {
	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	// Explicit price wins, then the student's default hourly rate.
	effectivePrice := req.Price
	if effectivePrice == nil {
		effectivePrice = student.DefaultLessonPrice
	}

	// Push to the external calendar before persisting locally, so the
	// returned event id can be stored on the lesson. A failure here never
	// blocks the local create.
	var googleEventID *string
	if calendarToken != "" {
		event := s.buildEvent(student.FullName(), req.Title, req.Start, req.End)
		if req.Recurrent {
			event.Recurrence = []string{weeklyRecurrenceRule}
		}

		eventID, err := s.calendar.InsertEvent(ctx, calendarToken, event)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to sync lesson with Google Calendar")
		} else {
			googleEventID = &eventID
		}
	}

	now := time.Now()
	lesson := models.Lesson{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Start:         *req.Start,
		End:           *req.End,
		Notes:         req.Notes,
		Price:         effectivePrice,
		Recurrent:     req.Recurrent,
		Color:         req.Color,
		StudentID:     req.StudentID,
		GoogleEventID: googleEventID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.lessonRepo.Create(ctx, &lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	if req.Recurrent {
		instances := ExpandRecurring(lesson)
		if err := s.lessonRepo.CreateBatch(ctx, instances); err != nil {
			// No compensating delete: the committed template stays behind
			// without its instances. Known gap, loud on purpose.
			s.logger.Error().Err(err).
				Str("lesson_id", lesson.ID).
				Msg("Failed to create recurring instances, template left without instances")
			return nil, fmt.Errorf("failed to create recurring instances: %w", err)
		}

		s.logger.Info().
			Str("lesson_id", lesson.ID).
			Int("instances", len(instances)).
			Msg("Recurring lesson created")
	} else {
		s.logger.Info().
			Str("lesson_id", lesson.ID).
			Str("student_id", lesson.StudentID).
			Msg("Lesson created")
	}

	return &models.LessonWithStudent{Lesson: lesson, Student: *student}, nil
}

func (s *lessonService) GetLessonByID(ctx context.Context, id string) (*models.LessonWithStudent, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	return lesson, nil
}

func (s *lessonService) GetLessons(ctx context.Context, start, end *time.Time) ([]models.LessonWithStudent, error) {
	lessons, err := s.lessonRepo.GetAll(ctx, repository.LessonFilter{Start: start, End: end})
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}

	return lessons, nil
}

func (s *lessonService) GetInstances(ctx context.Context, recurringLessonID string) ([]models.LessonWithStudent, error) {
	instances, err := s.lessonRepo.GetInstances(ctx, recurringLessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recurring instances: %w", err)
	}

	return instances, nil
}

func (s *lessonService) UpdateLesson(ctx context.Context, id string, req *models.UpdateLessonRequest, calendarToken string) (*models.LessonWithStudent, error) {
	existing, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	if existing == nil {
		return nil, ErrLessonNotFound
	}

	lesson := existing.Lesson
	student := existing.Student

	if req.Title != nil {
		lesson.Title = req.Title
	}
	if req.Start != nil {
		lesson.Start = *req.Start
	}
	if req.End != nil {
		lesson.End = *req.End
	}
	if req.Notes != nil {
		lesson.Notes = req.Notes
	}
	if req.Price != nil {
		lesson.Price = req.Price
	}
	if req.Recurrent != nil {
		lesson.Recurrent = *req.Recurrent
	}
	if req.Color != nil {
		lesson.Color = req.Color
	}
	if req.StudentID != nil && *req.StudentID != lesson.StudentID {
		newStudent, err := s.studentRepo.GetByID(ctx, *req.StudentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get student: %w", err)
		}
		if newStudent == nil {
			return nil, ErrStudentNotFound
		}
		lesson.StudentID = newStudent.ID
		student = *newStudent
	}
	lesson.UpdatedAt = time.Now()

	// Mirror the change to the external calendar, best effort.
	if lesson.GoogleEventID != nil && calendarToken != "" {
		event := s.buildEvent(student.FullName(), lesson.Title, req.Start, req.End)
		if err := s.calendar.UpdateEvent(ctx, calendarToken, *lesson.GoogleEventID, event); err != nil {
			s.logger.Error().Err(err).
				Str("lesson_id", lesson.ID).
				Msg("Failed to sync lesson update with Google Calendar")
		}
	}

	if err := s.lessonRepo.Update(ctx, &lesson); err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}

	return &models.LessonWithStudent{Lesson: lesson, Student: student}, nil
}

func (s *lessonService) DeleteLesson(ctx context.Context, id string, calendarToken string) error {
	existing, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get lesson: %w", err)
	}
	if existing == nil {
		return ErrLessonNotFound
	}

	if existing.GoogleEventID != nil && calendarToken != "" {
		if err := s.calendar.DeleteEvent(ctx, calendarToken, *existing.GoogleEventID); err != nil {
			s.logger.Error().Err(err).
				Str("lesson_id", id).
				Msg("Failed to sync lesson deletion with Google Calendar")
		}
	}

	if err := s.lessonRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	s.logger.Info().Str("lesson_id", id).Msg("Lesson deleted")

	return nil
}

func (s *lessonService) buildEvent(studentName string, title *string, start, end *time.Time) *integration.Event {
	event := &integration.Event{
		Summary: CalendarSummaryPrefix + studentName,
		ColorID: s.eventColor,
	}
	if title != nil {
		event.Description = *title
	}
	if start != nil {
		event.Start = *start
	}
	if end != nil {
		event.End = *end
	}

	return event
}

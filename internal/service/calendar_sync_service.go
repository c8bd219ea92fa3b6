package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NourJadiri/invox-app/internal/models"
	"github.com/NourJadiri/invox-app/internal/repository"
	"github.com/NourJadiri/invox-app/internal/service/integration"
)

// CalendarSummaryPrefix marks events managed by this application in the
// user's Google Calendar. Events without it are ignored on import.
const CalendarSummaryPrefix = "[CDP] "

const importMaxResults = 500

type CalendarSyncService interface {
	ValidateToken(ctx context.Context, token string) error
	SyncAll(ctx context.Context, token string) (*models.SyncResult, error)
	Import(ctx context.Context, token string, req *models.ImportLessonsRequest) (*models.ImportResult, error)
}

type calendarSyncService struct {
	lessonRepo  repository.LessonRepository
	studentRepo repository.StudentRepository
	calendar    integration.CalendarClient
	eventColor  string
	logger      zerolog.Logger
}

func NewCalendarSyncService(
	lessonRepo repository.LessonRepository,
	studentRepo repository.StudentRepository,
	calendar integration.CalendarClient,
	eventColor string,
	logger zerolog.Logger,
) CalendarSyncService {
	return &calendarSyncService{
		lessonRepo:  lessonRepo,
		studentRepo: studentRepo,
		calendar:    calendar,
		eventColor:  eventColor,
		logger:      logger,
	}
}

func (s *calendarSyncService) ValidateToken(ctx context.Context, token string) error {
	return s.calendar.ValidateToken(ctx, token)
}

// SyncAll pushes every lesson that has no calendar event yet. Individual
// failures are counted, they never abort the pass.
func (s *calendarSyncService) SyncAll(ctx context.Context, token string) (*models.SyncResult, error) {
	lessons, err := s.lessonRepo.GetUnsynced(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get unsynced lessons: %w", err)
	}

	result := &models.SyncResult{}
	for i := range lessons {
		lesson := &lessons[i]

		event := &integration.Event{
			Summary: CalendarSummaryPrefix + lesson.Student.FullName(),
			Start:   lesson.Start,
			End:     lesson.End,
			ColorID: s.eventColor,
		}
		if lesson.Title != nil {
			event.Description = *lesson.Title
		}

		eventID, err := s.calendar.InsertEvent(ctx, token, event)
		if err != nil {
			s.logger.Error().Err(err).
				Str("lesson_id", lesson.ID).
				Msg("Failed to push lesson to Google Calendar")
			result.Failed++
			continue
		}

		if err := s.lessonRepo.SetGoogleEventID(ctx, lesson.ID, eventID); err != nil {
			s.logger.Error().Err(err).
				Str("lesson_id", lesson.ID).
				Msg("Failed to store Google event id")
			result.Failed++
			continue
		}

		result.Synced++
	}

	s.logger.Info().
		Int("synced", result.Synced).
		Int("failed", result.Failed).
		Msg("Calendar sync finished")

	return result, nil
}

// Import pulls prefixed events from the calendar and turns the unknown ones
// into lessons, creating students on the fly when the event names someone
// new. Already imported events are skipped by their stored event id.
func (s *calendarSyncService) Import(ctx context.Context, token string, req *models.ImportLessonsRequest) (*models.ImportResult, error) {
	events, err := s.calendar.ListEvents(ctx, token, integration.ListOptions{
		TimeMin:       req.TimeMin,
		TimeMax:       req.TimeMax,
		SummaryPrefix: CalendarSummaryPrefix,
		MaxResults:    importMaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	known, err := s.lessonRepo.GetGoogleEventIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get known event ids: %w", err)
	}

	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get students: %w", err)
	}

	// matched case-insensitively on the full name
	byName := make(map[string]*models.Student, len(students))
	for i := range students {
		byName[strings.ToLower(students[i].FullName())] = &students[i]
	}

	result := &models.ImportResult{Errors: []string{}}
	for i := range events {
		event := &events[i]

		if _, ok := known[event.ID]; ok {
			result.Skipped++
			continue
		}

		if event.Start.IsZero() || event.End.IsZero() {
			result.Errors = append(result.Errors, fmt.Sprintf("event %s: missing start or end time", event.ID))
			continue
		}

		firstName, lastName := parseStudentName(strings.TrimPrefix(event.Summary, CalendarSummaryPrefix))
		if firstName == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("event %s: empty student name", event.ID))
			continue
		}

		fullName := strings.TrimSpace(firstName + " " + lastName)
		student, ok := byName[strings.ToLower(fullName)]
		if !ok {
			created := &models.Student{
				ID:        uuid.New().String(),
				FirstName: firstName,
				LastName:  lastName,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}
			if err := s.studentRepo.Create(ctx, created); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("event %s: failed to create student %q: %v", event.ID, fullName, err))
				continue
			}

			byName[strings.ToLower(fullName)] = created
			student = created
			result.StudentsCreated++

			s.logger.Info().
				Str("student_id", created.ID).
				Str("name", fullName).
				Msg("Student created from calendar import")
		}

		eventID := event.ID
		lesson := &models.Lesson{
			ID:            uuid.New().String(),
			Start:         event.Start,
			End:           event.End,
			Price:         student.DefaultLessonPrice,
			StudentID:     student.ID,
			GoogleEventID: &eventID,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
		if event.Description != "" {
			description := event.Description
			lesson.Title = &description
		}

		if err := s.lessonRepo.Create(ctx, lesson); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("event %s: failed to create lesson: %v", event.ID, err))
			continue
		}

		known[event.ID] = struct{}{}
		result.Imported++
	}

	s.logger.Info().
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("students_created", result.StudentsCreated).
		Int("errors", len(result.Errors)).
		Msg("Calendar import finished")

	return result, nil
}

// parseStudentName splits an event name into first and last name: the first
// word is the first name, everything after it is the last name.
func parseStudentName(name string) (string, string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}

	return fields[0], strings.Join(fields[1:], " ")
}

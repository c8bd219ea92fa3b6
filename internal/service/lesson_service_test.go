package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NourJadiri/invox-app/internal/models"
)

func ptrFloat(v float64) *float64 { return &v }
func ptrString(v string) *string  { return &v }
func ptrTime(v time.Time) *time.Time {
	return &v
}

func TestCreateLessonUsesStudentDefaultPrice(t *testing.T) {
	students := newFakeStudentRepo(models.Student{
		ID:                 "s1",
		FirstName:          "Alice",
		LastName:           "Martin",
		DefaultLessonPrice: ptrFloat(35),
	})
	lessons := newFakeLessonRepo(students)
	calendar := newFakeCalendarClient()
	svc := NewLessonService(lessons, students, calendar, "11", zerolog.Nop())

	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	created, err := svc.CreateLesson(context.Background(), &models.CreateLessonRequest{
		Start:     ptrTime(start),
		End:       ptrTime(start.Add(time.Hour)),
		StudentID: "s1",
	}, "")
	require.NoError(t, err)

	require.NotNil(t, created.Price)
	assert.Equal(t, 35.0, *created.Price)
	assert.Nil(t, created.GoogleEventID)
}

func TestCreateLessonExplicitPriceWins(t *testing.T) {
	students := newFakeStudentRepo(models.Student{ID: "s1", FirstName: "Alice", DefaultLessonPrice: ptrFloat(35)})
	lessons := newFakeLessonRepo(students)
	svc := NewLessonService(lessons, students, newFakeCalendarClient(), "11", zerolog.Nop())

	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	created, err := svc.CreateLesson(context.Background(), &models.CreateLessonRequest{
		Start:     ptrTime(start),
		End:       ptrTime(start.Add(time.Hour)),
		StudentID: "s1",
		Price:     ptrFloat(50),
	}, "")
	require.NoError(t, err)

	require.NotNil(t, created.Price)
	assert.Equal(t, 50.0, *created.Price)
}

func TestCreateLessonUnknownStudent(t *testing.T) {
	students := newFakeStudentRepo()
	svc := NewLessonService(newFakeLessonRepo(students), students, newFakeCalendarClient(), "11", zerolog.Nop())

	start := time.Now()
	_, err := svc.CreateLesson(context.Background(), &models.CreateLessonRequest{
		Start:     ptrTime(start),
		End:       ptrTime(start.Add(time.Hour)),
		StudentID: "missing",
	}, "")

	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestCreateLessonPushesCalendarEvent(t *testing.T) {
	students := newFakeStudentRepo(models.Student{ID: "s1", FirstName: "Alice", LastName: "Martin"})
	lessons := newFakeLessonRepo(students)
	calendar := newFakeCalendarClient()
	svc := NewLessonService(lessons, students, calendar, "11", zerolog.Nop())

	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	created, err := svc.CreateLesson(context.Background(), &models.CreateLessonRequest{
		Title:     ptrString("Maths"),
		Start:     ptrTime(start),
		End:       ptrTime(start.Add(time.Hour)),
		StudentID: "s1",
	}, "token")
	require.NoError(t, err)

	require.NotNil(t, created.GoogleEventID)
	require.Len(t, calendar.inserted, 1)
	assert.Equal(t, "[CDP] Alice Martin", calendar.inserted[0].Summary)
	assert.Equal(t, "Maths", calendar.inserted[0].Description)
	assert.Equal(t, "11", calendar.inserted[0].ColorID)
	assert.Empty(t, calendar.inserted[0].Recurrence)
}

func TestCreateLessonCalendarFailureDoesNotBlock(t *testing.T) {
	students := newFakeStudentRepo(models.Student{ID: "s1", FirstName: "Alice"})
	lessons := newFakeLessonRepo(students)
	calendar := newFakeCalendarClient()
	calendar.failFirstN = 1
	svc := NewLessonService(lessons, students, calendar, "11", zerolog.Nop())

	start := time.Now()
	created, err := svc.CreateLesson(context.Background(), &models.CreateLessonRequest{
		Start:     ptrTime(start),
		End:       ptrTime(start.Add(time.Hour)),
		StudentID: "s1",
	}, "token")

	require.NoError(t, err)
	assert.Nil(t, created.GoogleEventID)
	assert.Len(t, lessons.lessons, 1)
}

func TestCreateRecurringLesson(t *testing.T) {
	students := newFakeStudentRepo(models.Student{ID: "s1", FirstName: "Alice", LastName: "Martin"})
	lessons := newFakeLessonRepo(students)
	calendar := newFakeCalendarClient()
	svc := NewLessonService(lessons, students, calendar, "11", zerolog.Nop())

	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	created, err := svc.CreateLesson(context.Background(), &models.CreateLessonRequest{
		Start:     ptrTime(start),
		End:       ptrTime(start.Add(time.Hour)),
		StudentID: "s1",
		Recurrent: true,
	}, "token")
	require.NoError(t, err)

	// template plus the weekly instances
	assert.Len(t, lessons.lessons, 1+RecurrenceWeeks)

	instances, err := svc.GetInstances(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, instances, RecurrenceWeeks)

	// the calendar event carries the recurrence rule covering all occurrences
	require.Len(t, calendar.inserted, 1)
	assert.Equal(t, []string{"RRULE:FREQ=WEEKLY;COUNT=13"}, calendar.inserted[0].Recurrence)
}

func TestCreateRecurringLessonInstanceFailureLeavesTemplate(t *testing.T) {
	students := newFakeStudentRepo(models.Student{ID: "s1", FirstName: "Alice"})
	lessons := newFakeLessonRepo(students)
	lessons.batchErr = assert.AnError
	svc := NewLessonService(lessons, students, newFakeCalendarClient(), "11", zerolog.Nop())

	start := time.Now()
	_, err := svc.CreateLesson(context.Background(), &models.CreateLessonRequest{
		Start:     ptrTime(start),
		End:       ptrTime(start.Add(time.Hour)),
		StudentID: "s1",
		Recurrent: true,
	}, "")

	require.Error(t, err)
	// the template was committed before the batch failed
	assert.Len(t, lessons.lessons, 1)
}

func TestUpdateLessonMergesFields(t *testing.T) {
	students := newFakeStudentRepo(models.Student{ID: "s1", FirstName: "Alice"})
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	lessons := newFakeLessonRepo(students, models.Lesson{
		ID:        "l1",
		Title:     ptrString("Maths"),
		Start:     start,
		End:       start.Add(time.Hour),
		Price:     ptrFloat(35),
		StudentID: "s1",
	})
	svc := NewLessonService(lessons, students, newFakeCalendarClient(), "11", zerolog.Nop())

	updated, err := svc.UpdateLesson(context.Background(), "l1", &models.UpdateLessonRequest{
		Price: ptrFloat(45),
	}, "")
	require.NoError(t, err)

	assert.Equal(t, 45.0, *updated.Price)
	// untouched fields survive
	assert.Equal(t, "Maths", *updated.Title)
	assert.Equal(t, start, updated.Start)
}

func TestUpdateLessonSyncsCalendar(t *testing.T) {
	students := newFakeStudentRepo(models.Student{ID: "s1", FirstName: "Alice", LastName: "Martin"})
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	eventID := "evt-9"
	lessons := newFakeLessonRepo(students, models.Lesson{
		ID:            "l1",
		Start:         start,
		End:           start.Add(time.Hour),
		StudentID:     "s1",
		GoogleEventID: &eventID,
	})
	calendar := newFakeCalendarClient()
	svc := NewLessonService(lessons, students, calendar, "11", zerolog.Nop())

	newStart := start.Add(24 * time.Hour)
	_, err := svc.UpdateLesson(context.Background(), "l1", &models.UpdateLessonRequest{
		Start: ptrTime(newStart),
		End:   ptrTime(newStart.Add(time.Hour)),
	}, "token")
	require.NoError(t, err)

	require.Contains(t, calendar.updated, eventID)
	assert.Equal(t, newStart, calendar.updated[eventID].Start)
}

func TestUpdateLessonCalendarFailureDoesNotBlock(t *testing.T) {
	students := newFakeStudentRepo(models.Student{ID: "s1", FirstName: "Alice"})
	eventID := "evt-9"
	start := time.Now()
	lessons := newFakeLessonRepo(students, models.Lesson{
		ID:            "l1",
		Start:         start,
		End:           start.Add(time.Hour),
		StudentID:     "s1",
		GoogleEventID: &eventID,
	})
	calendar := newFakeCalendarClient()
	calendar.updateErr = assert.AnError
	svc := NewLessonService(lessons, students, calendar, "11", zerolog.Nop())

	updated, err := svc.UpdateLesson(context.Background(), "l1", &models.UpdateLessonRequest{
		Price: ptrFloat(20),
	}, "token")

	require.NoError(t, err)
	assert.Equal(t, 20.0, *updated.Price)
}

func TestDeleteLessonRemovesCalendarEvent(t *testing.T) {
	students := newFakeStudentRepo(models.Student{ID: "s1", FirstName: "Alice"})
	eventID := "evt-9"
	start := time.Now()
	lessons := newFakeLessonRepo(students, models.Lesson{
		ID:            "l1",
		Start:         start,
		End:           start.Add(time.Hour),
		StudentID:     "s1",
		GoogleEventID: &eventID,
	})
	calendar := newFakeCalendarClient()
	svc := NewLessonService(lessons, students, calendar, "11", zerolog.Nop())

	require.NoError(t, svc.DeleteLesson(context.Background(), "l1", "token"))

	assert.Empty(t, lessons.lessons)
	assert.Equal(t, []string{eventID}, calendar.deleted)
}

func TestDeleteLessonNotFound(t *testing.T) {
	students := newFakeStudentRepo()
	svc := NewLessonService(newFakeLessonRepo(students), students, newFakeCalendarClient(), "11", zerolog.Nop())

	err := svc.DeleteLesson(context.Background(), "missing", "")
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

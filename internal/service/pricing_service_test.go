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

func TestApplyDefaultPrices(t *testing.T) {
	students := newFakeStudentRepo(
		models.Student{ID: "s1", FirstName: "Alice", DefaultLessonPrice: ptrFloat(35)},
		models.Student{ID: "s2", FirstName: "Bob"},
	)
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	lessons := newFakeLessonRepo(students,
		models.Lesson{ID: "l1", Start: start.Add(24 * time.Hour), End: start.Add(25 * time.Hour), StudentID: "s1", Price: ptrFloat(10)},
		models.Lesson{ID: "l2", Start: start.Add(48 * time.Hour), End: start.Add(49 * time.Hour), StudentID: "s2", Price: ptrFloat(10)},
	)
	svc := NewPricingService(lessons, zerolog.Nop())

	resp, err := svc.ApplyDefaultPrices(context.Background(), &models.ApplyDefaultPricesRequest{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 30),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Updated)
	assert.Empty(t, resp.Errors)

	// Alice has a default, her lesson was restamped
	assert.Equal(t, 35.0, *lessons.lessons["l1"].Price)
	// Bob has none, his lesson keeps its price
	assert.Equal(t, 10.0, *lessons.lessons["l2"].Price)
}

func TestApplyDefaultPricesEndDateIsInclusive(t *testing.T) {
	students := newFakeStudentRepo(models.Student{ID: "s1", FirstName: "Alice", DefaultLessonPrice: ptrFloat(35)})
	// a lesson late on the last day of the range
	lessonStart := time.Date(2025, 3, 31, 22, 0, 0, 0, time.UTC)
	lessons := newFakeLessonRepo(students,
		models.Lesson{ID: "l1", Start: lessonStart, End: lessonStart.Add(time.Hour), StudentID: "s1"},
	)
	svc := NewPricingService(lessons, zerolog.Nop())

	resp, err := svc.ApplyDefaultPrices(context.Background(), &models.ApplyDefaultPricesRequest{
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Updated)
	assert.Equal(t, 35.0, *lessons.lessons["l1"].Price)
}

func TestApplyDefaultPricesCollectsErrors(t *testing.T) {
	students := newFakeStudentRepo(models.Student{ID: "s1", FirstName: "Alice", DefaultLessonPrice: ptrFloat(35)})
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	lessons := newFakeLessonRepo(students,
		models.Lesson{ID: "l1", Start: start, End: start.Add(time.Hour), StudentID: "s1"},
		models.Lesson{ID: "l2", Start: start.Add(time.Hour), End: start.Add(2 * time.Hour), StudentID: "s1"},
	)
	lessons.priceErrFor["l1"] = assert.AnError
	svc := NewPricingService(lessons, zerolog.Nop())

	resp, err := svc.ApplyDefaultPrices(context.Background(), &models.ApplyDefaultPricesRequest{
		StartDate: start.AddDate(0, 0, -1),
		EndDate:   start.AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Updated)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "l1")
}

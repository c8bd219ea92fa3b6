package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NourJadiri/invox-app/internal/models"
)

func ptrFloat(v float64) *float64 { return &v }

func makeLesson(studentID string, start time.Time, hours float64, price *float64) models.Lesson {
	return models.Lesson{
		ID:        start.Format(time.RFC3339) + "-" + studentID,
		Start:     start,
		End:       start.Add(time.Duration(hours * float64(time.Hour))),
		Price:     price,
		StudentID: studentID,
	}
}

func TestLessonDurationHours(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		lesson models.Lesson
		want   float64
	}{
		{name: "one hour", lesson: models.Lesson{Start: start, End: start.Add(time.Hour)}, want: 1},
		{name: "ninety minutes", lesson: models.Lesson{Start: start, End: start.Add(90 * time.Minute)}, want: 1.5},
		{name: "zero duration", lesson: models.Lesson{Start: start, End: start}, want: 0},
		{name: "end before start clamps to zero", lesson: models.Lesson{Start: start, End: start.Add(-time.Hour)}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LessonDurationHours(tt.lesson))
		})
	}
}

func TestLessonTotal(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	lesson := makeLesson("s1", start, 1.5, ptrFloat(40))
	assert.Equal(t, 60.0, LessonTotal(lesson))

	noPrice := makeLesson("s1", start, 2, nil)
	assert.Equal(t, 0.0, LessonTotal(noPrice))

	negative := models.Lesson{Start: start, End: start.Add(-time.Hour), Price: ptrFloat(40)}
	assert.Equal(t, 0.0, LessonTotal(negative))
}

func TestComputeTotalSelectsStudents(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	cfg := Config{
		Lessons: []models.Lesson{
			makeLesson("s1", start, 1, ptrFloat(35)),
			makeLesson("s1", start.Add(24*time.Hour), 2, ptrFloat(35)),
			makeLesson("s2", start, 1, ptrFloat(50)),
			makeLesson("s3", start, 1, ptrFloat(100)),
		},
		SelectedStudentIDs: []string{"s1", "s2"},
	}

	assert.Equal(t, 35.0+70.0+50.0, ComputeTotal(cfg))
}

func TestBuildGroupsAndTotals(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	alice := models.Student{ID: "s1", FirstName: "Alice", LastName: "Martin"}
	bob := models.Student{ID: "s2", FirstName: "Bob", LastName: "Durand"}

	cfg := Config{
		StartDate: start,
		EndDate:   start.AddDate(0, 1, 0),
		Lessons: []models.Lesson{
			makeLesson("s1", start.Add(48*time.Hour), 2, ptrFloat(35)),
			makeLesson("s1", start, 1, ptrFloat(35)),
			makeLesson("s2", start, 1.5, ptrFloat(40)),
			makeLesson("s3", start, 1, ptrFloat(100)),
		},
		Students:           []models.Student{alice, bob},
		SelectedStudentIDs: []string{"s1", "s2"},
		Number:             7,
		Date:               start,
	}

	doc := Build(cfg)

	require.Len(t, doc.Groups, 2)
	assert.Equal(t, 7, doc.Number)

	first := doc.Groups[0]
	assert.Equal(t, "Alice Martin", first.Student.FullName())
	require.Len(t, first.Lines, 2)
	// lines sorted by start ascending
	assert.True(t, first.Lines[0].Lesson.Start.Before(first.Lines[1].Lesson.Start))
	assert.Equal(t, 3.0, first.TotalHours)
	assert.Equal(t, 105.0, first.Total)

	second := doc.Groups[1]
	assert.Equal(t, 1.5, second.TotalHours)
	assert.Equal(t, 60.0, second.Total)

	assert.Equal(t, 165.0, doc.GrandTotal)
	assert.Equal(t, ComputeTotal(cfg), doc.GrandTotal)
}

func TestBuildIsRepeatable(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	cfg := Config{
		Lessons: []models.Lesson{
			makeLesson("s1", start, 1, ptrFloat(35)),
			makeLesson("s1", start.Add(time.Hour), 1, ptrFloat(35)),
		},
		Students:           []models.Student{{ID: "s1", FirstName: "Alice"}},
		SelectedStudentIDs: []string{"s1"},
		Number:             1,
		Date:               start,
	}

	assert.Equal(t, Build(cfg), Build(cfg))
}

func TestBuildDefaultsDate(t *testing.T) {
	doc := Build(Config{})
	assert.False(t, doc.Date.IsZero())
	assert.Empty(t, doc.Groups)
	assert.Zero(t, doc.GrandTotal)
}

func TestBuildSelectedStudentWithoutLessons(t *testing.T) {
	doc := Build(Config{
		Students:           []models.Student{{ID: "s1", FirstName: "Alice"}},
		SelectedStudentIDs: []string{"s1"},
	})

	require.Len(t, doc.Groups, 1)
	assert.Empty(t, doc.Groups[0].Lines)
	assert.Zero(t, doc.Groups[0].Total)
}

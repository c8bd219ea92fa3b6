package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NourJadiri/invox-app/internal/models"
)

func TestExpandRecurring(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	price := 40.0
	title := "Maths"

	template := models.Lesson{
		ID:        "template-1",
		Title:     &title,
		Start:     start,
		End:       start.Add(90 * time.Minute),
		Price:     &price,
		Recurrent: true,
		StudentID: "s1",
	}

	instances := ExpandRecurring(template)
	require.Len(t, instances, RecurrenceWeeks)

	seen := make(map[string]struct{})
	for i, instance := range instances {
		wantStart := start.Add(time.Duration(i+1) * 7 * 24 * time.Hour)
		assert.Equal(t, wantStart, instance.Start, "instance %d start", i)
		assert.Equal(t, wantStart.Add(90*time.Minute), instance.End, "instance %d end", i)

		assert.False(t, instance.Recurrent)
		require.NotNil(t, instance.RecurringLessonID)
		assert.Equal(t, template.ID, *instance.RecurringLessonID)
		assert.Nil(t, instance.GoogleEventID)

		assert.Equal(t, template.Title, instance.Title)
		assert.Equal(t, template.Price, instance.Price)
		assert.Equal(t, template.StudentID, instance.StudentID)

		assert.NotEqual(t, template.ID, instance.ID)
		_, dup := seen[instance.ID]
		assert.False(t, dup, "instance ids must be unique")
		seen[instance.ID] = struct{}{}
	}
}

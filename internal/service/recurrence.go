package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/NourJadiri/invox-app/internal/models"
)

// RecurrenceWeeks is the number of instances generated from a recurring
// template. Together with the template that makes 13 occurrences, which is
// what the calendar recurrence rule advertises.
const RecurrenceWeeks = 12

const weeklyRecurrenceRule = "RRULE:FREQ=WEEKLY;COUNT=13"

// ExpandRecurring produces the weekly instances of a template lesson: one
// per week for RecurrenceWeeks weeks, each shifted by i*7 days and keeping
// the template's duration and attributes. Instances never carry the
// template's external event id; the calendar's own recurrence rule stands
// in for them there.
func ExpandRecurring(template models.Lesson) []models.Lesson {
	duration := template.End.Sub(template.Start)

	instances := make([]models.Lesson, 0, RecurrenceWeeks)
	for i := 1; i <= RecurrenceWeeks; i++ {
		start := template.Start.Add(time.Duration(i) * 7 * 24 * time.Hour)
		templateID := template.ID

		instances = append(instances, models.Lesson{
			ID:                uuid.New().String(),
			Title:             template.Title,
			Start:             start,
			End:               start.Add(duration),
			Notes:             template.Notes,
			Price:             template.Price,
			Recurrent:         false,
			Color:             template.Color,
			StudentID:         template.StudentID,
			RecurringLessonID: &templateID,
			CreatedAt:         template.CreatedAt,
			UpdatedAt:         template.UpdatedAt,
		})
	}

	return instances
}

package models

import (
	"time"
)

// Lesson price is an hourly rate, not a flat fee. A lesson with
// Recurrent=true is the template of a weekly series; generated instances
// point back to it through RecurringLessonID.
type Lesson struct {
	ID                string    `json:"id" db:"id"`
	Title             *string   `json:"title" db:"title"`
	Start             time.Time `json:"start" db:"start_time"`
	End               time.Time `json:"end" db:"end_time"`
	Notes             *string   `json:"notes" db:"notes"`
	Price             *float64  `json:"price" db:"price"`
	Recurrent         bool      `json:"recurrent" db:"recurrent"`
	Color             *string   `json:"color" db:"color"`
	StudentID         string    `json:"student_id" db:"student_id"`
	RecurringLessonID *string   `json:"recurring_lesson_id" db:"recurring_lesson_id"`
	GoogleEventID     *string   `json:"google_event_id" db:"google_event_id"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

type LessonWithStudent struct {
	Lesson
	Student Student `json:"student"`
}

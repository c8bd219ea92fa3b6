package models

import (
	"strings"
	"time"
)

type Student struct {
	ID                 string    `json:"id" db:"id"`
	FirstName          string    `json:"first_name" db:"first_name"`
	LastName           string    `json:"last_name" db:"last_name"`
	Email              *string   `json:"email" db:"email"`
	Phone              *string   `json:"phone" db:"phone"`
	Notes              *string   `json:"notes" db:"notes"`
	DefaultLessonPrice *float64  `json:"default_lesson_price" db:"default_lesson_price"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

type StudentWithLessons struct {
	Student
	Lessons []Lesson `json:"lessons"`
}

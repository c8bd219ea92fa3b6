package models

import "time"

// Data Transfer Objects

type CreateStudentRequest struct {
	FirstName          string   `json:"first_name" validate:"required,min=1,max=255"`
	LastName           string   `json:"last_name" validate:"max=255"`
	Email              *string  `json:"email" validate:"omitempty,email,max=255"`
	Phone              *string  `json:"phone" validate:"omitempty,max=50"`
	Notes              *string  `json:"notes"`
	DefaultLessonPrice *float64 `json:"default_lesson_price" validate:"omitempty,gte=0"`
}

type UpdateStudentRequest struct {
	FirstName          *string  `json:"first_name" validate:"omitempty,min=1,max=255"`
	LastName           *string  `json:"last_name" validate:"omitempty,max=255"`
	Email              *string  `json:"email" validate:"omitempty,email,max=255"`
	Phone              *string  `json:"phone" validate:"omitempty,max=50"`
	Notes              *string  `json:"notes"`
	DefaultLessonPrice *float64 `json:"default_lesson_price" validate:"omitempty,gte=0"`
}

type CreateLessonRequest struct {
	Title     *string    `json:"title"`
	Start     *time.Time `json:"start" validate:"required"`
	End       *time.Time `json:"end" validate:"required"`
	Notes     *string    `json:"notes"`
	StudentID string     `json:"student_id" validate:"required,uuid"`
	Price     *float64   `json:"price" validate:"omitempty,gte=0"`
	Recurrent bool       `json:"recurrent"`
	Color     *string    `json:"color"`
}

type UpdateLessonRequest struct {
	Title     *string    `json:"title"`
	Start     *time.Time `json:"start"`
	End       *time.Time `json:"end"`
	Notes     *string    `json:"notes"`
	StudentID *string    `json:"student_id" validate:"omitempty,uuid"`
	Price     *float64   `json:"price" validate:"omitempty,gte=0"`
	Recurrent *bool      `json:"recurrent"`
	Color     *string    `json:"color"`
}

type CreateInvoiceRequest struct {
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required"`
	StudentIDs []string  `json:"student_ids" validate:"required,min=1,dive,uuid"`
}

type InvoiceDocumentRequest struct {
	StartDate          time.Time  `json:"start_date" validate:"required"`
	EndDate            time.Time  `json:"end_date" validate:"required"`
	SelectedStudentIDs []string   `json:"selected_student_ids" validate:"required,min=1,dive,uuid"`
	Number             *int       `json:"number"`
	Date               *time.Time `json:"date"`
}

type ApplyDefaultPricesRequest struct {
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

type ApplyDefaultPricesResponse struct {
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

type ImportLessonsRequest struct {
	TimeMin *time.Time `json:"time_min"`
	TimeMax *time.Time `json:"time_max"`
}

type SyncResult struct {
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}

type ImportResult struct {
	Imported        int      `json:"imported"`
	Skipped         int      `json:"skipped"`
	StudentsCreated int      `json:"students_created"`
	Errors          []string `json:"errors"`
}

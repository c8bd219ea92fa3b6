package models

import (
	"time"
)

// Invoice is an immutable snapshot: Total is computed once at creation and
// never recomputed, and only the billed student set and period are stored,
// not the individual lessons.
type Invoice struct {
	ID        string    `json:"id" db:"id"`
	Number    int       `json:"number" db:"number"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	Total     float64   `json:"total" db:"total"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type InvoiceWithStudents struct {
	Invoice
	Students []Student `json:"students"`
}

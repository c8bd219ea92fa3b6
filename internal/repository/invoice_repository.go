package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/NourJadiri/invox-app/internal/models"
)

type InvoiceRepository interface {
	// Create assigns the next sequential invoice number (max + 1, best
	// effort: concurrent creations can race) and associates the given
	// students inside the same transaction.
	Create(ctx context.Context, invoice *models.Invoice, studentIDs []string) error
	GetByID(ctx context.Context, id string) (*models.InvoiceWithStudents, error)
	GetAll(ctx context.Context) ([]models.InvoiceWithStudents, error)
	Delete(ctx context.Context, id string) error
}

type invoiceRepository struct {
	*PostgresRepository
}

func NewInvoiceRepository(db *sql.DB, logger zerolog.Logger) InvoiceRepository {
	return &invoiceRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *models.Invoice, studentIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(number), 0) + 1 FROM invoices`).Scan(&invoice.Number)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO invoices (id, number, start_date, end_date, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		invoice.ID,
		invoice.Number,
		invoice.StartDate,
		invoice.EndDate,
		invoice.Total,
		invoice.CreatedAt,
	)
	if err != nil {
		return err
	}

	for _, studentID := range studentIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO invoice_students (invoice_id, student_id)
			VALUES ($1, $2)
		`, invoice.ID, studentID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*models.InvoiceWithStudents, error) {
	query := `
		SELECT id, number, start_date, end_date, total, created_at
		FROM invoices
		WHERE id = $1
	`

	invoice := &models.InvoiceWithStudents{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&invoice.ID,
		&invoice.Number,
		&invoice.StartDate,
		&invoice.EndDate,
		&invoice.Total,
		&invoice.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	students, err := r.studentsForInvoices(ctx, []string{invoice.ID})
	if err != nil {
		return nil, err
	}
	invoice.Students = students[invoice.ID]
	if invoice.Students == nil {
		invoice.Students = []models.Student{}
	}

	return invoice, nil
}

func (r *invoiceRepository) GetAll(ctx context.Context) ([]models.InvoiceWithStudents, error) {
	query := `
		SELECT id, number, start_date, end_date, total, created_at
		FROM invoices
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.InvoiceWithStudents
	var ids []string
	for rows.Next() {
		var invoice models.InvoiceWithStudents
		err := rows.Scan(
			&invoice.ID,
			&invoice.Number,
			&invoice.StartDate,
			&invoice.EndDate,
			&invoice.Total,
			&invoice.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
		ids = append(ids, invoice.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return invoices, nil
	}

	students, err := r.studentsForInvoices(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range invoices {
		invoices[i].Students = students[invoices[i].ID]
		if invoices[i].Students == nil {
			invoices[i].Students = []models.Student{}
		}
	}

	return invoices, nil
}

func (r *invoiceRepository) studentsForInvoices(ctx context.Context, invoiceIDs []string) (map[string][]models.Student, error) {
	query := `
		SELECT ist.invoice_id,
			s.id, s.first_name, s.last_name, s.email, s.phone, s.notes, s.default_lesson_price, s.created_at, s.updated_at
		FROM invoice_students ist
		JOIN students s ON ist.student_id = s.id
		WHERE ist.invoice_id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(invoiceIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]models.Student)
	for rows.Next() {
		var invoiceID string
		var student models.Student
		err := rows.Scan(
			&invoiceID,
			&student.ID,
			&student.FirstName,
			&student.LastName,
			&student.Email,
			&student.Phone,
			&student.Notes,
			&student.DefaultLessonPrice,
			&student.CreatedAt,
			&student.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		result[invoiceID] = append(result[invoiceID], student)
	}

	return result, rows.Err()
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM invoices WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/NourJadiri/invox-app/internal/models"
)

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetAll(ctx context.Context) ([]models.Student, error)
	Search(ctx context.Context, query string) ([]models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

type studentRepository struct {
	*PostgresRepository
}

func NewStudentRepository(db *sql.DB, logger zerolog.Logger) StudentRepository {
	return &studentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const studentColumns = `id, first_name, last_name, email, phone, notes, default_lesson_price, created_at, updated_at`

func scanStudent(row interface{ Scan(...interface{}) error }, s *models.Student) error {
	return row.Scan(
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.Email,
		&s.Phone,
		&s.Notes,
		&s.DefaultLessonPrice,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (id, first_name, last_name, email, phone, notes, default_lesson_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		student.ID,
		student.FirstName,
		student.LastName,
		student.Email,
		student.Phone,
		student.Notes,
		student.DefaultLessonPrice,
		student.CreatedAt,
		student.UpdatedAt,
	)

	return err
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	student := &models.Student{}
	err := scanStudent(r.db.QueryRowContext(ctx, query, id), student)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return student, err
}

func (r *studentRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var student models.Student
		if err := scanStudent(rows, &student); err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

func (r *studentRepository) Search(ctx context.Context, query string) ([]models.Student, error) {
	sqlQuery := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, sqlQuery, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var student models.Student
		if err := scanStudent(rows, &student); err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET first_name = $2, last_name = $3, email = $4, phone = $5, notes = $6, default_lesson_price = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		student.ID,
		student.FirstName,
		student.LastName,
		student.Email,
		student.Phone,
		student.Notes,
		student.DefaultLessonPrice,
		student.UpdatedAt,
	)
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

func (r *studentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM students WHERE id = $1`

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

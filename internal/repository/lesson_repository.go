package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/NourJadiri/invox-app/internal/models"
)

type LessonFilter struct {
	Start *time.Time
	End   *time.Time
}

type LessonRepository interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	CreateBatch(ctx context.Context, lessons []models.Lesson) error
	GetByID(ctx context.Context, id string) (*models.LessonWithStudent, error)
	GetAll(ctx context.Context, filter LessonFilter) ([]models.LessonWithStudent, error)
	GetByStudentID(ctx context.Context, studentID string) ([]models.Lesson, error)
	GetInstances(ctx context.Context, recurringLessonID string) ([]models.LessonWithStudent, error)
	GetUnsynced(ctx context.Context) ([]models.LessonWithStudent, error)
	GetGoogleEventIDs(ctx context.Context) (map[string]struct{}, error)
	Update(ctx context.Context, lesson *models.Lesson) error
	UpdatePrice(ctx context.Context, id string, price *float64) error
	SetGoogleEventID(ctx context.Context, id, eventID string) error
	Delete(ctx context.Context, id string) error
}

type lessonRepository struct {
	*PostgresRepository
}

func NewLessonRepository(db *sql.DB, logger zerolog.Logger) LessonRepository {
	return &lessonRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const lessonColumns = `l.id, l.title, l.start_time, l.end_time, l.notes, l.price, l.recurrent, l.color,
			l.student_id, l.recurring_lesson_id, l.google_event_id, l.created_at, l.updated_at`

const lessonWithStudentQuery = `
		SELECT ` + lessonColumns + `,
			s.id, s.first_name, s.last_name, s.email, s.phone, s.notes, s.default_lesson_price, s.created_at, s.updated_at
		FROM lessons l
		JOIN students s ON l.student_id = s.id`

func scanLessonWithStudent(row interface{ Scan(...interface{}) error }, lesson *models.LessonWithStudent) error {
	return row.Scan(
		&lesson.ID,
		&lesson.Title,
		&lesson.Start,
		&lesson.End,
		&lesson.Notes,
		&lesson.Price,
		&lesson.Recurrent,
		&lesson.Color,
		&lesson.StudentID,
		&lesson.RecurringLessonID,
		&lesson.GoogleEventID,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
		&lesson.Student.ID,
		&lesson.Student.FirstName,
		&lesson.Student.LastName,
		&lesson.Student.Email,
		&lesson.Student.Phone,
		&lesson.Student.Notes,
		&lesson.Student.DefaultLessonPrice,
		&lesson.Student.CreatedAt,
		&lesson.Student.UpdatedAt,
	)
}

func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	query := `
		INSERT INTO lessons (id, title, start_time, end_time, notes, price, recurrent, color,
			student_id, recurring_lesson_id, google_event_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		lesson.ID,
		lesson.Title,
		lesson.Start,
		lesson.End,
		lesson.Notes,
		lesson.Price,
		lesson.Recurrent,
		lesson.Color,
		lesson.StudentID,
		lesson.RecurringLessonID,
		lesson.GoogleEventID,
		lesson.CreatedAt,
		lesson.UpdatedAt,
	)

	return err
}

func (r *lessonRepository) CreateBatch(ctx context.Context, lessons []models.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO lessons (id, title, start_time, end_time, notes, price, recurrent, color,
			student_id, recurring_lesson_id, google_event_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, lesson := range lessons {
		_, err := stmt.ExecContext(ctx,
			lesson.ID,
			lesson.Title,
			lesson.Start,
			lesson.End,
			lesson.Notes,
			lesson.Price,
			lesson.Recurrent,
			lesson.Color,
			lesson.StudentID,
			lesson.RecurringLessonID,
			lesson.GoogleEventID,
			lesson.CreatedAt,
			lesson.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *lessonRepository) GetByID(ctx context.Context, id string) (*models.LessonWithStudent, error) {
	query := lessonWithStudentQuery + ` WHERE l.id = $1`

	lesson := &models.LessonWithStudent{}
	err := scanLessonWithStudent(r.db.QueryRowContext(ctx, query, id), lesson)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return lesson, err
}

func (r *lessonRepository) GetAll(ctx context.Context, filter LessonFilter) ([]models.LessonWithStudent, error) {
	query := lessonWithStudentQuery
	args := []interface{}{}

	if filter.Start != nil && filter.End != nil {
		query += ` WHERE l.start_time >= $1 AND l.start_time <= $2`
		args = append(args, *filter.Start, *filter.End)
	}

	query += ` ORDER BY l.start_time ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []models.LessonWithStudent
	for rows.Next() {
		var lesson models.LessonWithStudent
		if err := scanLessonWithStudent(rows, &lesson); err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}

	return lessons, rows.Err()
}

func (r *lessonRepository) GetByStudentID(ctx context.Context, studentID string) ([]models.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons l
		WHERE l.student_id = $1
		ORDER BY l.start_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		err := rows.Scan(
			&lesson.ID,
			&lesson.Title,
			&lesson.Start,
			&lesson.End,
			&lesson.Notes,
			&lesson.Price,
			&lesson.Recurrent,
			&lesson.Color,
			&lesson.StudentID,
			&lesson.RecurringLessonID,
			&lesson.GoogleEventID,
			&lesson.CreatedAt,
			&lesson.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}

	return lessons, rows.Err()
}

func (r *lessonRepository) GetInstances(ctx context.Context, recurringLessonID string) ([]models.LessonWithStudent, error) {
	query := lessonWithStudentQuery + ` WHERE l.recurring_lesson_id = $1 ORDER BY l.start_time ASC`

	rows, err := r.db.QueryContext(ctx, query, recurringLessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []models.LessonWithStudent
	for rows.Next() {
		var lesson models.LessonWithStudent
		if err := scanLessonWithStudent(rows, &lesson); err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}

	return lessons, rows.Err()
}

func (r *lessonRepository) GetUnsynced(ctx context.Context) ([]models.LessonWithStudent, error) {
	query := lessonWithStudentQuery + ` WHERE l.google_event_id IS NULL ORDER BY l.start_time ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []models.LessonWithStudent
	for rows.Next() {
		var lesson models.LessonWithStudent
		if err := scanLessonWithStudent(rows, &lesson); err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}

	return lessons, rows.Err()
}

func (r *lessonRepository) GetGoogleEventIDs(ctx context.Context) (map[string]struct{}, error) {
	query := `SELECT google_event_id FROM lessons WHERE google_event_id IS NOT NULL`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}

	return ids, rows.Err()
}

func (r *lessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	query := `
		UPDATE lessons
		SET title = $2, start_time = $3, end_time = $4, notes = $5, price = $6, recurrent = $7,
			color = $8, student_id = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		lesson.ID,
		lesson.Title,
		lesson.Start,
		lesson.End,
		lesson.Notes,
		lesson.Price,
		lesson.Recurrent,
		lesson.Color,
		lesson.StudentID,
		lesson.UpdatedAt,
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

func (r *lessonRepository) UpdatePrice(ctx context.Context, id string, price *float64) error {
	query := `UPDATE lessons SET price = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, price)
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

func (r *lessonRepository) SetGoogleEventID(ctx context.Context, id, eventID string) error {
	query := `UPDATE lessons SET google_event_id = $2, updated_at = NOW() WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, eventID)
	return err
}

func (r *lessonRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM lessons WHERE id = $1`

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

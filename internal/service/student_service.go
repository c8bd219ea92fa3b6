package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NourJadiri/invox-app/internal/models"
	"github.com/NourJadiri/invox-app/internal/repository"
)

type StudentService interface {
	CreateStudent(ctx context.Context, req *models.CreateStudentRequest) (*models.Student, error)
	GetStudents(ctx context.Context, search string) ([]models.Student, error)
	GetStudentByID(ctx context.Context, id string) (*models.Student, error)
	GetStudentWithLessons(ctx context.Context, id string) (*models.StudentWithLessons, error)
	UpdateStudent(ctx context.Context, id string, req *models.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id string) error
}

type studentService struct {
	studentRepo repository.StudentRepository
	lessonRepo  repository.LessonRepository
	logger      zerolog.Logger
}

func NewStudentService(
	studentRepo repository.StudentRepository,
	lessonRepo repository.LessonRepository,
	logger zerolog.Logger,
) StudentService {
	return &studentService{
		studentRepo: studentRepo,
		lessonRepo:  lessonRepo,
		logger:      logger,
	}
}

func (s *studentService) CreateStudent(ctx context.Context, req *models.CreateStudentRequest) (*models.Student, error) {
	now := time.Now()
	student := &models.Student{
		ID:                 uuid.New().String(),
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Email:              trimOrNil(req.Email),
		Phone:              trimOrNil(req.Phone),
		Notes:              trimOrNil(req.Notes),
		DefaultLessonPrice: req.DefaultLessonPrice,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info().
		Str("student_id", student.ID).
		Str("name", student.FullName()).
		Msg("Student created")

	return student, nil
}

func (s *studentService) GetStudents(ctx context.Context, search string) ([]models.Student, error) {
	var (
		students []models.Student
		err      error
	)
	if search != "" {
		students, err = s.studentRepo.Search(ctx, search)
	} else {
		students, err = s.studentRepo.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get students: %w", err)
	}

	return students, nil
}

func (s *studentService) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	return student, nil
}

func (s *studentService) GetStudentWithLessons(ctx context.Context, id string) (*models.StudentWithLessons, error) {
	student, err := s.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lessons, err := s.lessonRepo.GetByStudentID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}
	if lessons == nil {
		lessons = []models.Lesson{}
	}

	return &models.StudentWithLessons{Student: *student, Lessons: lessons}, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, id string, req *models.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		student.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		student.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		student.Email = trimOrNil(req.Email)
	}
	if req.Phone != nil {
		student.Phone = trimOrNil(req.Phone)
	}
	if req.Notes != nil {
		student.Notes = trimOrNil(req.Notes)
	}
	if req.DefaultLessonPrice != nil {
		student.DefaultLessonPrice = req.DefaultLessonPrice
	}
	student.UpdatedAt = time.Now()

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	return student, nil
}

// trimOrNil trims an optional text field, turning a blank value into NULL.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *studentService) DeleteStudent(ctx context.Context, id string) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	s.logger.Info().Str("student_id", id).Msg("Student deleted")

	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NourJadiri/invox-app/internal/document"
	"github.com/NourJadiri/invox-app/internal/models"
	"github.com/NourJadiri/invox-app/internal/repository"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req *models.CreateInvoiceRequest) (*models.InvoiceWithStudents, error)
	GetInvoices(ctx context.Context) ([]models.InvoiceWithStudents, error)
	GetInvoiceByID(ctx context.Context, id string) (*models.InvoiceWithStudents, error)
	DeleteInvoice(ctx context.Context, id string) error
	BuildDocument(ctx context.Context, req *models.InvoiceDocumentRequest) (*document.Document, error)
	BuildStoredDocument(ctx context.Context, id string) (*document.Document, error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	lessonRepo  repository.LessonRepository
	logger      zerolog.Logger
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	lessonRepo repository.LessonRepository,
	logger zerolog.Logger,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		lessonRepo:  lessonRepo,
		logger:      logger,
	}
}

// CreateInvoice computes the total over the selected students' lessons in
// the period and stores it as a snapshot: later edits to lessons never
// change a stored invoice.
func (s *invoiceService) CreateInvoice(ctx context.Context, req *models.CreateInvoiceRequest) (*models.InvoiceWithStudents, error) {
	lessons, err := s.lessonsInPeriod(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	total := document.ComputeTotal(document.Config{
		Lessons:            lessons,
		SelectedStudentIDs: req.StudentIDs,
	})

	invoice := &models.Invoice{
		ID:        uuid.New().String(),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Total:     total,
		CreatedAt: time.Now(),
	}

	if err := s.invoiceRepo.Create(ctx, invoice, req.StudentIDs); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.logger.Info().
		Str("invoice_id", invoice.ID).
		Int("number", invoice.Number).
		Float64("total", invoice.Total).
		Msg("Invoice created")

	stored, err := s.invoiceRepo.GetByID(ctx, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return stored, nil
}

func (s *invoiceService) GetInvoices(ctx context.Context) ([]models.InvoiceWithStudents, error) {
	invoices, err := s.invoiceRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoices: %w", err)
	}

	return invoices, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, id string) (*models.InvoiceWithStudents, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}

	return invoice, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	s.logger.Info().Str("invoice_id", id).Msg("Invoice deleted")

	return nil
}

// BuildDocument assembles a printable invoice over the given period without
// persisting anything.
func (s *invoiceService) BuildDocument(ctx context.Context, req *models.InvoiceDocumentRequest) (*document.Document, error) {
	withStudents, err := s.lessonsWithStudentsInPeriod(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	cfg := document.Config{
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Lessons:            plainLessons(withStudents),
		Students:           studentsOf(withStudents, req.SelectedStudentIDs),
		SelectedStudentIDs: req.SelectedStudentIDs,
	}
	if req.Number != nil {
		cfg.Number = *req.Number
	}
	if req.Date != nil {
		cfg.Date = *req.Date
	}

	doc := document.Build(cfg)

	return &doc, nil
}

// BuildStoredDocument regenerates the document for a stored invoice from the
// current lesson data. When lessons changed since the invoice was issued the
// recomputed total can diverge from the stored snapshot; the difference is
// logged, the snapshot is never rewritten.
func (s *invoiceService) BuildStoredDocument(ctx context.Context, id string) (*document.Document, error) {
	invoice, err := s.GetInvoiceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lessons, err := s.lessonsInPeriod(ctx, invoice.StartDate, invoice.EndDate)
	if err != nil {
		return nil, err
	}

	studentIDs := make([]string, 0, len(invoice.Students))
	for _, student := range invoice.Students {
		studentIDs = append(studentIDs, student.ID)
	}

	doc := document.Build(document.Config{
		StartDate:          invoice.StartDate,
		EndDate:            invoice.EndDate,
		Lessons:            lessons,
		Students:           invoice.Students,
		SelectedStudentIDs: studentIDs,
		Number:             invoice.Number,
		Date:               invoice.CreatedAt,
	})

	if math.Abs(doc.GrandTotal-invoice.Total) > 0.005 {
		s.logger.Warn().
			Str("invoice_id", invoice.ID).
			Float64("stored_total", invoice.Total).
			Float64("recomputed_total", doc.GrandTotal).
			Msg("Regenerated invoice total diverges from stored snapshot")
	}

	return &doc, nil
}

func (s *invoiceService) lessonsInPeriod(ctx context.Context, startDate, endDate time.Time) ([]models.Lesson, error) {
	withStudents, err := s.lessonsWithStudentsInPeriod(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return plainLessons(withStudents), nil
}

func (s *invoiceService) lessonsWithStudentsInPeriod(ctx context.Context, startDate, endDate time.Time) ([]models.LessonWithStudent, error) {
	end := endOfDay(endDate)

	lessons, err := s.lessonRepo.GetAll(ctx, repository.LessonFilter{Start: &startDate, End: &end})
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}

	return lessons, nil
}

func plainLessons(withStudents []models.LessonWithStudent) []models.Lesson {
	lessons := make([]models.Lesson, 0, len(withStudents))
	for _, l := range withStudents {
		lessons = append(lessons, l.Lesson)
	}

	return lessons
}

// studentsOf rebuilds the student list for an ad-hoc document from the
// lessons themselves, in the order the ids were selected.
func studentsOf(withStudents []models.LessonWithStudent, selectedIDs []string) []models.Student {
	byID := make(map[string]models.Student, len(withStudents))
	for _, l := range withStudents {
		byID[l.Student.ID] = l.Student
	}

	students := make([]models.Student, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		if student, ok := byID[id]; ok {
			students = append(students, student)
		}
	}

	return students
}

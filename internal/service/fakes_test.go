package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/NourJadiri/invox-app/internal/models"
	"github.com/NourJadiri/invox-app/internal/repository"
	"github.com/NourJadiri/invox-app/internal/service/integration"
)

// In-memory repository and calendar fakes shared by the service tests.

type fakeStudentRepo struct {
	students  map[string]models.Student
	createErr error
}

func newFakeStudentRepo(students ...models.Student) *fakeStudentRepo {
	repo := &fakeStudentRepo{students: make(map[string]models.Student)}
	for _, s := range students {
		repo.students[s.ID] = s
	}
	return repo
}

func (r *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.students[student.ID] = *student
	return nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id string) (*models.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, nil
	}
	return &student, nil
}

func (r *fakeStudentRepo) GetAll(_ context.Context) ([]models.Student, error) {
	var students []models.Student
	for _, s := range r.students {
		students = append(students, s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func (r *fakeStudentRepo) Search(ctx context.Context, _ string) ([]models.Student, error) {
	return r.GetAll(ctx)
}

func (r *fakeStudentRepo) Update(_ context.Context, student *models.Student) error {
	if _, ok := r.students[student.ID]; !ok {
		return sql.ErrNoRows
	}
	r.students[student.ID] = *student
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.students[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.students, id)
	return nil
}

type fakeLessonRepo struct {
	lessons     map[string]models.Lesson
	students    *fakeStudentRepo
	batchErr    error
	createErr   error
	priceErrFor map[string]error
}

func newFakeLessonRepo(students *fakeStudentRepo, lessons ...models.Lesson) *fakeLessonRepo {
	repo := &fakeLessonRepo{
		lessons:     make(map[string]models.Lesson),
		students:    students,
		priceErrFor: make(map[string]error),
	}
	for _, l := range lessons {
		repo.lessons[l.ID] = l
	}
	return repo
}

func (r *fakeLessonRepo) withStudent(lesson models.Lesson) models.LessonWithStudent {
	result := models.LessonWithStudent{Lesson: lesson}
	if student, ok := r.students.students[lesson.StudentID]; ok {
		result.Student = student
	}
	return result
}

func (r *fakeLessonRepo) Create(_ context.Context, lesson *models.Lesson) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.lessons[lesson.ID] = *lesson
	return nil
}

func (r *fakeLessonRepo) CreateBatch(_ context.Context, lessons []models.Lesson) error {
	if r.batchErr != nil {
		return r.batchErr
	}
	for _, l := range lessons {
		r.lessons[l.ID] = l
	}
	return nil
}

func (r *fakeLessonRepo) GetByID(_ context.Context, id string) (*models.LessonWithStudent, error) {
	lesson, ok := r.lessons[id]
	if !ok {
		return nil, nil
	}
	result := r.withStudent(lesson)
	return &result, nil
}

func (r *fakeLessonRepo) GetAll(_ context.Context, filter repository.LessonFilter) ([]models.LessonWithStudent, error) {
	var lessons []models.LessonWithStudent
	for _, l := range r.lessons {
		if filter.Start != nil && filter.End != nil {
			if l.Start.Before(*filter.Start) || l.Start.After(*filter.End) {
				continue
			}
		}
		lessons = append(lessons, r.withStudent(l))
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].Start.Before(lessons[j].Start) })
	return lessons, nil
}

func (r *fakeLessonRepo) GetByStudentID(_ context.Context, studentID string) ([]models.Lesson, error) {
	var lessons []models.Lesson
	for _, l := range r.lessons {
		if l.StudentID == studentID {
			lessons = append(lessons, l)
		}
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[j].Start.Before(lessons[i].Start) })
	return lessons, nil
}

func (r *fakeLessonRepo) GetInstances(_ context.Context, recurringLessonID string) ([]models.LessonWithStudent, error) {
	var lessons []models.LessonWithStudent
	for _, l := range r.lessons {
		if l.RecurringLessonID != nil && *l.RecurringLessonID == recurringLessonID {
			lessons = append(lessons, r.withStudent(l))
		}
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].Start.Before(lessons[j].Start) })
	return lessons, nil
}

func (r *fakeLessonRepo) GetUnsynced(_ context.Context) ([]models.LessonWithStudent, error) {
	var lessons []models.LessonWithStudent
	for _, l := range r.lessons {
		if l.GoogleEventID == nil {
			lessons = append(lessons, r.withStudent(l))
		}
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].Start.Before(lessons[j].Start) })
	return lessons, nil
}

func (r *fakeLessonRepo) GetGoogleEventIDs(_ context.Context) (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	for _, l := range r.lessons {
		if l.GoogleEventID != nil {
			ids[*l.GoogleEventID] = struct{}{}
		}
	}
	return ids, nil
}

func (r *fakeLessonRepo) Update(_ context.Context, lesson *models.Lesson) error {
	if _, ok := r.lessons[lesson.ID]; !ok {
		return sql.ErrNoRows
	}
	r.lessons[lesson.ID] = *lesson
	return nil
}

func (r *fakeLessonRepo) UpdatePrice(_ context.Context, id string, price *float64) error {
	if err := r.priceErrFor[id]; err != nil {
		return err
	}
	lesson, ok := r.lessons[id]
	if !ok {
		return sql.ErrNoRows
	}
	lesson.Price = price
	r.lessons[id] = lesson
	return nil
}

func (r *fakeLessonRepo) SetGoogleEventID(_ context.Context, id, eventID string) error {
	lesson, ok := r.lessons[id]
	if !ok {
		return sql.ErrNoRows
	}
	lesson.GoogleEventID = &eventID
	r.lessons[id] = lesson
	return nil
}

func (r *fakeLessonRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.lessons[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.lessons, id)
	return nil
}

type fakeInvoiceRepo struct {
	invoices   map[string]models.InvoiceWithStudents
	students   *fakeStudentRepo
	nextNumber int
}

func newFakeInvoiceRepo(students *fakeStudentRepo) *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[string]models.InvoiceWithStudents),
		students: students,
	}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, invoice *models.Invoice, studentIDs []string) error {
	r.nextNumber++
	invoice.Number = r.nextNumber

	stored := models.InvoiceWithStudents{Invoice: *invoice, Students: []models.Student{}}
	for _, id := range studentIDs {
		if student, ok := r.students.students[id]; ok {
			stored.Students = append(stored.Students, student)
		}
	}
	r.invoices[invoice.ID] = stored
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*models.InvoiceWithStudents, error) {
	invoice, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	return &invoice, nil
}

func (r *fakeInvoiceRepo) GetAll(_ context.Context) ([]models.InvoiceWithStudents, error) {
	var invoices []models.InvoiceWithStudents
	for _, inv := range r.invoices {
		invoices = append(invoices, inv)
	}
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].Number > invoices[j].Number })
	return invoices, nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.invoices[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.invoices, id)
	return nil
}

type fakeCalendarClient struct {
	insertErr  error
	updateErr  error
	deleteErr  error
	listErr    error
	events     []integration.Event
	inserted   []integration.Event
	updated    map[string]integration.Event
	deleted    []string
	nextID     int
	failFirstN int
}

func newFakeCalendarClient() *fakeCalendarClient {
	return &fakeCalendarClient{updated: make(map[string]integration.Event)}
}

func (c *fakeCalendarClient) InsertEvent(_ context.Context, _ string, event *integration.Event) (string, error) {
	if c.failFirstN > 0 {
		c.failFirstN--
		return "", errors.New("calendar unavailable")
	}
	if c.insertErr != nil {
		return "", c.insertErr
	}
	c.nextID++
	id := fmt.Sprintf("evt-%d", c.nextID)
	stored := *event
	stored.ID = id
	c.inserted = append(c.inserted, stored)
	return id, nil
}

func (c *fakeCalendarClient) UpdateEvent(_ context.Context, _ string, eventID string, event *integration.Event) error {
	if c.updateErr != nil {
		return c.updateErr
	}
	c.updated[eventID] = *event
	return nil
}

func (c *fakeCalendarClient) DeleteEvent(_ context.Context, _ string, eventID string) error {
	if c.deleteErr != nil {
		return c.deleteErr
	}
	c.deleted = append(c.deleted, eventID)
	return nil
}

func (c *fakeCalendarClient) ListEvents(_ context.Context, _ string, _ integration.ListOptions) ([]integration.Event, error) {
	if c.listErr != nil {
		return nil, c.listErr
	}
	return c.events, nil
}

func (c *fakeCalendarClient) ValidateToken(_ context.Context, token string) error {
	if token == "" {
		return errors.New("missing token")
	}
	return nil
}

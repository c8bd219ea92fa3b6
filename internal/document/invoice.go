package document

import (
	"sort"
	"time"

	"github.com/NourJadiri/invox-app/internal/models"
)

// Config is the full input of the invoice computation: it carries the data,
// not handles to it, so building a document is pure and repeatable.
type Config struct {
	StartDate          time.Time
	EndDate            time.Time
	Lessons            []models.Lesson
	Students           []models.Student
	SelectedStudentIDs []string
	Number             int
	Date               time.Time
}

type Line struct {
	Lesson     models.Lesson `json:"lesson"`
	Hours      float64       `json:"hours"`
	HourlyRate float64       `json:"hourly_rate"`
	Total      float64       `json:"total"`
}

type StudentGroup struct {
	Student    models.Student `json:"student"`
	Lines      []Line         `json:"lines"`
	TotalHours float64        `json:"total_hours"`
	Total      float64        `json:"total"`
}

type Document struct {
	Number     int            `json:"number"`
	Date       time.Time      `json:"date"`
	StartDate  time.Time      `json:"start_date"`
	EndDate    time.Time      `json:"end_date"`
	Groups     []StudentGroup `json:"groups"`
	GrandTotal float64        `json:"grand_total"`
}

// LessonDurationHours returns the lesson duration in hours, clamped at zero
// for degenerate lessons whose end does not come after their start.
func LessonDurationHours(lesson models.Lesson) float64 {
	hours := lesson.End.Sub(lesson.Start).Hours()
	if hours > 0 {
		return hours
	}
	return 0
}

// LessonHourlyRate returns the lesson price interpreted as an hourly rate,
// zero when unset.
func LessonHourlyRate(lesson models.Lesson) float64 {
	if lesson.Price != nil {
		return *lesson.Price
	}
	return 0
}

func LessonTotal(lesson models.Lesson) float64 {
	return LessonDurationHours(lesson) * LessonHourlyRate(lesson)
}

// ComputeTotal returns the grand total over the lessons of the selected
// students.
func ComputeTotal(cfg Config) float64 {
	selected := make(map[string]struct{}, len(cfg.SelectedStudentIDs))
	for _, id := range cfg.SelectedStudentIDs {
		selected[id] = struct{}{}
	}

	var total float64
	for _, lesson := range cfg.Lessons {
		if _, ok := selected[lesson.StudentID]; ok {
			total += LessonTotal(lesson)
		}
	}

	return total
}

// Build groups the lessons of the selected students, each group sorted by
// start ascending with subtotal hours and cost, and a grand total over all
// groups. Identical inputs always yield an identical document.
func Build(cfg Config) Document {
	selected := make(map[string]struct{}, len(cfg.SelectedStudentIDs))
	for _, id := range cfg.SelectedStudentIDs {
		selected[id] = struct{}{}
	}

	doc := Document{
		Number:    cfg.Number,
		Date:      cfg.Date,
		StartDate: cfg.StartDate,
		EndDate:   cfg.EndDate,
		Groups:    []StudentGroup{},
	}
	if doc.Date.IsZero() {
		doc.Date = time.Now()
	}

	for _, student := range cfg.Students {
		if _, ok := selected[student.ID]; !ok {
			continue
		}

		group := StudentGroup{
			Student: student,
			Lines:   []Line{},
		}

		for _, lesson := range cfg.Lessons {
			if lesson.StudentID != student.ID {
				continue
			}
			group.Lines = append(group.Lines, Line{
				Lesson:     lesson,
				Hours:      LessonDurationHours(lesson),
				HourlyRate: LessonHourlyRate(lesson),
				Total:      LessonTotal(lesson),
			})
		}

		sort.SliceStable(group.Lines, func(i, j int) bool {
			return group.Lines[i].Lesson.Start.Before(group.Lines[j].Lesson.Start)
		})

		for _, line := range group.Lines {
			group.TotalHours += line.Hours
			group.Total += line.Total
		}

		doc.Groups = append(doc.Groups, group)
		doc.GrandTotal += group.Total
	}

	return doc
}

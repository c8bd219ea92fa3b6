package httpd

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/NourJadiri/invox-app/internal/models"
	"github.com/NourJadiri/invox-app/internal/service"
)

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStudentRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FirstName == "" {
		writeError(w, http.StatusBadRequest, "first_name is required")
		return
	}

	ctx := r.Context()
	student, err := h.studentService.CreateStudent(ctx, &req)
	if err != nil {
		h.handleStudentError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    student,
	})
}

func (h *Handler) GetAllStudents(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	ctx := r.Context()
	students, err := h.studentService.GetStudents(ctx, search)
	if err != nil {
		h.handleStudentError(w, err)
		return
	}

	if students == nil {
		students = []models.Student{}
	}

	writeSuccess(w, students)
}

func (h *Handler) GetStudentByID(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")
	if studentID == "" {
		writeError(w, http.StatusBadRequest, "Student ID is required")
		return
	}

	ctx := r.Context()
	student, err := h.studentService.GetStudentByID(ctx, studentID)
	if err != nil {
		h.handleStudentError(w, err)
		return
	}

	writeSuccess(w, student)
}

func (h *Handler) GetStudentWithLessons(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")
	if studentID == "" {
		writeError(w, http.StatusBadRequest, "Student ID is required")
		return
	}

	ctx := r.Context()
	student, err := h.studentService.GetStudentWithLessons(ctx, studentID)
	if err != nil {
		h.handleStudentError(w, err)
		return
	}

	writeSuccess(w, student)
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")
	if studentID == "" {
		writeError(w, http.StatusBadRequest, "Student ID is required")
		return
	}

	var req models.UpdateStudentRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	student, err := h.studentService.UpdateStudent(ctx, studentID, &req)
	if err != nil {
		h.handleStudentError(w, err)
		return
	}

	writeSuccess(w, student)
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")
	if studentID == "" {
		writeError(w, http.StatusBadRequest, "Student ID is required")
		return
	}

	ctx := r.Context()
	if err := h.studentService.DeleteStudent(ctx, studentID); err != nil {
		h.handleStudentError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Student deleted successfully",
	})
}

func (h *Handler) handleStudentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound), errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, "Student not found")
	default:
		h.logger.Error().Err(err).Msg("Student service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

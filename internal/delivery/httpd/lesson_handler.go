package httpd

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/NourJadiri/invox-app/internal/models"
	"github.com/NourJadiri/invox-app/internal/service"
)

func (h *Handler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLessonRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Start == nil || req.End == nil {
		writeError(w, http.StatusBadRequest, "start and end are required")
		return
	}

	ctx := r.Context()
	lesson, err := h.lessonService.CreateLesson(ctx, &req, calendarToken(r))
	if err != nil {
		h.handleLessonError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    lesson,
	})
}

func (h *Handler) GetAllLessons(w http.ResponseWriter, r *http.Request) {
	start, err := getTimeQueryParam(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start parameter")
		return
	}
	end, err := getTimeQueryParam(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end parameter")
		return
	}

	ctx := r.Context()
	lessons, err := h.lessonService.GetLessons(ctx, start, end)
	if err != nil {
		h.handleLessonError(w, err)
		return
	}

	if lessons == nil {
		lessons = []models.LessonWithStudent{}
	}

	writeSuccess(w, lessons)
}

func (h *Handler) GetLessonByID(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "id")
	if lessonID == "" {
		writeError(w, http.StatusBadRequest, "Lesson ID is required")
		return
	}

	ctx := r.Context()
	lesson, err := h.lessonService.GetLessonByID(ctx, lessonID)
	if err != nil {
		h.handleLessonError(w, err)
		return
	}

	writeSuccess(w, lesson)
}

func (h *Handler) GetLessonInstances(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "id")
	if lessonID == "" {
		writeError(w, http.StatusBadRequest, "Lesson ID is required")
		return
	}

	ctx := r.Context()
	instances, err := h.lessonService.GetInstances(ctx, lessonID)
	if err != nil {
		h.handleLessonError(w, err)
		return
	}

	if instances == nil {
		instances = []models.LessonWithStudent{}
	}

	writeSuccess(w, instances)
}

func (h *Handler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "id")
	if lessonID == "" {
		writeError(w, http.StatusBadRequest, "Lesson ID is required")
		return
	}

	var req models.UpdateLessonRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	lesson, err := h.lessonService.UpdateLesson(ctx, lessonID, &req, calendarToken(r))
	if err != nil {
		h.handleLessonError(w, err)
		return
	}

	writeSuccess(w, lesson)
}

func (h *Handler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "id")
	if lessonID == "" {
		writeError(w, http.StatusBadRequest, "Lesson ID is required")
		return
	}

	ctx := r.Context()
	if err := h.lessonService.DeleteLesson(ctx, lessonID, calendarToken(r)); err != nil {
		h.handleLessonError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Lesson deleted successfully",
	})
}

func (h *Handler) ApplyDefaultPrices(w http.ResponseWriter, r *http.Request) {
	var req models.ApplyDefaultPricesRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	result, err := h.pricingService.ApplyDefaultPrices(ctx, &req)
	if err != nil {
		h.handleLessonError(w, err)
		return
	}

	writeSuccess(w, result)
}

func getTimeQueryParam(r *http.Request, key string) (*time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (h *Handler) handleLessonError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrLessonNotFound), errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, "Lesson not found")
	case errors.Is(err, service.ErrStudentNotFound):
		writeError(w, http.StatusNotFound, "Student not found")
	default:
		h.logger.Error().Err(err).Msg("Lesson service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

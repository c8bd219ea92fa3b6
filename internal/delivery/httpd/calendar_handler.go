package httpd

import (
	"net/http"

	"github.com/NourJadiri/invox-app/internal/models"
)

// CalendarStatus checks that the provided Google token can reach the
// calendar.
func (h *Handler) CalendarStatus(w http.ResponseWriter, r *http.Request) {
	token := calendarToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Google access token is required")
		return
	}

	ctx := r.Context()
	if err := h.syncService.ValidateToken(ctx, token); err != nil {
		h.logger.Error().Err(err).Msg("Calendar token validation failed")
		writeError(w, http.StatusUnauthorized, "Google access token is invalid or expired")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"connected": true,
	})
}

func (h *Handler) SyncCalendar(w http.ResponseWriter, r *http.Request) {
	token := calendarToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Google access token is required")
		return
	}

	ctx := r.Context()
	result, err := h.syncService.SyncAll(ctx, token)
	if err != nil {
		h.logger.Error().Err(err).Msg("Calendar sync failed")
		writeError(w, http.StatusInternalServerError, "Calendar sync failed")
		return
	}

	writeSuccess(w, result)
}

func (h *Handler) ImportLessons(w http.ResponseWriter, r *http.Request) {
	token := calendarToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Google access token is required")
		return
	}

	var req models.ImportLessonsRequest
	if r.ContentLength > 0 {
		if err := h.decodeAndValidate(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	ctx := r.Context()
	result, err := h.syncService.Import(ctx, token, &req)
	if err != nil {
		h.logger.Error().Err(err).Msg("Calendar import failed")
		writeError(w, http.StatusInternalServerError, "Calendar import failed")
		return
	}

	writeSuccess(w, result)
}

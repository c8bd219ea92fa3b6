package httpd

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const calendarTokenKey contextKey = "calendar_token"

// calendarTokenMiddleware extracts the Google OAuth access token from the
// Authorization header. The token is optional: without it the API still
// works, only calendar synchronization is skipped.
func calendarTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			r = r.WithContext(context.WithValue(r.Context(), calendarTokenKey, token))
		}

		next.ServeHTTP(w, r)
	})
}

func calendarToken(r *http.Request) string {
	token, _ := r.Context().Value(calendarTokenKey).(string)
	return token
}

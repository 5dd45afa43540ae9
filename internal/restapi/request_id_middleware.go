package restapi

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

type contextKey string

// RequestIDKey is the context key under which the request ID travels.
const RequestIDKey contextKey = "request_id"

const maxRequestIDLength = 128

// Inbound X-Request-ID values are only trusted if they look like an ID; a
// client cannot smuggle arbitrary bytes into logs through the header.
var validRequestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9-._:]+$`)

// RequestIDMiddleware tags every request with an ID, either the caller's
// well-formed X-Request-ID or a fresh UUID, echoes it on the response, and
// stores it in the context for the logging middleware.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if !acceptableRequestID(requestID) {
			requestID = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func acceptableRequestID(id string) bool {
	return id != "" && len(id) <= maxRequestIDLength && validRequestIDPattern.MatchString(id)
}

// GetRequestID retrieves the request ID from a context, or "" when the
// middleware did not run.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

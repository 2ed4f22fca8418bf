package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const sessionIDKey contextKey = "sessionID"

// SessionIDMiddleware validates the {sessionId} URL parameter and injects
// its canonical form into the request context.
func SessionIDMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, "sessionId")
			id, err := uuid.Parse(raw)
			if err != nil {
				logger.Debug("session: malformed id",
					zap.String("path", r.URL.Path),
					zap.String("session_id", raw),
				)
				writeError(w, http.StatusBadRequest, "validation error on 'sessionId': must be a UUID")
				return
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, id.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIDFromContext extracts the validated session ID from context.
func SessionIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(sessionIDKey).(string)
	return v
}

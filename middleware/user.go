package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flashcard-tracker/flashcard-tracker/logger"
	"github.com/flashcard-tracker/flashcard-tracker/models"
	"github.com/flashcard-tracker/flashcard-tracker/store"
	"github.com/flashcard-tracker/flashcard-tracker/utils"
	"go.uber.org/zap"
)

type contextKey string

const userKey = contextKey("user")

// LoadUser resolves the token subject to a stored user and attaches it to the
// request context. Tokens for users that no longer exist are rejected.
func LoadUser(s *store.Store) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserID(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "No user in token")
				return
			}

			user, err := s.GetUser(r.Context(), userID)
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "User no longer exists")
				return
			}
			if err != nil {
				logger.FromContext(r.Context()).Error("Failed to load user", zap.Uint("user_id", userID), zap.Error(err))
				writeError(w, http.StatusInternalServerError, "Failed to load user")
				return
			}

			log := logger.FromContext(r.Context()).With(zap.Uint("user_id", user.ID))
			ctx := context.WithValue(r.Context(), userKey, user)
			ctx = logger.WithContext(ctx, log)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// CurrentUser returns the user attached by LoadUser.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

// WithUser attaches user to ctx the way LoadUser does.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

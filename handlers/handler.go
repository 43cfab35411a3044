package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flashcard-tracker/flashcard-tracker/auth"
	"github.com/flashcard-tracker/flashcard-tracker/logger"
	"github.com/flashcard-tracker/flashcard-tracker/metrics"
	"github.com/flashcard-tracker/flashcard-tracker/middleware"
	"github.com/flashcard-tracker/flashcard-tracker/models"
	"github.com/flashcard-tracker/flashcard-tracker/store"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type DBHandler struct {
	*store.Store
	Issuer  *auth.Issuer
	Metrics *metrics.Metrics

	policy *bluemonday.Policy
}

func NewDBHandler(s *store.Store, issuer *auth.Issuer, m *metrics.Metrics) *DBHandler {
	policy := bluemonday.UGCPolicy().
		AllowElements("img").
		AllowAttrs("src", "alt").OnElements("img")

	return &DBHandler{Store: s, Issuer: issuer, Metrics: m, policy: policy}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeStoreError maps a store error onto a status code. Unexpected errors
// are logged and hidden from the client.
func writeStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrDuplicate):
		writeMessage(w, http.StatusConflict, "Already exists")
	case errors.Is(err, store.ErrInvalid):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrMissingReference):
		writeMessage(w, http.StatusUnprocessableEntity, "Referenced record does not exist")
	default:
		logger.FromContext(r.Context()).Error(op+" failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// currentUser is set by middleware.LoadUser on every protected route.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
	}
	return user, ok
}

func (h *DBHandler) Health(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.DB().DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		logger.FromContext(r.Context()).Warn("Health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

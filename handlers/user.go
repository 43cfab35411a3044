package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/flashcard-tracker/flashcard-tracker/logger"
	"github.com/flashcard-tracker/flashcard-tracker/models"
	"github.com/flashcard-tracker/flashcard-tracker/store"
	"go.uber.org/zap"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/users
func (h *DBHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		credentials
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Password is required")
		return
	}

	user := models.NewUser(req.FirstName, req.LastName, strings.TrimSpace(req.Email), "")
	if err := user.SetPassword(req.Password); err != nil {
		writeMessage(w, http.StatusBadRequest, "Password is too long")
		return
	}
	if err := h.CreateUser(r.Context(), user); err != nil {
		writeStoreError(w, r, "Register", err)
		return
	}
	h.Metrics.RecordCreated("user")

	if !h.startSession(w, r, user) {
		return
	}
	logger.FromContext(r.Context()).Info("User registered", zap.Uint("user_id", user.ID))
	writeJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

// POST /api/login
func (h *DBHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if !decode(w, r, &req) {
		return
	}

	user, err := h.GetUserByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		writeStoreError(w, r, "Login", err)
		return
	}
	ok := err == nil && user.VerifyPassword(req.Password)
	h.Metrics.RecordAuth("login", ok)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !h.startSession(w, r, user) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// POST /api/logout
func (h *DBHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Issuer.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *DBHandler) startSession(w http.ResponseWriter, r *http.Request, user *models.User) bool {
	token, err := h.Issuer.CreateToken(user.ID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Token generation failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Failed to generate token")
		return false
	}
	h.Issuer.SetCookie(w, token)
	return true
}

// GET /api/me
func (h *DBHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// PUT /api/me
func (h *DBHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Email     *string `json:"email"`
		Password  *string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			writeMessage(w, http.StatusBadRequest, "Password is too long")
			return
		}
	}

	if err := h.UpdateUser(r.Context(), user); err != nil {
		writeStoreError(w, r, "UpdateMe", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// DELETE /api/me
func (h *DBHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.DeleteUser(r.Context(), user.ID); err != nil {
		writeStoreError(w, r, "DeleteMe", err)
		return
	}
	logger.FromContext(r.Context()).Info("User deleted")
	h.Issuer.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/me/decks
func (h *DBHandler) MyDecks(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	decks, err := h.UserDecks(r.Context(), user.ID)
	if err != nil {
		writeStoreError(w, r, "MyDecks", err)
		return
	}
	writeJSON(w, http.StatusOK, decks)
}

// GET /api/me/cards
func (h *DBHandler) MyCards(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	cards, err := h.UserCards(r.Context(), user.ID)
	if err != nil {
		writeStoreError(w, r, "MyCards", err)
		return
	}
	writeJSON(w, http.StatusOK, h.renderCards(cards))
}

// GET /api/me/classes
//
// Lists owned and joined classes separately.
func (h *DBHandler) MyClasses(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	owned, err := h.UserOwnedClasses(r.Context(), user.ID)
	if err != nil {
		writeStoreError(w, r, "MyClasses", err)
		return
	}
	joined, err := h.UserClasses(r.Context(), user.ID)
	if err != nil {
		writeStoreError(w, r, "MyClasses", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"owned": owned, "joined": joined})
}

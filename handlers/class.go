package handlers

import (
	"net/http"

	"github.com/flashcard-tracker/flashcard-tracker/logger"
	"github.com/flashcard-tracker/flashcard-tracker/models"
	"go.uber.org/zap"
)

// /api/classes/{classID}

// canSee reports whether user owns or belongs to class.
func (h *DBHandler) canSee(r *http.Request, class *models.Class, user *models.User) (bool, error) {
	if class.OwnerID == user.ID {
		return true, nil
	}
	return h.IsMember(r.Context(), class.ID, user.ID)
}

func (h *DBHandler) pathClass(w http.ResponseWriter, r *http.Request) (*models.Class, bool) {
	class, err := h.GetClassByPublicID(r.Context(), r.PathValue("classID"))
	if err != nil {
		writeStoreError(w, r, "GetClass", err)
		return nil, false
	}
	return class, true
}

// visibleClass loads the class in the path and checks the caller owns or
// belongs to it.
func (h *DBHandler) visibleClass(w http.ResponseWriter, r *http.Request, user *models.User) (*models.Class, bool) {
	class, ok := h.pathClass(w, r)
	if !ok {
		return nil, false
	}
	visible, err := h.canSee(r, class, user)
	if err != nil {
		writeStoreError(w, r, "IsMember", err)
		return nil, false
	}
	if !visible {
		writeMessage(w, http.StatusForbidden, "Forbidden")
		return nil, false
	}
	return class, true
}

// POST /api/classes
func (h *DBHandler) CreateClass(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Password is required")
		return
	}

	class := models.NewClass(req.Name, "", user.ID)
	if err := class.SetPassword(req.Password); err != nil {
		writeMessage(w, http.StatusBadRequest, "Password is too long")
		return
	}
	if err := h.Store.CreateClass(r.Context(), class); err != nil {
		writeStoreError(w, r, "CreateClass", err)
		return
	}
	h.Metrics.RecordCreated("class")
	class.Owner = user
	logger.FromContext(r.Context()).Info("Class created",
		zap.String("class_id", class.PublicID),
		zap.Stringer("class", class))
	writeJSON(w, http.StatusCreated, class)
}

// GET /api/classes/{classID}
func (h *DBHandler) GetClass(w http.ResponseWriter, r *http.Request) {
	class, ok := h.pathClass(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, class)
}

// DELETE /api/classes/{classID}
func (h *DBHandler) DeleteClass(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	class, ok := h.pathClass(w, r)
	if !ok {
		return
	}
	if class.OwnerID != user.ID {
		writeMessage(w, http.StatusForbidden, "Forbidden")
		return
	}
	if err := h.Store.DeleteClass(r.Context(), class.ID); err != nil {
		writeStoreError(w, r, "DeleteClass", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/classes/{classID}/join
func (h *DBHandler) JoinClass(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	class, ok := h.pathClass(w, r)
	if !ok {
		return
	}
	var req struct {
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	verified := class.VerifyPassword(req.Password)
	h.Metrics.RecordAuth("join", verified)
	if !verified {
		logger.FromContext(r.Context()).Info("Class password rejected", zap.String("class_id", class.PublicID))
		writeMessage(w, http.StatusForbidden, "Wrong class password")
		return
	}

	if err := h.AddMember(r.Context(), class.ID, user.ID); err != nil {
		writeStoreError(w, r, "JoinClass", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/classes/{classID}/leave
func (h *DBHandler) LeaveClass(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	class, ok := h.pathClass(w, r)
	if !ok {
		return
	}
	if err := h.RemoveMember(r.Context(), class.ID, user.ID); err != nil {
		writeStoreError(w, r, "LeaveClass", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/classes/{classID}/members
func (h *DBHandler) GetClassMembers(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	class, ok := h.visibleClass(w, r, user)
	if !ok {
		return
	}
	members, err := h.ClassMembers(r.Context(), class.ID)
	if err != nil {
		writeStoreError(w, r, "GetClassMembers", err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// GET /api/classes/{classID}/cards
func (h *DBHandler) GetClassCards(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	class, ok := h.visibleClass(w, r, user)
	if !ok {
		return
	}
	cards, err := h.ClassCards(r.Context(), class.ID)
	if err != nil {
		writeStoreError(w, r, "GetClassCards", err)
		return
	}
	writeJSON(w, http.StatusOK, h.renderCards(cards))
}

// POST /api/classes/{classID}/cards/{cardID}
//
// The caller must own the card and own or belong to the class.
func (h *DBHandler) ShareCardWithClass(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	class, ok := h.visibleClass(w, r, user)
	if !ok {
		return
	}
	card, ok := h.ownedCard(w, r, user)
	if !ok {
		return
	}
	if err := h.ShareCard(r.Context(), class.ID, card.ID); err != nil {
		writeStoreError(w, r, "ShareCard", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /api/classes/{classID}/cards/{cardID}
//
// Allowed for the card owner and the class owner.
func (h *DBHandler) UnshareCardFromClass(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	class, ok := h.pathClass(w, r)
	if !ok {
		return
	}
	card, err := h.GetCardByPublicID(r.Context(), r.PathValue("cardID"))
	if err != nil {
		writeStoreError(w, r, "UnshareCard", err)
		return
	}
	if card.OwnerID != user.ID && class.OwnerID != user.ID {
		writeMessage(w, http.StatusForbidden, "Forbidden")
		return
	}
	if err := h.UnshareCard(r.Context(), class.ID, card.ID); err != nil {
		writeStoreError(w, r, "UnshareCard", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

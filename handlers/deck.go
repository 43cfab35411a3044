package handlers

import (
	"net/http"

	"github.com/flashcard-tracker/flashcard-tracker/logger"
	"github.com/flashcard-tracker/flashcard-tracker/models"
	"go.uber.org/zap"
)

// /api/decks/{deckID}

// ownedDeck loads the deck in the path and checks the caller owns it.
func (h *DBHandler) ownedDeck(w http.ResponseWriter, r *http.Request, user *models.User) (*models.Deck, bool) {
	deck, err := h.GetDeckByPublicID(r.Context(), r.PathValue("deckID"))
	if err != nil {
		writeStoreError(w, r, "GetDeck", err)
		return nil, false
	}
	if deck.OwnerID != user.ID {
		logger.FromContext(r.Context()).Info("Forbidden deck access", zap.String("deck_id", deck.PublicID))
		writeMessage(w, http.StatusForbidden, "Forbidden")
		return nil, false
	}
	return deck, true
}

// POST /api/decks
func (h *DBHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}

	deck := models.NewDeck(req.Name, user.ID)
	if err := h.Store.CreateDeck(r.Context(), deck); err != nil {
		writeStoreError(w, r, "CreateDeck", err)
		return
	}
	h.Metrics.RecordCreated("deck")
	deck.Owner = user
	logger.FromContext(r.Context()).Info("Deck created",
		zap.String("deck_id", deck.PublicID),
		zap.Stringer("deck", deck))
	writeJSON(w, http.StatusCreated, deck)
}

// GET /api/decks/{deckID}
func (h *DBHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := h.GetDeckByPublicID(r.Context(), r.PathValue("deckID"))
	if err != nil {
		writeStoreError(w, r, "GetDeck", err)
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

// PUT /api/decks/{deckID}
func (h *DBHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	deck, ok := h.ownedDeck(w, r, user)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}

	deck.Name = req.Name
	if err := h.Store.UpdateDeck(r.Context(), deck); err != nil {
		writeStoreError(w, r, "UpdateDeck", err)
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

// DELETE /api/decks/{deckID}
func (h *DBHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	deck, ok := h.ownedDeck(w, r, user)
	if !ok {
		return
	}
	if err := h.Store.DeleteDeck(r.Context(), deck.ID); err != nil {
		writeStoreError(w, r, "DeleteDeck", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/decks/{deckID}/cards
func (h *DBHandler) GetDeckCards(w http.ResponseWriter, r *http.Request) {
	deck, err := h.GetDeckByPublicID(r.Context(), r.PathValue("deckID"))
	if err != nil {
		writeStoreError(w, r, "GetDeckCards", err)
		return
	}
	cards, err := h.DeckCards(r.Context(), deck.ID)
	if err != nil {
		writeStoreError(w, r, "GetDeckCards", err)
		return
	}
	writeJSON(w, http.StatusOK, h.renderCards(cards))
}

// GET /api/decks/{deckID}/owner-cards
//
// Every card of the deck owner, across all of their decks.
func (h *DBHandler) GetDeckOwnerCards(w http.ResponseWriter, r *http.Request) {
	deck, err := h.GetDeckByPublicID(r.Context(), r.PathValue("deckID"))
	if err != nil {
		writeStoreError(w, r, "GetDeckOwnerCards", err)
		return
	}
	cards, err := h.ListCardsForOwner(r.Context(), deck, deck.OwnerID)
	if err != nil {
		writeStoreError(w, r, "GetDeckOwnerCards", err)
		return
	}
	writeJSON(w, http.StatusOK, h.renderCards(cards))
}

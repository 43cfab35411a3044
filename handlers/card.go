package handlers

import (
	"net/http"

	"github.com/flashcard-tracker/flashcard-tracker/logger"
	"github.com/flashcard-tracker/flashcard-tracker/models"
	"go.uber.org/zap"
)

type cardRequest struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// cardView is a card as the API returns it. Front and back are the stored
// text, unchanged; the html fields are safe to insert into a page.
type cardView struct {
	*models.Card
	FrontHTML string `json:"front_html"`
	BackHTML  string `json:"back_html"`
}

func (h *DBHandler) renderCard(c *models.Card) cardView {
	return cardView{
		Card:      c,
		FrontHTML: h.policy.Sanitize(c.Front),
		BackHTML:  h.policy.Sanitize(c.Back),
	}
}

func (h *DBHandler) renderCards(cards []models.Card) []cardView {
	views := make([]cardView, 0, len(cards))
	for i := range cards {
		views = append(views, h.renderCard(&cards[i]))
	}
	return views
}

// ownedCard loads the card in the path and checks the caller owns it.
func (h *DBHandler) ownedCard(w http.ResponseWriter, r *http.Request, user *models.User) (*models.Card, bool) {
	card, err := h.GetCardByPublicID(r.Context(), r.PathValue("cardID"))
	if err != nil {
		writeStoreError(w, r, "GetCard", err)
		return nil, false
	}
	if card.OwnerID != user.ID {
		writeMessage(w, http.StatusForbidden, "Forbidden")
		return nil, false
	}
	return card, true
}

// POST /api/decks/{deckID}/cards
func (h *DBHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	deck, ok := h.ownedDeck(w, r, user)
	if !ok {
		return
	}
	var req cardRequest
	if !decode(w, r, &req) {
		return
	}

	card := models.NewCard(req.Front, req.Back, deck.ID, user.ID)
	if err := h.Store.CreateCard(r.Context(), card); err != nil {
		writeStoreError(w, r, "CreateCard", err)
		return
	}
	h.Metrics.RecordCreated("card")
	logger.FromContext(r.Context()).Info("Card created",
		zap.String("card_id", card.PublicID),
		zap.String("deck_id", deck.PublicID))
	writeJSON(w, http.StatusCreated, h.renderCard(card))
}

// GET /api/cards/{cardID}
func (h *DBHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.GetCardByPublicID(r.Context(), r.PathValue("cardID"))
	if err != nil {
		writeStoreError(w, r, "GetCard", err)
		return
	}
	writeJSON(w, http.StatusOK, h.renderCard(card))
}

// PUT /api/cards/{cardID}
func (h *DBHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	card, ok := h.ownedCard(w, r, user)
	if !ok {
		return
	}
	var req cardRequest
	if !decode(w, r, &req) {
		return
	}

	card.Front, card.Back = req.Front, req.Back
	if err := h.Store.UpdateCard(r.Context(), card); err != nil {
		writeStoreError(w, r, "UpdateCard", err)
		return
	}
	writeJSON(w, http.StatusOK, h.renderCard(card))
}

// DELETE /api/cards/{cardID}
func (h *DBHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	card, ok := h.ownedCard(w, r, user)
	if !ok {
		return
	}
	if err := h.Store.DeleteCard(r.Context(), card.ID); err != nil {
		writeStoreError(w, r, "DeleteCard", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/cards/{cardID}/classes
func (h *DBHandler) GetCardClasses(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	card, ok := h.ownedCard(w, r, user)
	if !ok {
		return
	}
	classes, err := h.CardClasses(r.Context(), card.ID)
	if err != nil {
		writeStoreError(w, r, "GetCardClasses", err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

package handlers

import (
	"net/http"

	"github.com/flashcard-tracker/flashcard-tracker/middleware"
)

// Routes registers every endpoint. authenticate guards the routes that need
// a signed in user; LoadUser then resolves the token to a stored user.
func (h *DBHandler) Routes(authenticate func(http.Handler) http.Handler) *http.ServeMux {
	loadUser := middleware.LoadUser(h.Store)
	protected := func(next http.HandlerFunc) http.Handler {
		return authenticate(loadUser(next))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", h.Metrics.Handler())

	// Session
	mux.HandleFunc("POST /api/users", h.Register)
	mux.HandleFunc("POST /api/login", h.Login)
	mux.HandleFunc("POST /api/logout", h.Logout)

	// Current user
	mux.Handle("GET /api/me", protected(h.Me))
	mux.Handle("PUT /api/me", protected(h.UpdateMe))
	mux.Handle("DELETE /api/me", protected(h.DeleteMe))
	mux.Handle("GET /api/me/decks", protected(h.MyDecks))
	mux.Handle("GET /api/me/cards", protected(h.MyCards))
	mux.Handle("GET /api/me/classes", protected(h.MyClasses))

	// Decks
	mux.Handle("POST /api/decks", protected(h.CreateDeck))
	mux.Handle("GET /api/decks/{deckID}", protected(h.GetDeck))
	mux.Handle("PUT /api/decks/{deckID}", protected(h.UpdateDeck))
	mux.Handle("DELETE /api/decks/{deckID}", protected(h.DeleteDeck))
	mux.Handle("GET /api/decks/{deckID}/cards", protected(h.GetDeckCards))
	mux.Handle("POST /api/decks/{deckID}/cards", protected(h.CreateCard))
	mux.Handle("GET /api/decks/{deckID}/owner-cards", protected(h.GetDeckOwnerCards))

	// Cards
	mux.Handle("GET /api/cards/{cardID}", protected(h.GetCard))
	mux.Handle("PUT /api/cards/{cardID}", protected(h.UpdateCard))
	mux.Handle("DELETE /api/cards/{cardID}", protected(h.DeleteCard))
	mux.Handle("GET /api/cards/{cardID}/classes", protected(h.GetCardClasses))

	// Classes
	mux.Handle("POST /api/classes", protected(h.CreateClass))
	mux.Handle("GET /api/classes/{classID}", protected(h.GetClass))
	mux.Handle("DELETE /api/classes/{classID}", protected(h.DeleteClass))
	mux.Handle("POST /api/classes/{classID}/join", protected(h.JoinClass))
	mux.Handle("POST /api/classes/{classID}/leave", protected(h.LeaveClass))
	mux.Handle("GET /api/classes/{classID}/members", protected(h.GetClassMembers))
	mux.Handle("GET /api/classes/{classID}/cards", protected(h.GetClassCards))
	mux.Handle("POST /api/classes/{classID}/cards/{cardID}", protected(h.ShareCardWithClass))
	mux.Handle("DELETE /api/classes/{classID}/cards/{cardID}", protected(h.UnshareCardFromClass))

	return mux
}

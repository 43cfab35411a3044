package store

import (
	"context"

	"github.com/flashcard-tracker/flashcard-tracker/models"
)

func (s *Store) CreateDeck(ctx context.Context, d *models.Deck) error {
	return translate(s.conn(ctx).Create(d).Error)
}

func (s *Store) GetDeck(ctx context.Context, id uint) (*models.Deck, error) {
	var d models.Deck
	if err := s.conn(ctx).First(&d, id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *Store) GetDeckByPublicID(ctx context.Context, publicID string) (*models.Deck, error) {
	var d models.Deck
	if err := s.conn(ctx).Where("public_id = ?", publicID).First(&d).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *Store) UpdateDeck(ctx context.Context, d *models.Deck) error {
	return translate(s.conn(ctx).Save(d).Error)
}

// DeleteDeck removes the deck, the cards filed in it and their class shares.
func (s *Store) DeleteDeck(ctx context.Context, id uint) error {
	return s.WithTx(ctx, func(tx *Store) error {
		if _, err := tx.GetDeck(ctx, id); err != nil {
			return err
		}
		db := tx.conn(ctx)
		cards := db.Model(&models.Card{}).Select("id").Where("deck_id = ?", id)

		if err := db.Where("card_id IN (?)", cards).Delete(&models.CardClass{}).Error; err != nil {
			return translate(err)
		}
		if err := db.Where("deck_id = ?", id).Delete(&models.Card{}).Error; err != nil {
			return translate(err)
		}
		return translate(db.Delete(&models.Deck{}, id).Error)
	})
}

// DeckCards is the deck's own card collection, whoever owns the cards.
func (s *Store) DeckCards(ctx context.Context, deckID uint) ([]models.Card, error) {
	cards := []models.Card{}
	err := s.conn(ctx).Where("deck_id = ?", deckID).Order("id").Find(&cards).Error
	return cards, translate(err)
}

// ListCardsForOwner returns every card owned by ownerID. The deck is not part
// of the filter: cards owned by ownerID in other decks are included. Existing
// callers depend on this; use DeckCards for the deck's own collection.
func (s *Store) ListCardsForOwner(ctx context.Context, _ *models.Deck, ownerID uint) ([]models.Card, error) {
	return s.UserCards(ctx, ownerID)
}

// LoadDeckOwner fills d.Owner from storage.
func (s *Store) LoadDeckOwner(ctx context.Context, d *models.Deck) error {
	owner, err := s.GetUser(ctx, d.OwnerID)
	if err != nil {
		return err
	}
	d.Owner = owner
	return nil
}

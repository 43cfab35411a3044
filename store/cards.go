package store

import (
	"context"

	"github.com/flashcard-tracker/flashcard-tracker/models"
)

// CreateCard persists c. The deck and owner must exist.
func (s *Store) CreateCard(ctx context.Context, c *models.Card) error {
	return translate(s.conn(ctx).Create(c).Error)
}

func (s *Store) GetCard(ctx context.Context, id uint) (*models.Card, error) {
	var c models.Card
	if err := s.conn(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Store) GetCardByPublicID(ctx context.Context, publicID string) (*models.Card, error) {
	var c models.Card
	if err := s.conn(ctx).Where("public_id = ?", publicID).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Store) UpdateCard(ctx context.Context, c *models.Card) error {
	return translate(s.conn(ctx).Save(c).Error)
}

// DeleteCard removes the card and the rows sharing it into classes.
func (s *Store) DeleteCard(ctx context.Context, id uint) error {
	return s.WithTx(ctx, func(tx *Store) error {
		if _, err := tx.GetCard(ctx, id); err != nil {
			return err
		}
		db := tx.conn(ctx)
		if err := db.Where("card_id = ?", id).Delete(&models.CardClass{}).Error; err != nil {
			return translate(err)
		}
		return translate(db.Delete(&models.Card{}, id).Error)
	})
}

// LoadCardDeck fills c.Deck, with its owner, from storage.
func (s *Store) LoadCardDeck(ctx context.Context, c *models.Card) error {
	deck, err := s.GetDeck(ctx, c.DeckID)
	if err != nil {
		return err
	}
	if err := s.LoadDeckOwner(ctx, deck); err != nil {
		return err
	}
	c.Deck = deck
	return nil
}

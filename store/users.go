package store

import (
	"context"

	"github.com/flashcard-tracker/flashcard-tracker/models"
)

// CreateUser persists u. A taken email fails with ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.conn(ctx).Create(u).Error)
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// UpdateUser writes every column of u back to storage.
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	return translate(s.conn(ctx).Save(u).Error)
}

// DeleteUser removes the user together with everything the user owns: decks
// and the cards filed in them, owned cards, owned classes, and every
// membership and share row touching those.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.WithTx(ctx, func(tx *Store) error {
		if _, err := tx.GetUser(ctx, id); err != nil {
			return err
		}
		db := tx.conn(ctx)

		decks := db.Model(&models.Deck{}).Select("id").Where("owner_id = ?", id)
		classes := db.Model(&models.Class{}).Select("id").Where("owner_id = ?", id)
		cards := db.Model(&models.Card{}).Select("id").Where("owner_id = ? OR deck_id IN (?)", id, decks)

		steps := []struct {
			model interface{}
			query string
			args  []interface{}
		}{
			{&models.CardClass{}, "card_id IN (?) OR class_id IN (?)", []interface{}{cards, classes}},
			{&models.UserClass{}, "user_id = ? OR class_id IN (?)", []interface{}{id, classes}},
			{&models.Card{}, "owner_id = ? OR deck_id IN (?)", []interface{}{id, decks}},
			{&models.Deck{}, "owner_id = ?", []interface{}{id}},
			{&models.Class{}, "owner_id = ?", []interface{}{id}},
			{&models.User{}, "id = ?", []interface{}{id}},
		}
		for _, step := range steps {
			if err := db.Where(step.query, step.args...).Delete(step.model).Error; err != nil {
				return translate(err)
			}
		}
		return nil
	})
}

// UserDecks lists the decks owned by userID.
func (s *Store) UserDecks(ctx context.Context, userID uint) ([]models.Deck, error) {
	decks := []models.Deck{}
	err := s.conn(ctx).Where("owner_id = ?", userID).Order("id").Find(&decks).Error
	return decks, translate(err)
}

// UserCards lists the cards owned by userID across all decks.
func (s *Store) UserCards(ctx context.Context, userID uint) ([]models.Card, error) {
	cards := []models.Card{}
	err := s.conn(ctx).Where("owner_id = ?", userID).Order("id").Find(&cards).Error
	return cards, translate(err)
}

// UserOwnedClasses lists the classes owned by userID. Classes the user has
// joined are returned by UserClasses.
func (s *Store) UserOwnedClasses(ctx context.Context, userID uint) ([]models.Class, error) {
	classes := []models.Class{}
	err := s.conn(ctx).Where("owner_id = ?", userID).Order("id").Find(&classes).Error
	return classes, translate(err)
}

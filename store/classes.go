package store

import (
	"context"

	"github.com/flashcard-tracker/flashcard-tracker/models"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateClass(ctx context.Context, c *models.Class) error {
	return translate(s.conn(ctx).Create(c).Error)
}

func (s *Store) GetClass(ctx context.Context, id uint) (*models.Class, error) {
	var c models.Class
	if err := s.conn(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Store) GetClassByPublicID(ctx context.Context, publicID string) (*models.Class, error) {
	var c models.Class
	if err := s.conn(ctx).Where("public_id = ?", publicID).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Store) UpdateClass(ctx context.Context, c *models.Class) error {
	return translate(s.conn(ctx).Save(c).Error)
}

// DeleteClass removes the class with its membership and share rows. Members
// and shared cards themselves are untouched.
func (s *Store) DeleteClass(ctx context.Context, id uint) error {
	return s.WithTx(ctx, func(tx *Store) error {
		if _, err := tx.GetClass(ctx, id); err != nil {
			return err
		}
		db := tx.conn(ctx)
		if err := db.Where("class_id = ?", id).Delete(&models.UserClass{}).Error; err != nil {
			return translate(err)
		}
		if err := db.Where("class_id = ?", id).Delete(&models.CardClass{}).Error; err != nil {
			return translate(err)
		}
		return translate(db.Delete(&models.Class{}, id).Error)
	})
}

// Membership

// AddMember records userID as a member of classID. Adding an existing member
// is a no-op.
func (s *Store) AddMember(ctx context.Context, classID, userID uint) error {
	link := models.UserClass{UserID: userID, ClassID: classID}
	return translate(s.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error)
}

func (s *Store) RemoveMember(ctx context.Context, classID, userID uint) error {
	err := s.conn(ctx).
		Where("user_id = ? AND class_id = ?", userID, classID).
		Delete(&models.UserClass{}).Error
	return translate(err)
}

func (s *Store) IsMember(ctx context.Context, classID, userID uint) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.UserClass{}).
		Where("user_id = ? AND class_id = ?", userID, classID).
		Count(&n).Error
	return n > 0, translate(err)
}

// ClassMembers lists the users who joined classID. The owner is only listed
// if they joined as well.
func (s *Store) ClassMembers(ctx context.Context, classID uint) ([]models.User, error) {
	db := s.conn(ctx)
	ids := db.Model(&models.UserClass{}).Select("user_id").Where("class_id = ?", classID)

	users := []models.User{}
	err := db.Where("id IN (?)", ids).Order("id").Find(&users).Error
	return users, translate(err)
}

// UserClasses lists the classes userID has joined.
func (s *Store) UserClasses(ctx context.Context, userID uint) ([]models.Class, error) {
	db := s.conn(ctx)
	ids := db.Model(&models.UserClass{}).Select("class_id").Where("user_id = ?", userID)

	classes := []models.Class{}
	err := db.Where("id IN (?)", ids).Order("id").Find(&classes).Error
	return classes, translate(err)
}

// Sharing

// ShareCard makes cardID visible in classID. Sharing twice is a no-op.
func (s *Store) ShareCard(ctx context.Context, classID, cardID uint) error {
	link := models.CardClass{CardID: cardID, ClassID: classID}
	return translate(s.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error)
}

func (s *Store) UnshareCard(ctx context.Context, classID, cardID uint) error {
	err := s.conn(ctx).
		Where("card_id = ? AND class_id = ?", cardID, classID).
		Delete(&models.CardClass{}).Error
	return translate(err)
}

func (s *Store) IsShared(ctx context.Context, classID, cardID uint) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.CardClass{}).
		Where("card_id = ? AND class_id = ?", cardID, classID).
		Count(&n).Error
	return n > 0, translate(err)
}

// ClassCards lists the cards shared into classID.
func (s *Store) ClassCards(ctx context.Context, classID uint) ([]models.Card, error) {
	db := s.conn(ctx)
	ids := db.Model(&models.CardClass{}).Select("card_id").Where("class_id = ?", classID)

	cards := []models.Card{}
	err := db.Where("id IN (?)", ids).Order("id").Find(&cards).Error
	return cards, translate(err)
}

// CardClasses lists the classes cardID is shared into.
func (s *Store) CardClasses(ctx context.Context, cardID uint) ([]models.Class, error) {
	db := s.conn(ctx)
	ids := db.Model(&models.CardClass{}).Select("class_id").Where("card_id = ?", cardID)

	classes := []models.Class{}
	err := db.Where("id IN (?)", ids).Order("id").Find(&classes).Error
	return classes, translate(err)
}

// LoadClassOwner fills c.Owner from storage.
func (s *Store) LoadClassOwner(ctx context.Context, c *models.Class) error {
	owner, err := s.GetUser(ctx, c.OwnerID)
	if err != nil {
		return err
	}
	c.Owner = owner
	return nil
}

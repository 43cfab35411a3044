package models

import (
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// MaxCardText bounds both sides of a card, in characters.
const MaxCardText = 1200

// Card is a front/back text pair. It belongs to one deck and one owner, which
// need not be the deck's owner.
type Card struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PublicID  string    `gorm:"size:21;uniqueIndex" json:"id"`
	Front     string    `gorm:"size:1200" json:"front" validate:"max=1200"`
	Back      string    `gorm:"size:1200" json:"back" validate:"max=1200"`
	DeckID    uint      `gorm:"index" json:"deck_id"`
	OwnerID   uint      `gorm:"index" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Shares []CardClass `gorm:"foreignKey:CardID" json:"-"`

	// Deck is not persisted; set it through Store.LoadCardDeck.
	Deck *Deck `gorm:"-" json:"-"`
}

func (Card) TableName() string {
	return "card"
}

func NewCard(front, back string, deckID, ownerID uint) *Card {
	return &Card{Front: front, Back: back, DeckID: deckID, OwnerID: ownerID}
}

// String embeds the deck when it is loaded and falls back to the deck ID.
func (c *Card) String() string {
	deck := strconv.FormatUint(uint64(c.DeckID), 10)
	if c.Deck != nil {
		deck = c.Deck.String()
	}
	return fmt.Sprintf("<ID: %d, Front: %s, Back: %s, Deck: %s>", c.ID, c.Front, c.Back, deck)
}

func (c *Card) BeforeSave(tx *gorm.DB) error {
	return validate.Struct(c)
}

func (c *Card) BeforeCreate(tx *gorm.DB) (err error) {
	c.PublicID, err = newPublicID(c.PublicID)
	return err
}

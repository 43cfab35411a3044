package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Deck is a named collection of cards owned by a single user.
type Deck struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PublicID  string    `gorm:"size:21;uniqueIndex" json:"id"`
	Name      string    `gorm:"size:30;uniqueIndex" json:"name" validate:"required,max=30"`
	OwnerID   uint      `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Cards []Card `gorm:"foreignKey:DeckID" json:"-"`

	// Owner is not persisted; set it through Store.LoadDeckOwner.
	Owner *User `gorm:"-" json:"-"`
}

func (Deck) TableName() string {
	return "deck"
}

func NewDeck(name string, ownerID uint) *Deck {
	return &Deck{Name: name, OwnerID: ownerID}
}

// String names the owner when it is loaded and falls back to the owner ID.
func (d *Deck) String() string {
	return fmt.Sprintf("<ID: %d, Name: %s, Owner: %s>", d.ID, d.Name, ownerName(d.Owner, d.OwnerID))
}

func (d *Deck) BeforeSave(tx *gorm.DB) error {
	return validate.Struct(d)
}

func (d *Deck) BeforeCreate(tx *gorm.DB) (err error) {
	d.PublicID, err = newPublicID(d.PublicID)
	return err
}

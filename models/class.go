package models

import (
	"fmt"
	"time"

	"github.com/flashcard-tracker/flashcard-tracker/password"
	"gorm.io/gorm"
)

// Class is a password protected group. Its password is independent of any
// user password and gates joining.
type Class struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	PublicID     string    `gorm:"size:21;uniqueIndex" json:"id"`
	Name         string    `gorm:"size:30;uniqueIndex" json:"name" validate:"required,max=30"`
	PasswordHash string    `gorm:"size:128" json:"-"`
	OwnerID      uint      `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Memberships []UserClass `gorm:"foreignKey:ClassID" json:"-"`
	Shares      []CardClass `gorm:"foreignKey:ClassID" json:"-"`

	// Owner is not persisted; set it through Store.LoadClassOwner.
	Owner *User `gorm:"-" json:"-"`
}

func (Class) TableName() string {
	return "class"
}

func NewClass(name, passwordHash string, ownerID uint) *Class {
	return &Class{Name: name, PasswordHash: passwordHash, OwnerID: ownerID}
}

func (c *Class) SetPassword(plain string) error {
	hash, err := password.Hash(plain)
	if err != nil {
		return err
	}
	c.PasswordHash = hash
	return nil
}

func (c *Class) VerifyPassword(plain string) bool {
	return password.Check(plain, c.PasswordHash)
}

func (c *Class) String() string {
	return fmt.Sprintf("<ID: %d, Name: %s, Owner: %s>", c.ID, c.Name, ownerName(c.Owner, c.OwnerID))
}

func (c *Class) BeforeSave(tx *gorm.DB) error {
	return validate.Struct(c)
}

func (c *Class) BeforeCreate(tx *gorm.DB) (err error) {
	c.PublicID, err = newPublicID(c.PublicID)
	return err
}

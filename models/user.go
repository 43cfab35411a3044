package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/flashcard-tracker/flashcard-tracker/password"
	"gorm.io/gorm"
)

// User represents an account. A user owns decks, cards and classes and can
// be a member of classes owned by others.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"size:30" json:"first_name" validate:"max=30"`
	LastName     string    `gorm:"size:30" json:"last_name" validate:"max=30"`
	Email        string    `gorm:"size:40;uniqueIndex" json:"email" validate:"required,email,max=40"`
	PasswordHash string    `gorm:"size:128" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Schema only; read through the store accessors.
	Decks       []Deck      `gorm:"foreignKey:OwnerID" json:"-"`
	Cards       []Card      `gorm:"foreignKey:OwnerID" json:"-"`
	Classes     []Class     `gorm:"foreignKey:OwnerID" json:"-"`
	Memberships []UserClass `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "user"
}

// NewUser builds a user from an already hashed password.
func NewUser(firstName, lastName, email, passwordHash string) *User {
	return &User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
	}
}

// SetPassword hashes plain and stores the hash. The plain value is never kept.
func (u *User) SetPassword(plain string) error {
	hash, err := password.Hash(plain)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// VerifyPassword reports whether plain matches the stored hash.
func (u *User) VerifyPassword(plain string) bool {
	return password.Check(plain, u.PasswordHash)
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func ownerName(owner *User, ownerID uint) string {
	if owner == nil {
		return strconv.FormatUint(uint64(ownerID), 10)
	}
	return owner.FullName()
}

func (u *User) String() string {
	return fmt.Sprintf("<ID: %d, %s, %s>", u.ID, u.LastName, u.FirstName)
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	return validate.Struct(u)
}

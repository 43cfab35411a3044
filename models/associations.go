package models

// UserClass links a member to a class. The pair is the primary key, so a
// user is recorded at most once per class.
type UserClass struct {
	UserID  uint `gorm:"primaryKey;autoIncrement:false"`
	ClassID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

func (UserClass) TableName() string {
	return "UserClasses"
}

// CardClass shares a card into a class.
type CardClass struct {
	CardID  uint `gorm:"primaryKey;autoIncrement:false"`
	ClassID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

func (CardClass) TableName() string {
	return "CardClasses"
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{&User{}, &Deck{}, &Card{}, &Class{}, &UserClass{}, &CardClass{}}
}

package model

import (
	"gorm.io/gorm"
)

// User is an account able to add and edit cafés. Email is the login key; it is
// indexed but deliberately not unique at the database level.
type User struct {
	gorm.Model
	Email    string `json:"email" gorm:"size:300;not null;index"`
	Password string `json:"-" gorm:"size:300;not null"`
}

func (User) TableName() string {
	return "user_account"
}

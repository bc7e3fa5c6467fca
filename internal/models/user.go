package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// User is an account that owns envelopes.
type User struct {
	Model
	Email        string     `json:"email" gorm:"uniqueIndex;not null" example:"jane@example.com"` // Email address, unique
	PasswordHash string     `json:"-" gorm:"not null"`                                            // bcrypt hash of the password
	Envelopes    []Envelope `json:"envelopes,omitempty" gorm:"constraint:OnDelete:CASCADE"`       // Envelopes owned by the user
}

// BeforeSave trims whitespace from the email address.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.TrimSpace(u.Email)
	return nil
}

// CreateUser persists a new user with an already hashed password.
//
// If a user with the email exists, ErrEmailInUse is returned.
func CreateUser(db *gorm.DB, email, passwordHash string) (User, error) {
	user := User{
		Email:        email,
		PasswordHash: passwordHash,
	}

	err := db.Create(&user).Error
	if err != nil {
		return User{}, err
	}

	return user, nil
}

// EmailInUse reports if a user with the email address exists.
func EmailInUse(db *gorm.DB, email string) (bool, error) {
	_, err := UserByEmail(db, email)
	if errors.Is(err, ErrResourceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// UserByEmail returns the user with the exact email address.
func UserByEmail(db *gorm.DB, email string) (User, error) {
	var user User
	err := db.Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if err != nil {
		return User{}, err
	}

	return user, nil
}

// CurrentUser returns the user with all envelopes and their expenses.
func CurrentUser(db *gorm.DB, id uint) (User, error) {
	var user User
	err := db.
		Preload("Envelopes", orderByID("envelopes")).
		Preload("Envelopes.Expenses", orderByID("expenses")).
		First(&user, id).Error
	if err != nil {
		return User{}, err
	}

	return user, nil
}

// orderByID returns a preload condition sorting by insertion order.
func orderByID(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".id ASC")
	}
}

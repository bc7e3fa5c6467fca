package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Envelope is a named budget owned by one user.
type Envelope struct {
	Model
	Name     string          `json:"name" example:"Groceries"`                              // Name of the envelope
	Budget   decimal.Decimal `json:"budget" gorm:"type:DECIMAL(20,8)" example:"200"`        // Budgeted amount
	UserID   uint            `json:"userId" gorm:"not null;index" example:"1"`              // ID of the owner, set at creation
	User     User            `json:"-"`                                                     // The owner
	Expenses []Expense       `json:"expenses,omitempty" gorm:"constraint:OnDelete:CASCADE"` // Expenses recorded against the envelope
}

// EnvelopeUpdate contains the fields to change on an envelope.
// Nil fields are left untouched.
type EnvelopeUpdate struct {
	Name   *string
	Budget *decimal.Decimal
}

func (u EnvelopeUpdate) values() map[string]any {
	values := make(map[string]any)
	if u.Name != nil {
		values["name"] = strings.TrimSpace(*u.Name)
	}
	if u.Budget != nil {
		values["budget"] = *u.Budget
	}

	return values
}

// BeforeSave trims whitespace from the name.
func (e *Envelope) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	return nil
}

// EnvelopesForUser returns all envelopes owned by the user including
// their expenses.
func EnvelopesForUser(db *gorm.DB, userID uint) ([]Envelope, error) {
	envelopes := []Envelope{}
	err := OwnedBy(userID).
		envelopes(db).
		Preload("Expenses", orderByID("expenses")).
		Order("envelopes.id ASC").
		Find(&envelopes).Error
	if err != nil {
		return nil, err
	}

	return envelopes, nil
}

// CreateEnvelope creates an envelope owned by the user.
func CreateEnvelope(db *gorm.DB, userID uint, name string, budget decimal.Decimal) (Envelope, error) {
	envelope := Envelope{
		Name:   name,
		Budget: budget,
		UserID: userID,
	}

	err := db.Create(&envelope).Error
	if err != nil {
		return Envelope{}, err
	}

	return envelope, nil
}

// FindEnvelope returns the envelope with the ID, restricted by the ownership.
func FindEnvelope(db *gorm.DB, owner Ownership, id uint) (Envelope, error) {
	var envelope Envelope
	err := owner.envelopes(db).First(&envelope, id).Error
	if err != nil {
		return Envelope{}, err
	}

	return envelope, nil
}

// UpdateEnvelope changes name and budget of an envelope and returns the
// updated envelope. The owner can never be changed.
func UpdateEnvelope(db *gorm.DB, owner Ownership, id uint, update EnvelopeUpdate) (Envelope, error) {
	envelope, err := FindEnvelope(db, owner, id)
	if err != nil {
		return Envelope{}, err
	}

	values := update.values()
	if len(values) == 0 {
		return envelope, nil
	}

	err = db.Model(&envelope).Updates(values).Error
	if err != nil {
		return Envelope{}, err
	}

	return FindEnvelope(db, owner, id)
}

// DeleteEnvelope deletes an envelope and all of its expenses.
func DeleteEnvelope(db *gorm.DB, owner Ownership, id uint) error {
	envelope, err := FindEnvelope(db, owner, id)
	if err != nil {
		return err
	}

	return db.Delete(&envelope).Error
}

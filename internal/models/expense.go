package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is money spent from an envelope.
type Expense struct {
	Model
	Description string          `json:"description" example:"Weekly shopping"`            // What the money was spent on
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"42.17"` // Amount spent
	Date        time.Time       `json:"date" example:"2024-04-02T19:28:44.491514Z"`       // Time of the expense, defaults to the creation time
	EnvelopeID  uint            `json:"envelopeId" gorm:"not null;index" example:"1"`     // ID of the envelope, set at creation
	Envelope    Envelope        `json:"-"`                                                // The envelope
}

// ExpenseUpdate contains the fields to change on an expense.
// Nil fields are left untouched.
type ExpenseUpdate struct {
	Description *string
	Amount      *decimal.Decimal
	Date        *time.Time
}

func (u ExpenseUpdate) values() map[string]any {
	values := make(map[string]any)
	if u.Description != nil {
		values["description"] = strings.TrimSpace(*u.Description)
	}
	if u.Amount != nil {
		values["amount"] = *u.Amount
	}
	if u.Date != nil {
		values["date"] = u.Date.In(time.UTC)
	}

	return values
}

// AfterFind enforces UTC for all timestamps.
func (e *Expense) AfterFind(tx *gorm.DB) (err error) {
	err = e.Model.AfterFind(tx)
	if err != nil {
		return err
	}

	e.Date = e.Date.In(time.UTC)
	return
}

// BeforeSave
//   - trims whitespace from the description
//   - sets the date to the current time if it is not set
//   - sets the timezone for the date to UTC
func (e *Expense) BeforeSave(tx *gorm.DB) error {
	e.Description = strings.TrimSpace(e.Description)

	if e.Date.IsZero() {
		e.Date = tx.Statement.DB.NowFunc()
	}
	e.Date = e.Date.In(time.UTC)

	return nil
}

// ExpensesForUser returns all expenses in envelopes owned by the user.
func ExpensesForUser(db *gorm.DB, userID uint) ([]Expense, error) {
	expenses := []Expense{}
	err := OwnedBy(userID).
		expenses(db).
		Order("expenses.id ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return expenses, nil
}

// CreateExpense records an expense against an envelope.
//
// If the ownership is enforced, the envelope must belong to the owner.
// Otherwise, the envelope ID is only checked by the database.
func CreateExpense(db *gorm.DB, owner Ownership, envelopeID uint, description string, amount decimal.Decimal, date time.Time) (Expense, error) {
	if owner.Enforced() {
		_, err := FindEnvelope(db, owner, envelopeID)
		if err != nil {
			return Expense{}, err
		}
	}

	expense := Expense{
		Description: description,
		Amount:      amount,
		Date:        date,
		EnvelopeID:  envelopeID,
	}

	err := db.Create(&expense).Error
	if err != nil {
		return Expense{}, err
	}

	return expense, nil
}

// FindExpense returns the expense with the ID, restricted by the ownership.
func FindExpense(db *gorm.DB, owner Ownership, id uint) (Expense, error) {
	var expense Expense
	err := owner.expenses(db).First(&expense, id).Error
	if err != nil {
		return Expense{}, err
	}

	return expense, nil
}

// UpdateExpense changes an expense and returns the updated expense.
// The envelope can never be changed.
func UpdateExpense(db *gorm.DB, owner Ownership, id uint, update ExpenseUpdate) (Expense, error) {
	expense, err := FindExpense(db, owner, id)
	if err != nil {
		return Expense{}, err
	}

	values := update.values()
	if len(values) == 0 {
		return expense, nil
	}

	err = db.Model(&expense).Updates(values).Error
	if err != nil {
		return Expense{}, err
	}

	return FindExpense(db, owner, id)
}

// DeleteExpense deletes an expense.
func DeleteExpense(db *gorm.DB, owner Ownership, id uint) error {
	expense, err := FindExpense(db, owner, id)
	if err != nil {
		return err
	}

	return db.Delete(&expense).Error
}

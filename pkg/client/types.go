package client

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          uint            `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	EnvelopeID  uint            `json:"envelopeId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type Envelope struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Budget    decimal.Decimal `json:"budget"`
	UserID    uint            `json:"userId"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Expenses  []Expense       `json:"expenses"`
}

// Spent returns the sum of all expenses in the envelope.
func (e Envelope) Spent() decimal.Decimal {
	sum := decimal.Zero
	for _, expense := range e.Expenses {
		sum = sum.Add(expense.Amount)
	}

	return sum
}

// Remaining returns the part of the budget not spent yet.
func (e Envelope) Remaining() decimal.Decimal {
	return e.Budget.Sub(e.Spent())
}

type User struct {
	ID        uint       `json:"id"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"createdAt"`
	Envelopes []Envelope `json:"envelopes"`
}

type UserCreated struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// RegisterForm is the input for the registration of a new user.
type RegisterForm struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=Password"`
}

// LoginForm is the input for the login.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// EnvelopeForm is the input for the creation of an envelope.
type EnvelopeForm struct {
	Name   string          `json:"name" validate:"required"`
	Budget decimal.Decimal `json:"budget"`
}

// EnvelopeUpdate contains the fields to change on an envelope.
// Nil fields are not changed.
type EnvelopeUpdate struct {
	Name   *string          `json:"name,omitempty"`
	Budget *decimal.Decimal `json:"budget,omitempty"`
}

// ExpenseForm is the input for the creation of an expense.
// A zero Date is set to the current time by the server.
type ExpenseForm struct {
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	EnvelopeID  uint            `json:"envelopeId" validate:"required"`
	Date        *time.Time      `json:"date,omitempty"`
}

// ExpenseUpdate contains the fields to change on an expense.
// Nil fields are not changed.
type ExpenseUpdate struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
}

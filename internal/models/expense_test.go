package models_test

import (
	"time"

	"github.com/envelope-budget/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCreateExpenseDefaultDate() {
	user := suite.createTestUser("jane@example.com")
	envelope := suite.createTestEnvelope(user.ID, "Groceries", 200)

	expense, err := models.CreateExpense(suite.db, models.Unscoped, envelope.ID, " Weekly shopping ", decimal.RequireFromString("42.17"), time.Time{})
	suite.Require().Nil(err)

	suite.Assert().Equal("Weekly shopping", expense.Description)
	suite.Assert().WithinDuration(time.Now(), expense.Date, time.Minute)
	suite.Assert().Equal(time.UTC, expense.Date.Location())

	found, err := models.FindExpense(suite.db, models.Unscoped, expense.ID)
	suite.Require().Nil(err)
	suite.Assert().True(decimal.RequireFromString("42.17").Equal(found.Amount), "Amount is %s", found.Amount)
	suite.Assert().Equal(envelope.ID, found.EnvelopeID)
}

func (suite *TestSuiteStandard) TestCreateExpenseDate() {
	user := suite.createTestUser("jane@example.com")
	envelope := suite.createTestEnvelope(user.ID, "Groceries", 200)

	date := time.Date(2024, 4, 2, 21, 28, 44, 0, time.FixedZone("CEST", 2*60*60))
	expense, err := models.CreateExpense(suite.db, models.Unscoped, envelope.ID, "Dinner", decimal.NewFromInt(30), date)
	suite.Require().Nil(err)

	found, err := models.FindExpense(suite.db, models.Unscoped, expense.ID)
	suite.Require().Nil(err)
	suite.Assert().True(date.Equal(found.Date))
	suite.Assert().Equal(time.UTC, found.Date.Location())
}

func (suite *TestSuiteStandard) TestCreateExpenseUnknownEnvelope() {
	user := suite.createTestUser("jane@example.com")

	_, err := models.CreateExpense(suite.db, models.Unscoped, 4711, "Dinner", decimal.NewFromInt(30), time.Time{})
	suite.Assert().ErrorIs(err, models.ErrEnvelopeReference)

	_, err = models.CreateExpense(suite.db, models.OwnedBy(user.ID), 4711, "Dinner", decimal.NewFromInt(30), time.Time{})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("Envelope not found", err.Error())
}

func (suite *TestSuiteStandard) TestCreateExpenseForeignEnvelope() {
	owner := suite.createTestUser("jane@example.com")
	other := suite.createTestUser("john@example.com")
	envelope := suite.createTestEnvelope(owner.ID, "Groceries", 200)

	_, err := models.CreateExpense(suite.db, models.OwnedBy(other.ID), envelope.ID, "Dinner", decimal.NewFromInt(30), time.Time{})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	// Without strict ownership, the envelope ID is trusted
	_, err = models.CreateExpense(suite.db, models.Unscoped, envelope.ID, "Dinner", decimal.NewFromInt(30), time.Time{})
	suite.Assert().Nil(err)
}

func (suite *TestSuiteStandard) TestExpensesForUser() {
	user := suite.createTestUser("jane@example.com")
	other := suite.createTestUser("john@example.com")

	groceries := suite.createTestEnvelope(user.ID, "Groceries", 200)
	rent := suite.createTestEnvelope(user.ID, "Rent", 900)
	travel := suite.createTestEnvelope(other.ID, "Travel", 500)

	first := suite.createTestExpense(groceries.ID, "Weekly shopping", "42.17")
	suite.createTestExpense(travel.ID, "Train", "89")
	second := suite.createTestExpense(rent.ID, "April", "900")

	expenses, err := models.ExpensesForUser(suite.db, user.ID)
	suite.Require().Nil(err)
	suite.Require().Len(expenses, 2)
	suite.Assert().Equal(first.ID, expenses[0].ID)
	suite.Assert().Equal(second.ID, expenses[1].ID)

	none, err := models.ExpensesForUser(suite.db, 4711)
	suite.Require().Nil(err)
	suite.Assert().NotNil(none)
	suite.Assert().Empty(none)
}

func (suite *TestSuiteStandard) TestUpdateExpense() {
	user := suite.createTestUser("jane@example.com")
	envelope := suite.createTestEnvelope(user.ID, "Groceries", 200)
	expense := suite.createTestExpense(envelope.ID, "Weekly shopping", "42.17")

	amount := decimal.RequireFromString("38.99")
	updated, err := models.UpdateExpense(suite.db, models.Unscoped, expense.ID, models.ExpenseUpdate{Amount: &amount})
	suite.Require().Nil(err)

	suite.Assert().Equal("Weekly shopping", updated.Description)
	suite.Assert().True(amount.Equal(updated.Amount))
	suite.Assert().Equal(envelope.ID, updated.EnvelopeID)

	description := "Farmers market"
	date := time.Date(2024, 4, 6, 9, 0, 0, 0, time.UTC)
	updated, err = models.UpdateExpense(suite.db, models.Unscoped, expense.ID, models.ExpenseUpdate{Description: &description, Date: &date})
	suite.Require().Nil(err)

	suite.Assert().Equal("Farmers market", updated.Description)
	suite.Assert().True(date.Equal(updated.Date))
}

func (suite *TestSuiteStandard) TestUpdateExpenseNotFound() {
	description := "Farmers market"
	_, err := models.UpdateExpense(suite.db, models.Unscoped, 4711, models.ExpenseUpdate{Description: &description})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("Expense not found", err.Error())
}

func (suite *TestSuiteStandard) TestExpenseOwnership() {
	owner := suite.createTestUser("jane@example.com")
	other := suite.createTestUser("john@example.com")
	envelope := suite.createTestEnvelope(owner.ID, "Groceries", 200)
	expense := suite.createTestExpense(envelope.ID, "Weekly shopping", "42.17")

	description := "Hijacked"
	_, err := models.UpdateExpense(suite.db, models.OwnedBy(other.ID), expense.ID, models.ExpenseUpdate{Description: &description})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	err = models.DeleteExpense(suite.db, models.OwnedBy(other.ID), expense.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = models.FindExpense(suite.db, models.OwnedBy(owner.ID), expense.ID)
	suite.Assert().Nil(err)

	err = models.DeleteExpense(suite.db, models.OwnedBy(owner.ID), expense.ID)
	suite.Assert().Nil(err)
}

func (suite *TestSuiteStandard) TestDeleteExpense() {
	user := suite.createTestUser("jane@example.com")
	envelope := suite.createTestEnvelope(user.ID, "Groceries", 200)
	expense := suite.createTestExpense(envelope.ID, "Weekly shopping", "42.17")

	err := models.DeleteExpense(suite.db, models.Unscoped, expense.ID)
	suite.Require().Nil(err)

	err = models.DeleteExpense(suite.db, models.Unscoped, expense.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	// The envelope is not affected
	_, err = models.FindEnvelope(suite.db, models.Unscoped, envelope.ID)
	suite.Assert().Nil(err)
}

func (suite *TestSuiteStandard) TestExpenseDatabaseClosed() {
	suite.CloseDB()

	_, err := models.ExpensesForUser(suite.db, 1)
	suite.Assert().ErrorIs(err, models.ErrGeneral)

	description := "Farmers market"
	_, err = models.UpdateExpense(suite.db, models.Unscoped, 1, models.ExpenseUpdate{Description: &description})
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

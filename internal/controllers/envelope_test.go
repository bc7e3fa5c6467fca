package controllers_test

import (
	"net/http"

	"github.com/envelope-budget/backend/internal/controllers"
	"github.com/envelope-budget/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestEnvelopesRoundTrip() {
	userID, token := suite.createTestUser("jane@example.com")

	created := suite.createTestEnvelope(token, "Test Envelope", 200)
	suite.Assert().NotZero(created.ID)
	suite.Assert().Equal(userID, created.UserID)

	r := suite.request(http.MethodGet, "/envelopes", "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// Amounts are serialized as JSON numbers
	suite.Assert().Contains(r.Body.String(), `"budget":200`)

	var envelopes []controllers.Envelope
	test.DecodeResponse(suite.T(), &r, &envelopes)
	suite.Require().Len(envelopes, 1)
	suite.Assert().Equal(created.ID, envelopes[0].ID)
	suite.Assert().Equal("Test Envelope", envelopes[0].Name)
	suite.Assert().True(decimal.NewFromInt(200).Equal(envelopes[0].Budget), "Budget is %s", envelopes[0].Budget)
	suite.Assert().Equal(userID, envelopes[0].UserID)
	suite.Assert().NotNil(envelopes[0].Expenses)
	suite.Assert().Len(envelopes[0].Expenses, 0)
}

func (suite *TestSuiteStandard) TestGetEnvelopesEmpty() {
	_, token := suite.createTestUser("jane@example.com")

	r := suite.request(http.MethodGet, "/envelopes", "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().JSONEq(`[]`, r.Body.String())
}

func (suite *TestSuiteStandard) TestGetEnvelopesOnlyOwn() {
	_, jane := suite.createTestUser("jane@example.com")
	_, john := suite.createTestUser("john@example.com")

	suite.createTestEnvelope(jane, "Groceries", 200)
	suite.createTestEnvelope(jane, "Rent", 900)
	suite.createTestEnvelope(john, "Holidays", 50)

	r := suite.request(http.MethodGet, "/envelopes", "", test.Bearer(jane))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var envelopes []controllers.Envelope
	test.DecodeResponse(suite.T(), &r, &envelopes)
	suite.Require().Len(envelopes, 2)
	suite.Assert().Equal("Groceries", envelopes[0].Name)
	suite.Assert().Equal("Rent", envelopes[1].Name)

	r = suite.request(http.MethodGet, "/envelopes", "", test.Bearer(john))
	test.DecodeResponse(suite.T(), &r, &envelopes)
	suite.Require().Len(envelopes, 1)
	suite.Assert().Equal("Holidays", envelopes[0].Name)
}

func (suite *TestSuiteStandard) TestGetEnvelopesWithExpenses() {
	_, token := suite.createTestUser("jane@example.com")

	envelope := suite.createTestEnvelope(token, "Groceries", 200)
	suite.createTestExpense(token, envelope.ID, "Weekly shopping", 42.17)
	suite.createTestExpense(token, envelope.ID, "Bakery", 3.5)

	r := suite.request(http.MethodGet, "/envelopes", "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var envelopes []controllers.Envelope
	test.DecodeResponse(suite.T(), &r, &envelopes)
	suite.Require().Len(envelopes, 1)
	suite.Require().Len(envelopes[0].Expenses, 2)
	suite.Assert().Equal("Weekly shopping", envelopes[0].Expenses[0].Description)
	suite.Assert().Equal("Bakery", envelopes[0].Expenses[1].Description)
	suite.Assert().True(decimal.RequireFromString("42.17").Equal(envelopes[0].Expenses[0].Amount))
}

func (suite *TestSuiteStandard) TestCreateEnvelopeDecimalBudget() {
	_, token := suite.createTestUser("jane@example.com")

	r := suite.request(http.MethodPost, "/envelopes", `{"name": "Coffee", "budget": 12.345}`, test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var envelope controllers.Envelope
	test.DecodeResponse(suite.T(), &r, &envelope)
	suite.Assert().True(decimal.RequireFromString("12.345").Equal(envelope.Budget), "Budget is %s", envelope.Budget)
}

func (suite *TestSuiteStandard) TestCreateEnvelopeFails() {
	_, token := suite.createTestUser("jane@example.com")

	tests := []struct {
		name string
		body any
	}{
		{"Empty body", ""},
		{"Broken JSON", `{"name": "Groceries"`},
		{"No name", map[string]any{"budget": 200}},
		{"No budget", map[string]any{"name": "Groceries"}},
		{"Budget is text", map[string]any{"name": "Groceries", "budget": "lots"}},
		{"Name is number", map[string]any{"name": 17, "budget": 200}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "/envelopes", tt.body, test.Bearer(token))
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
			suite.Assert().NotEmpty(test.DecodeError(suite.T(), r.Body.Bytes()))
		})
	}

	r := suite.request(http.MethodGet, "/envelopes", "", test.Bearer(token))
	suite.Assert().JSONEq(`[]`, r.Body.String(), "No envelope must be created")
}

func (suite *TestSuiteStandard) TestUpdateEnvelope() {
	userID, token := suite.createTestUser("jane@example.com")
	envelope := suite.createTestEnvelope(token, "Groceries", 200)

	r := suite.request(http.MethodPut, envelopePath(envelope.ID), map[string]any{
		"name":   "Food",
		"budget": 250.5,
	}, test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated controllers.Envelope
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal(envelope.ID, updated.ID)
	suite.Assert().Equal("Food", updated.Name)
	suite.Assert().True(decimal.RequireFromString("250.5").Equal(updated.Budget))
	suite.Assert().Equal(userID, updated.UserID)

	r = suite.request(http.MethodGet, "/envelopes", "", test.Bearer(token))
	var envelopes []controllers.Envelope
	test.DecodeResponse(suite.T(), &r, &envelopes)
	suite.Require().Len(envelopes, 1)
	suite.Assert().Equal("Food", envelopes[0].Name)
	suite.Assert().True(decimal.RequireFromString("250.5").Equal(envelopes[0].Budget))
}

func (suite *TestSuiteStandard) TestUpdateEnvelopePartial() {
	_, token := suite.createTestUser("jane@example.com")
	envelope := suite.createTestEnvelope(token, "Groceries", 200)

	r := suite.request(http.MethodPut, envelopePath(envelope.ID), map[string]any{"budget": 300}, test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated controllers.Envelope
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal("Groceries", updated.Name)
	suite.Assert().True(decimal.NewFromInt(300).Equal(updated.Budget))
}

func (suite *TestSuiteStandard) TestUpdateEnvelopeIgnoresOwner() {
	janeID, jane := suite.createTestUser("jane@example.com")
	johnID, _ := suite.createTestUser("john@example.com")
	envelope := suite.createTestEnvelope(jane, "Groceries", 200)

	r := suite.request(http.MethodPut, envelopePath(envelope.ID), map[string]any{"userId": johnID}, test.Bearer(jane))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated controllers.Envelope
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal(janeID, updated.UserID)
}

func (suite *TestSuiteStandard) TestUpdateEnvelopeFails() {
	_, token := suite.createTestUser("jane@example.com")
	envelope := suite.createTestEnvelope(token, "Groceries", 200)

	tests := []struct {
		name   string
		path   string
		body   any
		status int
		error  string
	}{
		{"Not found", envelopePath(4711), map[string]any{"name": "Food"}, http.StatusNotFound, "Envelope not found"},
		{"Invalid ID", "/envelopes/groceries", map[string]any{"name": "Food"}, http.StatusBadRequest, "the specified resource ID is not a valid ID"},
		{"Zero ID", "/envelopes/0", map[string]any{"name": "Food"}, http.StatusBadRequest, "the specified resource ID is not a valid ID"},
		{"Broken JSON", envelopePath(envelope.ID), `{"name": "Food"`, http.StatusBadRequest, ""},
		{"Budget is text", envelopePath(envelope.ID), map[string]any{"budget": "lots"}, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPut, tt.path, tt.body, test.Bearer(token))
			test.AssertHTTPStatus(suite.T(), &r, tt.status)

			if tt.error != "" {
				suite.Assert().Equal(tt.error, test.DecodeError(suite.T(), r.Body.Bytes()))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestDeleteEnvelope() {
	_, token := suite.createTestUser("jane@example.com")
	envelope := suite.createTestEnvelope(token, "Groceries", 200)
	expense := suite.createTestExpense(token, envelope.ID, "Weekly shopping", 42.17)

	r := suite.request(http.MethodDelete, envelopePath(envelope.ID), "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Empty(r.Body.String())

	r = suite.request(http.MethodGet, "/envelopes", "", test.Bearer(token))
	suite.Assert().JSONEq(`[]`, r.Body.String())

	// Expenses are deleted with their envelope
	r = suite.request(http.MethodDelete, expensePath(expense.ID), "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// Deleting twice fails
	r = suite.request(http.MethodDelete, envelopePath(envelope.ID), "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	suite.Assert().Equal("Envelope not found", test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestDeleteEnvelopeInvalidID() {
	_, token := suite.createTestUser("jane@example.com")

	r := suite.request(http.MethodDelete, "/envelopes/-1", "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// Without strict ownership, any authenticated user can change any envelope.
func (suite *TestSuiteStandard) TestEnvelopeForeignUnscoped() {
	janeID, jane := suite.createTestUser("jane@example.com")
	_, john := suite.createTestUser("john@example.com")
	envelope := suite.createTestEnvelope(jane, "Groceries", 200)

	r := suite.request(http.MethodPut, envelopePath(envelope.ID), map[string]any{"name": "Mine now"}, test.Bearer(john))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated controllers.Envelope
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal("Mine now", updated.Name)
	suite.Assert().Equal(janeID, updated.UserID, "The owner must not change")

	r = suite.request(http.MethodDelete, envelopePath(envelope.ID), "", test.Bearer(john))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestEnvelopeForeignStrict() {
	suite.CloseDB()
	suite.setup(true)

	_, jane := suite.createTestUser("jane@example.com")
	_, john := suite.createTestUser("john@example.com")
	envelope := suite.createTestEnvelope(jane, "Groceries", 200)

	r := suite.request(http.MethodPut, envelopePath(envelope.ID), map[string]any{"name": "Mine now"}, test.Bearer(john))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	suite.Assert().Equal("Envelope not found", test.DecodeError(suite.T(), r.Body.Bytes()))

	r = suite.request(http.MethodDelete, envelopePath(envelope.ID), "", test.Bearer(john))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The owner can still do both
	r = suite.request(http.MethodPut, envelopePath(envelope.ID), map[string]any{"name": "Food"}, test.Bearer(jane))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodDelete, envelopePath(envelope.ID), "", test.Bearer(jane))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestEnvelopesDatabaseError() {
	_, token := suite.createTestUser("jane@example.com")
	envelope := suite.createTestEnvelope(token, "Groceries", 200)
	suite.CloseDB()

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/envelopes", ""},
		{http.MethodPost, "/envelopes", map[string]any{"name": "Rent", "budget": 900}},
		{http.MethodPut, envelopePath(envelope.ID), map[string]any{"name": "Food"}},
		{http.MethodDelete, envelopePath(envelope.ID), ""},
	}

	for _, tt := range tests {
		suite.Run(tt.method, func() {
			r := suite.request(tt.method, tt.path, tt.body, test.Bearer(token))
			test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
			suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), "An error occurred on the server during your request")
		})
	}
}

func (suite *TestSuiteStandard) TestOptionsEnvelopes() {
	tests := []struct {
		path  string
		allow string
	}{
		{"/envelopes", "OPTIONS, GET, POST"},
		{envelopePath(1), "OPTIONS, PUT, DELETE"},
	}

	for _, tt := range tests {
		suite.Run(tt.path, func() {
			r := suite.request(http.MethodOptions, tt.path, "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
			suite.Assert().Equal(tt.allow, r.Header().Get("allow"))
		})
	}
}

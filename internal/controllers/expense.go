package controllers

import (
	"net/http"
	"time"

	"github.com/envelope-budget/backend/internal/auth"
	"github.com/envelope-budget/backend/internal/httputil"
	"github.com/envelope-budget/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed. All routes except OPTIONS require
// a session.
func (co Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	session := auth.RequireSession(co.Verifier)

	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", session, co.GetExpenses)
		r.POST("", session, co.CreateExpense)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", httputil.OptionsPutDelete)
		r.PUT("/:id", session, co.UpdateExpense)
		r.DELETE("/:id", session, co.DeleteExpense)
	}
}

// GetExpenses returns the expenses of the user
//
//	@Summary		Get expenses
//	@Description	Returns all expenses in envelopes of the authenticated user
//	@Tags			Expenses
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		Expense
//	@Failure		401	{object}	httperrors.HTTPError
//	@Failure		500	{object}	httperrors.HTTPError
//	@Router			/expenses [get]
func (co Controller) GetExpenses(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	expenses, err := models.ExpensesForUser(co.DB, s.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newExpenses(expenses))
}

// CreateExpense creates an expense
//
//	@Summary		Create expense
//	@Description	Records an expense against an envelope. The date defaults to the current time.
//	@Tags			Expenses
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201		{object}	Expense
//	@Failure		400		{object}	httperrors.HTTPError
//	@Failure		401		{object}	httperrors.HTTPError
//	@Failure		404		{object}	httperrors.HTTPError
//	@Failure		500		{object}	httperrors.HTTPError
//	@Param			expense	body		ExpenseCreate	true	"Expense"
//	@Router			/expenses [post]
func (co Controller) CreateExpense(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var req ExpenseCreate
	if err := httputil.BindData(c, &req); err != nil {
		handleError(c, err)
		return
	}

	var date time.Time
	if req.Date != nil {
		date = *req.Date
	}

	expense, err := models.CreateExpense(co.DB, co.ownership(s), *req.EnvelopeID, *req.Description, *req.Amount, date)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newExpense(expense))
}

// UpdateExpense updates an expense
//
//	@Summary		Update expense
//	@Description	Updates description, amount and date of an expense. Fields that are not set are not changed.
//	@Tags			Expenses
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200		{object}	Expense
//	@Failure		400		{object}	httperrors.HTTPError
//	@Failure		401		{object}	httperrors.HTTPError
//	@Failure		404		{object}	httperrors.HTTPError
//	@Failure		500		{object}	httperrors.HTTPError
//	@Param			id		path		uint			true	"ID of the expense"
//	@Param			expense	body		ExpenseUpdate	true	"Expense"
//	@Router			/expenses/{id} [put]
func (co Controller) UpdateExpense(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	id, err := httputil.IDFromString(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	var req ExpenseUpdate
	if err := httputil.BindData(c, &req); err != nil {
		handleError(c, err)
		return
	}

	expense, err := models.UpdateExpense(co.DB, co.ownership(s), id, req.model())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newExpense(expense))
}

// DeleteExpense deletes an expense
//
//	@Summary		Delete expense
//	@Description	Deletes an expense
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httperrors.HTTPError
//	@Failure		401	{object}	httperrors.HTTPError
//	@Failure		404	{object}	httperrors.HTTPError
//	@Failure		500	{object}	httperrors.HTTPError
//	@Param			id	path		uint	true	"ID of the expense"
//	@Router			/expenses/{id} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	id, err := httputil.IDFromString(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	err = models.DeleteExpense(co.DB, co.ownership(s), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

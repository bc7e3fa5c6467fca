package controllers

import (
	"net/http"

	"github.com/envelope-budget/backend/internal/auth"
	"github.com/envelope-budget/backend/internal/httputil"
	"github.com/envelope-budget/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterEnvelopeRoutes registers the routes for envelopes with
// the RouterGroup that is passed. All routes except OPTIONS require
// a session.
func (co Controller) RegisterEnvelopeRoutes(r *gin.RouterGroup) {
	session := auth.RequireSession(co.Verifier)

	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", session, co.GetEnvelopes)
		r.POST("", session, co.CreateEnvelope)
	}

	// Envelope with ID
	{
		r.OPTIONS("/:id", httputil.OptionsPutDelete)
		r.PUT("/:id", session, co.UpdateEnvelope)
		r.DELETE("/:id", session, co.DeleteEnvelope)
	}
}

// GetEnvelopes returns the envelopes of the user
//
//	@Summary		Get envelopes
//	@Description	Returns all envelopes of the authenticated user with their expenses
//	@Tags			Envelopes
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		Envelope
//	@Failure		401	{object}	httperrors.HTTPError
//	@Failure		500	{object}	httperrors.HTTPError
//	@Router			/envelopes [get]
func (co Controller) GetEnvelopes(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	envelopes, err := models.EnvelopesForUser(co.DB, s.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newEnvelopes(envelopes))
}

// CreateEnvelope creates an envelope
//
//	@Summary		Create envelope
//	@Description	Creates an envelope owned by the authenticated user
//	@Tags			Envelopes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201			{object}	Envelope
//	@Failure		400			{object}	httperrors.HTTPError
//	@Failure		401			{object}	httperrors.HTTPError
//	@Failure		500			{object}	httperrors.HTTPError
//	@Param			envelope	body		EnvelopeCreate	true	"Envelope"
//	@Router			/envelopes [post]
func (co Controller) CreateEnvelope(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var req EnvelopeCreate
	if err := httputil.BindData(c, &req); err != nil {
		handleError(c, err)
		return
	}

	envelope, err := models.CreateEnvelope(co.DB, s.UserID, *req.Name, *req.Budget)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newEnvelope(envelope))
}

// UpdateEnvelope updates an envelope
//
//	@Summary		Update envelope
//	@Description	Updates name and budget of an envelope. Fields that are not set are not changed.
//	@Tags			Envelopes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200			{object}	Envelope
//	@Failure		400			{object}	httperrors.HTTPError
//	@Failure		401			{object}	httperrors.HTTPError
//	@Failure		404			{object}	httperrors.HTTPError
//	@Failure		500			{object}	httperrors.HTTPError
//	@Param			id			path		uint			true	"ID of the envelope"
//	@Param			envelope	body		EnvelopeUpdate	true	"Envelope"
//	@Router			/envelopes/{id} [put]
func (co Controller) UpdateEnvelope(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	id, err := httputil.IDFromString(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	var req EnvelopeUpdate
	if err := httputil.BindData(c, &req); err != nil {
		handleError(c, err)
		return
	}

	envelope, err := models.UpdateEnvelope(co.DB, co.ownership(s), id, req.model())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newEnvelope(envelope))
}

// DeleteEnvelope deletes an envelope
//
//	@Summary		Delete envelope
//	@Description	Deletes an envelope and all of its expenses
//	@Tags			Envelopes
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httperrors.HTTPError
//	@Failure		401	{object}	httperrors.HTTPError
//	@Failure		404	{object}	httperrors.HTTPError
//	@Failure		500	{object}	httperrors.HTTPError
//	@Param			id	path		uint	true	"ID of the envelope"
//	@Router			/envelopes/{id} [delete]
func (co Controller) DeleteEnvelope(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	id, err := httputil.IDFromString(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	err = models.DeleteEnvelope(co.DB, co.ownership(s), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

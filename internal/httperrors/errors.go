package httperrors

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/envelope-budget/backend/internal/httputil"
	"github.com/envelope-budget/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Error string `json:"error" example:"Envelope not found"`
}

// New aborts the request and responds with the status and an error
// message formatted from msgAndArgs.
func New(c *gin.Context, status int, msgAndArgs ...any) {
	// Format msgAndArgs in a final string.
	// This is taken almost exactly from https://github.com/stretchr/testify/blob/181cea6eab8b2de7071383eca4be32a424db38dd/assert/assertions.go#L181
	msg := ""
	if len(msgAndArgs) == 1 {
		if msgAsStr, ok := msgAndArgs[0].(string); ok {
			msg = msgAsStr
		}
		msg = fmt.Sprintf("%+v", msg)
	}

	if len(msgAndArgs) > 1 {
		msg = fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...)
	}

	c.AbortWithStatusJSON(status, HTTPError{
		Error: msg,
	})
}

// Status returns the HTTP status code for errors of the storage and
// request layers. Unknown errors are server errors.
func Status(err error) int {
	var validationError httputil.ValidationError

	switch {
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound

	case errors.Is(err, models.ErrEmailInUse):
		return http.StatusConflict

	case errors.Is(err, models.ErrEnvelopeReference),
		errors.Is(err, httputil.ErrInvalidBody),
		errors.Is(err, httputil.ErrRequestBodyEmpty),
		errors.Is(err, httputil.ErrInvalidID),
		errors.Is(err, io.EOF),
		errors.As(err, &validationError):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// Respond sends the error to the client.
//
// Server errors are logged with the request ID and replaced with a
// generic message so that no internals leak to clients.
func Respond(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		New(c, status, "An error occurred on the server during your request, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", requestid.Get(c))
		return
	}

	New(c, status, err.Error())
}

// Handler responds with the status code matching the error.
func Handler(c *gin.Context, err error) {
	Respond(c, Status(err), err)
}

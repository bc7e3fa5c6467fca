package auth

import (
	"net/http"
	"strings"

	"github.com/envelope-budget/backend/internal/httperrors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const sessionKey = "session"

// Session is the authenticated identity of a request.
type Session struct {
	UserID uint
}

// SessionFrom returns the session attached to the request by RequireSession.
func SessionFrom(c *gin.Context) (Session, bool) {
	value, ok := c.Get(sessionKey)
	if !ok {
		return Session{}, false
	}

	session, ok := value.(Session)
	return session, ok
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireSession rejects requests without a valid bearer token.
// For valid tokens, the Session is attached to the request.
func RequireSession(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			httperrors.New(c, http.StatusUnauthorized, ErrUnauthorized.Error())
			return
		}

		userID, err := v.Verify(token)
		if err != nil {
			log.Debug().Str("request-id", requestid.Get(c)).Err(err).Msg("Session")
			httperrors.New(c, http.StatusUnauthorized, ErrInvalidToken.Error())
			return
		}

		c.Set(sessionKey, Session{UserID: userID})
		c.Next()
	}
}

package controllers

import (
	"net/http"

	"github.com/envelope-budget/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

func (co Controller) RegisterHealthzRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", co.GetHealthz)
}

// GetHealthz reports if the database is reachable
//
//	@Summary		Get health
//	@Description	Returns the application health and, if not healthy, an error
//	@Tags			General
//	@Produce		json
//	@Success		204
//	@Failure		500	{object}	httperrors.HTTPError
//	@Router			/healthz [get]
func (co Controller) GetHealthz(c *gin.Context) {
	sqlDB, err := co.DB.DB()
	if err != nil {
		handleError(c, err)
		return
	}

	err = sqlDB.PingContext(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

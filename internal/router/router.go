package router

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	docs "github.com/envelope-budget/backend/api"
	"github.com/envelope-budget/backend/internal/config"
	"github.com/envelope-budget/backend/internal/controllers"
	"github.com/envelope-budget/backend/internal/httperrors"
	"github.com/envelope-budget/backend/internal/httputil"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time with -ldflags "-X github.com/envelope-budget/backend/internal/router.version=..."
var version = "0.0.0"

// Config creates the gin engine with all middlewares.
//
// The returned teardown function must be called when the engine is not
// used anymore, it unregisters the Prometheus metrics.
func Config(cfg config.Config) (*gin.Engine, func(), error) {
	metrics := newRequestMetrics(prometheus.DefaultRegisterer)
	teardown := func() {
		if !metrics.unregister() {
			log.Debug().Msg("Prometheus metrics were not registered")
		}
	}

	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(cfg.APIURL))
	r.Use(metrics.middleware())
	r.NoMethod(func(c *gin.Context) {
		httperrors.New(c, http.StatusMethodNotAllowed, "This HTTP method is not allowed for the endpoint you called")
	})
	r.NoRoute(func(c *gin.Context) {
		httperrors.New(c, http.StatusNotFound, "There is no endpoint for the path you called")
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if len(cfg.AllowOrigins) > 0 {
		log.Debug().Strs("CORS Allowed Origins", cfg.AllowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Report validation errors with the JSON field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonTagName)
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", cfg.APIURL.String()).Str("Host", cfg.APIURL.Host).Str("Path", cfg.APIURL.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	if cfg.DefaultSecretUsed() {
		log.Warn().Msg("JWT_SECRET is not set, tokens are signed with the default secret. Do not use this in production!")
	}

	docs.SwaggerInfo.Host = cfg.APIURL.Host
	docs.SwaggerInfo.BasePath = cfg.APIURL.Path
	docs.SwaggerInfo.Title = "Envelope Budget"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for Envelope Budget, a personal envelope budgeting application."

	if err := metrics.register(); err != nil {
		return nil, teardown, err
	}

	return r, teardown, nil
}

// jsonTagName returns the JSON name of a struct field.
func jsonTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}

	return name
}

// AttachRoutes attaches the API routes to the router group that is passed in.
// Separating this from Config() allows us to attach it to different
// paths for different use cases.
func AttachRoutes(cfg config.Config, co controllers.Controller, group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	if cfg.EnablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	co.RegisterHealthzRoutes(group.Group("/healthz"))
	co.RegisterAuthRoutes(group.Group("/auth"))

	co.RegisterUserRoutes(group.Group("/user"))
	co.RegisterEnvelopeRoutes(group.Group("/envelopes"))
	co.RegisterExpenseRoutes(group.Group("/expenses"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs      string `json:"docs" example:"https://example.com/api/docs/index.html"`   // Swagger API documentation
	Healthz   string `json:"healthz" example:"https://example.com/api/healthz"`        // Endpoint returning if the backend is healthy
	Version   string `json:"version" example:"https://example.com/api/version"`        // Endpoint returning the version of the backend
	Metrics   string `json:"metrics" example:"https://example.com/api/metrics"`        // Prometheus metrics
	Register  string `json:"register" example:"https://example.com/api/auth/register"` // Registration of new users
	Login     string `json:"login" example:"https://example.com/api/auth/login"`       // Login for existing users
	User      string `json:"user" example:"https://example.com/api/user/me"`           // The authenticated user
	Envelopes string `json:"envelopes" example:"https://example.com/api/envelopes"`    // List endpoint for envelopes
	Expenses  string `json:"expenses" example:"https://example.com/api/expenses"`      // List endpoint for expenses
}

// GetRoot returns the link list for the API root
//
//	@Summary		API root
//	@Description	Entrypoint for the API, listing all endpoints
//	@Tags			General
//	@Success		200	{object}	RootResponse
//	@Router			/ [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(ContextURL)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:      url + "/docs/index.html",
			Healthz:   url + "/healthz",
			Version:   url + "/version",
			Metrics:   url + "/metrics",
			Register:  url + "/auth/register",
			Login:     url + "/auth/login",
			User:      url + "/user/me",
			Envelopes: url + "/envelopes",
			Expenses:  url + "/expenses",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object
//
//	@Summary		API version
//	@Description	Returns the software version of the API
//	@Tags			General
//	@Success		200	{object}	VersionResponse
//	@Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsVersion returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

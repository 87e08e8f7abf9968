package api

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog/log"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/metrics"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

const requestIDHeader = "X-Request-ID"

// RequestID reuses the caller's request id or generates one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Language resolves the response language from Accept-Language
func Language(tr i18n.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(languageKey, tr.Match(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// Logger logs every request once it has been served
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		statusCode := c.Writer.Status()
		event := log.Info()
		msg := "Request processed"
		if statusCode >= 500 {
			event, msg = log.Error(), "Server error"
		} else if statusCode >= 400 {
			event, msg = log.Warn(), "Client error"
		}

		event.
			Int("status", statusCode).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("request_id", c.GetString(requestIDKey)).
			Msg(msg)
	}
}

// Recover turns a panic into the internal error envelope
func Recover(tr i18n.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("request_id", c.GetString(requestIDKey)).
					Msg("Panic recovered")
				WriteError(c, tr, ErrInternalServer)
			}
		}()
		c.Next()
	}
}

// CORS adds CORS headers for the allowed origins
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 1 && allowedOrigins[0] == "*"
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := ""
		if allowAll {
			allowedOrigin = "*"
		} else {
			for _, allowed := range allowedOrigins {
				if allowed == origin {
					allowedOrigin = origin
					break
				}
			}
		}

		if allowedOrigin != "" {
			c.Header("Access-Control-Allow-Origin", allowedOrigin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept-Language, X-Request-ID")
			c.Header("Access-Control-Max-Age", "86400")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// Metrics records latency and error rate per route
func Metrics(collector *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		name := "http " + c.Request.Method + " " + route
		collector.RecordTimer(name, time.Since(start).Milliseconds())
		if c.Writer.Status() >= 500 {
			collector.RecordError(name)
		} else {
			collector.RecordSuccess(name)
		}
	}
}

// Tracing starts a New Relic transaction per request
func Tracing(app *newrelic.Application) gin.HandlerFunc {
	return nrgin.Middleware(app)
}

// Auth resolves the bearer token into the request actor
func Auth(authService *services.AuthService, tr i18n.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimSpace(header[len("Bearer "):])
		}

		actor, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			WriteError(c, tr, err)
			return
		}
		c.Set(actorKey, actor)
		if txn := nrgin.Transaction(c); txn != nil {
			txn.AddAttribute("user_id", actor.UserID)
		}
		c.Next()
	}
}

// RequireRole rejects callers without one of roles
func RequireRole(tr i18n.Translator, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFrom(c)
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		WriteError(c, tr, ErrForbidden)
	}
}

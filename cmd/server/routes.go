package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"mercury-mail.backend/internal/domain/entities"
	"mercury-mail.backend/internal/interfaces/http/handlers"
	"mercury-mail.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	healthHandler  *handlers.HealthHandler
	userHandler    *handlers.UserHandler
	apiKeyHandler  *handlers.ApiKeyHandler
	emailHandler   *handlers.EmailHandler
	sendHandler    *handlers.SendHandler
	inboundHandler *handlers.InboundHandler
	authMiddleware gin.HandlerFunc
	metricsHandler http.Handler
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	r.GET("/health", d.healthHandler.Health)
	r.GET("/metrics", gin.WrapH(d.metricsHandler))

	v1 := r.Group("/api/v1")
	v1.Use(d.authMiddleware)
	{
		v1.GET("/me", d.userHandler.Me)

		// User routes; per-operation admin checks live in the usecase.
		users := v1.Group("/users")
		{
			users.POST("", d.userHandler.Create)
			users.GET("", d.userHandler.List)
			users.GET("/:id", d.userHandler.Get)
			users.GET("/:id/aliases", d.userHandler.Aliases)
		}

		// API key routes (protected)
		apiKeys := v1.Group("/api-keys")
		{
			apiKeys.POST("", d.apiKeyHandler.Create)
			apiKeys.GET("", d.apiKeyHandler.List)
			apiKeys.DELETE("/:id", d.apiKeyHandler.Revoke)
		}

		// Email routes (protected)
		emails := v1.Group("/emails")
		{
			emails.GET("", d.emailHandler.List)
			emails.GET("/stats", d.emailHandler.Stats)
			emails.GET("/:id", d.emailHandler.Get)
			emails.PATCH("/:id", d.emailHandler.Update)
			emails.DELETE("/:id", d.emailHandler.Delete)
		}

		// Outbound send
		v1.POST("/send", d.sendHandler.Send)

		// Inbound ingestion (receiving pipeline only)
		inbound := v1.Group("/inbound")
		inbound.Use(middleware.RequireScope(entities.ScopeAdmin))
		{
			inbound.POST("/email", d.inboundHandler.Ingest)
		}
	}
}

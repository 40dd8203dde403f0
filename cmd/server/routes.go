package main

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"charity-pay.backend/internal/interfaces/http/handlers"
	"charity-pay.backend/internal/interfaces/http/middleware"
	"charity-pay.backend/pkg/redis"
)

type routeDeps struct {
	onboardingHandler *handlers.OnboardingHandler
	webhookHandler    *handlers.WebhookHandler
	signatureHeader   string
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Merchant onboarding (organization-owner facing; authentication
		// is applied by the deployment's edge layer)
		onboarding := v1.Group("/organizations/:id/onboarding")
		{
			onboarding.POST("/registration", d.onboardingHandler.InitiateRegistration)
			onboarding.POST("/documents", d.onboardingHandler.UploadDocument)
			onboarding.POST("/submit", d.onboardingHandler.SubmitForApproval)
			onboarding.GET("/status", d.onboardingHandler.GetStatus)
		}

		// Provider callbacks, authenticated by payload signature
		webhooks := v1.Group("/webhooks")
		{
			webhooks.POST("/gateway",
				middleware.WebhookReplayMiddleware(d.signatureHeader),
				d.webhookHandler.HandleGatewayWebhook)
		}
	}
}

func registerHealthRoute(r *gin.Engine, sqlDB *sql.DB) {
	r.GET("/health", func(c *gin.Context) {
		dbOK := sqlDB != nil && sqlDB.PingContext(c.Request.Context()) == nil
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"database": dbOK,
			"redis":    redis.Healthy(c.Request.Context()),
		})
	})
}

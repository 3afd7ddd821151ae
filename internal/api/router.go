package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/poloedu/polobill/internal/api/v1"
	"github.com/poloedu/polobill/internal/logger"
	"github.com/poloedu/polobill/internal/rest/middleware"
)

// Handlers groups every HTTP handler wired into the router.
type Handlers struct {
	Plan    *v1.PlanHandler
	Webhook *v1.WebhookHandler
}

// NewRouter builds the gin engine with the standard middleware chain and all
// v1 routes.
func NewRouter(handlers Handlers, log *logger.Logger) *gin.Engine {
	gin.DefaultWriter = log.GetGinLogger()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.PoloMiddleware,
		middleware.LoggingMiddleware(log),
		middleware.ErrorHandler,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1Group := router.Group("/v1")
	{
		plans := v1Group.Group("/plans")
		{
			plans.POST("", handlers.Plan.CreatePlan)
			plans.GET("", handlers.Plan.ListPlans)
			plans.GET("/:id", handlers.Plan.GetPlan)
			plans.GET("/:id/payment-book", handlers.Plan.GetPaymentBook)
		}

		webhooks := v1Group.Group("/webhooks")
		{
			webhooks.POST("/asaas", handlers.Webhook.HandleAsaasEvent)
		}
	}

	return router
}
